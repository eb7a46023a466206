package ports

import (
	"time"

	"bookstore/internal/core/domain/model/dialog"
	"bookstore/internal/core/domain/model/nlu"
)

// DialogMetrics receives counters from the dialog core.
type DialogMetrics interface {
	ObserveTurn(intent nlu.Intent, elapsed time.Duration)
	OrderPlaced(items int)
	OrderFailed()
	SlotRejected(slot dialog.Slot)
}

// NopDialogMetrics discards everything.
type NopDialogMetrics struct{}

func (NopDialogMetrics) ObserveTurn(nlu.Intent, time.Duration) {}
func (NopDialogMetrics) OrderPlaced(int)                       {}
func (NopDialogMetrics) OrderFailed()                          {}
func (NopDialogMetrics) SlotRejected(dialog.Slot)              {}
