package ports

import (
	"context"

	"bookstore/internal/core/domain/model/nlu"
)

// Analyzer classifies an utterance and extracts its entities. inOrderFlow
// is set while the session is collecting order details, so slot answers get
// their entities even though they classify as unknown.
type Analyzer interface {
	Analyze(ctx context.Context, text string, inOrderFlow bool) (nlu.Result, error)
}

// EntityExtractor extracts entities only. Analyzers combine one with an
// intent classifier.
type EntityExtractor interface {
	Extract(ctx context.Context, text string) (nlu.Entities, error)
}
