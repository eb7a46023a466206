package textnorm

import (
	"math"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var pricePrinter = message.NewPrinter(language.English)

// FormatVND renders a price rounded to whole dong with comma grouping,
// e.g. 120000 -> "120,000đ".
func FormatVND(price float64) string {
	return pricePrinter.Sprintf("%d", int64(math.Round(price))) + "đ"
}
