package order

import (
	"fmt"
	"strings"

	"bookstore/internal/pkg/errs"
)

// Line is one book of an order, priced at the moment the order is placed.
type Line struct {
	bookID    int64
	title     string
	unitPrice float64
	quantity  int
}

// NewLine validates and creates an order line.
func NewLine(bookID int64, title string, unitPrice float64, quantity int) (Line, error) {
	if bookID <= 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("book id", fmt.Errorf("%d is not positive", bookID))
	}
	if strings.TrimSpace(title) == "" {
		return Line{}, errs.NewValueIsRequiredError("title")
	}
	if unitPrice < 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("unit price", fmt.Errorf("%v is negative", unitPrice))
	}
	if quantity <= 0 {
		return Line{}, errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not greater than 0", quantity))
	}
	return Line{bookID: bookID, title: strings.TrimSpace(title), unitPrice: unitPrice, quantity: quantity}, nil
}

func (l Line) BookID() int64      { return l.bookID }
func (l Line) Title() string      { return l.title }
func (l Line) UnitPrice() float64 { return l.unitPrice }
func (l Line) Quantity() int      { return l.quantity }

// Subtotal is the unit price times the quantity.
func (l Line) Subtotal() float64 {
	return l.unitPrice * float64(l.quantity)
}
