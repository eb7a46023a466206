package dialog

import (
	"errors"
	"fmt"
	"strings"

	"bookstore/internal/core/domain/model/catalog"
	"bookstore/internal/pkg/errs"
)

var (
	// ErrSlotAlreadyFilled is returned by the Fill methods when the slot has a
	// value. Filled slots only change through the Edit methods.
	ErrSlotAlreadyFilled = errors.New("slot is already filled")

	// ErrQuantityIsFixed is returned when editing the quantity of a multi-item
	// draft. Per-item quantities are settled when the draft is built.
	ErrQuantityIsFixed = errors.New("quantity of a multi-item draft cannot be changed")

	// ErrBookOutOfStock is returned when drafting a book with no copies left.
	ErrBookOutOfStock = errors.New("book is out of stock")
)

// OrderType discriminates the two draft shapes.
type OrderType string

const (
	SingleItem OrderType = "single"
	MultiItem  OrderType = "multi"
)

// LineItem is one book of a draft together with the stock level seen when
// the draft was built. Quantity 0 means not chosen yet.
type LineItem struct {
	BookID    int64   `json:"item_id"`
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unit_price"`
	Stock     int     `json:"stock"`
	Quantity  int     `json:"quantity,omitempty"`
}

// NewLineItem creates a line for book with a quantity in [1, book.Stock].
func NewLineItem(book catalog.Book, quantity int) (LineItem, error) {
	item := itemFromBook(book)
	if err := item.setQuantity(quantity); err != nil {
		return LineItem{}, err
	}
	return item, nil
}

// Subtotal is UnitPrice times Quantity.
func (i LineItem) Subtotal() float64 {
	return i.UnitPrice * float64(i.Quantity)
}

func itemFromBook(book catalog.Book) LineItem {
	return LineItem{
		BookID:    book.ID,
		Title:     book.Title,
		UnitPrice: book.Price,
		Stock:     book.Stock,
	}
}

func (i *LineItem) setQuantity(quantity int) error {
	if quantity < 1 || quantity > i.Stock {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, i.Stock)
	}
	i.Quantity = quantity
	return nil
}

// Draft is the not yet submitted order attached to a session.
//
// It comes in two shapes discriminated by OrderType:
//   - SingleItem: exactly one line whose quantity is collected in dialog
//   - MultiItem: one or more lines whose quantities were validated up front
//
// Required slots fill monotonically. The Fill methods refuse to overwrite a
// value and only the Edit methods replace one.
type Draft struct {
	OrderType    OrderType  `json:"order_type"`
	Items        []LineItem `json:"items"`
	CustomerName string     `json:"customer_name,omitempty"`
	Phone        string     `json:"phone,omitempty"`
	Address      string     `json:"address,omitempty"`
}

// NewSingleDraft starts a single-item draft for book with no slot filled.
// Books without stock cannot be drafted.
func NewSingleDraft(book catalog.Book) (*Draft, error) {
	if !book.InStock() {
		return nil, ErrBookOutOfStock
	}
	return &Draft{
		OrderType: SingleItem,
		Items:     []LineItem{itemFromBook(book)},
	}, nil
}

// NewMultiDraft creates a multi-item draft from already validated lines.
func NewMultiDraft(items []LineItem) (*Draft, error) {
	if len(items) == 0 {
		return nil, errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if item.Quantity < 1 || item.Quantity > item.Stock {
			return nil, errs.NewValueIsOutOfRangeError("quantity", item.Quantity, 1, item.Stock)
		}
	}
	return &Draft{
		OrderType: MultiItem,
		Items:     append([]LineItem(nil), items...),
	}, nil
}

// Validate checks the shape invariants of a draft loaded from storage.
func (d *Draft) Validate() error {
	if d == nil {
		return errs.NewValueIsRequiredError("draft")
	}
	switch d.OrderType {
	case SingleItem:
		if len(d.Items) != 1 {
			return errs.NewValueIsInvalidErrorWithCause("items",
				fmt.Errorf("single-item draft has %d items", len(d.Items)))
		}
	case MultiItem:
		if len(d.Items) == 0 {
			return errs.NewValueIsRequiredError("items")
		}
		for _, item := range d.Items {
			if item.Quantity < 1 {
				return errs.NewValueIsInvalidErrorWithCause("items",
					fmt.Errorf("item %d has no quantity", item.BookID))
			}
		}
	default:
		return errs.NewValueIsInvalidErrorWithCause("order_type", fmt.Errorf("%q is not an order type", d.OrderType))
	}
	return nil
}

// IsSingle reports whether the draft is a single-item draft.
func (d *Draft) IsSingle() bool {
	return d.OrderType == SingleItem
}

// Item returns the line of a single-item draft.
func (d *Draft) Item() LineItem {
	if len(d.Items) == 0 {
		return LineItem{}
	}
	return d.Items[0]
}

// RequiredSlots lists the slots to collect, in asking order.
func (d *Draft) RequiredSlots() []Slot {
	if d.IsSingle() {
		return []Slot{SlotQuantity, SlotCustomerName, SlotPhone, SlotAddress}
	}
	return []Slot{SlotCustomerName, SlotPhone, SlotAddress}
}

// MissingSlot returns the first required slot without a value.
func (d *Draft) MissingSlot() (Slot, bool) {
	for _, slot := range d.RequiredSlots() {
		if !d.IsFilled(slot) {
			return slot, true
		}
	}
	return 0, false
}

// IsFilled reports whether slot has a value.
func (d *Draft) IsFilled(slot Slot) bool {
	switch slot {
	case SlotQuantity:
		if d.IsSingle() {
			return d.Item().Quantity > 0
		}
		return true
	case SlotCustomerName:
		return d.CustomerName != ""
	case SlotPhone:
		return d.Phone != ""
	case SlotAddress:
		return d.Address != ""
	default:
		return false
	}
}

// FillQuantity sets the quantity of a single-item draft if not set yet.
func (d *Draft) FillQuantity(quantity int) error {
	if d.IsFilled(SlotQuantity) {
		return ErrSlotAlreadyFilled
	}
	return d.Items[0].setQuantity(quantity)
}

// FillText sets the customer name, phone or address if not set yet.
func (d *Draft) FillText(slot Slot, value string) error {
	if d.IsFilled(slot) {
		return ErrSlotAlreadyFilled
	}
	return d.setText(slot, value)
}

// EditQuantity replaces the quantity of a single-item draft.
func (d *Draft) EditQuantity(quantity int) error {
	if !d.IsSingle() {
		return ErrQuantityIsFixed
	}
	return d.Items[0].setQuantity(quantity)
}

// EditText replaces the customer name, phone or address.
func (d *Draft) EditText(slot Slot, value string) error {
	return d.setText(slot, value)
}

func (d *Draft) setText(slot Slot, value string) error {
	value = strings.TrimSpace(value)
	if value == "" {
		return errs.NewValueIsRequiredError(slot.String())
	}
	switch slot {
	case SlotCustomerName:
		d.CustomerName = value
	case SlotPhone:
		d.Phone = value
	case SlotAddress:
		d.Address = value
	case SlotQuantity:
		return errs.NewValueIsInvalidErrorWithCause("slot", errors.New("quantity is not a text slot"))
	default:
		return errs.NewValueIsInvalidErrorWithCause("slot", fmt.Errorf("%d is not a slot", slot))
	}
	return nil
}

// TotalQuantity sums the quantities of all lines.
func (d *Draft) TotalQuantity() int {
	total := 0
	for _, item := range d.Items {
		total += item.Quantity
	}
	return total
}

// TotalPrice sums the line subtotals.
func (d *Draft) TotalPrice() float64 {
	total := 0.0
	for _, item := range d.Items {
		total += item.Subtotal()
	}
	return total
}

// Clone returns a deep copy.
func (d *Draft) Clone() *Draft {
	if d == nil {
		return nil
	}
	c := *d
	c.Items = append([]LineItem(nil), d.Items...)
	return &c
}
