package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bookstore/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// the NewOrder or RestoreOrder factories.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrIDAlreadyAssigned is returned when persistence tries to set the identifier twice.
	ErrIDAlreadyAssigned = errors.New("order id is already assigned")
)

// Customer is the recipient of an order.
type Customer struct {
	Name    string
	Phone   string
	Address string
}

// Order represents a confirmed purchase. It is the aggregate root owning its lines.
//
// Order follows these invariants:
//   - Customer name, phone and address are non-empty
//   - At least one line, no book repeated
//   - The identifier is zero until persisted and assigned once
type Order struct {
	id        int64
	customer  Customer
	lines     []Line
	createdAt time.Time

	isConstructed bool
}

// NewOrder creates a new, not yet persisted order.
//
// Example:
//
//	line, _ := order.NewLine(7, "Sapiens", 189000, 2)
//	o, err := order.NewOrder(order.Customer{
//	    Name:    "Lan",
//	    Phone:   "0987654321",
//	    Address: "12 Lê Lợi, Quận 1",
//	}, []order.Line{line}, time.Now())
//	if err != nil {
//	    // Handle validation error
//	}
//	fmt.Println(o.TotalQuantity(), o.Note()) // 2 "2 x Sapiens"
func NewOrder(customer Customer, lines []Line, createdAt time.Time) (*Order, error) {
	o := &Order{
		createdAt:     createdAt,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setCustomer(customer),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder rebuilds a persisted order.
func RestoreOrder(id int64, customer Customer, lines []Line, createdAt time.Time) (*Order, error) {
	o, err := NewOrder(customer, lines, createdAt)
	if err != nil {
		return nil, err
	}
	if err = o.AssignID(id); err != nil {
		return nil, err
	}
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// AssignID stores the identifier generated by persistence.
func (o *Order) AssignID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d is not positive", id))
	}
	if o.id != 0 {
		return ErrIDAlreadyAssigned
	}
	o.id = id
	return nil
}

// ID returns the persisted identifier, zero before persistence.
func (o *Order) ID() int64 {
	return o.id
}

func (o *Order) Customer() Customer {
	return o.customer
}

// Lines returns a copy of the order lines.
func (o *Order) Lines() []Line {
	return append([]Line(nil), o.lines...)
}

func (o *Order) CreatedAt() time.Time {
	return o.createdAt
}

// TotalQuantity sums the quantities of all lines.
func (o *Order) TotalQuantity() int {
	total := 0
	for _, l := range o.lines {
		total += l.quantity
	}
	return total
}

// TotalPrice sums the line subtotals.
func (o *Order) TotalPrice() float64 {
	total := 0.0
	for _, l := range o.lines {
		total += l.Subtotal()
	}
	return total
}

// Note itemizes the lines, e.g. "2 x Sapiens; 1 x Nhà Giả Kim".
func (o *Order) Note() string {
	parts := make([]string, 0, len(o.lines))
	for _, l := range o.lines {
		parts = append(parts, fmt.Sprintf("%d x %s", l.quantity, l.title))
	}
	return strings.Join(parts, "; ")
}

func (o *Order) setCustomer(c Customer) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Phone = strings.TrimSpace(c.Phone)
	c.Address = strings.TrimSpace(c.Address)

	var nameErr, phoneErr, addressErr error
	if c.Name == "" {
		nameErr = errs.NewValueIsRequiredError("customer name")
	}
	if c.Phone == "" {
		phoneErr = errs.NewValueIsRequiredError("phone")
	}
	if c.Address == "" {
		addressErr = errs.NewValueIsRequiredError("address")
	}
	if err := errors.Join(nameErr, phoneErr, addressErr); err != nil {
		return err
	}

	o.customer = c
	return nil
}

func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines")
	}

	seen := make(map[int64]struct{}, len(lines))
	for _, l := range lines {
		if l.quantity <= 0 || l.bookID <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("lines", errors.New("line must be created via NewLine"))
		}
		if _, dup := seen[l.bookID]; dup {
			return errs.NewValueIsInvalidErrorWithCause("lines", fmt.Errorf("book %d appears twice", l.bookID))
		}
		seen[l.bookID] = struct{}{}
	}

	o.lines = append([]Line(nil), lines...)
	return nil
}
