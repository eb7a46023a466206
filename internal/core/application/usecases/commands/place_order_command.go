package commands

import (
	"errors"
	"fmt"

	"bookstore/internal/core/domain/model/dialog"
	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/pkg/errs"
	"bookstore/internal/pkg/guard"
)

var ErrPlaceOrderCommandIsNotConstructed = errors.New(
	"PlaceOrderCommand must be created via NewPlaceOrderCommand constructor",
)

// PlaceOrderItem is a requested book and quantity. Title and price are
// re-read from the catalog when the order is placed.
type PlaceOrderItem struct {
	BookID   int64
	Quantity int
}

// PlaceOrderCommand represents a confirmed draft ready to become an order.
//
// Example:
//
//	cmd, err := NewPlaceOrderCommandFromDraft(draft)
//	if err != nil {
//	    return fmt.Errorf("draft is incomplete: %w", err)
//	}
//
//	orderID, err := handler.Handle(ctx, cmd)
type PlaceOrderCommand struct { //nolint:recvcheck //using for validation
	customer order.Customer
	items    []PlaceOrderItem

	guard guard.ConstructorGuard
}

// NewPlaceOrderCommand validates the recipient and the requested items.
func NewPlaceOrderCommand(customer order.Customer, items []PlaceOrderItem) (PlaceOrderCommand, error) {
	cmd := PlaceOrderCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setCustomer(customer),
		cmd.setItems(items),
	); err != nil {
		return PlaceOrderCommand{}, err
	}

	return cmd, nil
}

// NewPlaceOrderCommandFromDraft builds the command for a fully filled draft.
func NewPlaceOrderCommandFromDraft(draft *dialog.Draft) (PlaceOrderCommand, error) {
	if err := draft.Validate(); err != nil {
		return PlaceOrderCommand{}, err
	}
	if slot, missing := draft.MissingSlot(); missing {
		return PlaceOrderCommand{}, errs.NewValueIsRequiredError(slot.String())
	}

	items := make([]PlaceOrderItem, 0, len(draft.Items))
	for _, item := range draft.Items {
		items = append(items, PlaceOrderItem{BookID: item.BookID, Quantity: item.Quantity})
	}

	return NewPlaceOrderCommand(order.Customer{
		Name:    draft.CustomerName,
		Phone:   draft.Phone,
		Address: draft.Address,
	}, items)
}

// Validate ensures the command was created through the constructor.
func (c PlaceOrderCommand) Validate() error {
	return c.guard.Validate(ErrPlaceOrderCommandIsNotConstructed)
}

func (c PlaceOrderCommand) Customer() order.Customer {
	return c.customer
}

// Items returns a copy of the requested items.
func (c PlaceOrderCommand) Items() []PlaceOrderItem {
	return append([]PlaceOrderItem(nil), c.items...)
}

func (c *PlaceOrderCommand) setCustomer(customer order.Customer) error {
	if customer.Name == "" || customer.Phone == "" || customer.Address == "" {
		return errs.NewValueIsRequiredError("customer")
	}
	c.customer = customer
	return nil
}

func (c *PlaceOrderCommand) setItems(items []PlaceOrderItem) error {
	if len(items) == 0 {
		return errs.NewValueIsRequiredError("items")
	}
	for _, item := range items {
		if item.BookID <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("book id", fmt.Errorf("%d is not positive", item.BookID))
		}
		if item.Quantity <= 0 {
			return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is not positive", item.Quantity))
		}
	}
	c.items = append([]PlaceOrderItem(nil), items...)
	return nil
}
