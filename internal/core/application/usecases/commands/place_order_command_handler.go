package commands

import (
	"context"
	"errors"
	"time"

	"bookstore/internal/core/domain/model/order"
	"bookstore/internal/pkg/errs"
)

// ErrInsufficientStock is returned when a book has fewer copies than ordered
// at the time the order is placed.
var ErrInsufficientStock = errors.New("insufficient stock")

// PlaceOrderCommandHandler turns a confirmed draft into a persisted order.
//
// Within one transaction it re-reads every book, checks and decrements its
// stock and inserts the order with its lines. Any failure rolls everything back.
//
// Example:
//
//	handler := NewPlaceOrderCommandHandler(uowFactory)
//	orderID, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("order placement failed: %w", err)
//	}
type PlaceOrderCommandHandler struct {
	uowFactory UoWFactory
	now        func() time.Time
}

// NewPlaceOrderCommandHandler creates a handler for order placement.
func NewPlaceOrderCommandHandler(uowFactory UoWFactory) PlaceOrderCommandHandler {
	return PlaceOrderCommandHandler{
		uowFactory: uowFactory,
		now:        time.Now,
	}
}

// Handle places the order and returns its identifier.
func (h *PlaceOrderCommandHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (int64, error) {
	if err := cmd.Validate(); err != nil {
		return 0, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return 0, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	books := uow.CatalogRepository()
	lines := make([]order.Line, 0, len(cmd.Items()))
	for _, item := range cmd.Items() {
		book, err := books.Get(ctx, item.BookID)
		if err != nil {
			return 0, err
		}
		if book.Stock < item.Quantity {
			return 0, errors.Join(ErrInsufficientStock,
				errs.NewValueIsOutOfRangeError("quantity", item.Quantity, 1, book.Stock))
		}

		line, err := order.NewLine(book.ID, book.Title, book.Price, item.Quantity)
		if err != nil {
			return 0, err
		}
		if err = books.DecrementStock(ctx, book.ID, item.Quantity); err != nil {
			return 0, err
		}
		lines = append(lines, line)
	}

	aggregate, err := order.NewOrder(cmd.Customer(), lines, h.now())
	if err != nil {
		return 0, err
	}

	if err = uow.OrderRepository().Add(ctx, aggregate); err != nil {
		return 0, err
	}

	if err = uow.Commit(ctx); err != nil {
		return 0, err
	}

	return aggregate.ID(), nil
}
