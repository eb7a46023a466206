package queries

import (
	"errors"
	"fmt"
	"time"

	"bookstore/internal/pkg/errs"
	"bookstore/internal/pkg/guard"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery retrieves a placed order with its lines for the order
// status page.
//
// Example:
//
//	query, _ := NewGetOrderQuery(42)
//	resp, err := handler.Handle(ctx, query)
//	if errors.Is(err, errs.ErrObjectNotFound) {
//	    // 404
//	}
//	fmt.Printf("%s: %d books, %s\n", resp.CustomerName, resp.TotalQuantity, resp.Note)
type GetOrderQuery struct {
	id int64

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(id int64) (GetOrderQuery, error) {
	if id <= 0 {
		return GetOrderQuery{}, errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d is not positive", id))
	}
	return GetOrderQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) ID() int64 {
	return q.id
}

// GetOrderQueryResponse is the read model of a placed order.
type GetOrderQueryResponse struct {
	ID            int64
	CustomerName  string
	Phone         string
	Address       string
	TotalQuantity int
	TotalPrice    float64
	Note          string
	CreatedAt     time.Time
	Lines         []GetOrderQueryLine
}

// GetOrderQueryLine is one book of a placed order.
type GetOrderQueryLine struct {
	BookID    int64
	Title     string
	UnitPrice float64
	Quantity  int
}
