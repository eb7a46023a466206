package queries

import (
	"context"
	"errors"
	"fmt"

	"bookstore/internal/core/domain/model/catalog"
	"bookstore/internal/core/ports"
	"bookstore/internal/pkg/errs"
	"bookstore/internal/pkg/guard"
)

var ErrGetBookQueryIsNotConstructed = errors.New(
	"GetBookQuery must be created via NewGetBookQuery constructor",
)

// GetBookQuery fetches one book by id.
type GetBookQuery struct {
	id int64

	guard guard.ConstructorGuard
}

func NewGetBookQuery(id int64) (GetBookQuery, error) {
	if id <= 0 {
		return GetBookQuery{}, errs.NewValueIsInvalidErrorWithCause("book id", fmt.Errorf("%d is not positive", id))
	}
	return GetBookQuery{id: id, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetBookQuery) Validate() error {
	return q.guard.Validate(ErrGetBookQueryIsNotConstructed)
}

func (q GetBookQuery) ID() int64 {
	return q.id
}

// GetBookQueryHandler reads a single book. Unknown ids surface
// errs.ErrObjectNotFound from the repository.
type GetBookQueryHandler struct {
	books ports.CatalogRepository
}

func NewGetBookQueryHandler(books ports.CatalogRepository) GetBookQueryHandler {
	return GetBookQueryHandler{books: books}
}

func (h GetBookQueryHandler) Handle(ctx context.Context, query GetBookQuery) (catalog.Book, error) {
	if err := query.Validate(); err != nil {
		return catalog.Book{}, err
	}
	return h.books.Get(ctx, query.ID())
}
