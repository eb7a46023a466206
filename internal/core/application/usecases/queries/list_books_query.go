package queries

import (
	"context"
	"errors"

	"bookstore/internal/core/domain/model/catalog"
	"bookstore/internal/core/ports"
	"bookstore/internal/pkg/guard"
)

var ErrListBooksQueryIsNotConstructed = errors.New(
	"ListBooksQuery must be created via NewListBooksQuery constructor",
)

// ListBooksQuery returns the whole catalog. It is parameterless.
type ListBooksQuery struct {
	guard guard.ConstructorGuard
}

func NewListBooksQuery() ListBooksQuery {
	return ListBooksQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q ListBooksQuery) Validate() error {
	return q.guard.Validate(ErrListBooksQueryIsNotConstructed)
}

// ListBooksQueryHandler reads every book ordered by id.
type ListBooksQueryHandler struct {
	books ports.CatalogRepository
}

func NewListBooksQueryHandler(books ports.CatalogRepository) ListBooksQueryHandler {
	return ListBooksQueryHandler{books: books}
}

func (h ListBooksQueryHandler) Handle(ctx context.Context, query ListBooksQuery) ([]catalog.Book, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	books, err := h.books.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []catalog.Book{}
	}
	return books, nil
}
