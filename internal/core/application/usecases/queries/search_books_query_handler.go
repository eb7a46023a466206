package queries

import (
	"context"

	"bookstore/internal/core/domain/model/catalog"
	"bookstore/internal/core/ports"
)

// SearchBooksQueryHandler answers keyword searches from the catalog.
type SearchBooksQueryHandler struct {
	books ports.CatalogRepository
}

func NewSearchBooksQueryHandler(books ports.CatalogRepository) SearchBooksQueryHandler {
	return SearchBooksQueryHandler{books: books}
}

// Handle returns the matching books, never nil.
func (h SearchBooksQueryHandler) Handle(ctx context.Context, query SearchBooksQuery) ([]catalog.Book, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	books, err := h.books.Search(ctx, query.Keyword())
	if err != nil {
		return nil, err
	}
	if books == nil {
		books = []catalog.Book{}
	}
	return books, nil
}
