// Package ports defines the contracts between the dialog core and its
// infrastructure: catalog and order persistence, session storage, the
// conversation log and language understanding.
package ports

import (
	"context"

	"bookstore/internal/core/domain/model/catalog"
)

// CatalogRepository defines the read side of the book catalog plus the stock
// decrement performed when an order is placed.
type CatalogRepository interface {
	// Search returns the books whose title, author or category contains
	// keyword, ignoring case and diacritics. An empty keyword matches nothing.
	Search(ctx context.Context, keyword string) ([]catalog.Book, error)

	// Get retrieves a book by id.
	// Returns errs.ErrObjectNotFound when the id is unknown.
	Get(ctx context.Context, id int64) (catalog.Book, error)

	// ListAll returns the whole catalog ordered by id.
	ListAll(ctx context.Context) ([]catalog.Book, error)

	// DecrementStock removes quantity copies of a book.
	// Fails with errs.ErrValueIsOutOfRange when fewer copies are left.
	DecrementStock(ctx context.Context, id int64, quantity int) error
}
