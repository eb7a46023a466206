package memory

import (
	"context"
	"sort"
	"strings"
	"sync"

	"bookstore/internal/core/domain/model/catalog"
	"bookstore/internal/pkg/errs"
)

// CatalogRepository keeps books in a map keyed by id.
type CatalogRepository struct {
	mu    sync.RWMutex
	books map[int64]catalog.Book
}

func NewCatalogRepository(books ...catalog.Book) *CatalogRepository {
	r := &CatalogRepository{books: make(map[int64]catalog.Book, len(books))}
	for _, b := range books {
		r.books[b.ID] = b
	}
	return r
}

func (r *CatalogRepository) Search(ctx context.Context, keyword string) ([]catalog.Book, error) {
	if strings.TrimSpace(keyword) == "" {
		return []catalog.Book{}, nil
	}
	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	return catalog.Filter(all, keyword), nil
}

func (r *CatalogRepository) Get(_ context.Context, id int64) (catalog.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	b, ok := r.books[id]
	if !ok {
		return catalog.Book{}, errs.NewObjectNotFoundError("book", id)
	}
	return b, nil
}

func (r *CatalogRepository) ListAll(_ context.Context) ([]catalog.Book, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]catalog.Book, 0, len(r.books))
	for _, b := range r.books {
		out = append(out, b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *CatalogRepository) DecrementStock(_ context.Context, id int64, quantity int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	b, ok := r.books[id]
	if !ok {
		return errs.NewObjectNotFoundError("book", id)
	}
	if quantity < 1 || quantity > b.Stock {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, b.Stock)
	}
	b.Stock -= quantity
	r.books[id] = b
	return nil
}
