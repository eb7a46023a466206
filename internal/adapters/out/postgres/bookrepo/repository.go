package bookrepo

import (
	"context"
	"errors"
	"strings"

	"bookstore/internal/core/domain/model/catalog"
	"bookstore/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormBookRepository implements CatalogRepository using GORM.
type GormBookRepository struct {
	db *gorm.DB
}

// NewGormBookRepository creates a new GORM book repository.
func NewGormBookRepository(db *gorm.DB) *GormBookRepository {
	return &GormBookRepository{db: db}
}

// Add inserts a book and returns it with its generated id.
func (r *GormBookRepository) Add(ctx context.Context, book catalog.Book) (catalog.Book, error) {
	if err := book.Validate(); err != nil {
		return catalog.Book{}, err
	}

	dto := fromDomain(book)
	dto.ID = 0
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return catalog.Book{}, err
	}

	return toDomain(dto)
}

// Search folds case and diacritics in Go, so it loads the catalog and
// filters it rather than pushing a LIKE down to postgres.
func (r *GormBookRepository) Search(ctx context.Context, keyword string) ([]catalog.Book, error) {
	if strings.TrimSpace(keyword) == "" {
		return []catalog.Book{}, nil
	}

	all, err := r.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	return catalog.Filter(all, keyword), nil
}

// Get retrieves a book by id.
func (r *GormBookRepository) Get(ctx context.Context, id int64) (catalog.Book, error) {
	var dto BookDTO
	if err := r.db.WithContext(ctx).First(&dto, "book_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return catalog.Book{}, errs.NewObjectNotFoundError("book", id)
		}
		return catalog.Book{}, err
	}

	return toDomain(dto)
}

// ListAll retrieves every book ordered by id.
func (r *GormBookRepository) ListAll(ctx context.Context) ([]catalog.Book, error) {
	var dtos []BookDTO
	if err := r.db.WithContext(ctx).Order("book_id").Find(&dtos).Error; err != nil {
		return nil, err
	}

	books := make([]catalog.Book, 0, len(dtos))
	for _, dto := range dtos {
		b, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		books = append(books, b)
	}

	return books, nil
}

// DecrementStock subtracts quantity in a single conditional UPDATE so two
// concurrent orders can never drive the stock below zero.
func (r *GormBookRepository) DecrementStock(ctx context.Context, id int64, quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, "stock")
	}

	result := r.db.WithContext(ctx).
		Model(&BookDTO{}).
		Where("book_id = ? AND stock >= ?", id, quantity).
		UpdateColumn("stock", gorm.Expr("stock - ?", quantity))
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 1 {
		return nil
	}

	var dto BookDTO
	err := r.db.WithContext(ctx).First(&dto, "book_id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errs.NewObjectNotFoundError("book", id)
	}
	if err != nil {
		return err
	}

	return errs.NewValueIsOutOfRangeError("quantity", quantity, 1, dto.Stock)
}
