// Package bookrepo persists the book catalog with GORM.
package bookrepo

import (
	"bookstore/internal/core/domain/model/catalog"
)

// BookDTO is the row of the books table. Title and author together identify
// a book for imports.
type BookDTO struct {
	ID       int64   `gorm:"column:book_id;primaryKey;autoIncrement"`
	Title    string  `gorm:"not null;uniqueIndex:idx_books_title_author"`
	Author   string  `gorm:"not null;default:'';uniqueIndex:idx_books_title_author"`
	Price    float64 `gorm:"type:numeric(12,2);not null;default:0"`
	Stock    int     `gorm:"not null;default:0;check:stock >= 0"`
	Category string  `gorm:"not null;default:''"`
}

// TableName overrides GORM's pluralized default.
func (BookDTO) TableName() string {
	return "books"
}

func fromDomain(b catalog.Book) BookDTO {
	return BookDTO{
		ID:       b.ID,
		Title:    b.Title,
		Author:   b.Author,
		Price:    b.Price,
		Stock:    b.Stock,
		Category: b.Category,
	}
}

func toDomain(dto BookDTO) (catalog.Book, error) {
	return catalog.NewBook(dto.ID, dto.Title, dto.Author, dto.Price, dto.Stock, dto.Category)
}
