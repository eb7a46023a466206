// Package catalog models the books offered by the store.
//
// The catalog is read-only from the dialog's point of view: books are looked
// up by id or keyword and their stock is only decremented when an order is
// placed.
package catalog

import (
	"errors"
	"fmt"
	"strings"

	"bookstore/internal/pkg/errs"
	"bookstore/internal/pkg/textnorm"
)

// Book is a catalog record.
type Book struct {
	ID       int64   `json:"book_id"`
	Title    string  `json:"title"`
	Author   string  `json:"author"`
	Price    float64 `json:"price"`
	Stock    int     `json:"stock"`
	Category string  `json:"category"`
}

// NewBook validates and creates a catalog record.
//
// Example:
//
//	book, err := catalog.NewBook(1, "Sapiens", "Yuval Noah Harari", 189000, 12, "Lịch sử")
//	if err != nil {
//	    return err
//	}
func NewBook(id int64, title, author string, price float64, stock int, category string) (Book, error) {
	b := Book{
		ID:       id,
		Title:    strings.TrimSpace(title),
		Author:   strings.TrimSpace(author),
		Price:    price,
		Stock:    stock,
		Category: strings.TrimSpace(category),
	}
	if err := b.Validate(); err != nil {
		return Book{}, err
	}
	return b, nil
}

// Validate checks the record invariants: a title, a non-negative price and
// a non-negative stock level.
func (b Book) Validate() error {
	var titleErr, priceErr, stockErr error
	if b.Title == "" {
		titleErr = errs.NewValueIsRequiredError("title")
	}
	if b.Price < 0 {
		priceErr = errs.NewValueIsInvalidErrorWithCause("price", fmt.Errorf("%v is negative", b.Price))
	}
	if b.Stock < 0 {
		stockErr = errs.NewValueIsInvalidErrorWithCause("stock", fmt.Errorf("%d is negative", b.Stock))
	}
	return errors.Join(titleErr, priceErr, stockErr)
}

// InStock reports whether at least one copy is available.
func (b Book) InStock() bool {
	return b.Stock > 0
}

// Matches reports whether keyword occurs in the title, author or category,
// ignoring case and Vietnamese diacritics.
func (b Book) Matches(keyword string) bool {
	return textnorm.Contains(b.Title, keyword) ||
		textnorm.Contains(b.Author, keyword) ||
		textnorm.Contains(b.Category, keyword)
}

// Filter returns the books matching keyword, preserving order.
func Filter(books []Book, keyword string) []Book {
	matches := make([]Book, 0)
	for _, b := range books {
		if b.Matches(keyword) {
			matches = append(matches, b)
		}
	}
	return matches
}
