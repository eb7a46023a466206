package queries

import (
	"errors"
	"strings"

	"bookstore/internal/pkg/errs"
	"bookstore/internal/pkg/guard"
)

var ErrSearchBooksQueryIsNotConstructed = errors.New(
	"SearchBooksQuery must be created via NewSearchBooksQuery constructor",
)

// SearchBooksQuery finds books by a keyword over title, author and category.
//
// Example:
//
//	query, err := NewSearchBooksQuery("đắc nhân tâm")
//	if err != nil {
//	    return err // keyword is blank
//	}
//	books, err := handler.Handle(ctx, query)
type SearchBooksQuery struct {
	keyword string

	guard guard.ConstructorGuard
}

// NewSearchBooksQuery trims keyword and rejects blank input.
func NewSearchBooksQuery(keyword string) (SearchBooksQuery, error) {
	keyword = strings.TrimSpace(keyword)
	if keyword == "" {
		return SearchBooksQuery{}, errs.NewValueIsRequiredError("keyword")
	}
	return SearchBooksQuery{keyword: keyword, guard: guard.NewConstructorGuard()}, nil
}

// Validate ensures the query was created through the constructor.
func (q SearchBooksQuery) Validate() error {
	return q.guard.Validate(ErrSearchBooksQueryIsNotConstructed)
}

func (q SearchBooksQuery) Keyword() string {
	return q.keyword
}
