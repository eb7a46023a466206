package catalog_test

import (
	"testing"

	"bookstore/internal/core/domain/model/catalog"
	"bookstore/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBook(t *testing.T) {
	t.Run("valid book", func(t *testing.T) {
		b, err := catalog.NewBook(1, " Sapiens ", "Yuval Noah Harari", 189000, 12, "Lịch sử")
		require.NoError(t, err)
		assert.Equal(t, "Sapiens", b.Title)
		assert.True(t, b.InStock())
	})

	t.Run("collects every violation", func(t *testing.T) {
		_, err := catalog.NewBook(1, "", "x", -1, -2, "")
		require.Error(t, err)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
		assert.Contains(t, err.Error(), "price")
		assert.Contains(t, err.Error(), "stock")
	})

	t.Run("zero stock is valid but not in stock", func(t *testing.T) {
		b, err := catalog.NewBook(2, "Nhà Giả Kim", "Paulo Coelho", 79000, 0, "Tiểu thuyết")
		require.NoError(t, err)
		assert.False(t, b.InStock())
	})
}

func TestBook_Matches(t *testing.T) {
	b := catalog.Book{Title: "Đắc Nhân Tâm", Author: "Dale Carnegie", Category: "Kỹ năng sống"}

	assert.True(t, b.Matches("dac nhan tam"))
	assert.True(t, b.Matches("ĐẮC"))
	assert.True(t, b.Matches("carnegie"))
	assert.True(t, b.Matches("ky nang"))
	assert.False(t, b.Matches("sapiens"))
	assert.False(t, b.Matches(""))
}

func TestFilter(t *testing.T) {
	books := []catalog.Book{
		{ID: 1, Title: "Sapiens", Author: "Yuval Noah Harari"},
		{ID: 2, Title: "Homo Deus", Author: "Yuval Noah Harari"},
		{ID: 3, Title: "Nhà Giả Kim", Author: "Paulo Coelho"},
	}

	matches := catalog.Filter(books, "harari")
	require.Len(t, matches, 2)
	assert.Equal(t, int64(1), matches[0].ID)
	assert.Equal(t, int64(2), matches[1].ID)

	assert.Empty(t, catalog.Filter(books, "tolkien"))
}
