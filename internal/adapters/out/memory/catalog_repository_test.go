package memory_test

import (
	"testing"

	"bookstore/internal/adapters/out/memory"
	"bookstore/internal/core/domain/model/catalog"
	"bookstore/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogRepository(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewCatalogRepository(
		catalog.Book{ID: 2, Title: "Nhà Giả Kim", Author: "Paulo Coelho", Stock: 3},
		catalog.Book{ID: 1, Title: "Đắc Nhân Tâm", Author: "Dale Carnegie", Stock: 5, Category: "Kỹ năng"},
	)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, int64(1), all[0].ID)

	found, err := repo.Search(ctx, "dac nhan")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Đắc Nhân Tâm", found[0].Title)

	found, err = repo.Search(ctx, " ")
	require.NoError(t, err)
	assert.Empty(t, found)

	require.NoError(t, repo.DecrementStock(ctx, 1, 2))
	b, err := repo.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, b.Stock)

	require.ErrorIs(t, repo.DecrementStock(ctx, 1, 4), errs.ErrValueIsOutOfRange)
	_, err = repo.Get(ctx, 9)
	require.ErrorIs(t, err, errs.ErrObjectNotFound)
}
