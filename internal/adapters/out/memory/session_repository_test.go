package memory_test

import (
	"testing"
	"time"

	"bookstore/internal/adapters/out/memory"
	"bookstore/internal/core/domain/model/dialog"
	"bookstore/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionRepository(t *testing.T) {
	ctx := t.Context()
	repo := memory.NewSessionRepository()
	old := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)

	_, err := repo.Get(ctx, "a")
	require.ErrorIs(t, err, errs.ErrObjectNotFound)

	a, _ := dialog.NewSession("a", old)
	b, _ := dialog.NewSession("b", old.Add(time.Hour))
	require.NoError(t, repo.Save(ctx, a))
	require.NoError(t, repo.Save(ctx, b))
	require.Error(t, repo.Save(ctx, &dialog.Session{}))

	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, dialog.Idle, got.State())

	removed, err := repo.DeleteIdleSince(ctx, old.Add(30*time.Minute))
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)
	assert.Equal(t, 1, repo.Len())

	require.NoError(t, repo.Delete(ctx, "b"))
	require.NoError(t, repo.Delete(ctx, "missing"))
	assert.Zero(t, repo.Len())
}
