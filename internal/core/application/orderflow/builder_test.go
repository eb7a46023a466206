package orderflow_test

import (
	"testing"

	"bookstore/internal/adapters/out/memory"
	"bookstore/internal/core/application/orderflow"
	"bookstore/internal/core/domain/model/catalog"
	"bookstore/internal/core/domain/model/dialog"
	"bookstore/internal/core/domain/model/nlu"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilder_BuildSingle_ExactTitleWinsOverPartialMatches(t *testing.T) {
	prequel := catalog.Book{ID: 10, Title: "Sapiens", Price: 1, Stock: 1}
	sequel := catalog.Book{ID: 11, Title: "Sapiens: Lược sử loài người bằng tranh", Price: 1, Stock: 1}
	b := orderflow.NewBuilder(memory.NewCatalogRepository(prequel, sequel))

	result, err := b.BuildSingle(t.Context(), "SAPIENS", nlu.Entities{})
	require.NoError(t, err)
	assert.Equal(t, orderflow.OutcomeDraft, result.Outcome)
	assert.Equal(t, int64(10), result.Draft.Item().BookID)

	result, err = b.BuildSingle(t.Context(), "sapiens:", nlu.Entities{})
	require.NoError(t, err)
	assert.Equal(t, orderflow.OutcomeDraft, result.Outcome)
	assert.Equal(t, int64(11), result.Draft.Item().BookID)
}

func TestBuilder_BuildSingle_ManyMatchesOfferSelection(t *testing.T) {
	b := orderflow.NewBuilder(memory.NewCatalogRepository(harryStone, harrySecret))

	result, err := b.BuildSingle(t.Context(), "harry", nlu.Entities{})
	require.NoError(t, err)
	assert.Equal(t, orderflow.OutcomeChoose, result.Outcome)
	require.NoError(t, result.Selection.Validate())
	assert.Equal(t, 2, result.Selection.Total)
	assert.Nil(t, result.Draft)
}

func TestBuilder_BuildMulti_RepeatedBookKeepsFirst(t *testing.T) {
	b := orderflow.NewBuilder(memory.NewCatalogRepository(sapiens, dacNhanTam))

	result, err := b.BuildMulti(t.Context(), nlu.Entities{Books: []nlu.BookMention{
		{Title: nlu.NewValue("sapiens"), Quantity: nlu.NewValue("2")},
		{Title: nlu.NewValue("Sapiens"), Quantity: nlu.NewValue("1")},
		{Title: nlu.NewValue("đắc nhân tâm"), Quantity: nlu.NewValue("ba")},
	}})
	require.NoError(t, err)

	assert.Equal(t, orderflow.OutcomeDraft, result.Outcome)
	assert.Equal(t, dialog.MultiItem, result.Draft.OrderType)
	require.Len(t, result.Draft.Items, 1)
	assert.Equal(t, 2, result.Draft.Items[0].Quantity)
	assert.Len(t, result.Warnings, 2)
}

func TestBuilder_BuildMulti_ExactTitleResolvesAmbiguousMatchesOnly(t *testing.T) {
	prequel := catalog.Book{ID: 10, Title: "Sapiens", Price: 1, Stock: 3}
	sequel := catalog.Book{ID: 11, Title: "Sapiens: Lược sử loài người bằng tranh", Price: 1, Stock: 3}
	b := orderflow.NewBuilder(memory.NewCatalogRepository(prequel, sequel, harryStone, harrySecret, dacNhanTam))

	result, err := b.BuildMulti(t.Context(), nlu.Entities{Books: []nlu.BookMention{
		{Title: nlu.NewValue("sapiens"), Quantity: nlu.NewValue("1")},
		{Title: nlu.NewValue("harry potter"), Quantity: nlu.NewValue("1")},
		{Title: nlu.NewValue("Đắc Nhân Tâm"), Quantity: nlu.NewValue("2")},
	}})
	require.NoError(t, err)

	require.Equal(t, orderflow.OutcomeDraft, result.Outcome)
	require.Len(t, result.Draft.Items, 2)
	assert.Equal(t, int64(10), result.Draft.Items[0].BookID)
	assert.Equal(t, dacNhanTam.ID, result.Draft.Items[1].BookID)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "Có 2 sách khớp với 'harry potter'")
}
