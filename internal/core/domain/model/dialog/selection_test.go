package dialog_test

import (
	"fmt"
	"testing"

	"bookstore/internal/core/domain/model/catalog"
	"bookstore/internal/core/domain/model/dialog"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSelection_CapsPreview(t *testing.T) {
	matches := make([]catalog.Book, 0, 13)
	for i := 1; i <= 13; i++ {
		matches = append(matches, book(int64(i), fmt.Sprintf("Sách %d", i), 1000, 1))
	}

	s := dialog.NewSelection(matches)

	require.Len(t, s.Preview, dialog.MaxCandidates)
	require.Len(t, s.Candidates, dialog.MaxCandidates)
	assert.Equal(t, 3, s.Omitted())
	assert.Equal(t, int64(1), s.Candidates["1"])
	assert.Equal(t, int64(10), s.Candidates["10"])
	require.NoError(t, s.Validate())
}

func TestSelection_Resolve(t *testing.T) {
	s := dialog.NewSelection([]catalog.Book{
		book(11, "Sapiens: Lược sử loài người", 189000, 3),
		book(12, "Homo Deus: Lược sử tương lai", 199000, 2),
		book(13, "21 bài học cho thế kỷ 21", 179000, 0),
	})

	tests := []struct {
		name  string
		reply string
		want  int64
		err   error
	}{
		{"by number", "2", 12, nil},
		{"number inside text", "mình chọn số 1 nhé", 11, nil},
		{"unknown number", "7", 0, dialog.ErrSelectionUnknownIndex},
		{"unique title fragment", "homo", 12, nil},
		{"ambiguous fragment", "lược sử", 0, dialog.ErrSelectionAmbiguous},
		{"no match", "nhà giả kim", 0, dialog.ErrSelectionNoMatch},
		{"blank", "   ", 0, dialog.ErrSelectionNoMatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, err := s.Resolve(tt.reply)
			if tt.err != nil {
				require.ErrorIs(t, err, tt.err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, id)
		})
	}
}

func TestSelection_ExpiredList(t *testing.T) {
	var missing *dialog.Selection
	_, err := missing.Resolve("1")
	require.ErrorIs(t, err, dialog.ErrSelectionExpired)

	broken := &dialog.Selection{Candidates: map[string]int64{"2": 5}, Preview: []catalog.Book{book(5, "X", 1, 1)}}
	_, err = broken.Resolve("2")
	require.ErrorIs(t, err, dialog.ErrSelectionExpired)
}
