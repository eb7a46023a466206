package textnorm_test

import (
	"testing"

	"bookstore/internal/pkg/textnorm"

	"github.com/stretchr/testify/assert"
)

func TestFold(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Đắc Nhân Tâm", "dac nhan tam"},
		{"  Nhà Giả Kim  ", "nha gia kim"},
		{"SAPIENS", "sapiens"},
		{"Tuổi trẻ đáng giá bao nhiêu", "tuoi tre dang gia bao nhieu"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, textnorm.Fold(tt.in))
		})
	}
}

func TestContains(t *testing.T) {
	assert.True(t, textnorm.Contains("Đắc Nhân Tâm", "dac nhan"))
	assert.True(t, textnorm.Contains("Kỹ năng sống", "KỸ NĂNG"))
	assert.False(t, textnorm.Contains("Sapiens", "nhà giả kim"))
	assert.False(t, textnorm.Contains("Sapiens", "   "))
}

func TestContainsAny(t *testing.T) {
	assert.True(t, textnorm.ContainsAny("Thôi, HỦY đơn đi", "hủy"))
	assert.True(t, textnorm.ContainsAny("ok bye", "stop", "bye"))
	assert.False(t, textnorm.ContainsAny("huy", "hủy"))
}
