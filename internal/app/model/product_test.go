package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParsePrice(t *testing.T) {
	tests := []struct {
		in   string
		want int64
	}{
		{"₩45,000", 45000},
		{"₩350,000", 350000},
		{"45000원", 45000},
		{"시가", 0},
		{"", 0},
		{"₩99,999,999,999,999,999,999", 0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParsePrice(tt.in), tt.in)
	}
}

func TestFormatWon(t *testing.T) {
	assert.Equal(t, "₩125,000", FormatWon(125000))
	assert.Equal(t, "₩3,500", FormatWon(3500))
	assert.Equal(t, "₩0", FormatWon(0))
}

func TestParseBeefCut(t *testing.T) {
	cut, ok := ParseBeefCut("mungtigi")
	assert.True(t, ok)
	assert.Equal(t, CutMungtigi, cut)

	cut, ok = ParseBeefCut("Assorted Grilled Platter (Modem-Gui)")
	assert.True(t, ok)
	assert.Equal(t, CutPlatter, cut)
	assert.Equal(t, "PLATTER", cut.Code())

	_, ok = ParseBeefCut("Tenderloin")
	assert.False(t, ok)
}

func TestProductCategory(t *testing.T) {
	assert.Equal(t, "예단/선물세트", CategoryCeremonial.Label())
	assert.True(t, CategoryAll.IsValid())
	assert.False(t, ProductCategory("fish").IsValid())
	assert.Len(t, Categories(), 4)
}
