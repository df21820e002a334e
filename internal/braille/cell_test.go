package braille

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCell(t *testing.T) {
	tests := []struct {
		cell rune
		want []int
	}{
		{cell: '⠀', want: []int{}},
		{cell: '⠁', want: []int{1}},
		{cell: '⠃', want: []int{1, 2}},
		{cell: '⠩', want: []int{1, 4, 6}},
		{cell: '⠿', want: []int{1, 2, 3, 4, 5, 6}},
		{cell: '⣿', want: []int{1, 2, 3, 4, 5, 6}},
		{cell: '⡁', want: []int{1}},
	}

	for _, tt := range tests {
		t.Run(string(tt.cell), func(t *testing.T) {
			assert.Equal(t, tt.want, DecodeCell(tt.cell).Dots())
		})
	}
}

func TestEncodeCell(t *testing.T) {
	r, err := EncodeCell(1, 4, 6)
	require.NoError(t, err)
	assert.Equal(t, '⠩', r)

	r, err = EncodeCell()
	require.NoError(t, err)
	assert.Equal(t, '⠀', r)

	_, err = EncodeCell(1, 8)
	assert.ErrorIs(t, err, ErrInvalidDot)
}

func TestCellRoundTrip(t *testing.T) {
	for b := 0; b < 64; b++ {
		s := FromBits(uint8(b))
		r, err := EncodeCell(s.Dots()...)
		require.NoError(t, err)
		assert.Equal(t, s, DecodeCell(r), "bits %06b", b)
	}
}

func TestPattern(t *testing.T) {
	assert.Equal(t, "⠁⠃", Pattern("a⠁ -⠃!"))
	assert.Equal(t, "", Pattern("hello"))
	assert.Equal(t, []rune{'⠁', '⠃'}, Cells("⠁x⠃"))
	assert.True(t, ContainsCells("x⠁"))
	assert.False(t, ContainsCells("abc"))
}

func TestIsCell(t *testing.T) {
	assert.True(t, IsCell(CellBlockStart))
	assert.True(t, IsCell(CellBlockEnd))
	assert.False(t, IsCell('a'))
	assert.False(t, IsCell(CellBlockEnd+1))
}

func TestEncodeText(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    string
		wantErr bool
	}{
		{"single cell", "146", "⠩", false},
		{"dashed cells", "1-4-6 1", "⠩⠁", false},
		{"two words", "146 1 / 13", "⠩⠁ ⠅", false},
		{"empty words dropped", " / 1 / ", "⠁", false},
		{"blank", "", "", false},
		{"invalid dot", "17", "", true},
		{"junk", "1x", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := EncodeText(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
