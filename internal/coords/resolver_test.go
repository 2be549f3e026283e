package coords

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harel-coffee/MTB-CNN-auto/internal/matrix"
)

func TestResolve(t *testing.T) {
	// Raw zero-based coordinates with 0 meaning "no base".
	raw, err := matrix.FromRows([][]float64{
		{1, 10},
		{0, 20},
		{3, 0},
	})
	require.NoError(t, err)

	got := Resolve(raw)

	require.True(t, raw.SameShape(got))

	assert.Equal(t, 2.0, got.At(0, 0))
	assert.Equal(t, 11.0, got.At(0, 1))
	assert.True(t, matrix.IsSentinel(got.At(1, 0)))
	assert.Equal(t, 21.0, got.At(1, 1))
	assert.Equal(t, 4.0, got.At(2, 0))
	assert.True(t, matrix.IsSentinel(got.At(2, 1)))
}

func TestResolve_PreservesInput(t *testing.T) {
	raw, err := matrix.FromRows([][]float64{{0, 5}})
	require.NoError(t, err)

	Resolve(raw)

	assert.Equal(t, 0.0, raw.At(0, 0))
	assert.Equal(t, 5.0, raw.At(0, 1))
}

func TestLengths(t *testing.T) {
	raw, err := matrix.FromRows([][]float64{
		{1, 10},
		{0, 20},
		{3, 0},
	})
	require.NoError(t, err)

	lengths := Lengths(Resolve(raw))

	assert.Equal(t, []int{2, 2}, lengths)
}

func TestLengths_AllPadding(t *testing.T) {
	raw, err := matrix.FromRows([][]float64{
		{0, 1},
		{0, 2},
	})
	require.NoError(t, err)

	lengths := Lengths(Resolve(raw))

	assert.Equal(t, []int{0, 2}, lengths)
}

func TestNameMatrix(t *testing.T) {
	names := NameMatrix([]string{"A", "B"}, 3)

	require.Len(t, names, 3)
	for i, row := range names {
		assert.Equal(t, []string{"A", "B"}, row, "row %d", i)
	}
}
