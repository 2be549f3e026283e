// Package coords resolves raw model-input coordinate matrices into
// one-based genomic coordinates.
package coords

import (
	"github.com/harel-coffee/MTB-CNN-auto/internal/matrix"
)

// Resolve converts a raw coordinate matrix into one-based genomic
// coordinates. Raw cells hold zero-based genomic offsets, with literal
// zero meaning "no base at this slot" (padding beyond the locus end).
//
// Zero cells become the sentinel before the shift, and the sentinel is
// immune to the +1 (NaN + 1 = NaN), so padding cells stay marked as
// missing in the output. Output shape equals input shape.
func Resolve(raw *matrix.Dense) *matrix.Dense {
	out := matrix.New(raw.Rows(), raw.Cols())
	for i := 0; i < raw.Rows(); i++ {
		for j := 0; j < raw.Cols(); j++ {
			v := raw.At(i, j)
			if v == 0 {
				v = matrix.Sentinel()
			}
			out.Set(i, j, v+1)
		}
	}
	return out
}

// Lengths returns the number of non-sentinel cells in each column of a
// resolved coordinate matrix, i.e. the true length of each locus.
func Lengths(m *matrix.Dense) []int {
	lengths := make([]int, m.Cols())
	for j := 0; j < m.Cols(); j++ {
		n := 0
		for i := 0; i < m.Rows(); i++ {
			if !matrix.IsSentinel(m.At(i, j)) {
				n++
			}
		}
		lengths[j] = n
	}
	return lengths
}

// NameMatrix returns a rows x len(loci) matrix of locus names, each
// column filled with its locus name. It mirrors the layout of the
// coordinate matrix so the two flatten identically.
func NameMatrix(loci []string, rows int) [][]string {
	names := make([][]string, rows)
	for i := range names {
		names[i] = make([]string, len(loci))
		copy(names[i], loci)
	}
	return names
}
