package saliency

import (
	"errors"
	"fmt"
	"math"

	"github.com/harel-coffee/MTB-CNN-auto/internal/matrix"
)

// ErrShapeMismatch indicates input matrices that disagree in shape.
var ErrShapeMismatch = errors.New("shape mismatch")

// Build flattens the mean and max saliency matrices for one drug into
// a table of Records, aligning each cell with its resolved genomic
// coordinate and locus name. All four inputs must share the same
// (positions, loci) shape.
//
// The flatten order is column-major (locus by locus), applied
// identically to every input so record fields stay aligned. AbsScore
// is |ScoreMax|: ranking is by the strongest single-isolate
// attribution, not the mean.
//
// Padding cells beyond a locus's true length are not filtered here:
// they carry a sentinel Position but real score values, matching the
// reference pipeline, and can surface in the top hits.
func Build(drug string, mean, max, coordinates *matrix.Dense, names [][]string) ([]Record, error) {
	if !mean.SameShape(max) || !mean.SameShape(coordinates) {
		return nil, fmt.Errorf("%s: %w: mean %dx%d, max %dx%d, coordinates %dx%d",
			drug, ErrShapeMismatch,
			mean.Rows(), mean.Cols(), max.Rows(), max.Cols(),
			coordinates.Rows(), coordinates.Cols())
	}
	if len(names) != mean.Rows() {
		return nil, fmt.Errorf("%s: %w: name matrix has %d rows, want %d",
			drug, ErrShapeMismatch, len(names), mean.Rows())
	}
	for i, row := range names {
		if len(row) != mean.Cols() {
			return nil, fmt.Errorf("%s: %w: name matrix row %d has %d columns, want %d",
				drug, ErrShapeMismatch, i, len(row), mean.Cols())
		}
	}

	records := make([]Record, 0, mean.Rows()*mean.Cols())
	for j := 0; j < mean.Cols(); j++ {
		for i := 0; i < mean.Rows(); i++ {
			maxv := max.At(i, j)
			records = append(records, Record{
				ScoreMean: mean.At(i, j),
				ScoreMax:  maxv,
				AbsScore:  math.Abs(maxv),
				Position:  coordinates.At(i, j),
				Locus:     names[i][j],
			})
		}
	}
	return records, nil
}
