package saliency

import (
	"errors"
	"sort"
)

// ErrEmptyInput indicates an empty record set passed to TopHits.
var ErrEmptyInput = errors.New("empty input")

// TopHits returns the top fraction of records ranked by AbsScore
// descending. Records with equal AbsScore keep their original relative
// order. The cutoff is floor(len(records) * fraction), so a very small
// input yields an empty (non-nil-error) result.
func TopHits(records []Record, fraction float64) ([]Record, error) {
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	ranked := append([]Record(nil), records...)
	sort.SliceStable(ranked, func(a, b int) bool {
		return ranked[a].AbsScore > ranked[b].AbsScore
	})

	n := int(float64(len(ranked)) * fraction)
	if n > len(ranked) {
		n = len(ranked)
	}
	return ranked[:n], nil
}
