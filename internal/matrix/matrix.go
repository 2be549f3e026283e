// Package matrix provides dense 2-D float64 matrices and NumPy .npy I/O.
package matrix

import (
	"fmt"
	"math"
)

// Dense is a row-major 2-D float64 matrix.
type Dense struct {
	rows, cols int
	data       []float64
}

// New creates a rows x cols matrix with all cells zero.
func New(rows, cols int) *Dense {
	return &Dense{
		rows: rows,
		cols: cols,
		data: make([]float64, rows*cols),
	}
}

// FromRows creates a matrix from a slice of equal-length rows.
func FromRows(rows [][]float64) (*Dense, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("matrix: no rows")
	}
	cols := len(rows[0])
	m := New(len(rows), cols)
	for i, row := range rows {
		if len(row) != cols {
			return nil, fmt.Errorf("matrix: row %d has %d columns, want %d", i, len(row), cols)
		}
		copy(m.data[i*cols:(i+1)*cols], row)
	}
	return m, nil
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.cols }

// At returns the cell at row i, column j.
func (m *Dense) At(i, j int) float64 {
	return m.data[i*m.cols+j]
}

// Set assigns the cell at row i, column j.
func (m *Dense) Set(i, j int, v float64) {
	m.data[i*m.cols+j] = v
}

// SameShape reports whether m and o have identical dimensions.
func (m *Dense) SameShape(o *Dense) bool {
	return m.rows == o.rows && m.cols == o.cols
}

// Clone returns a deep copy of m.
func (m *Dense) Clone() *Dense {
	c := New(m.rows, m.cols)
	copy(c.data, m.data)
	return c
}

// Sentinel returns the missing-value marker used for padding cells.
func Sentinel() float64 {
	return math.NaN()
}

// IsSentinel reports whether v is the missing-value marker.
func IsSentinel(v float64) bool {
	return math.IsNaN(v)
}
