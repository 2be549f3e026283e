package matrix

import (
	"fmt"
	"os"

	"github.com/kshedden/gonpy"
)

// ReadNpy reads a 2-D float64 NumPy array from path.
// Both C-order and Fortran-order files are accepted; the result is
// always row-major.
func ReadNpy(path string) (*Dense, error) {
	r, err := gonpy.NewFileReader(path)
	if err != nil {
		return nil, fmt.Errorf("open npy %s: %w", path, err)
	}
	if len(r.Shape) != 2 {
		return nil, fmt.Errorf("npy %s: want 2 dimensions, got %d", path, len(r.Shape))
	}

	data, err := r.GetFloat64()
	if err != nil {
		return nil, fmt.Errorf("read npy %s (dtype must be float64): %w", path, err)
	}

	rows, cols := r.Shape[0], r.Shape[1]
	m := New(rows, cols)
	if r.ColumnMajor {
		for j := 0; j < cols; j++ {
			for i := 0; i < rows; i++ {
				m.Set(i, j, data[j*rows+i])
			}
		}
	} else {
		copy(m.data, data)
	}
	return m, nil
}

// WriteNpy writes m to path as a C-order float64 NumPy array.
func WriteNpy(path string, m *Dense) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create npy %s: %w", path, err)
	}
	defer f.Close()

	w, err := gonpy.NewWriter(f)
	if err != nil {
		return fmt.Errorf("write npy %s: %w", path, err)
	}
	w.Shape = []int{m.rows, m.cols}
	if err := w.WriteFloat64(m.data); err != nil {
		return fmt.Errorf("write npy %s: %w", path, err)
	}
	return nil
}
