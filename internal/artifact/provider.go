// Package artifact resolves the model output artifacts consumed by the
// saliency pipeline, decoupling the core logic from storage layout.
package artifact

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/harel-coffee/MTB-CNN-auto/internal/matrix"
)

// ErrMissingArtifact indicates an expected input file is absent.
var ErrMissingArtifact = errors.New("missing artifact")

// Provider resolves input matrices for the pipeline.
type Provider interface {
	// Coordinates returns the raw coordinate matrix shared by all drugs.
	Coordinates() (*matrix.Dense, error)
	// Saliency returns the mean and max saliency matrices for a drug.
	Saliency(drug string) (mean, max *matrix.Dense, err error)
}

// CoordinateFile is the default coordinate matrix filename.
const CoordinateFile = "coordinates.npy"

// Dir reads artifacts from a flat directory of .npy files laid out as
// the explanation stage writes them: coordinates.npy plus
// <DRUG>_mean.npy and <DRUG>_max.npy per drug.
type Dir struct {
	root string
}

// NewDir creates a provider rooted at the given directory.
func NewDir(root string) *Dir {
	return &Dir{root: root}
}

// Coordinates loads the shared coordinate matrix.
func (d *Dir) Coordinates() (*matrix.Dense, error) {
	return d.load(CoordinateFile)
}

// Saliency loads the mean and max saliency matrices for a drug.
func (d *Dir) Saliency(drug string) (*matrix.Dense, *matrix.Dense, error) {
	mean, err := d.load(drug + "_mean.npy")
	if err != nil {
		return nil, nil, err
	}
	max, err := d.load(drug + "_max.npy")
	if err != nil {
		return nil, nil, err
	}
	return mean, max, nil
}

func (d *Dir) load(name string) (*matrix.Dense, error) {
	path := filepath.Join(d.root, name)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, fmt.Errorf("%w: %s", ErrMissingArtifact, path)
	}
	return matrix.ReadNpy(path)
}
