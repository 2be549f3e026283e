package output

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/harel-coffee/MTB-CNN-auto/internal/saliency"
)

// ArtifactName returns the deterministic per-drug artifact filename,
// e.g. MD-CNN_RIFAMPICIN_top_0p01_hits.csv.
func ArtifactName(drug string, fraction float64) string {
	frac := strings.ReplaceAll(strconv.FormatFloat(fraction, 'g', -1, 64), ".", "p")
	return "MD-CNN_" + drug + "_top_" + frac + "_hits.csv"
}

// DirSink writes one CSV artifact per drug into a directory,
// overwriting any prior artifact of the same name.
type DirSink struct {
	dir      string
	fraction float64
}

// NewDirSink creates a sink writing into dir, creating it if needed.
func NewDirSink(dir string, fraction float64) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}
	return &DirSink{dir: dir, fraction: fraction}, nil
}

// WriteHits writes the ranked hits for one drug.
func (s *DirSink) WriteHits(drug string, hits []saliency.Record) error {
	path := filepath.Join(s.dir, ArtifactName(drug, s.fraction))
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	w := NewCSVWriter(f)
	if err := w.WriteHeader(); err != nil {
		return err
	}
	for _, hit := range hits {
		if err := w.Write(hit); err != nil {
			return err
		}
	}
	return w.Flush()
}

// MultiSink fans hits out to several sinks in order.
type MultiSink []saliency.Sink

// WriteHits writes to every sink, stopping at the first error.
func (m MultiSink) WriteHits(drug string, hits []saliency.Record) error {
	for _, s := range m {
		if err := s.WriteHits(drug, hits); err != nil {
			return err
		}
	}
	return nil
}
