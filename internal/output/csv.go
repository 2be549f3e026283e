// Package output provides top-hit table writers.
package output

import (
	"bufio"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/harel-coffee/MTB-CNN-auto/internal/matrix"
	"github.com/harel-coffee/MTB-CNN-auto/internal/saliency"
)

// HitWriter defines the interface for writing ranked hits.
type HitWriter interface {
	WriteHeader() error
	Write(hit saliency.Record) error
	Flush() error
}

// CSVWriter writes hits in the reference comma-separated layout.
type CSVWriter struct {
	w       *bufio.Writer
	columns []string
}

// NewCSVWriter creates a new CSV hit writer.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{
		w: bufio.NewWriter(w),
		columns: []string{
			"score_mean",
			"score_max",
			"position",
			"locus",
			"abs_score",
		},
	}
}

// WriteHeader writes the header line.
func (cw *CSVWriter) WriteHeader() error {
	_, err := cw.w.WriteString(strings.Join(cw.columns, ",") + "\n")
	return err
}

// Write writes a single hit row.
func (cw *CSVWriter) Write(hit saliency.Record) error {
	fields := []string{
		formatScore(hit.ScoreMean),
		formatScore(hit.ScoreMax),
		formatPosition(hit.Position),
		hit.Locus,
		formatScore(hit.AbsScore),
	}
	_, err := cw.w.WriteString(strings.Join(fields, ",") + "\n")
	return err
}

// Flush flushes buffered output.
func (cw *CSVWriter) Flush() error {
	return cw.w.Flush()
}

func formatScore(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// formatPosition renders a genomic coordinate. Padding cells carry the
// sentinel and render empty, matching the reference artifacts.
func formatPosition(v float64) string {
	if matrix.IsSentinel(v) {
		return ""
	}
	if v == math.Trunc(v) {
		return strconv.FormatInt(int64(v), 10)
	}
	return strconv.FormatFloat(v, 'g', -1, 64)
}
