// Package saliency maps per-position model attribution scores back to
// genomic coordinates and extracts the top-ranked positions per drug.
package saliency

// Record associates one flattened (locus, intra-locus position) cell
// with its saliency scores and resolved genomic coordinate.
type Record struct {
	ScoreMean float64 // mean saliency across isolates
	ScoreMax  float64 // max saliency across isolates
	AbsScore  float64 // |ScoreMax|, the ranking basis
	Position  float64 // one-based genomic coordinate; sentinel (NaN) for padding cells
	Locus     string  // locus name
}
