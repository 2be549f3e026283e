// Package panel defines the locus and drug panels for the MD-CNN
// resistance model and the static lookup structures built from them.
package panel

import (
	"errors"
	"fmt"
)

// Error kinds for panel lookups.
var (
	ErrUnknownLocus = errors.New("unknown locus")
	ErrUnknownDrug  = errors.New("unknown drug")
)

// DefaultLoci is the fixed locus order of the model input matrix.
// Column j of every coordinate and saliency matrix corresponds to
// DefaultLoci[j].
var DefaultLoci = []string{
	"acpM-kasA",
	"gid",
	"rpsA",
	"clpC",
	"embCAB",
	"aftB-ubiA",
	"rrs-rrl",
	"ethAR",
	"oxyR-ahpC",
	"tlyA",
	"KatG",
	"rpsL",
	"rpoBC",
	"FabG1-inhA",
	"eis",
	"gyrBA",
	"panD",
	"pncA",
}

// DefaultDrugs is the fixed drug panel order.
var DefaultDrugs = []string{
	"RIFAMPICIN",
	"ISONIAZID",
	"PYRAZINAMIDE",
	"ETHAMBUTOL",
	"STREPTOMYCIN",
	"LEVOFLOXACIN",
	"CAPREOMYCIN",
	"AMIKACIN",
	"MOXIFLOXACIN",
	"OFLOXACIN",
	"KANAMYCIN",
	"ETHIONAMIDE",
	"CIPROFLOXACIN",
}

// DefaultDrugLoci maps each drug to the loci known to confer resistance
// when mutated. The map documents biological relevance only: the
// flattened saliency table for a drug always spans all loci, whether or
// not they appear here.
var DefaultDrugLoci = map[string][]string{
	"RIFAMPICIN":    {"rpoBC"},
	"ISONIAZID":     {"KatG", "FabG1-inhA", "oxyR-ahpC", "acpM-kasA"},
	"PYRAZINAMIDE":  {"pncA", "panD", "rpsA", "clpC"},
	"ETHAMBUTOL":    {"embCAB", "aftB-ubiA"},
	"STREPTOMYCIN":  {"rpsL", "rrs-rrl", "gid"},
	"LEVOFLOXACIN":  {"gyrBA"},
	"CAPREOMYCIN":   {"rrs-rrl", "tlyA"},
	"AMIKACIN":      {"rrs-rrl", "eis"},
	"MOXIFLOXACIN":  {"gyrBA"},
	"OFLOXACIN":     {"gyrBA"},
	"KANAMYCIN":     {"rrs-rrl", "eis"},
	"ETHIONAMIDE":   {"ethAR", "FabG1-inhA"},
	"CIPROFLOXACIN": {"gyrBA"},
}

// Locus is a named genomic region tracked as one matrix column.
type Locus struct {
	Name   string
	Column int // column index in the shared matrix layout
	Length int // valid (non-padding) positions; 0 until bound
}

// Registry maps locus names to their matrix columns and lengths.
// It is immutable after construction except for SetLengths, which is
// called once at startup with lengths computed from the resolved
// coordinate matrix.
type Registry struct {
	order []string
	loci  map[string]*Locus
}

// NewRegistry builds a registry from an ordered list of locus names.
func NewRegistry(names []string) (*Registry, error) {
	r := &Registry{
		order: make([]string, len(names)),
		loci:  make(map[string]*Locus, len(names)),
	}
	copy(r.order, names)
	for j, name := range names {
		if _, dup := r.loci[name]; dup {
			return nil, fmt.Errorf("duplicate locus %q", name)
		}
		r.loci[name] = &Locus{Name: name, Column: j}
	}
	return r, nil
}

// Lookup returns the locus with the given name.
func (r *Registry) Lookup(name string) (*Locus, error) {
	l, ok := r.loci[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLocus, name)
	}
	return l, nil
}

// Names returns the locus names in column order.
func (r *Registry) Names() []string {
	out := make([]string, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of loci.
func (r *Registry) Len() int {
	return len(r.order)
}

// SetLengths binds per-locus lengths, one per column in order.
func (r *Registry) SetLengths(lengths []int) error {
	if len(lengths) != len(r.order) {
		return fmt.Errorf("got %d lengths for %d loci", len(lengths), len(r.order))
	}
	for j, name := range r.order {
		r.loci[name].Length = lengths[j]
	}
	return nil
}

// Index maps each drug to its biologically associated loci.
type Index struct {
	order []string
	loci  map[string][]string
}

// NewIndex builds a drug index, validating every referenced locus
// against the registry.
func NewIndex(r *Registry, drugs []string, drugLoci map[string][]string) (*Index, error) {
	idx := &Index{
		order: make([]string, len(drugs)),
		loci:  make(map[string][]string, len(drugs)),
	}
	copy(idx.order, drugs)
	for _, drug := range drugs {
		associated := drugLoci[drug]
		for _, name := range associated {
			if _, err := r.Lookup(name); err != nil {
				return nil, fmt.Errorf("drug %s: %w", drug, err)
			}
		}
		idx.loci[drug] = append([]string(nil), associated...)
	}
	return idx, nil
}

// LociFor returns the loci associated with a drug, in panel order.
func (idx *Index) LociFor(drug string) ([]string, error) {
	loci, ok := idx.loci[drug]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownDrug, drug)
	}
	return append([]string(nil), loci...), nil
}

// Drugs returns the drug names in panel order.
func (idx *Index) Drugs() []string {
	out := make([]string, len(idx.order))
	copy(out, idx.order)
	return out
}
