package saliency

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/harel-coffee/MTB-CNN-auto/internal/artifact"
	"github.com/harel-coffee/MTB-CNN-auto/internal/coords"
	"github.com/harel-coffee/MTB-CNN-auto/internal/matrix"
	"github.com/harel-coffee/MTB-CNN-auto/internal/panel"
)

// Sink receives the ranked hits for one drug.
type Sink interface {
	WriteHits(drug string, hits []Record) error
}

// Pipeline runs the per-drug saliency post-processing pass: load the
// drug's saliency matrices, flatten them against the shared coordinate
// matrix, rank by absolute score, and emit the top fraction.
type Pipeline struct {
	provider    artifact.Provider
	registry    *panel.Registry
	index       *panel.Index
	coordinates *matrix.Dense // resolved, read-only across drugs
	names       [][]string
	drugs       []string
	fraction    float64
	logger      *zap.Logger
}

// NewPipeline builds a pipeline from an artifact provider and panel
// configuration. The coordinate matrix is loaded and resolved once,
// and locus lengths are bound from it.
func NewPipeline(provider artifact.Provider, cfg panel.Config) (*Pipeline, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("panel config: %w", err)
	}

	registry, err := panel.NewRegistry(cfg.Loci)
	if err != nil {
		return nil, err
	}
	index, err := panel.NewIndex(registry, cfg.Drugs, cfg.DrugLoci)
	if err != nil {
		return nil, err
	}

	raw, err := provider.Coordinates()
	if err != nil {
		return nil, fmt.Errorf("load coordinates: %w", err)
	}
	if raw.Cols() != registry.Len() {
		return nil, fmt.Errorf("coordinates: %w: %d columns for %d loci",
			ErrShapeMismatch, raw.Cols(), registry.Len())
	}

	resolved := coords.Resolve(raw)
	if err := registry.SetLengths(coords.Lengths(resolved)); err != nil {
		return nil, err
	}

	return &Pipeline{
		provider:    provider,
		registry:    registry,
		index:       index,
		coordinates: resolved,
		names:       coords.NameMatrix(cfg.Loci, resolved.Rows()),
		drugs:       append([]string(nil), cfg.Drugs...),
		fraction:    cfg.TopFraction,
		logger:      zap.NewNop(),
	}, nil
}

// SetLogger sets the logger for progress and skip messages.
func (p *Pipeline) SetLogger(l *zap.Logger) {
	p.logger = l
}

// Registry returns the locus registry with bound lengths.
func (p *Pipeline) Registry() *panel.Registry {
	return p.registry
}

// Index returns the drug-to-loci index.
func (p *Pipeline) Index() *panel.Index {
	return p.index
}

// Drugs returns the configured drug panel in order.
func (p *Pipeline) Drugs() []string {
	out := make([]string, len(p.drugs))
	copy(out, p.drugs)
	return out
}

// Fraction returns the configured top fraction.
func (p *Pipeline) Fraction() float64 {
	return p.fraction
}

// ExtractDrug runs the full build-and-rank pass for a single drug.
func (p *Pipeline) ExtractDrug(drug string) ([]Record, error) {
	mean, max, err := p.provider.Saliency(drug)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", drug, err)
	}

	records, err := Build(drug, mean, max, p.coordinates, p.names)
	if err != nil {
		return nil, err
	}

	hits, err := TopHits(records, p.fraction)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", drug, err)
	}
	return hits, nil
}

// Run processes every configured drug and writes each drug's hits to
// the sink. A drug that fails (missing artifact, shape mismatch) is
// logged and skipped; the remaining drugs still run. Sink write errors
// abort the run. If workers is 0, runtime.NumCPU() is used.
func (p *Pipeline) Run(sink Sink, workers int) error {
	items := make(chan WorkItem, len(p.drugs))
	go func() {
		defer close(items)
		for seq, drug := range p.drugs {
			items <- WorkItem{Seq: seq, Drug: drug}
		}
	}()

	results := p.ParallelExtract(items, workers)

	return OrderedCollect(results, func(r WorkResult) error {
		if r.Err != nil {
			p.logger.Warn("skipping drug",
				zap.String("drug", r.Drug),
				zap.Error(r.Err))
			return nil
		}
		if err := sink.WriteHits(r.Drug, r.Hits); err != nil {
			return fmt.Errorf("write hits for %s: %w", r.Drug, err)
		}
		p.logger.Info("extracted top hits",
			zap.String("drug", r.Drug),
			zap.Int("hits", len(r.Hits)))
		return nil
	})
}
