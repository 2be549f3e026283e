package saliency

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harel-coffee/MTB-CNN-auto/internal/artifact"
	"github.com/harel-coffee/MTB-CNN-auto/internal/matrix"
	"github.com/harel-coffee/MTB-CNN-auto/internal/panel"
)

// fakeProvider serves in-memory matrices in place of .npy artifacts.
type fakeProvider struct {
	coordinates *matrix.Dense
	mean        map[string]*matrix.Dense
	max         map[string]*matrix.Dense
}

func (f *fakeProvider) Coordinates() (*matrix.Dense, error) {
	if f.coordinates == nil {
		return nil, fmt.Errorf("%w: coordinates", artifact.ErrMissingArtifact)
	}
	return f.coordinates, nil
}

func (f *fakeProvider) Saliency(drug string) (*matrix.Dense, *matrix.Dense, error) {
	mean, ok := f.mean[drug]
	if !ok {
		return nil, nil, fmt.Errorf("%w: %s_mean", artifact.ErrMissingArtifact, drug)
	}
	return mean, f.max[drug], nil
}

// captureSink records hits per drug in arrival order.
type captureSink struct {
	order []string
	hits  map[string][]Record
}

func newCaptureSink() *captureSink {
	return &captureSink{hits: make(map[string][]Record)}
}

func (s *captureSink) WriteHits(drug string, hits []Record) error {
	s.order = append(s.order, drug)
	s.hits[drug] = hits
	return nil
}

func testConfig(drugs ...string) panel.Config {
	return panel.Config{
		Loci:        []string{"A", "B"},
		Drugs:       drugs,
		DrugLoci:    map[string][]string{},
		TopFraction: 0.5,
	}
}

func testProvider(drugs ...string) *fakeProvider {
	coordinates, _ := matrix.FromRows([][]float64{
		{1, 10},
		{0, 20},
		{3, 0},
	})
	p := &fakeProvider{
		coordinates: coordinates,
		mean:        make(map[string]*matrix.Dense),
		max:         make(map[string]*matrix.Dense),
	}
	for i, drug := range drugs {
		base := float64(i + 1)
		mean, _ := matrix.FromRows([][]float64{
			{0.1 * base, 0.4 * base},
			{0.2 * base, 0.5 * base},
			{0.3 * base, 0.6 * base},
		})
		max, _ := matrix.FromRows([][]float64{
			{0.15 * base, -0.45 * base},
			{0.25 * base, 0.55 * base},
			{0.35 * base, 0.65 * base},
		})
		p.mean[drug] = mean
		p.max[drug] = max
	}
	return p
}

func TestNewPipeline_BindsLengths(t *testing.T) {
	p, err := NewPipeline(testProvider("DRUG1"), testConfig("DRUG1"))
	require.NoError(t, err)

	a, err := p.Registry().Lookup("A")
	require.NoError(t, err)
	assert.Equal(t, 2, a.Length)

	b, err := p.Registry().Lookup("B")
	require.NoError(t, err)
	assert.Equal(t, 2, b.Length)
}

func TestNewPipeline_ColumnCountMismatch(t *testing.T) {
	provider := testProvider("DRUG1")
	cfg := testConfig("DRUG1")
	cfg.Loci = []string{"A", "B", "C"}

	_, err := NewPipeline(provider, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrShapeMismatch)
}

func TestNewPipeline_MissingCoordinates(t *testing.T) {
	provider := testProvider("DRUG1")
	provider.coordinates = nil

	_, err := NewPipeline(provider, testConfig("DRUG1"))
	require.Error(t, err)
	assert.ErrorIs(t, err, artifact.ErrMissingArtifact)
}

func TestExtractDrug(t *testing.T) {
	p, err := NewPipeline(testProvider("DRUG1"), testConfig("DRUG1"))
	require.NoError(t, err)

	hits, err := p.ExtractDrug("DRUG1")
	require.NoError(t, err)

	// 6 records, fraction 0.5 -> 3 hits, ranked by |max| descending:
	// 0.65 (B row 2, padding), 0.55 (B row 1), -0.45 (B row 0).
	require.Len(t, hits, 3)
	assert.Equal(t, 0.65, hits[0].AbsScore)
	assert.Equal(t, "B", hits[0].Locus)
	assert.True(t, matrix.IsSentinel(hits[0].Position))
	assert.Equal(t, 0.55, hits[1].AbsScore)
	assert.Equal(t, 21.0, hits[1].Position)
	assert.Equal(t, 0.45, hits[2].AbsScore)
	assert.Equal(t, -0.45, hits[2].ScoreMax)
}

func TestExtractDrug_MissingArtifact(t *testing.T) {
	p, err := NewPipeline(testProvider("DRUG1"), testConfig("DRUG1", "DRUG2"))
	require.NoError(t, err)

	_, err = p.ExtractDrug("DRUG2")
	require.Error(t, err)
	assert.ErrorIs(t, err, artifact.ErrMissingArtifact)
}

func TestRun_AllDrugs(t *testing.T) {
	p, err := NewPipeline(testProvider("DRUG1", "DRUG2"), testConfig("DRUG1", "DRUG2"))
	require.NoError(t, err)

	sink := newCaptureSink()
	require.NoError(t, p.Run(sink, 1))

	assert.Equal(t, []string{"DRUG1", "DRUG2"}, sink.order)
	assert.Len(t, sink.hits["DRUG1"], 3)
	assert.Len(t, sink.hits["DRUG2"], 3)
}

func TestRun_SkipsFailingDrug(t *testing.T) {
	// DRUG2 has no saliency matrices: it is skipped, the others run.
	p, err := NewPipeline(testProvider("DRUG1", "DRUG3"), testConfig("DRUG1", "DRUG2", "DRUG3"))
	require.NoError(t, err)

	sink := newCaptureSink()
	require.NoError(t, p.Run(sink, 1))

	assert.Equal(t, []string{"DRUG1", "DRUG3"}, sink.order)
}

func TestRun_ParallelKeepsPanelOrder(t *testing.T) {
	drugs := make([]string, 8)
	for i := range drugs {
		drugs[i] = fmt.Sprintf("DRUG%d", i)
	}

	p, err := NewPipeline(testProvider(drugs...), testConfig(drugs...))
	require.NoError(t, err)

	sink := newCaptureSink()
	require.NoError(t, p.Run(sink, 4))

	assert.Equal(t, drugs, sink.order)
}

func TestOrderedCollect(t *testing.T) {
	results := make(chan WorkResult, 3)
	results <- WorkResult{Seq: 2, Drug: "C"}
	results <- WorkResult{Seq: 0, Drug: "A"}
	results <- WorkResult{Seq: 1, Drug: "B"}
	close(results)

	var order []string
	err := OrderedCollect(results, func(r WorkResult) error {
		order = append(order, r.Drug)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, order)
}
