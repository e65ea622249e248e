package dataset

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strconv"

	"table-reconciler/core/reconcile"
)

const (
	// syntheticMaxID bounds generated ids so keys repeat.
	syntheticMaxID = 50
	// syntheticNameLen is the length of generated names.
	syntheticNameLen = 5
)

// SyntheticColumns is the schema of generated datasets.
var SyntheticColumns = []string{"id", "name", "flag"}

// SyntheticLoader generates random datasets. Identifiers look like
// "synthetic:<rows>?seed=<n>"; the default seed is 1.
type SyntheticLoader struct{}

// NewSyntheticLoader creates a synthetic data loader.
func NewSyntheticLoader() *SyntheticLoader {
	return &SyntheticLoader{}
}

// Name returns the scheme handled by the loader.
func (l *SyntheticLoader) Name() string {
	return "synthetic"
}

// Load generates the requested number of rows, capped by req.Limit.
func (l *SyntheticLoader) Load(ctx context.Context, req reconcile.LoadRequest) (*reconcile.Dataset, error) {
	src, err := ParseSource(req.Source)
	if err != nil {
		return nil, err
	}
	n, err := strconv.Atoi(src.Target)
	if err != nil || n < 0 {
		return nil, fmt.Errorf("%w: synthetic row count %q", ErrInvalidSource, src.Target)
	}
	seed, err := src.IntParam("seed", 1)
	if err != nil {
		return nil, err
	}
	if req.Limit > 0 && n > req.Limit {
		n = req.Limit
	}

	rng := newRand(seed)
	return reconcile.NewDataset(req.Source, req.Origin, SyntheticColumns, generateValues(rng, n))
}

// PairConfig configures GeneratePair.
type PairConfig struct {
	SourceRows      int
	DestinationRows int
	// Matches is the number of destination rows overwritten with a copy of a
	// random source row. The same row may be picked more than once.
	Matches int
	Seed    int64
}

// GeneratePair builds a source and destination dataset sharing planted matches.
// The result is deterministic for a given configuration.
func GeneratePair(cfg PairConfig) (*reconcile.Dataset, *reconcile.Dataset, error) {
	if cfg.SourceRows < 0 || cfg.DestinationRows < 0 || cfg.Matches < 0 {
		return nil, nil, fmt.Errorf("row and match counts must not be negative")
	}

	rng := newRand(cfg.Seed)
	srcValues := generateValues(rng, cfg.SourceRows)
	dstValues := generateValues(rng, cfg.DestinationRows)

	if len(srcValues) > 0 && len(dstValues) > 0 {
		for i := 0; i < cfg.Matches; i++ {
			d := rng.IntN(len(dstValues))
			s := rng.IntN(len(srcValues))
			dstValues[d] = append([]any(nil), srcValues[s]...)
		}
	}

	src, err := reconcile.NewDataset("synthetic-source", reconcile.OriginSource, SyntheticColumns, srcValues)
	if err != nil {
		return nil, nil, err
	}
	dst, err := reconcile.NewDataset("synthetic-destination", reconcile.OriginDestination, SyntheticColumns, dstValues)
	if err != nil {
		return nil, nil, err
	}
	return src, dst, nil
}

func newRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
}

func generateValues(rng *rand.Rand, n int) [][]any {
	values := make([][]any, n)
	for i := range values {
		values[i] = []any{
			int64(rng.IntN(syntheticMaxID) + 1),
			randomName(rng),
			rng.IntN(2) == 1,
		}
	}
	return values
}

func randomName(rng *rand.Rand) string {
	b := make([]byte, syntheticNameLen)
	for i := range b {
		b[i] = byte('A' + rng.IntN(26))
	}
	return string(b)
}
