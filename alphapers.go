package alphapers

import (
	"context"
	"fmt"
	"math"
	"runtime"

	"go.uber.org/zap"
)

// Algorithm selects the boundary matrix reduction strategy.
type Algorithm string

const (
	AlgorithmTwist          Algorithm = "twist"
	AlgorithmStandard       Algorithm = "standard"
	AlgorithmTwistUnionFind Algorithm = "twist_unionfind"
)

// Representation selects how reduction columns are stored.
type Representation string

const (
	RepresentationAuto   Representation = "auto"
	RepresentationVector Representation = "vector"
	RepresentationBitmap Representation = "bitmap"
)

// Config controls the persistence computation.
// Start with [DefaultConfig] and override the fields you need.
type Config struct {
	// Algorithm is the reduction strategy. "twist" clears columns that are
	// known to be births. "standard" is the plain left-to-right reduction.
	// "twist_unionfind" pairs edges with a union-find sweep and runs twist
	// on the higher dimensions. All produce the same pairs.
	// Default: "twist".
	Algorithm Algorithm

	// Representation is the storage of working columns. "vector" keeps
	// sorted index slices, "bitmap" keeps roaring bitmaps, "auto" picks by
	// matrix size. Default: "auto".
	Representation Representation

	// Workers bounds the goroutines used to compute the orthospheres of the
	// alpha complex's simplices and, in ComputeBatch, the number of clouds
	// processed at once. 0 means runtime.NumCPU(). Default: 0 (auto).
	Workers int

	// Tolerance is the relative slack of the power-distance comparisons in
	// BuildAlphaComplex, scaled by the extent of the cloud. 0 compares
	// exactly. Must be >= 0. Default: 1e-9.
	Tolerance float64

	// Logger receives debug output about each stage. Default: a no-op
	// logger.
	Logger *zap.Logger
}

// Result contains the output of a persistence computation.
type Result struct {
	// Diagrams holds the finite intervals of dimension 0, 1 and 2 with
	// zero-persistence intervals removed.
	Diagrams Diagrams

	// Filtration is the ordered cell sequence the pairs index into.
	Filtration []Entry

	// Pairs are the finite persistence pairs, including zero-persistence
	// ones, ordered by birth index.
	Pairs []Pair
}

// DefaultConfig returns a Config with reasonable defaults.
func DefaultConfig() Config {
	return Config{
		Algorithm:      AlgorithmTwist,
		Representation: RepresentationAuto,
		Tolerance:      1e-9,
	}
}

// validateConfig checks that cfg fields are valid and returns a descriptive error if not.
func validateConfig(cfg *Config) error {
	switch cfg.Algorithm {
	case AlgorithmTwist, AlgorithmStandard, AlgorithmTwistUnionFind:
	default:
		return fmt.Errorf("alphapers: invalid Algorithm %q", cfg.Algorithm)
	}
	switch cfg.Representation {
	case RepresentationAuto, RepresentationVector, RepresentationBitmap:
	default:
		return fmt.Errorf("alphapers: invalid Representation %q", cfg.Representation)
	}
	if cfg.Workers < 0 {
		return fmt.Errorf("alphapers: Workers must be >= 0 (0 means NumCPU), got %d", cfg.Workers)
	}
	if cfg.Tolerance < 0 || math.IsNaN(cfg.Tolerance) || math.IsInf(cfg.Tolerance, 0) {
		return fmt.Errorf("alphapers: Tolerance must be a finite value >= 0, got %v", cfg.Tolerance)
	}
	return nil
}

// applyDefaults fills in zero-valued config fields with their defaults.
func applyDefaults(cfg *Config) {
	if cfg.Algorithm == "" {
		cfg.Algorithm = AlgorithmTwist
	}
	if cfg.Representation == "" {
		cfg.Representation = RepresentationAuto
	}
	if cfg.Workers == 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
}

// Compute builds the weighted alpha complex of the atoms and returns its
// persistence diagrams. Returns an error if the config or the atoms are
// invalid; no partial result is returned.
func Compute(atoms []Atom, cfg Config) (*Result, error) {
	return ComputeContext(context.Background(), atoms, cfg)
}

// ComputeContext is like Compute but stops building the alpha complex and
// returns ctx.Err() once ctx is done.
func ComputeContext(ctx context.Context, atoms []Atom, cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}

	ac, err := buildAlphaComplex(ctx, atoms, cfg)
	if err != nil {
		return nil, err
	}
	return computeComplex(ac.Complex, cfg)
}

// ComputeComplex returns the persistence diagrams of an already weighted
// cell complex. The complex must satisfy the cell source contract: no
// dangling references and no face heavier than its coface.
func ComputeComplex(c *Complex, cfg Config) (*Result, error) {
	applyDefaults(&cfg)
	if err := validateConfig(&cfg); err != nil {
		return nil, err
	}
	return computeComplex(c, cfg)
}

// computeComplex runs the pipeline from the cell complex onward
// (BuildFiltration → AssignIndices → BuildBoundaryMatrix → Reduce →
// ExtractDiagrams).
func computeComplex(c *Complex, cfg Config) (*Result, error) {
	filtration, err := BuildFiltration(c)
	if err != nil {
		return nil, err
	}

	_, boundaries, err := AssignIndices(c, filtration)
	if err != nil {
		return nil, err
	}

	m, err := BuildBoundaryMatrix(filtration, boundaries)
	if err != nil {
		return nil, err
	}

	rep := selectRepresentation(cfg.Representation, m)
	cfg.Logger.Debug("boundary matrix",
		zap.Int("columns", m.NumCols()),
		zap.Int("entries", m.NumEntries()),
		zap.String("algorithm", string(cfg.Algorithm)),
		zap.String("representation", string(rep)))

	pairs := Reduce(m, cfg.Algorithm, rep)
	dgms := ExtractDiagrams(filtration, pairs)
	cfg.Logger.Debug("persistence",
		zap.Int("pairs", len(pairs)),
		zap.Int("dim0", len(dgms[0])),
		zap.Int("dim1", len(dgms[1])),
		zap.Int("dim2", len(dgms[2])))

	return &Result{
		Diagrams:   dgms,
		Filtration: filtration,
		Pairs:      pairs,
	}, nil
}
