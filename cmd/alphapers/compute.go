package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/TrevorS/alphapers"
	"github.com/TrevorS/alphapers/pdb"
)

var (
	algorithm      string
	representation string
	workers        int
	tolerance      float64
	format         string
	skipHydrogens  bool
	skipHetero     bool
	defaultRadius  float64
)

var computeCmd = &cobra.Command{
	Use:   "compute [structure files...]",
	Short: "Compute persistence diagrams of structure files",
	Long: `Reads each structure file (PDB or "x y z r" text, optionally .gz or .zst
compressed), builds its weighted alpha complex and prints the dimension 0, 1
and 2 persistence diagrams. Files are processed concurrently.

Example:
  alphapers compute 1ubq.pdb.gz --skip-hydrogens --format yaml`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompute,
}

func init() {
	f := computeCmd.Flags()
	f.StringVar(&algorithm, "algorithm", "", "reduction algorithm: twist, standard, twist_unionfind")
	f.StringVar(&representation, "representation", "", "column representation: auto, vector, bitmap")
	f.IntVarP(&workers, "workers", "w", 0, "concurrent workers (0 = number of CPUs)")
	f.Float64Var(&tolerance, "tolerance", 0, "relative tolerance of geometric predicates")
	f.StringVarP(&format, "format", "f", "json", "output format: json or yaml")
	f.BoolVar(&skipHydrogens, "skip-hydrogens", false, "ignore hydrogen atoms in PDB input")
	f.BoolVar(&skipHetero, "skip-hetero", false, "ignore HETATM records in PDB input")
	f.Float64Var(&defaultRadius, "default-radius", 0, "radius for unknown elements (0 = error)")
}

// fileResult is the output record for one structure file.
type fileResult struct {
	File  string               `json:"file" yaml:"file"`
	Atoms int                  `json:"atoms" yaml:"atoms"`
	Dim0  []alphapers.Interval `json:"dim0" yaml:"dim0"`
	Dim1  []alphapers.Interval `json:"dim1" yaml:"dim1"`
	Dim2  []alphapers.Interval `json:"dim2" yaml:"dim2"`
}

func runCompute(cmd *cobra.Command, args []string) error {
	fc, err := loadConfig(configPath)
	if err != nil {
		return err
	}
	cfg := alphapers.DefaultConfig()
	var opts pdb.Options
	fc.apply(&cfg, &opts)
	outFormat := format
	if fc.Format != "" && !cmd.Flags().Changed("format") {
		outFormat = fc.Format
	}

	flags := cmd.Flags()
	if flags.Changed("algorithm") {
		cfg.Algorithm = alphapers.Algorithm(algorithm)
	}
	if flags.Changed("representation") {
		cfg.Representation = alphapers.Representation(representation)
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("tolerance") {
		cfg.Tolerance = tolerance
	}
	if flags.Changed("skip-hydrogens") {
		opts.SkipHydrogens = skipHydrogens
	}
	if flags.Changed("skip-hetero") {
		opts.SkipHetero = skipHetero
	}
	if flags.Changed("default-radius") {
		opts.DefaultRadius = defaultRadius
	}
	if outFormat != "json" && outFormat != "yaml" {
		return fmt.Errorf("unknown output format %q (want json or yaml)", outFormat)
	}
	cfg.Logger = logger

	clouds := make([][]alphapers.Atom, len(args))
	for i, path := range args {
		atoms, err := pdb.ReadFile(path, opts)
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		logger.Debug("read structure", zap.String("file", path), zap.Int("atoms", len(atoms)))
		clouds[i] = atoms
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	results, err := alphapers.ComputeBatch(ctx, clouds, cfg)
	if err != nil {
		return err
	}

	out := make([]fileResult, len(args))
	for i, r := range results {
		out[i] = fileResult{
			File:  args[i],
			Atoms: len(clouds[i]),
			Dim0:  r.Diagrams[0],
			Dim1:  r.Diagrams[1],
			Dim2:  r.Diagrams[2],
		}
	}
	return writeResults(cmd.OutOrStdout(), out, outFormat)
}

func writeResults(w io.Writer, out []fileResult, outFormat string) error {
	if outFormat == "yaml" {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}
