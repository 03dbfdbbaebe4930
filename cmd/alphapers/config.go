package main

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/TrevorS/alphapers"
	"github.com/TrevorS/alphapers/pdb"
)

// fileConfig mirrors the YAML config file. Unset keys keep the library
// defaults; command line flags override file values.
type fileConfig struct {
	Algorithm      string   `yaml:"algorithm"`
	Representation string   `yaml:"representation"`
	Workers        int      `yaml:"workers"`
	Tolerance      *float64 `yaml:"tolerance"`
	Format         string   `yaml:"format"`
	PDB            struct {
		SkipHydrogens bool    `yaml:"skip_hydrogens"`
		SkipHetero    bool    `yaml:"skip_hetero"`
		DefaultRadius float64 `yaml:"default_radius"`
	} `yaml:"pdb"`
}

// loadConfig reads path, or returns an empty config when path is "".
func loadConfig(path string) (*fileConfig, error) {
	fc := &fileConfig{}
	if path == "" {
		return fc, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return fc, nil
}

// apply copies the set file values onto the library and parser options.
func (fc *fileConfig) apply(cfg *alphapers.Config, opts *pdb.Options) {
	if fc.Algorithm != "" {
		cfg.Algorithm = alphapers.Algorithm(fc.Algorithm)
	}
	if fc.Representation != "" {
		cfg.Representation = alphapers.Representation(fc.Representation)
	}
	if fc.Workers != 0 {
		cfg.Workers = fc.Workers
	}
	if fc.Tolerance != nil {
		cfg.Tolerance = *fc.Tolerance
	}
	opts.SkipHydrogens = fc.PDB.SkipHydrogens
	opts.SkipHetero = fc.PDB.SkipHetero
	opts.DefaultRadius = fc.PDB.DefaultRadius
}
