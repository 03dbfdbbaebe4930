// Package pdb reads atom centers and radii from structure files: PDB
// coordinate records and plain "x y z r" (XYZR) text. Files ending in .gz or
// .zst are decompressed transparently.
package pdb

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"unicode"

	"github.com/TrevorS/alphapers"
	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// ErrUnknownElement is returned for an atom whose element has no radius and
// Options.DefaultRadius is 0.
var ErrUnknownElement = errors.New("pdb: unknown element")

// Options controls PDB parsing.
type Options struct {
	// SkipHydrogens drops H and D atoms.
	SkipHydrogens bool

	// SkipHetero drops HETATM records (ligands, waters, ions).
	SkipHetero bool

	// DefaultRadius is used for elements without a known radius. 0 makes
	// unknown elements an error.
	DefaultRadius float64
}

// ReadPDB parses ATOM and HETATM records from the first model of a PDB
// file. Radii come from the element columns (77-78), or from the atom name
// when those are blank.
func ReadPDB(r io.Reader, opts Options) ([]alphapers.Atom, error) {
	var atoms []alphapers.Atom
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		rec := sc.Text()
		switch {
		case strings.HasPrefix(rec, "ENDMDL"):
			return atoms, nil
		case strings.HasPrefix(rec, "ATOM  "):
		case strings.HasPrefix(rec, "HETATM"):
			if opts.SkipHetero {
				continue
			}
		default:
			continue
		}

		atom, element, err := parseCoordRecord(rec)
		if err != nil {
			return nil, fmt.Errorf("pdb: line %d: %w", line, err)
		}
		if opts.SkipHydrogens && (element == "H" || element == "D") {
			continue
		}
		radius, ok := Radius(element)
		if !ok {
			if opts.DefaultRadius <= 0 {
				return nil, fmt.Errorf("pdb: line %d: %q: %w", line, element, ErrUnknownElement)
			}
			radius = opts.DefaultRadius
		}
		atom.Radius = radius
		atoms = append(atoms, atom)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("pdb: read: %w", err)
	}
	return atoms, nil
}

// parseCoordRecord reads the fixed coordinate columns of an ATOM/HETATM
// record and returns the atom (without radius) and its element symbol.
func parseCoordRecord(rec string) (alphapers.Atom, string, error) {
	if len(rec) < 54 {
		return alphapers.Atom{}, "", fmt.Errorf("coordinate record too short (%d columns)", len(rec))
	}
	var xyz [3]float64
	for i := range xyz {
		field := strings.TrimSpace(rec[30+8*i : 38+8*i])
		v, err := strconv.ParseFloat(field, 64)
		if err != nil {
			return alphapers.Atom{}, "", fmt.Errorf("coordinate %d: %w", i, err)
		}
		xyz[i] = v
	}

	element := ""
	if len(rec) >= 78 {
		element = strings.TrimSpace(rec[76:78])
	}
	if element == "" {
		element = elementFromName(rec[12:16])
	}
	return alphapers.Atom{X: xyz[0], Y: xyz[1], Z: xyz[2]}, strings.ToUpper(element), nil
}

// elementFromName guesses the element from a PDB atom name (columns
// 13-16). Element symbols are right-justified in columns 13-14, so a name
// starting in column 13 may carry a two-letter symbol such as "CL"; names of
// hydrogens also start there ("HG21") and are read as H.
func elementFromName(name string) string {
	letters := strings.TrimLeftFunc(name, func(r rune) bool { return unicode.IsDigit(r) || r == ' ' })
	if letters == "" {
		return ""
	}
	if unicode.IsLetter(rune(name[0])) && len(letters) >= 2 && letters[0] != 'H' {
		if _, ok := Radius(letters[:2]); ok {
			return letters[:2]
		}
	}
	return letters[:1]
}

// ReadXYZR parses whitespace separated "x y z r" lines. Blank lines and
// lines starting with '#' are skipped.
func ReadXYZR(r io.Reader) ([]alphapers.Atom, error) {
	var atoms []alphapers.Atom
	sc := bufio.NewScanner(r)
	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		fields := strings.Fields(text)
		if len(fields) < 4 {
			return nil, fmt.Errorf("pdb: line %d: want 4 fields (x y z r), got %d", line, len(fields))
		}
		var v [4]float64
		for i := range v {
			f, err := strconv.ParseFloat(fields[i], 64)
			if err != nil {
				return nil, fmt.Errorf("pdb: line %d: field %d: %w", line, i+1, err)
			}
			v[i] = f
		}
		atoms = append(atoms, alphapers.Atom{X: v[0], Y: v[1], Z: v[2], Radius: v[3]})
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("pdb: read: %w", err)
	}
	return atoms, nil
}

// Format is a structure file format.
type Format string

const (
	FormatPDB  Format = "pdb"
	FormatXYZR Format = "xyzr"
)

// DetectFormat infers the format from the file name, ignoring a trailing
// .gz or .zst. Names ending in .pdb, .ent or .pdb1 are PDB; everything else
// is XYZR.
func DetectFormat(path string) Format {
	base := strings.ToLower(filepath.Base(path))
	base = strings.TrimSuffix(strings.TrimSuffix(base, ".gz"), ".zst")
	switch filepath.Ext(base) {
	case ".pdb", ".ent", ".pdb1":
		return FormatPDB
	default:
		return FormatXYZR
	}
}

// Open opens a file, decompressing .gz and .zst files on the fly.
func Open(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("pdb: %s: %w", path, err)
		}
		return &stackedCloser{Reader: zr, closers: []io.Closer{zr, f}}, nil
	case ".zst":
		dec, err := zstd.NewReader(f)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("pdb: %s: %w", path, err)
		}
		rc := dec.IOReadCloser()
		return &stackedCloser{Reader: rc, closers: []io.Closer{rc, f}}, nil
	default:
		return f, nil
	}
}

// stackedCloser closes a decompressor and its underlying file.
type stackedCloser struct {
	io.Reader
	closers []io.Closer
}

func (s *stackedCloser) Close() error {
	var errs []error
	for _, c := range s.closers {
		if err := c.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// ReadFile reads the atoms of a structure file in the format given by its
// name.
func ReadFile(path string, opts Options) ([]alphapers.Atom, error) {
	rc, err := Open(path)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	if DetectFormat(path) == FormatPDB {
		return ReadPDB(rc, opts)
	}
	return ReadXYZR(rc)
}
