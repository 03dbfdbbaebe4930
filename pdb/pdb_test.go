package pdb

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/TrevorS/alphapers"
)

// atomRecord formats a fixed-column ATOM or HETATM record.
func atomRecord(kind string, serial int, name, resName string, x, y, z float64, element string) string {
	return fmt.Sprintf("%-6s%5d %-4s %3s A%4d    %8.3f%8.3f%8.3f%6.2f%6.2f          %2s",
		kind, serial, name, resName, 1, x, y, z, 1.0, 0.0, element)
}

func TestAtomRecordColumns(t *testing.T) {
	rec := atomRecord("ATOM", 1, " CA ", "ALA", 1.5, -2.25, 3, "C")
	require.Len(t, rec, 78)
	assert.Equal(t, " CA ", rec[12:16])
	assert.Equal(t, "   1.500", rec[30:38])
	assert.Equal(t, " C", rec[76:78])
}

func samplePDB() string {
	return strings.Join([]string{
		"HEADER    TEST",
		"MODEL        1",
		atomRecord("ATOM", 1, " N  ", "ALA", 0, 0, 0, "N"),
		atomRecord("ATOM", 2, " CA ", "ALA", 1.5, 0, 0, "C"),
		atomRecord("ATOM", 3, " H  ", "ALA", 0, 1, 0, "H"),
		atomRecord("HETATM", 4, " O  ", "HOH", 5, 5, 5, "O"),
		"TER",
		"ENDMDL",
		"MODEL        2",
		atomRecord("ATOM", 1, " N  ", "ALA", 9, 9, 9, "N"),
		"ENDMDL",
		"END",
	}, "\n")
}

func TestReadPDB(t *testing.T) {
	atoms, err := ReadPDB(strings.NewReader(samplePDB()), Options{})
	require.NoError(t, err)
	assert.Equal(t, []alphapers.Atom{
		{X: 0, Y: 0, Z: 0, Radius: 1.55},
		{X: 1.5, Y: 0, Z: 0, Radius: 1.70},
		{X: 0, Y: 1, Z: 0, Radius: 1.20},
		{X: 5, Y: 5, Z: 5, Radius: 1.52},
	}, atoms)
}

func TestReadPDBFilters(t *testing.T) {
	atoms, err := ReadPDB(strings.NewReader(samplePDB()), Options{SkipHydrogens: true})
	require.NoError(t, err)
	assert.Len(t, atoms, 3)

	atoms, err = ReadPDB(strings.NewReader(samplePDB()), Options{SkipHetero: true})
	require.NoError(t, err)
	assert.Len(t, atoms, 3)

	atoms, err = ReadPDB(strings.NewReader(samplePDB()), Options{SkipHydrogens: true, SkipHetero: true})
	require.NoError(t, err)
	assert.Len(t, atoms, 2)
}

func TestReadPDBElementFromName(t *testing.T) {
	tests := []struct {
		name string
		want float64
	}{
		{" CA ", 1.70},
		{" N  ", 1.55},
		{"CL1 ", 1.75},
		{"HG21", 1.20},
		{"1HB ", 1.20},
		{" OXT", 1.52},
	}
	for _, tt := range tests {
		t.Run(strings.TrimSpace(tt.name), func(t *testing.T) {
			rec := atomRecord("HETATM", 1, tt.name, "LIG", 0, 0, 0, "")
			atoms, err := ReadPDB(strings.NewReader(rec), Options{})
			require.NoError(t, err)
			require.Len(t, atoms, 1)
			assert.Equal(t, tt.want, atoms[0].Radius)
		})
	}
}

func TestReadPDBShortRecordWithoutElement(t *testing.T) {
	rec := atomRecord("ATOM", 1, " O  ", "GLY", 1, 2, 3, "O")[:54]
	atoms, err := ReadPDB(strings.NewReader(rec), Options{})
	require.NoError(t, err)
	assert.Equal(t, []alphapers.Atom{{X: 1, Y: 2, Z: 3, Radius: 1.52}}, atoms)
}

func TestReadPDBUnknownElement(t *testing.T) {
	rec := atomRecord("HETATM", 1, "XX  ", "UNK", 0, 0, 0, "XX")

	_, err := ReadPDB(strings.NewReader(rec), Options{})
	assert.ErrorIs(t, err, ErrUnknownElement)

	atoms, err := ReadPDB(strings.NewReader(rec), Options{DefaultRadius: 1.5})
	require.NoError(t, err)
	require.Len(t, atoms, 1)
	assert.Equal(t, 1.5, atoms[0].Radius)
}

func TestReadPDBMalformed(t *testing.T) {
	_, err := ReadPDB(strings.NewReader("ATOM      1  N   ALA A   1"), Options{})
	assert.ErrorContains(t, err, "line 1")

	rec := atomRecord("ATOM", 1, " N  ", "ALA", 0, 0, 0, "N")
	rec = rec[:30] + "   abc  " + rec[38:]
	_, err = ReadPDB(strings.NewReader(rec), Options{})
	assert.Error(t, err)
}

func TestReadXYZR(t *testing.T) {
	input := "# x y z r\n1 2 3 1.5\n\n  -1.0\t0 0.5 2 extra\n"
	atoms, err := ReadXYZR(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, []alphapers.Atom{
		{X: 1, Y: 2, Z: 3, Radius: 1.5},
		{X: -1, Y: 0, Z: 0.5, Radius: 2},
	}, atoms)

	_, err = ReadXYZR(strings.NewReader("1 2 3\n"))
	assert.ErrorContains(t, err, "line 1")

	_, err = ReadXYZR(strings.NewReader("0 0 0 1\n1 2 x 1\n"))
	assert.ErrorContains(t, err, "line 2")
}

func TestRadius(t *testing.T) {
	r, ok := Radius(" cl ")
	assert.True(t, ok)
	assert.Equal(t, 1.75, r)

	_, ok = Radius("Xx")
	assert.False(t, ok)
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"1abc.pdb", FormatPDB},
		{"/data/1ABC.PDB", FormatPDB},
		{"pdb1abc.ent.gz", FormatPDB},
		{"1abc.pdb1.zst", FormatPDB},
		{"cloud.xyzr", FormatXYZR},
		{"cloud.txt.gz", FormatXYZR},
		{"noext", FormatXYZR},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, DetectFormat(tt.path), tt.path)
	}
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	const xyzr = "0 0 0 1\n2 0 0 1\n"
	want := []alphapers.Atom{{Radius: 1}, {X: 2, Radius: 1}}

	plain := filepath.Join(dir, "cloud.xyzr")
	require.NoError(t, os.WriteFile(plain, []byte(xyzr), 0o644))

	var gz bytes.Buffer
	gw := gzip.NewWriter(&gz)
	_, err := gw.Write([]byte(xyzr))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	gzPath := filepath.Join(dir, "cloud.xyzr.gz")
	require.NoError(t, os.WriteFile(gzPath, gz.Bytes(), 0o644))

	var zs bytes.Buffer
	zw, err := zstd.NewWriter(&zs)
	require.NoError(t, err)
	_, err = zw.Write([]byte(xyzr))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	zstPath := filepath.Join(dir, "cloud.xyzr.zst")
	require.NoError(t, os.WriteFile(zstPath, zs.Bytes(), 0o644))

	for _, path := range []string{plain, gzPath, zstPath} {
		atoms, err := ReadFile(path, Options{})
		require.NoError(t, err, path)
		assert.Equal(t, want, atoms, path)
	}
}

func TestReadFilePDB(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.pdb.gz")
	var buf bytes.Buffer
	gw := gzip.NewWriter(&buf)
	_, err := gw.Write([]byte(samplePDB()))
	require.NoError(t, err)
	require.NoError(t, gw.Close())
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o644))

	atoms, err := ReadFile(path, Options{SkipHydrogens: true})
	require.NoError(t, err)
	assert.Len(t, atoms, 3)
}

func TestReadFileErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := ReadFile(filepath.Join(dir, "missing.xyzr"), Options{})
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(dir, "bad.xyzr.gz")
	require.NoError(t, os.WriteFile(bad, []byte("not gzip"), 0o644))
	_, err = ReadFile(bad, Options{})
	assert.Error(t, err)
}
