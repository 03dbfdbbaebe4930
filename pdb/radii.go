package pdb

import "strings"

// bondiRadii are van der Waals radii in Ångström (Bondi 1964), keyed by
// upper-case element symbol.
var bondiRadii = map[string]float64{
	"H":  1.20,
	"D":  1.20,
	"C":  1.70,
	"N":  1.55,
	"O":  1.52,
	"F":  1.47,
	"NA": 2.27,
	"MG": 1.73,
	"P":  1.80,
	"S":  1.80,
	"CL": 1.75,
	"K":  2.75,
	"ZN": 1.39,
	"CU": 1.40,
	"SE": 1.90,
	"BR": 1.85,
	"I":  1.98,
}

// Radius returns the van der Waals radius of an element symbol and whether
// the element is known. The lookup ignores case and surrounding spaces.
func Radius(element string) (float64, bool) {
	r, ok := bondiRadii[strings.ToUpper(strings.TrimSpace(element))]
	return r, ok
}
