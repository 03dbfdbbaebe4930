package alphapers

// MaxDiagramDim is the highest homological dimension reported.
const MaxDiagramDim = 2

// Interval is a finite point of a persistence diagram. Birth < Death.
type Interval struct {
	Birth float64 `json:"birth" yaml:"birth"`
	Death float64 `json:"death" yaml:"death"`
}

// Persistence returns Death - Birth.
func (iv Interval) Persistence() float64 { return iv.Death - iv.Birth }

// Diagrams holds one persistence diagram per dimension 0..MaxDiagramDim.
// Intervals are in pair order; callers that need another order sort them.
type Diagrams [MaxDiagramDim + 1][]Interval

// Len returns the total number of intervals across all dimensions.
func (d Diagrams) Len() int {
	total := 0
	for _, dgm := range d {
		total += len(dgm)
	}
	return total
}

// ExtractDiagrams maps persistence pairs back to filtration weights. The
// dimension of a pair is the dimension of its birth cell. Pairs whose birth
// and death weights are equal are dropped, as are births above
// MaxDiagramDim.
func ExtractDiagrams(filtration []Entry, pairs []Pair) Diagrams {
	var dgms Diagrams
	for i := range dgms {
		dgms[i] = []Interval{}
	}
	for _, p := range pairs {
		birth := filtration[p.Birth]
		death := filtration[p.Death]
		if birth.Dim > MaxDiagramDim {
			continue
		}
		if birth.Weight == death.Weight {
			continue
		}
		dgms[birth.Dim] = append(dgms[birth.Dim], Interval{Birth: birth.Weight, Death: death.Weight})
	}
	return dgms
}
