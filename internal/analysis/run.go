package analysis

import (
	"sparcrar/domain/physics"
	"sparcrar/domain/rar"
)

// Run is the complete, immutable result of one analysis pass.
type Run struct {
	ID        string
	Constants physics.Constants
	Geometry  physics.GeometryCheck
	Dataset   *rar.Dataset
	Sets      []ResidualSet
	Summaries []Summary
	Shapes    []Shape
	Regimes   []RegimeRow
}

// NewRun evaluates the standard models over ds and aggregates the results.
func NewRun(id string, c physics.Constants, geom physics.GeometryCheck, ds *rar.Dataset) *Run {
	sets := EvaluateAll(ds, StandardModels(c))
	run := &Run{
		ID:        id,
		Constants: c,
		Geometry:  geom,
		Dataset:   ds,
		Sets:      sets,
		Summaries: make([]Summary, len(sets)),
		Shapes:    make([]Shape, len(sets)),
		Regimes:   RegimeTable(ds.Gobs(), sets, Regimes(c.A0MOND)),
	}
	for i, set := range sets {
		run.Summaries[i] = set.Summary()
		// DescribeShape fails only on an empty dataset; the Shape stays zero
		if shape, err := DescribeShape(set.Values); err == nil {
			run.Shapes[i] = shape
		}
	}
	return run
}

// Set returns the residual set and its summary for a model key.
func (r *Run) Set(key string) (ResidualSet, Summary, bool) {
	i := r.Index(key)
	if i < 0 {
		return ResidualSet{}, Summary{}, false
	}
	return r.Sets[i], r.Summaries[i], true
}

// Index returns the position of a model key in Sets, or -1.
func (r *Run) Index(key string) int {
	for i, s := range r.Sets {
		if s.Model.Key == key {
			return i
		}
	}
	return -1
}
