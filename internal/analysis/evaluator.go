package analysis

import (
	"math"

	"sparcrar/domain/physics"
	"sparcrar/domain/rar"
	"sparcrar/internal/solver"
)

// PredictionFloor is the smallest predicted g_obs whose log10 is taken.
const PredictionFloor = 1e-20

// Model is one row of the model comparison: a way to predict g_obs from
// g_bar plus the metadata the report prints for it.
type Model struct {
	Key     string
	Label   string
	Params  int
	A0      float64
	predict func(gbar float64) solver.Outcome
}

// Predict returns the predicted g_obs for gbar with its solver outcome.
func (m Model) Predict(gbar float64) solver.Outcome {
	return m.predict(gbar)
}

// ImplicitModel predicts by inverting g_bar = f(g_obs)·g_obs.
func ImplicitModel(key, label string, f rar.Ratio, a0 float64, params int) Model {
	return Model{
		Key:    key,
		Label:  label,
		Params: params,
		A0:     a0,
		predict: func(gbar float64) solver.Outcome {
			return solver.Solve(gbar, f)
		},
	}
}

// MONDModel predicts with the closed-form simple interpolation.
func MONDModel(label string, a0 float64) Model {
	return Model{
		Key:    "mond",
		Label:  label,
		Params: 1,
		A0:     a0,
		predict: func(gbar float64) solver.Outcome {
			return solver.Outcome{Gbar: gbar, Value: rar.MONDSimple(gbar, a0), Path: solver.PathClosedForm}
		},
	}
}

// StandardModels returns the three compared models in report order.
func StandardModels(c physics.Constants) []Model {
	return []Model{
		ImplicitModel("this-work", "This work: f=a/(a+cH₀/6)", rar.ThisWork(c), c.A0Predicted, 0),
		MONDModel("MOND fitted: a₀=1.2e-10", c.A0MOND),
		ImplicitModel("bare", "Bare: f=a/(a+cH₀)", rar.Bare(c), c.CH0, 0),
	}
}

// ResidualSet holds one model's per-point predictions and residuals
// log10(g_obs) - log10(predicted), in dataset order.
type ResidualSet struct {
	Model     Model
	Predicted []float64
	Values    []float64
	Fallbacks []solver.Outcome
}

// Summary returns the global mean and population standard deviation.
func (r ResidualSet) Summary() Summary {
	return Summarize(r.Values)
}

// Evaluate runs model m over every observation in ds.
func Evaluate(ds *rar.Dataset, m Model) ResidualSet {
	set := ResidualSet{
		Model:     m,
		Predicted: make([]float64, ds.Len()),
		Values:    make([]float64, ds.Len()),
	}
	for i, obs := range ds.Records {
		out := m.Predict(obs.Gbar())
		if out.Fallback() {
			set.Fallbacks = append(set.Fallbacks, out)
		}
		set.Predicted[i] = out.Value
		set.Values[i] = obs.LogGobs - math.Log10(math.Max(out.Value, PredictionFloor))
	}
	return set
}

// EvaluateAll evaluates each model in order over the same dataset.
func EvaluateAll(ds *rar.Dataset, models []Model) []ResidualSet {
	sets := make([]ResidualSet, len(models))
	for i, m := range models {
		sets[i] = Evaluate(ds, m)
	}
	return sets
}

// Find returns the set for the given model key.
func Find(sets []ResidualSet, key string) (ResidualSet, bool) {
	for _, s := range sets {
		if s.Model.Key == key {
			return s, true
		}
	}
	return ResidualSet{}, false
}
