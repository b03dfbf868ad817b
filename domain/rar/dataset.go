package rar

import "math"

// Observation is one SPARC RAR point, stored as log10 accelerations in m/s².
type Observation struct {
	LogGbar float64
	LogGobs float64
}

// Gbar is the linear baryonic acceleration.
func (o Observation) Gbar() float64 { return math.Pow(10, o.LogGbar) }

// Gobs is the linear observed acceleration.
func (o Observation) Gobs() float64 { return math.Pow(10, o.LogGobs) }

// Dataset is the loaded table. Records keep file order.
type Dataset struct {
	Source   string
	Galaxies int // galaxies the records are drawn from, 0 if unknown
	Records  []Observation
}

// Len returns the number of observations.
func (d *Dataset) Len() int { return len(d.Records) }

// LogGbar returns column 0 of the table.
func (d *Dataset) LogGbar() []float64 {
	out := make([]float64, len(d.Records))
	for i, r := range d.Records {
		out[i] = r.LogGbar
	}
	return out
}

// LogGobs returns column 2 of the table.
func (d *Dataset) LogGobs() []float64 {
	out := make([]float64, len(d.Records))
	for i, r := range d.Records {
		out[i] = r.LogGobs
	}
	return out
}

// Gbar returns 10^LogGbar for every record.
func (d *Dataset) Gbar() []float64 {
	out := make([]float64, len(d.Records))
	for i, r := range d.Records {
		out[i] = r.Gbar()
	}
	return out
}

// Gobs returns 10^LogGobs for every record.
func (d *Dataset) Gobs() []float64 {
	out := make([]float64, len(d.Records))
	for i, r := range d.Records {
		out[i] = r.Gobs()
	}
	return out
}
