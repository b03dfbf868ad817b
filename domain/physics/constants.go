package physics

// ============================================================================
// PHYSICAL CONSTANTS (SI units)
// ============================================================================

const (
	SpeedOfLight   = 2.998e8 // m/s
	HubbleKmSMpc   = 67.4    // km/s/Mpc
	MegaparsecInM  = 3.086e22
	HubbleConstant = HubbleKmSMpc * 1e3 / MegaparsecInM // 1/s
	MilgromA0      = 1.2e-10                            // m/s², empirical MOND scale
	GeometricRatio = 1.0 / 6.0                          // backward-hemisphere cos²θ average
)

// Constants is the immutable set of scalars the model is built from.
type Constants struct {
	C           float64 // speed of light
	H0          float64 // Hubble constant in 1/s
	CH0         float64 // c·H0, the Hubble acceleration
	A0MOND      float64 // Milgrom's a0
	A0Predicted float64 // cH0/6
}

// Standard returns the constants used throughout the analysis.
func Standard() Constants {
	cH0 := SpeedOfLight * HubbleConstant
	return Constants{
		C:           SpeedOfLight,
		H0:          HubbleConstant,
		CH0:         cH0,
		A0MOND:      MilgromA0,
		A0Predicted: cH0 * GeometricRatio,
	}
}

// A0Ratio is a0_predicted / a0_MOND.
func (c Constants) A0Ratio() float64 {
	return c.A0Predicted / c.A0MOND
}

// A0DiscrepancyPercent is |a0_predicted/a0_MOND - 1| in percent.
func (c Constants) A0DiscrepancyPercent() float64 {
	d := c.A0Ratio() - 1
	if d < 0 {
		d = -d
	}
	return d * 100
}
