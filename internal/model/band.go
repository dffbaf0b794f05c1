package model

// Nominal operating point: the plant commits to 5 MW and output inside
// [NominalBandLower, NominalBandUpper] is settled without imbalance.
const (
	NominalBandLower    = 4.75
	NominalBandUpper    = 5.25
	DefaultSubdivisions = 1000

	HoursPerDay = 24.0

	// DefaultImprovementFactor scales sigma for the improved (better regulated) system.
	DefaultImprovementFactor = 0.5
)

// Band is the power interval (MW) over which the output density is integrated.
type Band struct {
	Lower        float64
	Upper        float64
	Subdivisions int
}

// DefaultBand is the fixed tolerance band around the nominal 5 MW commitment.
var DefaultBand = Band{
	Lower:        NominalBandLower,
	Upper:        NominalBandUpper,
	Subdivisions: DefaultSubdivisions,
}

func (b Band) Width() float64 {
	return b.Upper - b.Lower
}

// IsZero reports whether b was left unset.
func (b Band) IsZero() bool {
	return b == Band{}
}
