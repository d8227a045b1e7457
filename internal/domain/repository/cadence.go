package repository

// Cadence represents the resolution of stored series points.
type Cadence string

const (
	CadDaily   Cadence = "daily"
	CadMonthly Cadence = "monthly"
)

// IsValidCadence returns true if c is a supported cadence.
func IsValidCadence(c Cadence) bool {
	switch c {
	case CadDaily, CadMonthly:
		return true
	default:
		return false
	}
}

// DefaultCadence returns the default cadence.
func DefaultCadence() Cadence { return CadMonthly }

// NormalizeCadence converts raw string to a valid cadence (or default).
func NormalizeCadence(s string) Cadence {
	if s == "" {
		return DefaultCadence()
	}
	c := Cadence(s)
	if IsValidCadence(c) {
		return c
	}
	return DefaultCadence()
}
