package schemas

// -- Analysis Report Schemas --

// Strength is the coarse human-facing label derived from adjusted entropy.
type Strength string

// Strength bands, keyed off AdjustedEntropyBits.
const (
	StrengthVeryWeak   Strength = "very-weak"   // < 28 bits
	StrengthWeak       Strength = "weak"        // < 40 bits
	StrengthFair       Strength = "fair"        // < 60 bits
	StrengthStrong     Strength = "strong"      // < 80 bits
	StrengthVeryStrong Strength = "very-strong" // >= 80 bits
)

// StrengthFromBits maps an adjusted entropy value onto its band.
func StrengthFromBits(bits float64) Strength {
	switch {
	case bits < 28:
		return StrengthVeryWeak
	case bits < 40:
		return StrengthWeak
	case bits < 60:
		return StrengthFair
	case bits < 80:
		return StrengthStrong
	default:
		return StrengthVeryStrong
	}
}

// AnalysisReport is the engine's verdict on one password. Findings appear in
// detector evaluation order, never severity-sorted, so two analyses of the
// same inputs are byte-identical. A fresh report is allocated per call.
type AnalysisReport struct {
	// Length is the analyzed password's rune count.
	Length int `json:"length"`

	// PoolSize is the effective alphabet inferred from the character classes
	// actually observed in the password, not from any generation options.
	PoolSize int `json:"pool_size"`

	NaiveEntropyBits    float64 `json:"naive_entropy_bits"`
	AdjustedEntropyBits float64 `json:"adjusted_entropy_bits"`

	Strength Strength  `json:"strength"`
	Findings []Finding `json:"findings"`
}

// PenaltyBits sums the severity of every finding in the report.
func (r *AnalysisReport) PenaltyBits() float64 {
	var total float64
	for _, f := range r.Findings {
		total += f.SeverityBits
	}
	return total
}
