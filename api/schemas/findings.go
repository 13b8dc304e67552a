package schemas

// -- Finding Schemas --

// FindingKind identifies which weakness detector produced a finding. The
// values are lowercase snake case to align with database ENUMs and report
// payloads.
type FindingKind string

// Constants defining the closed set of weakness kinds.
const (
	KindKeyboardPattern     FindingKind = "keyboard_pattern"     // Adjacent-key walk (qwerty, azerty rows).
	KindAlphaSequence       FindingKind = "alpha_sequence"       // Ascending/descending alphabetical run.
	KindRepetition          FindingKind = "repetition"           // Repeated character or short unit.
	KindNumericSequence     FindingKind = "numeric_sequence"     // Ascending/descending digit run.
	KindDateLike            FindingKind = "date_like"            // Digit substring shaped like a date.
	KindDictionaryMatch     FindingKind = "dictionary_match"     // Word list / leaked list membership.
	KindLowPronounceability FindingKind = "low_pronounceability" // Phonetically regular, easily spoken string.
)

// Finding pinpoints one structural weakness in an analyzed password. Start
// and End are rune offsets into the analyzed string, half-open [Start, End).
// SeverityBits is the entropy penalty this weakness contributes; it is
// always >= 0 and additive across findings.
type Finding struct {
	Kind         FindingKind `json:"kind"`
	Start        int         `json:"start"`
	End          int         `json:"end"`
	SeverityBits float64     `json:"severity_bits"`

	// Description is display text only. It never feeds back into scoring.
	Description string `json:"description"`

	// Source names the word set that matched. Empty for every kind except
	// dictionary_match.
	Source string `json:"source,omitempty"`
}
