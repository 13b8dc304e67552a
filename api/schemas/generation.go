package schemas

// -- Generation Schemas --

// GeneratorOptions describes a single password synthesis request. The zero
// value is not usable: at least one class flag must be set, or a custom
// pattern supplied. Options are treated as immutable once handed to the
// engine.
type GeneratorOptions struct {
	// Length is the number of characters to generate. Ignored when
	// CustomPattern is set (the pattern's length wins). Must be > 0.
	Length int `json:"length" yaml:"length"`

	UseLower   bool `json:"use_lower" yaml:"use_lower"`     // include a-z
	UseUpper   bool `json:"use_upper" yaml:"use_upper"`     // include A-Z
	UseDigits  bool `json:"use_digits" yaml:"use_digits"`   // include 0-9
	UseSymbols bool `json:"use_symbols" yaml:"use_symbols"` // include the fixed symbol set

	// ExcludeAmbiguous removes visually confusable glyphs (I, l, 1, O, 0, o)
	// after the class union is formed.
	ExcludeAmbiguous bool `json:"exclude_ambiguous" yaml:"exclude_ambiguous"`

	// CustomPattern switches the generator into pattern mode. Each rune maps
	// to a character class (L, U, D, S, ?) or is emitted verbatim.
	CustomPattern string `json:"custom_pattern,omitempty" yaml:"custom_pattern"`

	// ExcludedChars lists characters to strip from the pool regardless of
	// which class contributed them. Applied last.
	ExcludedChars string `json:"excluded_chars,omitempty" yaml:"excluded_chars"`
}

// GeneratedPassword is the synthesis result. PoolSize and Length are carried
// so callers can compute naive entropy without rebuilding the pool. In
// pattern mode PoolSize is 0 and EntropyBits already sums the per-position
// class contributions.
type GeneratedPassword struct {
	Password    string  `json:"password"`
	PoolSize    int     `json:"pool_size"`
	Length      int     `json:"length"`
	EntropyBits float64 `json:"entropy_bits"`
}
