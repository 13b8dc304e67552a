// File: internal/analysis/pool.go
package analysis

import (
	"errors"
	"fmt"
	"math"

	"github.com/salman3757/passgauge/api/schemas"
)

// ErrInvalidOptions is returned for malformed generation requests: empty
// effective pools, non-positive lengths, or pattern positions that resolve to
// an empty class. Callers match it with errors.Is.
var ErrInvalidOptions = errors.New("invalid generator options")

// The four character classes. SymbolChars and AmbiguousChars are part of the
// engine's documented contract; changing either changes every entropy score.
const (
	lowerChars = "abcdefghijklmnopqrstuvwxyz"
	upperChars = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	digitChars = "0123456789"

	// SymbolChars is the full symbol class used by generation.
	SymbolChars = "!@#$%&*?+_-=<>"

	// AmbiguousChars are the visually confusable glyphs removed by the
	// ExcludeAmbiguous option.
	AmbiguousChars = "Il1O0o"
)

// Pattern symbols. Any other rune in a pattern is emitted verbatim.
const (
	patternLower  = 'L' // one lowercase letter
	patternUpper  = 'U' // one uppercase letter
	patternDigit  = 'D' // one digit
	patternSymbol = 'S' // one symbol
	patternAny    = '?' // one rune from the active class-flag pool
)

// Pool is the effective alphabet for one generation request. A flat pool
// draws every position from the same rune set; a pattern pool carries one
// class (or literal) per output position.
type Pool struct {
	runes     []rune
	positions []patternPosition
	length    int
}

type patternPosition struct {
	class     []rune
	literal   rune
	isLiteral bool
}

// BuildPool derives the effective alphabet from options. In pattern mode the
// CustomPattern fully determines per-position classes and the Length option
// is ignored.
func BuildPool(opts schemas.GeneratorOptions) (*Pool, error) {
	if opts.CustomPattern != "" {
		return buildPatternPool(opts)
	}
	if opts.Length <= 0 {
		return nil, fmt.Errorf("%w: length must be positive, got %d", ErrInvalidOptions, opts.Length)
	}
	if !opts.UseLower && !opts.UseUpper && !opts.UseDigits && !opts.UseSymbols {
		return nil, fmt.Errorf("%w: no character class selected and no pattern given", ErrInvalidOptions)
	}

	pool := filterRunes(classUnion(opts), opts)
	if len(pool) == 0 {
		return nil, fmt.Errorf("%w: effective pool is empty after exclusions", ErrInvalidOptions)
	}
	return &Pool{runes: pool, length: opts.Length}, nil
}

func buildPatternPool(opts schemas.GeneratorOptions) (*Pool, error) {
	active := filterRunes(classUnion(opts), opts)

	pattern := []rune(opts.CustomPattern)
	positions := make([]patternPosition, 0, len(pattern))
	for i, sym := range pattern {
		var class []rune
		switch sym {
		case patternLower:
			class = filterRunes([]rune(lowerChars), opts)
		case patternUpper:
			class = filterRunes([]rune(upperChars), opts)
		case patternDigit:
			class = filterRunes([]rune(digitChars), opts)
		case patternSymbol:
			class = filterRunes([]rune(SymbolChars), opts)
		case patternAny:
			class = active
		default:
			// Literals bypass exclusion filtering: the caller asked for this
			// exact rune at this position.
			positions = append(positions, patternPosition{literal: sym, isLiteral: true})
			continue
		}
		if len(class) == 0 {
			return nil, fmt.Errorf("%w: pattern position %d (%q) resolves to an empty class", ErrInvalidOptions, i, string(sym))
		}
		positions = append(positions, patternPosition{class: class})
	}

	return &Pool{positions: positions, length: len(positions)}, nil
}

// classUnion joins the selected classes in class order, duplicates collapsed,
// preserving each class's documented rune order so pools are reproducible.
func classUnion(opts schemas.GeneratorOptions) []rune {
	var union []rune
	seen := make(map[rune]bool)
	appendClass := func(class string) {
		for _, r := range class {
			if !seen[r] {
				seen[r] = true
				union = append(union, r)
			}
		}
	}
	if opts.UseLower {
		appendClass(lowerChars)
	}
	if opts.UseUpper {
		appendClass(upperChars)
	}
	if opts.UseDigits {
		appendClass(digitChars)
	}
	if opts.UseSymbols {
		appendClass(SymbolChars)
	}
	return union
}

// filterRunes applies the ambiguous set first, then the explicit exclusions.
func filterRunes(runes []rune, opts schemas.GeneratorOptions) []rune {
	drop := make(map[rune]bool)
	if opts.ExcludeAmbiguous {
		for _, r := range AmbiguousChars {
			drop[r] = true
		}
	}
	for _, r := range opts.ExcludedChars {
		drop[r] = true
	}
	if len(drop) == 0 {
		return runes
	}

	kept := make([]rune, 0, len(runes))
	for _, r := range runes {
		if !drop[r] {
			kept = append(kept, r)
		}
	}
	return kept
}

// Size is the flat pool's cardinality; 0 for pattern pools.
func (p *Pool) Size() int {
	return len(p.runes)
}

// Length is the number of runes a draw from this pool produces.
func (p *Pool) Length() int {
	return p.length
}

// IsPattern reports whether the pool carries per-position classes.
func (p *Pool) IsPattern() bool {
	return p.positions != nil
}

// Runes returns a copy of the flat pool's alphabet.
func (p *Pool) Runes() []rune {
	out := make([]rune, len(p.runes))
	copy(out, p.runes)
	return out
}

// ClassSizes reports the per-position class cardinality of a pattern pool.
// Literal positions report 1. Nil for flat pools.
func (p *Pool) ClassSizes() []int {
	if p.positions == nil {
		return nil
	}
	sizes := make([]int, len(p.positions))
	for i, pos := range p.positions {
		if pos.isLiteral {
			sizes[i] = 1
		} else {
			sizes[i] = len(pos.class)
		}
	}
	return sizes
}

// EntropyBits is the naive entropy of one draw. Flat pools contribute
// length * log2(size); pattern pools sum log2 of each class size, with
// literal positions contributing nothing.
func (p *Pool) EntropyBits() float64 {
	if p.positions == nil {
		return float64(p.length) * math.Log2(float64(len(p.runes)))
	}
	var bits float64
	for _, pos := range p.positions {
		if !pos.isLiteral {
			bits += math.Log2(float64(len(pos.class)))
		}
	}
	return bits
}
