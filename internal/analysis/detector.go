// File: internal/analysis/detector.go

// Package analysis implements the password generation and strength
// estimation engine: character pool construction, crypto-random sampling,
// naive and adjusted entropy, and the weakness detector pipeline.
//
// Every threshold and penalty weight in this package is a fixed constant,
// documented next to its detector, so that two installations always produce
// the same score for the same input.
package analysis

import (
	"go.uber.org/zap"

	"github.com/salman3757/passgauge/api/schemas"
)

// WordSet is the engine's read-only view of a loaded word list. Lookups must
// be safe for concurrent use; the engine never mutates a set and never
// iterates one.
type WordSet interface {
	// Label names the list's source, e.g. "english" or "compromised".
	Label() string
	// Contains reports membership of an already lowercased word.
	Contains(word string) bool
	// Len is the number of entries in the set.
	Len() int
}

// Detector is the contract every weakness detector implements. Detectors are
// pure and stateless: the same password and sets always produce the same
// findings, and no detector assumes another one ran. Only the dictionary
// detector reads sets; the rest ignore the argument.
type Detector interface {
	Name() string
	Detect(password string, sets []WordSet) []schemas.Finding
}

// baseDetector carries the name and the named sub-logger shared by all
// detector implementations.
type baseDetector struct {
	name string
	log  *zap.Logger
}

func newBaseDetector(name string, logger *zap.Logger) baseDetector {
	return baseDetector{name: name, log: logger.Named(name)}
}

func (b baseDetector) Name() string { return b.name }

// DefaultDetectors returns the full pipeline in its documented evaluation
// order: keyboard walks, alphabetical sequences, repetition, digit patterns
// (numeric runs and date shapes), dictionary membership, pronounceability.
// Report findings keep this order regardless of how the detectors execute.
func DefaultDetectors(logger *zap.Logger) []Detector {
	return []Detector{
		NewKeyboardDetector(logger),
		NewAlphaSequenceDetector(logger),
		NewRepetitionDetector(logger),
		NewDigitPatternDetector(logger),
		NewDictionaryDetector(logger),
		NewPronounceabilityDetector(logger),
	}
}
