package analysis

import (
	"go.uber.org/zap"
)

// testWordSet is a minimal in-memory WordSet for detector tests.
type testWordSet struct {
	label string
	words map[string]struct{}
}

func newTestWordSet(label string, words ...string) *testWordSet {
	set := &testWordSet{label: label, words: make(map[string]struct{}, len(words))}
	for _, w := range words {
		set.words[w] = struct{}{}
	}
	return set
}

func (s *testWordSet) Label() string { return s.label }

func (s *testWordSet) Contains(word string) bool {
	_, ok := s.words[word]
	return ok
}

func (s *testWordSet) Len() int { return len(s.words) }

func testLogger() *zap.Logger { return zap.NewNop() }
