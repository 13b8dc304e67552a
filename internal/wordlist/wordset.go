// File: internal/wordlist/wordset.go

// Package wordlist loads the word sets the dictionary detector probes:
// named registry sources fetched over the network, plus arbitrary local
// files. Entries are normalized once at load time so membership checks stay
// plain map probes.
package wordlist

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Kind classifies what a word set represents to the scoring model.
type Kind string

const (
	// KindDictionary marks natural-language lists; matches weaken a
	// password proportionally to how much of it they explain.
	KindDictionary Kind = "dictionary"
	// KindCompromised marks leaked-credential lists; an exact match means
	// the password is effectively public.
	KindCompromised Kind = "compromised"
)

// ErrInvalidWordSet is returned when a source cannot become a usable set:
// blank label, no entries surviving normalization, or an unresolvable
// reference.
var ErrInvalidWordSet = errors.New("wordlist: invalid word set")

// maxLineBytes bounds a single entry; nothing in a word list is longer.
const maxLineBytes = 64 * 1024

// Set is an immutable, normalized word collection. It satisfies the
// analysis engine's WordSet contract and is safe for concurrent reads.
type Set struct {
	label string
	kind  Kind
	words map[string]struct{}
}

// FromReader builds a Set from newline-separated entries. Each line is
// trimmed, NFKC-normalized, and lowercased; lines shorter than minWordLen
// runes are dropped. Blank lines are skipped, everything else is literal:
// password lists legitimately contain '#', '!' and friends.
func FromReader(label string, kind Kind, minWordLen int, r io.Reader) (*Set, error) {
	if strings.TrimSpace(label) == "" {
		return nil, fmt.Errorf("%w: empty label", ErrInvalidWordSet)
	}
	if minWordLen < 1 {
		minWordLen = 1
	}

	words := make(map[string]struct{})
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	for scanner.Scan() {
		word := Normalize(scanner.Text())
		if word == "" {
			continue
		}
		if len([]rune(word)) < minWordLen {
			continue
		}
		words[word] = struct{}{}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("wordlist: reading %q: %w", label, err)
	}
	if len(words) == 0 {
		return nil, fmt.Errorf("%w: %q has no usable entries", ErrInvalidWordSet, label)
	}

	return &Set{label: label, kind: kind, words: words}, nil
}

// Normalize applies the load-time canonical form: trimmed, NFKC folded,
// lowercased. Lookups against a Set must use the same form.
func Normalize(word string) string {
	return strings.ToLower(norm.NFKC.String(strings.TrimSpace(word)))
}

// Label names the set's source.
func (s *Set) Label() string { return s.label }

// Kind reports what the set represents.
func (s *Set) Kind() Kind { return s.kind }

// Contains reports membership of an already normalized word.
func (s *Set) Contains(word string) bool {
	_, ok := s.words[word]
	return ok
}

// Len is the number of entries in the set.
func (s *Set) Len() int { return len(s.words) }
