// File: internal/wordlist/sources.go

package wordlist

import (
	"fmt"
	"sort"
)

// Source describes a named, remotely hosted word list the tool knows how to
// fetch and cache.
type Source struct {
	// Name is the registry key and the cache file stem (<Name>.txt).
	Name string
	// URL is where the raw list lives.
	URL string
	// Kind tells the scorer how to treat matches.
	Kind Kind
	// MinWordLen drops entries shorter than this many runes at load time.
	MinWordLen int
	// Description is shown by the wordlists listing command.
	Description string
}

// registry holds the built-in sources. Compromised-credential lists keep
// every entry, including single characters; dictionary lists drop words too
// short to ever claim a window.
var registry = map[string]Source{
	"seclists_200": {
		Name:        "seclists_200",
		URL:         "https://raw.githubusercontent.com/danielmiessler/SecLists/master/Passwords/2023-200_most_used_passwords.txt",
		Kind:        KindCompromised,
		MinWordLen:  1,
		Description: "200 most used passwords of 2023 (SecLists)",
	},
	"seclists_10k": {
		Name:        "seclists_10k",
		URL:         "https://raw.githubusercontent.com/danielmiessler/SecLists/master/Passwords/Common-Credentials/10k-most-common.txt",
		Kind:        KindCompromised,
		MinWordLen:  1,
		Description: "10k most common credentials (SecLists)",
	},
	"english_words": {
		Name:        "english_words",
		URL:         "https://raw.githubusercontent.com/dwyl/english-words/master/words_alpha.txt",
		Kind:        KindDictionary,
		MinWordLen:  3,
		Description: "English dictionary, alphabetic entries only (dwyl)",
	},
	"french_words": {
		Name:        "french_words",
		URL:         "https://raw.githubusercontent.com/Taknok/French-Wordlist/master/francais.txt",
		Kind:        KindDictionary,
		MinWordLen:  3,
		Description: "French dictionary (Taknok)",
	},
}

// LookupSource resolves a registry name.
func LookupSource(name string) (Source, error) {
	src, ok := registry[name]
	if !ok {
		return Source{}, fmt.Errorf("wordlist: unknown source %q (known: %v)", name, SourceNames())
	}
	return src, nil
}

// SourceNames returns the registry keys in stable order.
func SourceNames() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Sources returns every built-in source, ordered by name.
func Sources() []Source {
	out := make([]Source, 0, len(registry))
	for _, name := range SourceNames() {
		out = append(out, registry[name])
	}
	return out
}
