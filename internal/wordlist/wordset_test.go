package wordlist

import (
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromReader(t *testing.T) {
	t.Parallel()

	t.Run("entries are trimmed, folded and lowercased", func(t *testing.T) {
		t.Parallel()
		input := "  Password  \nDRAGON\nＰassword\nﬁsh\n"

		set, err := FromReader("common", KindCompromised, 1, strings.NewReader(input))
		require.NoError(t, err)

		assert.Equal(t, "common", set.Label())
		assert.Equal(t, KindCompromised, set.Kind())
		assert.True(t, set.Contains("password"))
		assert.True(t, set.Contains("dragon"))
		// Fullwidth P and the fi ligature fold into plain ASCII.
		assert.True(t, set.Contains("fish"))
		assert.False(t, set.Contains("Password"))
		// Fullwidth and ASCII forms collapse into one entry.
		assert.Equal(t, 3, set.Len())
	})

	t.Run("min word length drops short entries", func(t *testing.T) {
		t.Parallel()
		set, err := FromReader("english", KindDictionary, 3, strings.NewReader("ab\nabc\nab\ncat\n"))
		require.NoError(t, err)

		assert.False(t, set.Contains("ab"))
		assert.True(t, set.Contains("abc"))
		assert.True(t, set.Contains("cat"))
		assert.Equal(t, 2, set.Len())
	})

	t.Run("only blank lines are skipped", func(t *testing.T) {
		t.Parallel()
		// Leaked credentials legitimately start with # or !, so there is
		// no comment syntax.
		set, err := FromReader("leaked", KindCompromised, 1, strings.NewReader("#1password\n\n   \n!root!\n"))
		require.NoError(t, err)

		assert.True(t, set.Contains("#1password"))
		assert.True(t, set.Contains("!root!"))
		assert.Equal(t, 2, set.Len())
	})

	t.Run("empty source is invalid", func(t *testing.T) {
		t.Parallel()
		_, err := FromReader("empty", KindDictionary, 1, strings.NewReader("\n\n"))
		assert.ErrorIs(t, err, ErrInvalidWordSet)
	})

	t.Run("min length can empty a source", func(t *testing.T) {
		t.Parallel()
		_, err := FromReader("short", KindDictionary, 5, strings.NewReader("cat\ndog\n"))
		assert.ErrorIs(t, err, ErrInvalidWordSet)
	})

	t.Run("blank label is invalid", func(t *testing.T) {
		t.Parallel()
		_, err := FromReader("  ", KindDictionary, 1, strings.NewReader("word\n"))
		assert.ErrorIs(t, err, ErrInvalidWordSet)
	})

	t.Run("read errors surface with the label", func(t *testing.T) {
		t.Parallel()
		boom := errors.New("disk gone")
		_, err := FromReader("flaky", KindDictionary, 1, iotest.ErrReader(boom))
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
		assert.Contains(t, err.Error(), "flaky")
	})

	t.Run("oversized lines are rejected", func(t *testing.T) {
		t.Parallel()
		_, err := FromReader("huge", KindDictionary, 1, strings.NewReader(strings.Repeat("a", maxLineBytes+1)))
		assert.Error(t, err)
	})
}

func TestNormalize(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name string
		in   string
		want string
	}{
		{name: "lowercases", in: "DRAGON", want: "dragon"},
		{name: "trims ascii and unicode space", in: " pass ", want: "pass"},
		{name: "folds fullwidth forms", in: "Ｐａｓｓ", want: "pass"},
		{name: "folds ligatures", in: "ﬁsh", want: "fish"},
		{name: "plain ascii unchanged", in: "hunter2", want: "hunter2"},
		{name: "symbols preserved", in: "#1Password!", want: "#1password!"},
	}

	for _, tc := range testCases {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestSourceRegistry(t *testing.T) {
	t.Parallel()

	t.Run("lookup known source", func(t *testing.T) {
		t.Parallel()
		src, err := LookupSource("seclists_10k")
		require.NoError(t, err)
		assert.Equal(t, KindCompromised, src.Kind)
		assert.Equal(t, 1, src.MinWordLen)
		assert.Contains(t, src.URL, "10k-most-common")
	})

	t.Run("unknown source names the alternatives", func(t *testing.T) {
		t.Parallel()
		_, err := LookupSource("rockyou")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "english_words")
	})

	t.Run("names are sorted and complete", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t,
			[]string{"english_words", "french_words", "seclists_10k", "seclists_200"},
			SourceNames())
	})

	t.Run("every source is well formed", func(t *testing.T) {
		t.Parallel()
		for _, src := range Sources() {
			assert.NotEmpty(t, src.Name)
			assert.True(t, strings.HasPrefix(src.URL, "https://"), src.Name)
			assert.GreaterOrEqual(t, src.MinWordLen, 1, src.Name)
			switch src.Kind {
			case KindDictionary:
				assert.Equal(t, 3, src.MinWordLen, src.Name)
			case KindCompromised:
				assert.Equal(t, 1, src.MinWordLen, src.Name)
			default:
				t.Fatalf("source %s has unknown kind %q", src.Name, src.Kind)
			}
		}
	})
}
