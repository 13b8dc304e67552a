package analysis

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salman3757/passgauge/api/schemas"
)

func TestBuildPool_ClassUnion(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name     string
		opts     schemas.GeneratorOptions
		wantSize int
	}{
		{
			name:     "lower only",
			opts:     schemas.GeneratorOptions{Length: 8, UseLower: true},
			wantSize: 26,
		},
		{
			name:     "lower and upper",
			opts:     schemas.GeneratorOptions{Length: 8, UseLower: true, UseUpper: true},
			wantSize: 52,
		},
		{
			name:     "all classes",
			opts:     schemas.GeneratorOptions{Length: 8, UseLower: true, UseUpper: true, UseDigits: true, UseSymbols: true},
			wantSize: 26 + 26 + 10 + 14,
		},
		{
			name:     "digits and symbols",
			opts:     schemas.GeneratorOptions{Length: 8, UseDigits: true, UseSymbols: true},
			wantSize: 24,
		},
	}

	for _, tc := range testCases {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			pool, err := BuildPool(tt.opts)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSize, pool.Size())
			assert.False(t, pool.IsPattern())
		})
	}
}

func TestBuildPool_Reproducible(t *testing.T) {
	t.Parallel()
	opts := schemas.GeneratorOptions{Length: 10, UseLower: true, UseDigits: true}
	a, err := BuildPool(opts)
	require.NoError(t, err)
	b, err := BuildPool(opts)
	require.NoError(t, err)
	assert.Equal(t, a.Runes(), b.Runes(), "two builds of the same options must agree rune for rune")
}

func TestBuildPool_ExcludeAmbiguous(t *testing.T) {
	t.Parallel()
	pool, err := BuildPool(schemas.GeneratorOptions{
		Length:           8,
		UseLower:         true,
		UseUpper:         true,
		UseDigits:        true,
		ExcludeAmbiguous: true,
	})
	require.NoError(t, err)

	// I, l, 1, O, 0, o all gone.
	assert.Equal(t, 62-6, pool.Size())
	for _, r := range AmbiguousChars {
		assert.NotContainsf(t, pool.Runes(), r, "ambiguous rune %q should be removed", string(r))
	}
}

func TestBuildPool_ExcludedChars(t *testing.T) {
	t.Parallel()
	pool, err := BuildPool(schemas.GeneratorOptions{
		Length:        8,
		UseLower:      true,
		ExcludedChars: "aeiou",
	})
	require.NoError(t, err)
	assert.Equal(t, 21, pool.Size())
	assert.NotContains(t, pool.Runes(), 'a')
	assert.Contains(t, pool.Runes(), 'b')
}

func TestBuildPool_Failures(t *testing.T) {
	t.Parallel()
	testCases := []struct {
		name string
		opts schemas.GeneratorOptions
	}{
		{
			name: "no class flags and no pattern",
			opts: schemas.GeneratorOptions{Length: 8},
		},
		{
			name: "zero length",
			opts: schemas.GeneratorOptions{Length: 0, UseLower: true},
		},
		{
			name: "negative length",
			opts: schemas.GeneratorOptions{Length: -3, UseLower: true},
		},
		{
			name: "exclusions empty the pool",
			opts: schemas.GeneratorOptions{Length: 8, UseDigits: true, ExcludedChars: "0123456789"},
		},
		{
			name: "pattern position resolves empty",
			opts: schemas.GeneratorOptions{CustomPattern: "LDD", ExcludedChars: lowerChars},
		},
		{
			name: "pattern wildcard without class flags",
			opts: schemas.GeneratorOptions{CustomPattern: "??"},
		},
	}

	for _, tc := range testCases {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := BuildPool(tt.opts)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidOptions), "expected ErrInvalidOptions, got %v", err)
		})
	}
}

func TestBuildPool_PatternClassSizes(t *testing.T) {
	t.Parallel()
	pool, err := BuildPool(schemas.GeneratorOptions{CustomPattern: "LLDD"})
	require.NoError(t, err)

	require.True(t, pool.IsPattern())
	assert.Equal(t, []int{26, 26, 10, 10}, pool.ClassSizes())
	assert.Equal(t, 4, pool.Length())
	assert.Zero(t, pool.Size(), "pattern pools have no flat alphabet")
}

func TestBuildPool_PatternLiterals(t *testing.T) {
	t.Parallel()
	pool, err := BuildPool(schemas.GeneratorOptions{CustomPattern: "U-DD"})
	require.NoError(t, err)

	// The dash is literal and contributes nothing to entropy.
	assert.Equal(t, []int{26, 1, 10, 10}, pool.ClassSizes())
	assert.InDelta(t, 4.700+3.322+3.322, pool.EntropyBits(), 0.01)
}

func TestBuildPool_PatternWildcardUsesActivePool(t *testing.T) {
	t.Parallel()
	pool, err := BuildPool(schemas.GeneratorOptions{
		CustomPattern: "?",
		UseLower:      true,
		UseDigits:     true,
	})
	require.NoError(t, err)
	assert.Equal(t, []int{36}, pool.ClassSizes())
}

func TestPoolEntropyBits(t *testing.T) {
	t.Parallel()

	// 12 lowercase characters: 12 * log2(26) = 56.4 bits.
	pool, err := BuildPool(schemas.GeneratorOptions{Length: 12, UseLower: true})
	require.NoError(t, err)
	assert.InDelta(t, 56.4, pool.EntropyBits(), 0.05)

	pattern, err := BuildPool(schemas.GeneratorOptions{CustomPattern: "LLDD"})
	require.NoError(t, err)
	assert.InDelta(t, 2*4.700+2*3.322, pattern.EntropyBits(), 0.01)
}
