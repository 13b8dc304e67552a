package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salman3757/passgauge/api/schemas"
)

func TestDictionaryDetector_ExactMatch(t *testing.T) {
	t.Parallel()
	det := NewDictionaryDetector(testLogger())
	sets := []WordSet{newTestWordSet("common", "password", "dragon")}

	t.Run("raw match", func(t *testing.T) {
		t.Parallel()
		got := det.Detect("password", sets)

		require.Len(t, got, 1)
		f := got[0]
		assert.Equal(t, schemas.KindDictionaryMatch, f.Kind)
		assert.Equal(t, 0, f.Start)
		assert.Equal(t, 8, f.End)
		assert.Equal(t, "common", f.Source)
		// Naive estimate 37.6 bits minus the 4-bit residual floor.
		assert.InDelta(t, 33.60, f.SeverityBits, 0.05)
		assert.Contains(t, f.Description, `"common"`)
	})

	t.Run("case folded", func(t *testing.T) {
		t.Parallel()
		got := det.Detect("PaSsWoRd", sets)
		require.Len(t, got, 1)
		// Uppercase widens the observed pool, so the severity grows with it.
		assert.InDelta(t, 41.60, got[0].SeverityBits, 0.05)
	})

	t.Run("leet decoded match", func(t *testing.T) {
		t.Parallel()
		got := det.Detect("p4ssw0rd", sets)

		require.Len(t, got, 1)
		assert.Equal(t, 0, got[0].Start)
		assert.Equal(t, 8, got[0].End)
		assert.Contains(t, got[0].Description, "leet")
		assert.InDelta(t, 37.36, got[0].SeverityBits, 0.05)
	})

	t.Run("exact hit suppresses window rescan of the same set", func(t *testing.T) {
		t.Parallel()
		// "word" is also listed, but the whole-password hit already covers it.
		overlapping := []WordSet{newTestWordSet("common", "password", "word")}
		got := det.Detect("password", overlapping)
		require.Len(t, got, 1)
		assert.Equal(t, 8, got[0].End)
	})
}

func TestDictionaryDetector_WindowScan(t *testing.T) {
	t.Parallel()
	det := NewDictionaryDetector(testLogger())

	t.Run("embedded token", func(t *testing.T) {
		t.Parallel()
		sets := []WordSet{newTestWordSet("common", "password")}
		got := det.Detect("xxpasswordxx", sets)

		require.Len(t, got, 1)
		f := got[0]
		assert.Equal(t, 2, f.Start)
		assert.Equal(t, 10, f.End)
		// (8*log2(26) - log2(50000)) scaled by 8/12 coverage.
		assert.InDelta(t, 14.66, f.SeverityBits, 0.05)
	})

	t.Run("longest token claims the region", func(t *testing.T) {
		t.Parallel()
		sets := []WordSet{newTestWordSet("common", "pass", "password")}
		got := det.Detect("passwords1", sets)

		require.Len(t, got, 1)
		assert.Equal(t, 0, got[0].Start)
		assert.Equal(t, 8, got[0].End)
	})

	t.Run("short windows are not probed", func(t *testing.T) {
		t.Parallel()
		sets := []WordSet{newTestWordSet("common", "abc")}
		assert.Empty(t, det.Detect("xabcx", sets))
	})

	t.Run("leet window shares the claim registry", func(t *testing.T) {
		t.Parallel()
		sets := []WordSet{newTestWordSet("common", "pass")}
		got := det.Detect("xxp4ssxx", sets)

		require.Len(t, got, 1)
		assert.Equal(t, 2, got[0].Start)
		assert.Equal(t, 6, got[0].End)
		assert.Contains(t, got[0].Description, "leet")
	})

	t.Run("distinct tokens both report", func(t *testing.T) {
		t.Parallel()
		sets := []WordSet{newTestWordSet("common", "horse", "staple")}
		got := det.Detect("horsexstaple", sets)

		require.Len(t, got, 2)
		assert.Equal(t, 0, got[0].Start)
		assert.Equal(t, 5, got[0].End)
		assert.Equal(t, 6, got[1].Start)
		assert.Equal(t, 12, got[1].End)
	})
}

func TestDictionaryDetector_MultipleSets(t *testing.T) {
	t.Parallel()
	det := NewDictionaryDetector(testLogger())
	sets := []WordSet{
		newTestWordSet("leaked", "password"),
		newTestWordSet("english", "sword"),
	}

	got := det.Detect("xxpasswordxx", sets)

	require.Len(t, got, 2)
	assert.Equal(t, "leaked", got[0].Source)
	assert.Equal(t, 2, got[0].Start)
	assert.Equal(t, 10, got[0].End)
	assert.Equal(t, "english", got[1].Source)
	assert.Equal(t, 5, got[1].Start)
	assert.Equal(t, 10, got[1].End)
}

func TestDictionaryDetector_NoSets(t *testing.T) {
	t.Parallel()
	det := NewDictionaryDetector(testLogger())

	assert.Nil(t, det.Detect("password", nil))
	assert.Nil(t, det.Detect("password", []WordSet{}))
	assert.Empty(t, det.Detect("password", []WordSet{newTestWordSet("empty")}))
	assert.Empty(t, det.Detect("", []WordSet{newTestWordSet("common", "password")}))
}
