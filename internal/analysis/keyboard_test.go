package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salman3757/passgauge/api/schemas"
)

func TestKeyboardDetector(t *testing.T) {
	t.Parallel()
	det := NewKeyboardDetector(testLogger())

	testCases := []struct {
		name     string
		password string
		want     []schemas.Finding
	}{
		{
			name:     "top row walk",
			password: "qwerty",
			want: []schemas.Finding{{
				Kind: schemas.KindKeyboardPattern, Start: 0, End: 6, SeverityBits: 12.0,
			}},
		},
		{
			name:     "case insensitive",
			password: "QwErTy",
			want: []schemas.Finding{{
				Kind: schemas.KindKeyboardPattern, Start: 0, End: 6, SeverityBits: 12.0,
			}},
		},
		{
			name:     "minimum length walk",
			password: "asd",
			want: []schemas.Finding{{
				Kind: schemas.KindKeyboardPattern, Start: 0, End: 3, SeverityBits: 6.0,
			}},
		},
		{
			name:     "two keys is not a walk",
			password: "qw",
			want:     nil,
		},
		{
			name:     "walk in the middle",
			password: "xqwertyx",
			want: []schemas.Finding{{
				Kind: schemas.KindKeyboardPattern, Start: 1, End: 7, SeverityBits: 12.0,
			}},
		},
		{
			name:     "reversed row",
			password: "poiuy",
			want: []schemas.Finding{{
				Kind: schemas.KindKeyboardPattern, Start: 0, End: 5, SeverityBits: 10.0,
			}},
		},
		{
			name:     "digit row",
			password: "4567",
			want: []schemas.Finding{{
				Kind: schemas.KindKeyboardPattern, Start: 0, End: 4, SeverityBits: 8.0,
			}},
		},
		{
			name:     "azerty top row",
			password: "azerty",
			want: []schemas.Finding{{
				Kind: schemas.KindKeyboardPattern, Start: 0, End: 6, SeverityBits: 12.0,
			}},
		},
		{
			name:     "two separate walks",
			password: "asdf1234",
			want: []schemas.Finding{
				{Kind: schemas.KindKeyboardPattern, Start: 0, End: 4, SeverityBits: 8.0},
				{Kind: schemas.KindKeyboardPattern, Start: 4, End: 8, SeverityBits: 8.0},
			},
		},
		{
			name:     "shared qwerty and azerty tail reports once",
			password: "yuiop",
			want: []schemas.Finding{{
				Kind: schemas.KindKeyboardPattern, Start: 0, End: 5, SeverityBits: 10.0,
			}},
		},
		{
			name:     "ordinary word",
			password: "hello",
			want:     nil,
		},
		{
			name:     "empty",
			password: "",
			want:     nil,
		},
	}

	for _, tc := range testCases {
		tt := tc
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := det.Detect(tt.password, nil)
			require.Len(t, got, len(tt.want))
			for i, want := range tt.want {
				assert.Equal(t, want.Kind, got[i].Kind)
				assert.Equal(t, want.Start, got[i].Start)
				assert.Equal(t, want.End, got[i].End)
				assert.InDelta(t, want.SeverityBits, got[i].SeverityBits, 0.001)
				assert.NotEmpty(t, got[i].Description)
			}
		})
	}
}

func TestKeyboardDetector_UnicodePositions(t *testing.T) {
	t.Parallel()
	det := NewKeyboardDetector(testLogger())

	// Offsets are rune offsets, so a leading multibyte rune shifts the walk
	// by exactly one.
	got := det.Detect("äqwerty", nil)
	require.Len(t, got, 1)
	assert.Equal(t, 1, got[0].Start)
	assert.Equal(t, 7, got[0].End)
}
