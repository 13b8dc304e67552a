package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCrossCheckScore(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, CrossCheckScore("password"), "top-listed passwords score 0")
	assert.GreaterOrEqual(t, CrossCheckScore("xK7!qP2@9rT4"), 3, "random mixed-class material scores high")

	// Pathologically long input must return promptly thanks to the rune cap.
	long := strings.Repeat("correct horse battery staple ", 200)
	score := CrossCheckScore(long)
	assert.GreaterOrEqual(t, score, 0)
	assert.LessOrEqual(t, score, 4)
}
