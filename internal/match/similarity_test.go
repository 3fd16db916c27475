package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSimilarity(t *testing.T) {
	assert.InDelta(t, 1.0, Similarity("Pilot", "pilot"), 0.001)
	assert.InDelta(t, 1.0, Similarity("The Rains of Castamere", "Rains of Castamere"), 0.001)
	assert.Zero(t, Similarity("", "Pilot"))
	assert.Less(t, Similarity("Pilot", "Ozymandias"), EpisodeThreshold)
}

func TestSimilarity_SequenceNumbers(t *testing.T) {
	same := Similarity("Part 2", "Part 2")
	different := Similarity("Part 2", "Part 3")
	assert.Greater(t, same, different)
}

func TestBest(t *testing.T) {
	candidates := []string{"Cat's in the Bag...", "Pilot", "...And the Bag's in the River"}

	r := Best("pilot", candidates)
	assert.Equal(t, 1, r.Index)
	assert.Equal(t, ConfidenceHigh, r.Confidence)

	r = Best("Zzyzx", candidates)
	assert.Equal(t, -1, r.Index)
	assert.Equal(t, ConfidenceNone, r.Confidence)

	assert.Equal(t, -1, Best("Pilot", nil).Index)
}

func TestConfidence_String(t *testing.T) {
	assert.Equal(t, "high", ConfidenceHigh.String())
	assert.Equal(t, "medium", ConfidenceMedium.String())
	assert.Equal(t, "low", ConfidenceLow.String())
	assert.Equal(t, "none", ConfidenceNone.String())
}
