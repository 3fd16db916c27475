package match

import (
	"regexp"

	"github.com/hbollon/go-edlib"
)

// EpisodeThreshold is the minimum similarity for pairing episode titles
// whose numbering disagrees.
const EpisodeThreshold = 0.85

var numberRegex = regexp.MustCompile(`\b(\d+)\b`)

// Confidence is a coarse grade of a similarity score.
type Confidence int

const (
	ConfidenceNone   Confidence = iota // Score < 0.70
	ConfidenceLow                      // Score >= 0.70
	ConfidenceMedium                   // Score >= 0.85
	ConfidenceHigh                     // Score >= 0.95
)

func (c Confidence) String() string {
	switch c {
	case ConfidenceHigh:
		return "high"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceLow:
		return "low"
	default:
		return "none"
	}
}

// Result is the best candidate for a title. Index is -1 when nothing
// reached ConfidenceLow.
type Result struct {
	Index      int
	Score      float64
	Confidence Confidence
}

// Similarity returns the Jaro-Winkler similarity of the cleaned titles,
// adjusted for agreeing or disagreeing sequence numbers.
func Similarity(a, b string) float64 {
	ca, cb := CleanTitle(a), CleanTitle(b)
	if ca == "" || cb == "" {
		return 0
	}
	score := float64(edlib.JaroWinklerSimilarity(ca, cb))
	return adjustScoreForNumbers(score, numberRegex.FindAllString(ca, -1), numberRegex.FindAllString(cb, -1))
}

// Best picks the candidate most similar to title. The first of equal
// scores wins.
func Best(title string, candidates []string) Result {
	best := Result{Index: -1}
	for i, candidate := range candidates {
		if score := Similarity(title, candidate); score > best.Score {
			best.Index, best.Score = i, score
		}
	}

	switch {
	case best.Score >= 0.95:
		best.Confidence = ConfidenceHigh
	case best.Score >= 0.85:
		best.Confidence = ConfidenceMedium
	case best.Score >= 0.70:
		best.Confidence = ConfidenceLow
	default:
		best.Index = -1
	}
	return best
}

// adjustScoreForNumbers rewards a shared sequence number and penalizes a
// missing or different one. Titles without numbers are unaffected.
func adjustScoreForNumbers(score float64, parsedNums, candidateNums []string) float64 {
	if len(parsedNums) == 0 {
		return score
	}
	if len(candidateNums) == 0 {
		return score * 0.85
	}

	candidateSet := make(map[string]bool, len(candidateNums))
	for _, n := range candidateNums {
		candidateSet[n] = true
	}
	for _, n := range parsedNums {
		if candidateSet[n] {
			return min(score*1.05, 1.0)
		}
	}
	return score * 0.90
}
