package memory

import (
	"regexp"
	"strings"
)

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}_]+`)

// Similarity is the Jaccard overlap of the significant words (longer than two
// characters, case-folded) of a and b. Empty inputs score 0.
func Similarity(a, b string) float64 {
	ta, tb := tokenSet(a), tokenSet(b)

	union := len(ta)
	intersection := 0
	for t := range tb {
		if _, ok := ta[t]; ok {
			intersection++
		} else {
			union++
		}
	}

	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

func tokenSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, tok := range nonWord.Split(strings.ToLower(s), -1) {
		if len([]rune(tok)) > 2 {
			set[tok] = struct{}{}
		}
	}
	return set
}
