package tokens

import (
	"strings"
	"sync"

	"github.com/pkoukk/tiktoken-go"
)

const encoding = "cl100k_base"

var (
	tk     *tiktoken.Tiktoken
	tkErr  error
	tkOnce sync.Once
)

func getTokenizer() (*tiktoken.Tiktoken, error) {
	tkOnce.Do(func() {
		tk, tkErr = tiktoken.GetEncoding(encoding)
	})
	return tk, tkErr
}

// Count estimates how many prompt tokens text occupies. When the BPE ranks
// cannot be loaded it falls back to a words-based estimate.
func Count(text string) int {
	if strings.TrimSpace(text) == "" {
		return 0
	}
	enc, err := getTokenizer()
	if err != nil {
		return Estimate(text)
	}
	return len(enc.Encode(text, nil, nil))
}

// Estimate approximates tokens as 4/3 of the word count.
func Estimate(text string) int {
	words := len(strings.Fields(text))
	return (words*4 + 2) / 3
}
