package internal

import (
	"sort"
	"strings"
)

// FrequencyIndex maps a case-sensitive token to its occurrence count
type FrequencyIndex map[string]int

// KeywordCount is one entry of a FrequencyIndex
type KeywordCount struct {
	Word  string `json:"word" yaml:"word"`
	Count int    `json:"count" yaml:"count"`
}

func isWordDelimiter(r rune) bool {
	return r == ' ' || r == ',' || r == '.' || r == '\n'
}

// Analyze splits text on runs of spaces, commas, periods and newlines and
// counts each remaining token.
func Analyze(text string) FrequencyIndex {
	index := make(FrequencyIndex)
	for _, word := range strings.FieldsFunc(text, isWordDelimiter) {
		index[word]++
	}
	return index
}

// Top returns up to n entries ordered by count, highest first. Equal counts
// are ordered by word. n <= 0 returns every entry.
func (f FrequencyIndex) Top(n int) []KeywordCount {
	words := make([]KeywordCount, 0, len(f))
	for word, count := range f {
		words = append(words, KeywordCount{Word: word, Count: count})
	}
	sort.Slice(words, func(i, j int) bool {
		if words[i].Count != words[j].Count {
			return words[i].Count > words[j].Count
		}
		return words[i].Word < words[j].Word
	})
	if n > 0 && n < len(words) {
		words = words[:n]
	}
	return words
}
