package tui

import (
	"fmt"
	"strings"

	"github.com/iksnae/thread-digest/internal"
)

// WordCloud renders a frequency index. A Model without one skips the section.
type WordCloud interface {
	Render(index internal.FrequencyIndex, width int, theme Theme) string
}

// BarCloud draws the most frequent words as horizontal bars.
type BarCloud struct {
	Max int
}

// Render implements WordCloud.
func (c BarCloud) Render(index internal.FrequencyIndex, width int, theme Theme) string {
	n := c.Max
	if n <= 0 {
		n = 10
	}
	top := index.Top(n)
	if len(top) == 0 {
		return ""
	}

	wordWidth := 0
	for _, kw := range top {
		if n := len([]rune(kw.Word)); n > wordWidth {
			wordWidth = n
		}
	}
	if wordWidth > 20 {
		wordWidth = 20
	}

	barSpace := width - wordWidth - 8
	if barSpace < 10 {
		barSpace = 10
	}
	highest := top[0].Count

	var b strings.Builder
	for _, kw := range top {
		word := kw.Word
		if r := []rune(word); len(r) > wordWidth {
			word = string(r[:wordWidth-1]) + "…"
		}
		bar := kw.Count * barSpace / highest
		if bar < 1 {
			bar = 1
		}
		fmt.Fprintf(&b, "%-*s %s %d\n", wordWidth, word, theme.Bar.Render(strings.Repeat("█", bar)), kw.Count)
	}
	return strings.TrimRight(b.String(), "\n")
}
