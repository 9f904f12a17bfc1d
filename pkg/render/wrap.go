package render

import (
	"strings"
	"time"
	"unicode/utf8"
)

// Wrap greedily word-wraps text at width columns: words accumulate onto the
// current line while currentLength + 1 + wordLength fits, otherwise the line
// is flushed and a new one starts. A single word longer than width occupies
// its own line, unbroken.
func Wrap(text string, width int) []string {
	words := strings.Fields(text)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	cur := words[0]
	for _, word := range words[1:] {
		if utf8.RuneCountInString(cur)+1+utf8.RuneCountInString(word) <= width {
			cur += " " + word
		} else {
			lines = append(lines, cur)
			cur = word
		}
	}
	return append(lines, cur)
}

// HumanTime renders a stored timestamp for display. A timestamp that fails to
// parse degrades to a placeholder rather than failing the render.
func HumanTime(ts string) string {
	t, err := time.Parse(time.RFC3339, ts)
	if err != nil {
		return "unknown date"
	}
	return t.Local().Format("Jan 2, 2006 15:04")
}
