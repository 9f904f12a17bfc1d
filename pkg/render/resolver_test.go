package render_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/sidenote/pkg/core"
	"github.com/aretw0/sidenote/pkg/render"
)

func TestMarkers_ExcludesOutOfBounds(t *testing.T) {
	r := render.NewResolver(0)
	doc := core.Snapshot("/tmp/a.go", "one\ntwo\nthree", 1) // 3 lines

	anns := []core.Annotation{
		{FilePath: "/tmp/a.go", Line: 0, Text: "ok", Timestamp: "2025-06-01T10:00:00Z"},
		{FilePath: "/tmp/a.go", Line: 2, Text: "last line", Timestamp: "2025-06-01T10:00:00Z"},
		{FilePath: "/tmp/a.go", Line: 3, Text: "stale, document shrank", Timestamp: "2025-06-01T10:00:00Z"},
		{FilePath: "/tmp/a.go", Line: 99, Text: "way out", Timestamp: "2025-06-01T10:00:00Z"},
	}

	markers := r.Markers(doc, anns)
	require.Len(t, markers, 2)
	assert.Equal(t, 0, markers[0].Line)
	assert.Equal(t, 2, markers[1].Line)
}

func TestMarkers_SortedByLine(t *testing.T) {
	r := render.NewResolver(0)
	doc := core.Snapshot("/tmp/a.go", "a\nb\nc\nd", 1)

	anns := []core.Annotation{
		{FilePath: "/tmp/a.go", Line: 3, Text: "three", Timestamp: ""},
		{FilePath: "/tmp/a.go", Line: 1, Text: "one", Timestamp: ""},
	}

	markers := r.Markers(doc, anns)
	require.Len(t, markers, 2)
	assert.Equal(t, []int{1, 3}, []int{markers[0].Line, markers[1].Line})
}

func TestHover_UnparseableTimestamp(t *testing.T) {
	r := render.NewResolver(0)
	hover := r.Hover(core.Annotation{Text: "note", Timestamp: "not-a-date"})
	assert.Contains(t, hover, "unknown date")
}

func TestHover_WrapsText(t *testing.T) {
	r := render.NewResolver(10)
	hover := r.Hover(core.Annotation{Text: "alpha beta gamma delta", Timestamp: "2025-06-01T10:00:00Z"})
	assert.Contains(t, hover, "alpha beta\n")
}

func TestWrap_GreedyAtSixty(t *testing.T) {
	// 130 characters of normally spaced words.
	text := strings.TrimSpace(strings.Repeat("lorem ipsum dolor sit amet ", 5))[:130]
	lines := render.Wrap(text, 60)

	require.NotEmpty(t, lines)
	for _, line := range lines {
		assert.LessOrEqual(t, utf8.RuneCountInString(line), 60)
	}

	// Nothing is lost or reordered by wrapping.
	assert.Equal(t, strings.Fields(text), strings.Fields(strings.Join(lines, " ")))
}

func TestWrap_OverlongWordOwnLine(t *testing.T) {
	long := strings.Repeat("x", 75)
	lines := render.Wrap("short "+long+" tail", 60)

	require.Len(t, lines, 3)
	assert.Equal(t, "short", lines[0])
	assert.Equal(t, long, lines[1], "a word exceeding the width occupies its own line unbroken")
	assert.Equal(t, "tail", lines[2])
}

func TestWrap_Empty(t *testing.T) {
	assert.Nil(t, render.Wrap("   ", 60))
	assert.Nil(t, render.Wrap("", 60))
}

func TestWrap_BoundaryFit(t *testing.T) {
	// "aaaa bbbb" is exactly 9 runes: fits at width 9, splits at width 8.
	assert.Equal(t, []string{"aaaa bbbb"}, render.Wrap("aaaa bbbb", 9))
	assert.Equal(t, []string{"aaaa", "bbbb"}, render.Wrap("aaaa bbbb", 8))
}

func TestHumanTime(t *testing.T) {
	assert.Equal(t, "unknown date", render.HumanTime(""))
	assert.Equal(t, "unknown date", render.HumanTime("garbage"))
	assert.NotEqual(t, "unknown date", render.HumanTime("2025-06-01T10:00:00Z"))
}
