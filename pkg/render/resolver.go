// Package render computes the on-screen presentation of stored annotations
// against a live document snapshot.
//
// Rendering is a pure function of (document snapshot, annotations for the
// document's path): no component retains markers as authoritative state, they
// are recomputed on demand.
package render

import (
	"sort"
	"strings"

	"github.com/aretw0/sidenote/pkg/core"
)

// DefaultWidth is the column at which hover text is word-wrapped.
const DefaultWidth = 60

// Symbol is the visual indicator rendered at the end of an annotated line.
const Symbol = "◆"

// Marker is the presentation payload for one renderable annotation.
type Marker struct {
	Line  int    // 0-based line the marker is attached to
	Text  string // the annotation text itself
	Hover string // wrapped preview plus humanized timestamp
}

// Resolver maps stored annotations onto a currently displayed document.
type Resolver struct {
	width int
}

// NewResolver creates a Resolver wrapping hover text at the given width.
// Non-positive widths fall back to DefaultWidth.
func NewResolver(width int) *Resolver {
	if width <= 0 {
		width = DefaultWidth
	}
	return &Resolver{width: width}
}

// Width returns the configured wrap column.
func (r *Resolver) Width() int {
	return r.width
}

// Markers computes the renderable subset of anns for the document snapshot,
// sorted by line.
//
// An annotation whose line is at or past the document's current line count is
// excluded: the document has since shrunk and the anchor is unrenderable. The
// annotation itself stays in the store untouched; it becomes visible again if
// the document regains that many lines.
func (r *Resolver) Markers(doc core.Document, anns []core.Annotation) []Marker {
	var out []Marker
	for _, a := range anns {
		if a.Line < 0 || a.Line >= doc.LineCount() {
			continue
		}
		out = append(out, Marker{
			Line:  a.Line,
			Text:  a.Text,
			Hover: r.Hover(a),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Line < out[j].Line })
	return out
}

// Hover builds the preview payload for one annotation: the text word-wrapped
// at the configured width, followed by the humanized timestamp.
func (r *Resolver) Hover(a core.Annotation) string {
	var b strings.Builder
	for _, line := range Wrap(a.Text, r.width) {
		b.WriteString(line)
		b.WriteString("\n")
	}
	b.WriteString("— ")
	b.WriteString(HumanTime(a.Timestamp))
	return b.String()
}
