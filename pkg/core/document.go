package core

import "strings"

// Document is an immutable snapshot of a live document: its path and the line
// content at the moment the snapshot was taken. The snapshot may differ from
// what is on disk (unsaved edits), which is exactly why annotation positions
// are validated against it at render time rather than at storage time.
type Document struct {
	Path    string
	Lines   []string
	Version int
}

// Snapshot builds a Document from raw content.
func Snapshot(path, content string, version int) Document {
	return Document{
		Path:    path,
		Lines:   strings.Split(content, "\n"),
		Version: version,
	}
}

// LineCount returns the number of lines in the snapshot.
func (d Document) LineCount() int {
	return len(d.Lines)
}

// LineText returns the text of the 0-based line i, or "" when out of range.
func (d Document) LineText(i int) string {
	if i < 0 || i >= len(d.Lines) {
		return ""
	}
	return d.Lines[i]
}
