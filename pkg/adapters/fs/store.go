// Package fs implements the annotation store on top of a single JSON document.
//
// The file is the shared resource: all writers use a temp-write-then-rename
// discipline so a crash mid-write can never corrupt the previously committed
// file, and concurrent external readers see either the old or the new state.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/aretw0/sidenote/pkg/core"
)

// Store implements core.Store. It holds no in-memory collection: every
// mutation is a full load-mutate-save cycle.
type Store struct {
	path   string
	logger *slog.Logger
	now    func() time.Time
}

// Config holds the configuration for the filesystem store.
type Config struct {
	// Path is the location of the JSON store file.
	Path string

	// Logger is optional; when nil the store is silent.
	Logger *slog.Logger

	// Clock overrides time.Now, used by tests to control timestamps.
	Clock func() time.Time
}

// NewStore creates a filesystem-backed annotation store.
func NewStore(config Config) *Store {
	clock := config.Clock
	if clock == nil {
		clock = time.Now
	}
	return &Store{
		path:   config.Path,
		logger: config.Logger,
		now:    clock,
	}
}

// Path returns the location of the backing file.
func (s *Store) Path() string {
	return s.path
}

// Load reads the persisted collection.
//
// A missing file yields an empty collection. Bytes that fail to parse, or
// whose top-level shape is not {"notes": [...]}, trigger corruption recovery:
// the file is backed up and an empty collection is returned. Individual
// elements that fail validation are dropped (logged, not fatal), so a
// partially valid file still loads.
func (s *Store) Load(ctx context.Context) (core.Collection, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return core.Collection{Notes: []core.Annotation{}}, nil
	}
	if err != nil {
		return core.Collection{}, fmt.Errorf("failed to read store: %w", err)
	}
	return s.decode(data), nil
}

// decode never fails: corruption is recovered, invalid elements are dropped.
func (s *Store) decode(data []byte) core.Collection {
	var raw struct {
		Notes []json.RawMessage `json:"notes"`
	}
	if err := json.Unmarshal(data, &raw); err != nil || raw.Notes == nil {
		s.backup(data)
		return core.Collection{Notes: []core.Annotation{}}
	}

	notes := make([]core.Annotation, 0, len(raw.Notes))
	for i, elem := range raw.Notes {
		ann, ok := s.decodeElement(elem)
		if !ok {
			if s.logger != nil {
				s.logger.Debug("dropping invalid annotation", "index", i)
			}
			continue
		}
		notes = append(notes, ann)
	}
	return core.Collection{Notes: notes}
}

// decodeElement validates one stored element: path must be a string, line a
// number >= 0, text a string that is non-empty after trimming, timestamp a
// string. Valid elements are normalized (canonical path, trimmed text).
func (s *Store) decodeElement(raw json.RawMessage) (core.Annotation, bool) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return core.Annotation{}, false
	}

	path, ok := fields["filePath"].(string)
	if !ok {
		return core.Annotation{}, false
	}
	line, ok := fields["line"].(float64)
	if !ok || line < 0 {
		return core.Annotation{}, false
	}
	text, ok := fields["text"].(string)
	if !ok {
		return core.Annotation{}, false
	}
	timestamp, ok := fields["timestamp"].(string)
	if !ok {
		return core.Annotation{}, false
	}

	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return core.Annotation{}, false
	}
	canon, err := core.CanonicalPath(path)
	if err != nil {
		return core.Annotation{}, false
	}

	return core.Annotation{
		FilePath:  canon,
		Line:      int(line),
		Text:      trimmed,
		Timestamp: timestamp,
	}, true
}

// Save persists the full collection atomically. The parent directory is
// created idempotently; a nil Notes slice is normalized to an empty array so
// the persisted shape always matches {"notes": [...]}.
func (s *Store) Save(ctx context.Context, c core.Collection) error {
	if c.Notes == nil {
		c.Notes = []core.Annotation{}
	}

	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize store: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("failed to create store directory: %w", err)
	}

	if err := writeFileAtomic(s.path, data, 0644); err != nil {
		return fmt.Errorf("failed to write store: %w", err)
	}
	return nil
}

// Upsert creates or replaces the annotation at (filePath, line).
// The (canonical path, line) pair stays unique: an existing entry is replaced
// in place, never duplicated.
func (s *Store) Upsert(ctx context.Context, filePath string, line int, text string) error {
	if line < 0 {
		return &core.ValidationError{Field: "line", Message: "must be >= 0"}
	}
	trimmed, err := core.ValidateText(text)
	if err != nil {
		return err
	}
	canon, err := core.CanonicalPath(filePath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	c, err := s.Load(ctx)
	if err != nil {
		return err
	}

	ann := core.Annotation{
		FilePath:  canon,
		Line:      line,
		Text:      trimmed,
		Timestamp: core.NewTimestamp(s.now()),
	}

	replaced := false
	for i, existing := range c.Notes {
		if existing.FilePath == canon && existing.Line == line {
			c.Notes[i] = ann
			replaced = true
			break
		}
	}
	if !replaced {
		c.Notes = append(c.Notes, ann)
	}

	if s.logger != nil {
		s.logger.Debug("upserting annotation", "path", canon, "line", line, "replaced", replaced)
	}
	return s.Save(ctx, c)
}

// Delete removes the annotation at (filePath, line).
// Returns core.ErrNotFound without touching the file when nothing matched.
func (s *Store) Delete(ctx context.Context, filePath string, line int) error {
	canon, err := core.CanonicalPath(filePath)
	if err != nil {
		return fmt.Errorf("failed to resolve path: %w", err)
	}

	c, err := s.Load(ctx)
	if err != nil {
		return err
	}

	kept := c.Notes[:0]
	found := false
	for _, ann := range c.Notes {
		if ann.FilePath == canon && ann.Line == line {
			found = true
			continue
		}
		kept = append(kept, ann)
	}
	if !found {
		return core.ErrNotFound
	}

	c.Notes = kept
	return s.Save(ctx, c)
}

// Exists reports whether an annotation is stored at (filePath, line).
func (s *Store) Exists(ctx context.Context, filePath string, line int) (bool, error) {
	_, ok, err := s.Get(ctx, filePath, line)
	return ok, err
}

// Get retrieves the annotation at (filePath, line), if any.
func (s *Store) Get(ctx context.Context, filePath string, line int) (core.Annotation, bool, error) {
	canon, err := core.CanonicalPath(filePath)
	if err != nil {
		return core.Annotation{}, false, fmt.Errorf("failed to resolve path: %w", err)
	}

	c, err := s.Load(ctx)
	if err != nil {
		return core.Annotation{}, false, err
	}
	for _, ann := range c.Notes {
		if ann.FilePath == canon && ann.Line == line {
			return ann, true, nil
		}
	}
	return core.Annotation{}, false, nil
}

// ByFile returns the annotations for one file, in stored order.
func (s *Store) ByFile(ctx context.Context, filePath string) ([]core.Annotation, error) {
	canon, err := core.CanonicalPath(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path: %w", err)
	}

	c, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}
	var out []core.Annotation
	for _, ann := range c.Notes {
		if ann.FilePath == canon {
			out = append(out, ann)
		}
	}
	return out, nil
}

// AllSorted returns every annotation in the canonical presentation order:
// file path lexicographic, then line ascending. The sort is stable.
func (s *Store) AllSorted(ctx context.Context) ([]core.Annotation, error) {
	c, err := s.Load(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]core.Annotation, len(c.Notes))
	copy(out, c.Notes)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].FilePath != out[j].FilePath {
			return out[i].FilePath < out[j].FilePath
		}
		return out[i].Line < out[j].Line
	})
	return out, nil
}

// QueryGlob returns the sorted annotations whose canonical path matches the
// doublestar pattern (e.g. "**/*.go").
func (s *Store) QueryGlob(ctx context.Context, pattern string) ([]core.Annotation, error) {
	all, err := s.AllSorted(ctx)
	if err != nil {
		return nil, err
	}

	var out []core.Annotation
	for _, ann := range all {
		ok, err := doublestar.Match(pattern, filepath.ToSlash(ann.FilePath))
		if err != nil {
			return nil, fmt.Errorf("invalid glob pattern %q: %w", pattern, err)
		}
		if ok {
			out = append(out, ann)
		}
	}
	return out, nil
}

var _ core.Store = (*Store)(nil)
var _ core.GlobQuerier = (*Store)(nil)
