package views

import (
	"context"

	"github.com/aretw0/sidenote/pkg/core"
)

// Service is the slice of the engine the TUI needs.
type Service interface {
	List(ctx context.Context) ([]core.Annotation, error)
	Put(ctx context.Context, filePath string, line int, text string) error
	Remove(ctx context.Context, filePath string, line int) error
}

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}

// View switching messages

// SwitchToBrowserMsg returns to the annotation list.
type SwitchToBrowserMsg struct{}

// SwitchToEditMsg opens the edit form for an annotation anchor.
type SwitchToEditMsg struct {
	Target core.Annotation
}

// SwitchToDeleteMsg opens the delete confirmation for an annotation.
type SwitchToDeleteMsg struct {
	Target core.Annotation
}

// OpenEditorMsg asks the app to open the annotated file in $EDITOR.
type OpenEditorMsg struct {
	Path string
	Line int
}
