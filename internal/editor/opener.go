// Package editor shells out to the user's preferred text editor.
package editor

import (
	"fmt"
	"os"
	"os/exec"
)

// Opener builds commands that open files in the user's editor.
type Opener struct{}

// NewOpener creates a new editor opener.
func NewOpener() *Opener {
	return &Opener{}
}

// OpenFile opens a file at the given 0-based line and blocks until the
// editor exits.
func (o *Opener) OpenFile(path string, line int) error {
	cmd, err := o.Command(path, line)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for opening a file at the given 0-based line.
// Useful for integrating with bubbletea's ExecProcess.
func (o *Opener) Command(path string, line int) (*exec.Cmd, error) {
	editor := o.findEditor()
	if editor == "" {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	args := []string{path}
	if line >= 0 {
		// The +N convention is understood by the vi family and nano.
		args = []string{fmt.Sprintf("+%d", line+1), path}
	}

	cmd := exec.Command(editor, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

func (o *Opener) findEditor() string {
	if editor := os.Getenv("EDITOR"); editor != "" {
		return editor
	}
	if visual := os.Getenv("VISUAL"); visual != "" {
		return visual
	}

	editors := []string{"nvim", "vim", "vi", "nano"}
	for _, editor := range editors {
		if path, err := exec.LookPath(editor); err == nil {
			return path
		}
	}

	return ""
}
