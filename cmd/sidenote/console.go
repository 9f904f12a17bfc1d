package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/aretw0/sidenote/pkg/engine"
)

// consoleEditor captures annotation text from stdin. An empty submission
// cancels instead of erroring, matching interactive editor surfaces.
type consoleEditor struct{}

func (consoleEditor) Edit(ctx context.Context, filePath string, line int, initial string) (string, bool, error) {
	if initial != "" {
		fmt.Printf("Current annotation: %s\n", initial)
	}
	fmt.Printf("Annotation for %s:%d (empty to cancel): ", filePath, line+1)

	reader := bufio.NewReader(os.Stdin)
	text, err := reader.ReadString('\n')
	if err != nil {
		return "", false, err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", false, nil
	}
	return text, true, nil
}

// consoleConfirmer asks a y/n question on stdin.
type consoleConfirmer struct{}

func (consoleConfirmer) Confirm(ctx context.Context, prompt string) bool {
	fmt.Printf("%s [y/N] ", prompt)

	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

// consoleHost surfaces engine notifications on the terminal. Rendering calls
// are inherited no-ops; a CLI has no marker surface.
type consoleHost struct {
	engine.NopHost
}

func (consoleHost) Notify(level engine.Level, msg string) {
	if level == engine.LevelInfo {
		fmt.Println(msg)
		return
	}
	fmt.Fprintln(os.Stderr, msg)
}

// parseLine converts a 1-based CLI line argument to the 0-based line used
// internally.
func parseLine(arg string) (int, error) {
	var line int
	if _, err := fmt.Sscanf(arg, "%d", &line); err != nil {
		return 0, fmt.Errorf("invalid line number %q", arg)
	}
	if line < 1 {
		return 0, fmt.Errorf("line numbers start at 1, got %d", line)
	}
	return line - 1, nil
}
