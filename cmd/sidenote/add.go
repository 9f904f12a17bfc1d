package main

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/aretw0/sidenote"
)

// addCmd represents the add command
var addCmd = &cobra.Command{
	Use:   "add <file> <line> [text...]",
	Short: "Add or replace an annotation",
	Long: `Attach an annotation to a line of a file. Line numbers are 1-based.
When no text is given, the annotation is captured interactively.`,
	Args: cobra.MinimumNArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		line, err := parseLine(args[1])
		if err != nil {
			fatal("Invalid arguments", err)
		}

		eng := newEngine(
			sidenote.WithHost(consoleHost{}),
			sidenote.WithEditor(consoleEditor{}),
		)
		defer eng.Close()

		ctx := context.Background()

		if len(args) > 2 {
			text := strings.Join(args[2:], " ")
			if err := eng.Put(ctx, args[0], line, text); err != nil {
				fatal("Failed to save annotation", err)
			}
			return
		}

		if err := eng.Annotate(ctx, args[0], line); err != nil {
			fatal("Failed to save annotation", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(addCmd)
}
