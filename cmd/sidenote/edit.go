package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aretw0/sidenote"
)

// editCmd represents the edit command
var editCmd = &cobra.Command{
	Use:   "edit <file> <line>",
	Short: "Edit an existing annotation",
	Long:  `Open the annotation at the given 1-based line for editing. The prompt is prefilled with the current text.`,
	Args:  cobra.ExactArgs(2),
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

		if err := eng.Annotate(context.Background(), args[0], line); err != nil {
			fatal("Failed to edit annotation", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
}
