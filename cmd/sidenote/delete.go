package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/aretw0/sidenote"
	"github.com/aretw0/sidenote/pkg/engine"
)

var deleteYes bool

// deleteCmd represents the delete command
var deleteCmd = &cobra.Command{
	Use:   "delete <file> <line>",
	Short: "Delete an annotation",
	Long:  `Delete the annotation at the given 1-based line after confirmation.`,
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		line, err := parseLine(args[1])
		if err != nil {
			fatal("Invalid arguments", err)
		}

		opts := []sidenote.Option{sidenote.WithHost(consoleHost{})}
		if !deleteYes {
			opts = append(opts, sidenote.WithConfirmer(consoleConfirmer{}))
		}

		eng := newEngine(opts...)
		defer eng.Close()

		if err := eng.Remove(context.Background(), args[0], line); err != nil {
			fatal("Failed to delete annotation", err)
		}
	},
}

var _ engine.Confirmer = consoleConfirmer{}

func init() {
	rootCmd.AddCommand(deleteCmd)
	deleteCmd.Flags().BoolVarP(&deleteYes, "yes", "y", false, "Skip the confirmation prompt")
}
