package main

import (
	"fmt"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/aretw0/sidenote/internal/tui"
)

// browseCmd represents the browse command
var browseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse annotations interactively",
	Long:  `Open a terminal UI over the annotation store: navigate, open files, edit, delete and yank annotation text.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
			fmt.Fprintln(os.Stderr, "browse requires a terminal; use 'sidenote list' in scripts")
			os.Exit(1)
		}

		eng := newEngine()
		defer eng.Close()

		if err := tui.Run(eng); err != nil {
			fatal("TUI exited with error", err)
		}
	},
}

func init() {
	rootCmd.AddCommand(browseCmd)
}
