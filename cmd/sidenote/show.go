package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/sidenote/pkg/core"
	"github.com/aretw0/sidenote/pkg/render"
)

// showCmd represents the show command
var showCmd = &cobra.Command{
	Use:   "show <file>",
	Short: "Print a file with its annotations inline",
	Long: `Read the file's current content and print it with annotation markers.
Annotations anchored past the end of the file are reported but not shown;
they stay in the store untouched.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		content, err := os.ReadFile(args[0])
		if err != nil {
			fatal("Failed to read file", err)
		}

		eng := newEngine()
		defer eng.Close()

		ctx := context.Background()

		canon, err := core.CanonicalPath(args[0])
		if err != nil {
			fatal("Failed to resolve file path", err)
		}

		annotations, err := eng.Store().ByFile(ctx, canon)
		if err != nil {
			fatal("Failed to load annotations", err)
		}

		doc := core.Snapshot(canon, string(content), 0)
		markers := eng.Resolver().Markers(doc, annotations)

		byLine := make(map[int]render.Marker, len(markers))
		for _, m := range markers {
			byLine[m.Line] = m
		}

		for i := 0; i < doc.LineCount(); i++ {
			if m, ok := byLine[i]; ok {
				fmt.Printf("%4d %s %s  %s %s\n", i+1, render.Symbol, doc.LineText(i), render.Symbol, m.Text)
				continue
			}
			fmt.Printf("%4d   %s\n", i+1, doc.LineText(i))
		}

		if hidden := len(annotations) - len(markers); hidden > 0 {
			fmt.Fprintf(os.Stderr, "\n%d annotation(s) anchored beyond the end of the file (kept in store)\n", hidden)
		}
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
