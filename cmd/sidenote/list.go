package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/sidenote/pkg/core"
	"github.com/aretw0/sidenote/pkg/render"
)

var (
	listJSON bool
	listGlob string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all annotations",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		eng := newEngine()
		defer eng.Close()

		ctx := context.Background()

		var annotations []core.Annotation
		var err error
		if listGlob != "" {
			querier, ok := eng.Store().(core.GlobQuerier)
			if !ok {
				fmt.Fprintln(os.Stderr, "Store does not support glob queries")
				os.Exit(1)
			}
			annotations, err = querier.QueryGlob(ctx, listGlob)
		} else {
			annotations, err = eng.List(ctx)
		}
		if err != nil {
			fatal("Failed to list annotations", err)
		}

		if listJSON {
			encoder := json.NewEncoder(os.Stdout)
			encoder.SetIndent("", "  ")
			if err := encoder.Encode(annotations); err != nil {
				fatal("Failed to encode JSON", err)
			}
			return
		}

		for _, ann := range annotations {
			fmt.Printf("%s:%d  %s  (%s)\n", ann.FilePath, ann.Line+1, ann.Text, render.HumanTime(ann.Timestamp))
		}
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Output in JSON format")
	listCmd.Flags().StringVar(&listGlob, "glob", "", "Filter annotations by file path glob (e.g. '**/*.go')")
}
