package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/aretw0/sidenote/pkg/render"
)

// watchCmd represents the watch command
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow the annotation store and reprint on change",
	Long:  `Watch the store file and reprint the annotation list whenever it changes, including writes from other processes.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		eng := newEngine()
		defer eng.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		reprint := func() {
			annotations, err := eng.List(ctx)
			if err != nil {
				fmt.Fprintf(os.Stderr, "failed to list annotations: %v\n", err)
				return
			}

			fmt.Printf("--- %d annotation(s) ---\n", len(annotations))
			for _, ann := range annotations {
				fmt.Printf("%s:%d  %s  (%s)\n", ann.FilePath, ann.Line+1, ann.Text, render.HumanTime(ann.Timestamp))
			}
		}

		sub := eng.SubscribeChanged(reprint)
		defer sub.Cancel()

		if err := eng.Start(ctx); err != nil {
			fatal("Failed to start watching", err)
		}

		reprint()
		<-ctx.Done()
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
}
