package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/aretw0/sidenote"
)

var (
	verbose    bool
	configPath string
	storePath  string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "sidenote",
	Short: "Line-anchored annotations that live outside your files",
	Long: `Sidenote attaches notes to specific lines of your files without
modifying the files themselves. Annotations are kept in a single JSON store
with atomic writes and automatic backup of corrupt data.`,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(os.Stderr, opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path")
	rootCmd.PersistentFlags().StringVar(&storePath, "store", "", "Annotation store file path")
}

// resolveStore applies the --store flag, environment and config resolution.
func resolveStore() string {
	path, err := sidenote.ResolveStorePath(storePath, "", configPath)
	if err != nil {
		fatal("Failed to resolve store path", err)
	}
	return path
}

// newEngine assembles an engine for batch commands.
func newEngine(extra ...sidenote.Option) *sidenote.Engine {
	opts := append([]sidenote.Option{
		sidenote.WithStorePath(resolveStore()),
		sidenote.WithLogger(slog.Default()),
	}, extra...)

	eng, err := sidenote.New(opts...)
	if err != nil {
		fatal("Failed to initialize sidenote", err)
	}
	return eng
}
