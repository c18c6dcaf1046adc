// Package main provides the entry point for the chronoline CLI application.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var (
	version       = "0.1.0-dev"
	globalSection string
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	rootCmd := &cobra.Command{
		Use:     "chronoline",
		Short:   "A collaborative classroom timeline with moderated student submissions",
		Version: version,
	}

	rootCmd.PersistentFlags().StringVarP(&globalSection, "section", "s", "", "Class section to operate on")

	rootCmd.AddCommand(
		newInitCmd(),
		newEventsCmd(),
		newConnectCmd(),
		newModerateCmd(),
		newPeriodsCmd(),
		newSettingsCmd(),
		newRenderCmd(),
		newWatchCmd(),
	)

	return rootCmd.ExecuteContext(ctx)
}
