package main

import (
	"context"
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/nvall/chronoline/internal/domain/ports"
)

func newWatchCmd() *cobra.Command {
	var tables []string

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow live changes to the section's records",
		Long: `Streams create, update and delete notifications from the hosted store
until interrupted. Useful for keeping a projector view current while
students submit.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runWatch(cmd, tables)
		},
	}

	cmd.Flags().StringSliceVar(&tables, "tables", watchableTables, "Tables to follow")

	return cmd
}

func runWatch(cmd *cobra.Command, tables []string) error {
	ctx := cmd.Context()

	for _, t := range tables {
		if !slices.Contains(watchableTables, t) {
			return fmt.Errorf("unknown table %q (valid: %v)", t, watchableTables)
		}
	}

	return withChangeFeed(func(feed ports.ChangeFeed) error {
		merged := make(chan ports.Change)
		for _, table := range tables {
			ch, err := feed.Watch(ctx, table)
			if err != nil {
				return fmt.Errorf("watching %s: %w", table, err)
			}
			go forward(ctx, ch, merged)
		}

		fmt.Printf("Watching %v (ctrl-c to stop)...\n", tables)
		for {
			select {
			case <-ctx.Done():
				return nil
			case change := <-merged:
				fmt.Printf("  %-7s %s/%s\n", change.Action, change.Table, change.RecordID)
			}
		}
	})
}

func forward(ctx context.Context, in <-chan ports.Change, out chan<- ports.Change) {
	for change := range in {
		select {
		case out <- change:
		case <-ctx.Done():
			return
		}
	}
}
