package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newModerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "moderate",
		Short: "Review the pending submission queue",
	}

	cmd.AddCommand(
		newModerateListCmd(),
		newModerateApproveCmd(),
		newModerateRejectCmd(),
		newModerateLogCmd(),
	)

	return cmd
}

func newModerateListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List pending submissions",
		RunE:  runModerateList,
	}
}

func runModerateList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		items, err := d.Moderation.HandleQueue(ctx, d.Section)
		if err != nil {
			return err
		}

		if len(items) == 0 {
			fmt.Printf("Queue for section %q is empty.\n", d.Section)
			return nil
		}

		fmt.Printf("Pending submissions in section %q (%d):\n", d.Section, len(items))
		for _, item := range items {
			fmt.Printf("  %s  [%s] %s", item.ID, item.Kind, item.Title)
			if item.SubmittedBy != "" {
				fmt.Printf(" (by %s)", item.SubmittedBy)
			}
			fmt.Println()
		}
		return nil
	})
}

func newModerateApproveCmd() *cobra.Command {
	var connection bool

	cmd := &cobra.Command{
		Use:   "approve <id>",
		Short: "Approve a pending submission",
		Long: `Approves a pending submission. Plain submissions go live; edit
proposals are merged into their original with an edit-history entry; delete
proposals remove their target.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModerateApprove(cmd, args[0], connection)
		},
	}

	cmd.Flags().BoolVar(&connection, "connection", false, "The id is a connection, not an event")

	return cmd
}

func runModerateApprove(cmd *cobra.Command, id string, connection bool) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		if connection {
			if err := d.Moderation.HandleApproveConnection(ctx, id); err != nil {
				return fmt.Errorf("approving connection: %w", err)
			}
			fmt.Printf("Approved connection %s\n", id)
			return nil
		}

		changes, err := d.Moderation.HandleApproveEvent(ctx, id)
		if err != nil {
			return fmt.Errorf("approving event: %w", err)
		}
		fmt.Printf("Approved event %s\n", id)
		if changes != "" {
			fmt.Println("Applied changes:")
			fmt.Print(changes)
		}
		return nil
	})
}

func newModerateRejectCmd() *cobra.Command {
	var connection bool

	cmd := &cobra.Command{
		Use:   "reject <id>",
		Short: "Reject and discard a pending submission",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runModerateReject(cmd, args[0], connection)
		},
	}

	cmd.Flags().BoolVar(&connection, "connection", false, "The id is a connection, not an event")

	return cmd
}

func runModerateReject(cmd *cobra.Command, id string, connection bool) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		if connection {
			if err := d.Moderation.HandleRejectConnection(ctx, id); err != nil {
				return fmt.Errorf("rejecting connection: %w", err)
			}
			fmt.Printf("Rejected connection %s\n", id)
			return nil
		}
		if err := d.Moderation.HandleRejectEvent(ctx, id); err != nil {
			return fmt.Errorf("rejecting event: %w", err)
		}
		fmt.Printf("Rejected event %s\n", id)
		return nil
	})
}

func newModerateLogCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "log <record-id>",
		Short: "Show the audit trail for a record",
		Args:  cobra.ExactArgs(1),
		RunE:  runModerateLog,
	}
}

func runModerateLog(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	recordID := args[0]

	return withDeps(func(d *Deps) error {
		entries, err := d.Moderation.HandleAuditLog(ctx, recordID)
		if err != nil {
			return fmt.Errorf("loading audit log: %w", err)
		}

		if len(entries) == 0 {
			fmt.Printf("No audit entries for %s.\n", recordID)
			return nil
		}

		for _, entry := range entries {
			fmt.Printf("  %s  %s\n", entry.CreatedAt.Format("2006-01-02 15:04"), entry.Action)
		}
		return nil
	})
}
