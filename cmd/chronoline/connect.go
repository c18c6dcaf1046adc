package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nvall/chronoline/internal/domain/services"
)

type connectFlags struct {
	editOf   string
	deleteOf string
	name     string
	email    string
	uid      string
}

func newConnectCmd() *cobra.Command {
	var flags connectFlags

	cmd := &cobra.Command{
		Use:   "connect <cause-event-id> <effect-event-id> [description]",
		Short: "Propose a cause-and-effect connection between two events",
		Long: `Submits a directed cause-and-effect connection to the pending queue.
Both events must already exist.

Pass --edit-of to propose a new description for an approved connection, or
--delete-of to propose its removal; both go through moderation.

Examples:
  chronoline connect <cause-id> <effect-id> "War reparations fed resentment"
  chronoline connect --edit-of <connection-id> "Reparations and hyperinflation fed resentment"
  chronoline connect --delete-of <connection-id>`,
		Args: cobra.MaximumNArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConnect(cmd, args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.editOf, "edit-of", "", "Approved connection id to propose a new description for")
	cmd.Flags().StringVar(&flags.deleteOf, "delete-of", "", "Approved connection id to propose removing")
	cmd.Flags().StringVar(&flags.name, "name", os.Getenv("CHRONOLINE_NAME"), "Submitter name")
	cmd.Flags().StringVar(&flags.email, "email", os.Getenv("CHRONOLINE_EMAIL"), "Submitter email")
	cmd.Flags().StringVar(&flags.uid, "uid", "", "Submitter uid")
	cmd.MarkFlagsMutuallyExclusive("edit-of", "delete-of")

	return cmd
}

func runConnect(cmd *cobra.Command, args []string, flags connectFlags) error {
	ctx := cmd.Context()
	by := services.Submitter{Name: flags.name, Email: flags.email, UID: flags.uid}

	switch {
	case flags.editOf != "":
		if len(args) != 1 {
			return fmt.Errorf("--edit-of takes exactly one argument: the new description")
		}
		return withDeps(func(d *Deps) error {
			proposal, err := d.Events.HandleProposeConnectionEdit(ctx, flags.editOf, args[0], by)
			if err != nil {
				return fmt.Errorf("proposing connection edit: %w", err)
			}
			fmt.Printf("Submitted edit proposal %s for connection %s (pending review)\n", proposal.ID, flags.editOf)
			return nil
		})

	case flags.deleteOf != "":
		if len(args) != 0 {
			return fmt.Errorf("--delete-of takes no arguments")
		}
		return withDeps(func(d *Deps) error {
			proposal, err := d.Events.HandleProposeConnectionDelete(ctx, flags.deleteOf, by)
			if err != nil {
				return fmt.Errorf("proposing connection delete: %w", err)
			}
			fmt.Printf("Submitted delete proposal %s for connection %s (pending review)\n", proposal.ID, flags.deleteOf)
			return nil
		})

	default:
		if len(args) < 2 {
			return fmt.Errorf("connect requires a cause and an effect event id")
		}
		causeID, effectID := args[0], args[1]
		description := ""
		if len(args) == 3 {
			description = args[2]
		}
		return withDeps(func(d *Deps) error {
			conn, err := d.Events.HandleConnect(ctx, d.Section, causeID, effectID, description, by)
			if err != nil {
				return fmt.Errorf("submitting connection: %w", err)
			}
			fmt.Printf("Submitted connection %s (pending review)\n", conn.ID)
			fmt.Printf("  %s -> %s\n", causeID, effectID)
			return nil
		})
	}
}
