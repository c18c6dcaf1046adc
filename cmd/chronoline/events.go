package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nvall/chronoline/internal/application/handlers"
	"github.com/nvall/chronoline/internal/domain/entities"
	"github.com/nvall/chronoline/internal/domain/services"
)

func newEventsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "events",
		Short: "Submit and list timeline events",
	}

	cmd.AddCommand(newEventsSubmitCmd(), newEventsListCmd(), newEventsImportCmd())

	return cmd
}

type submitFlags struct {
	input handlers.SubmitInput
	name  string
	email string
	uid   string
}

func newEventsSubmitCmd() *cobra.Command {
	var flags submitFlags

	cmd := &cobra.Command{
		Use:   "submit <title>",
		Short: "Submit an event for moderation",
		Long: `Submits a historical event to the section's pending queue.
Years are astronomical: negative means BCE, and year 0 does not exist.
Pass --edit-of to propose changes to an already approved event.

Examples:
  chronoline events submit "Fall of the Berlin Wall" --year 1989 --month 11 --day 9
  chronoline events submit "Roman Republic" --year -509 --end-year -27 --period <id>
  chronoline events submit "Moon landing" --year 1969 --edit-of <event-id>`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags.input.Title = args[0]
			return runEventsSubmit(cmd, flags)
		},
	}

	in := &flags.input
	cmd.Flags().IntVar(&in.Year, "year", 0, "Start year (negative = BCE, required)")
	cmd.Flags().IntVar(&in.Month, "month", 0, "Start month (1-12)")
	cmd.Flags().IntVar(&in.Day, "day", 0, "Start day (1-31, requires --month)")
	cmd.Flags().IntVar(&in.EndYear, "end-year", 0, "End year for a range event")
	cmd.Flags().IntVar(&in.EndMonth, "end-month", 0, "End month")
	cmd.Flags().IntVar(&in.EndDay, "end-day", 0, "End day")
	cmd.Flags().StringVar(&in.Description, "description", "", "Event description")
	cmd.Flags().StringVar(&in.PeriodID, "period", "", "Period id")
	cmd.Flags().StringVar(&in.Tags, "tags", "", "Comma-separated tags")
	cmd.Flags().StringVar(&in.SourceType, "source-type", "secondary", "Source type (primary|secondary)")
	cmd.Flags().StringVar(&in.SourceNote, "source-note", "", "How the source supports the event")
	cmd.Flags().StringVar(&in.SourceURL, "source-url", "", "Source URL")
	cmd.Flags().StringVar(&in.ImageURL, "image-url", "", "Image URL")
	cmd.Flags().StringVar(&in.Region, "region", "", "Geographic region")
	cmd.Flags().StringVar(&in.EditOf, "edit-of", "", "Approved event id this submission proposes to edit")

	cmd.Flags().StringVar(&flags.name, "name", os.Getenv("CHRONOLINE_NAME"), "Submitter name")
	cmd.Flags().StringVar(&flags.email, "email", os.Getenv("CHRONOLINE_EMAIL"), "Submitter email")
	cmd.Flags().StringVar(&flags.uid, "uid", "", "Submitter uid")

	_ = cmd.MarkFlagRequired("year")

	return cmd
}

func runEventsSubmit(cmd *cobra.Command, flags submitFlags) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		flags.input.Section = d.Section
		by := services.Submitter{Name: flags.name, Email: flags.email, UID: flags.uid}

		event, err := d.Events.HandleSubmit(ctx, flags.input, by)
		if err != nil {
			return fmt.Errorf("submitting event: %w", err)
		}

		if event.IsProposal() {
			fmt.Printf("Submitted edit proposal %s for event %s (pending review)\n", event.ID, event.EditOf)
		} else {
			fmt.Printf("Submitted event %s (pending review)\n", event.ID)
		}
		fmt.Printf("  %s  %s\n", handlers.FormatEventDate(event), event.Title)
		return nil
	})
}

type importFlags struct {
	format string
	dryRun bool
	name   string
	email  string
}

func newEventsImportCmd() *cobra.Command {
	var flags importFlags

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Seed a section's events from JSON or CSV",
		Long: `Imports events from an instructor-provided file directly into the
section's timeline. Imported events skip the moderation queue.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEventsImport(cmd, args[0], flags)
		},
	}

	cmd.Flags().StringVarP(&flags.format, "format", "f", "auto", "File format (json, csv, auto)")
	cmd.Flags().BoolVar(&flags.dryRun, "dry-run", false, "Validate without saving")
	cmd.Flags().StringVar(&flags.name, "name", os.Getenv("CHRONOLINE_NAME"), "Importer name")
	cmd.Flags().StringVar(&flags.email, "email", os.Getenv("CHRONOLINE_EMAIL"), "Importer email")

	return cmd
}

func runEventsImport(cmd *cobra.Command, filePath string, flags importFlags) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		by := services.Submitter{Name: flags.name, Email: flags.email}
		opts := handlers.ImportOptions{Format: flags.format, DryRun: flags.dryRun}

		fmt.Printf("Importing %s into section %q...\n", filePath, d.Section)

		result, err := d.Import.Handle(ctx, d.Section, filePath, by, opts)
		if err != nil {
			return fmt.Errorf("importing file: %w", err)
		}

		if len(result.Errors) > 0 {
			fmt.Printf("\nValidation errors (%d):\n", len(result.Errors))
			for _, e := range result.Errors {
				fmt.Printf("  %s\n", e.Error())
			}
		}

		fmt.Println()
		if flags.dryRun {
			fmt.Printf("Dry run: %d events would be imported", result.Imported)
		} else {
			fmt.Printf("Imported: %d events", result.Imported)
		}
		if len(result.Errors) > 0 {
			fmt.Printf(", %d errors", len(result.Errors))
		}
		fmt.Println()

		return nil
	})
}

func newEventsListCmd() *cobra.Command {
	var pending bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a section's events",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEventsList(cmd, pending)
		},
	}

	cmd.Flags().BoolVar(&pending, "pending", false, "List the pending queue instead of approved events")

	return cmd
}

func runEventsList(cmd *cobra.Command, pending bool) error {
	ctx := cmd.Context()

	status := entities.StatusApproved
	if pending {
		status = entities.StatusPending
	}

	return withDeps(func(d *Deps) error {
		events, err := d.Events.HandleList(ctx, d.Section, status)
		if err != nil {
			return fmt.Errorf("listing events: %w", err)
		}

		if len(events) == 0 {
			fmt.Printf("No %s events in section %q.\n", status, d.Section)
			return nil
		}

		fmt.Printf("%s events in section %q (%d):\n", status, d.Section, len(events))
		for i := range events {
			ev := &events[i]
			marker := ""
			if ev.IsProposal() {
				marker = fmt.Sprintf(" (edit of %s)", ev.EditOf)
			}
			fmt.Printf("  %s  %-14s %s%s\n", ev.ID, handlers.FormatEventDate(ev), ev.Title, marker)
		}
		return nil
	})
}
