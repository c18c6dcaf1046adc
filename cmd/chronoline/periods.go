package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nvall/chronoline/internal/domain/entities"
	"github.com/nvall/chronoline/internal/domain/services"
)

func newPeriodsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "periods",
		Short: "Manage a section's historical periods",
	}

	cmd.AddCommand(
		newPeriodsListCmd(),
		newPeriodsAddCmd(),
		newPeriodsRemoveCmd(),
		newPeriodsSeedCmd(),
	)

	return cmd
}

func newPeriodsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List the section's periods",
		RunE:  runPeriodsList,
	}
}

func runPeriodsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withInternalDeps(func(d *internalDeps) error {
		periods, err := d.sections.Periods(ctx, d.Section)
		if err != nil {
			return fmt.Errorf("listing periods: %w", err)
		}

		if len(periods) == 0 {
			fmt.Printf("No periods in section %q. Run 'chronoline periods seed' to copy the defaults.\n", d.Section)
			return nil
		}

		fmt.Printf("Periods in section %q (%d):\n", d.Section, len(periods))
		for i := range periods {
			p := &periods[i]
			fmt.Printf("  %s  [%d, %d]  %s\n", p.ID, p.StartYear, p.EndYear, p.Label)
		}
		return nil
	})
}

type periodFlags struct {
	start, end                int
	color, background, accent string
}

func newPeriodsAddCmd() *cobra.Command {
	var flags periodFlags

	cmd := &cobra.Command{
		Use:   "add <label>",
		Short: "Add a period to the section",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPeriodsAdd(cmd, args[0], flags)
		},
	}

	cmd.Flags().IntVar(&flags.start, "start", 0, "Era start year (required)")
	cmd.Flags().IntVar(&flags.end, "end", 0, "Era end year (required)")
	cmd.Flags().StringVar(&flags.color, "color", "", "Marker color")
	cmd.Flags().StringVar(&flags.background, "bg", "", "Band background color")
	cmd.Flags().StringVar(&flags.accent, "accent", "", "Accent color")

	_ = cmd.MarkFlagRequired("start")
	_ = cmd.MarkFlagRequired("end")

	return cmd
}

func runPeriodsAdd(cmd *cobra.Command, label string, flags periodFlags) error {
	ctx := cmd.Context()

	return withInternalDeps(func(d *internalDeps) error {
		period, err := d.sections.AddPeriod(ctx, d.Section, &entities.Period{
			Label:      label,
			StartYear:  flags.start,
			EndYear:    flags.end,
			Color:      flags.color,
			Background: flags.background,
			Accent:     flags.accent,
		})
		if err != nil {
			return fmt.Errorf("adding period: %w", err)
		}

		fmt.Printf("Added period %s: %s [%d, %d]\n", period.ID, period.Label, period.StartYear, period.EndYear)
		return nil
	})
}

func newPeriodsRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <period-id>",
		Short: "Remove a period",
		Args:  cobra.ExactArgs(1),
		RunE:  runPeriodsRemove,
	}
}

func runPeriodsRemove(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	id := args[0]

	return withSectionService(func(sections *services.SectionService) error {
		if err := sections.RemovePeriod(ctx, id); err != nil {
			return fmt.Errorf("removing period: %w", err)
		}
		fmt.Printf("Removed period %s\n", id)
		return nil
	})
}

func newPeriodsSeedCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "seed",
		Short: "Copy the default period template into the section",
		Long:  "Copies the default period template into an empty section. Sections that already have periods are left untouched.",
		RunE:  runPeriodsSeed,
	}
}

func runPeriodsSeed(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withInternalDeps(func(d *internalDeps) error {
		n, err := d.sections.SeedPeriods(ctx, d.Section)
		if err != nil {
			return fmt.Errorf("seeding periods: %w", err)
		}
		if n == 0 {
			fmt.Printf("Section %q already has periods; nothing seeded.\n", d.Section)
			return nil
		}
		fmt.Printf("Seeded %d periods into section %q.\n", n, d.Section)
		return nil
	})
}
