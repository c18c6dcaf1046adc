package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/nvall/chronoline/internal/domain/entities"
)

func newSettingsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show and change section settings",
		RunE:  runSettingsShow,
	}

	cmd.AddCommand(
		newSettingsBoundsCmd(),
		newSettingsQuestionCmd(),
		newSettingsFieldsCmd(),
	)

	return cmd
}

func runSettingsShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	return withInternalDeps(func(d *internalDeps) error {
		settings, err := d.sections.Settings(ctx, d.Section)
		if err != nil {
			return fmt.Errorf("loading settings: %w", err)
		}

		fmt.Printf("Section %q:\n", d.Section)
		fmt.Printf("  Timeline bounds: [%d, %d]\n", settings.TimelineStart, settings.TimelineEnd)
		if settings.CompellingQuestion != "" {
			shown := "hidden"
			if settings.ShowQuestion {
				shown = "shown"
			}
			fmt.Printf("  Compelling question (%s): %s\n", shown, settings.CompellingQuestion)
		}
		if len(settings.FieldModes) > 0 {
			fmt.Println("  Field modes:")
			for field, mode := range settings.FieldModes {
				fmt.Printf("    %s: %s\n", field, mode)
			}
		}
		return nil
	})
}

func newSettingsBoundsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "bounds <start-year> <end-year>",
		Short: "Set the timeline bounds",
		Long: `Sets the section's timeline year range. Bounds are widened outward to
decade boundaries, so 1997..2014 becomes 1990..2020.`,
		Args: cobra.ExactArgs(2),
		RunE: runSettingsBounds,
	}
}

func runSettingsBounds(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	start, err := strconv.Atoi(args[0])
	if err != nil {
		return fmt.Errorf("invalid start year: %s", args[0])
	}
	end, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid end year: %s", args[1])
	}

	return withInternalDeps(func(d *internalDeps) error {
		settings, err := d.sections.SetBounds(ctx, d.Section, start, end)
		if err != nil {
			return fmt.Errorf("setting bounds: %w", err)
		}
		fmt.Printf("Timeline bounds set to [%d, %d]\n", settings.TimelineStart, settings.TimelineEnd)
		return nil
	})
}

func newSettingsQuestionCmd() *cobra.Command {
	var hide bool

	cmd := &cobra.Command{
		Use:   "question <text>",
		Short: "Set the compelling question banner",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSettingsQuestion(cmd, args[0], !hide)
		},
	}

	cmd.Flags().BoolVar(&hide, "hide", false, "Keep the question hidden on the timeline")

	return cmd
}

func runSettingsQuestion(cmd *cobra.Command, question string, show bool) error {
	ctx := cmd.Context()

	return withInternalDeps(func(d *internalDeps) error {
		if err := d.sections.SetQuestion(ctx, d.Section, question, show); err != nil {
			return fmt.Errorf("setting question: %w", err)
		}
		if show {
			fmt.Println("Compelling question set and shown.")
		} else {
			fmt.Println("Compelling question set (hidden).")
		}
		return nil
	})
}

func newSettingsFieldsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "fields <field> <mandatory|optional|hidden>",
		Short: "Set a submission-form field's requirement mode",
		Long: `Controls whether a submission-form field is required, optional or
hidden for this section. Mandatory fields block submissions that leave
them empty.

Examples:
  chronoline settings fields source_note mandatory
  chronoline settings fields region hidden`,
		Args: cobra.ExactArgs(2),
		RunE: runSettingsFields,
	}
}

func runSettingsFields(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	field, mode := args[0], entities.FieldMode(args[1])

	return withInternalDeps(func(d *internalDeps) error {
		if err := d.sections.SetFieldMode(ctx, d.Section, field, mode); err != nil {
			return fmt.Errorf("setting field mode: %w", err)
		}
		fmt.Printf("Field %q is now %s.\n", field, mode)
		return nil
	})
}
