package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nvall/chronoline/internal/domain/timeline"
)

type renderFlags struct {
	output  string
	zoom    float64
	scrollX float64
	width   float64
	expand  string
}

func newRenderCmd() *cobra.Command {
	var flags renderFlags

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render the section's timeline as an SVG document",
		Long: `Lays out the section's approved events and renders an SVG snapshot.
Zoom is clamped to [1, 50]; at zoom 1 the whole timeline fits the viewport.

Examples:
  chronoline render -o timeline.svg
  chronoline render --zoom 8 --scroll 2400 --expand <event-id>`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRender(cmd, flags)
		},
	}

	cmd.Flags().StringVarP(&flags.output, "output", "o", DefaultRenderOutput, "Output file (- for stdout)")
	cmd.Flags().Float64Var(&flags.zoom, "zoom", 1, "Zoom level")
	cmd.Flags().Float64Var(&flags.scrollX, "scroll", 0, "Horizontal scroll offset in pixels")
	cmd.Flags().Float64Var(&flags.width, "width", 0, "Viewport width in pixels (default from config)")
	cmd.Flags().StringVar(&flags.expand, "expand", "", "Event id whose connection arcs to draw")

	return cmd
}

func runRender(cmd *cobra.Command, flags renderFlags) error {
	ctx := cmd.Context()

	return withDeps(func(d *Deps) error {
		width := flags.width
		if width <= 0 {
			width = d.Config.Timeline.ViewportWidth
		}
		if width <= 0 {
			width = DefaultViewportWidth
		}

		view := timeline.View{
			Zoom:    timeline.ClampZoom(flags.zoom),
			ScrollX: flags.scrollX,
		}

		svg, err := d.Timeline.HandleRender(ctx, d.Section, view, width, d.Config.Timeline.Options(), flags.expand)
		if err != nil {
			return fmt.Errorf("rendering timeline: %w", err)
		}

		if flags.output == "-" {
			_, err := os.Stdout.Write(svg)
			return err
		}
		if err := os.WriteFile(flags.output, svg, 0o644); err != nil {
			return fmt.Errorf("writing output file: %w", err)
		}
		fmt.Printf("Wrote %s (%d bytes)\n", flags.output, len(svg))
		return nil
	})
}
