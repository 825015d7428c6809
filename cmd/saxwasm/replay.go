package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"saxwasm/internal/capture"
	"saxwasm/internal/diagfmt"
	"saxwasm/internal/event"
)

var replayCmd = &cobra.Command{
	Use:   "replay [flags] <capture.msgpack>",
	Short: "Render a saved event capture",
	Long: `Replay decodes a capture written by "tokenize --format msgpack" and
prints its events and diagnostics without touching the original input.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	replayCmd.Flags().String("events", "all", "only show these event kinds")
	replayCmd.Flags().Int("width", 60, "truncate long values in pretty output (0=no limit)")
}

func runReplay(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	spec, _ := cmd.Flags().GetString("events")
	width, _ := cmd.Flags().GetInt("width")
	want, err := event.ParseNames(splitList(spec))
	if err != nil {
		return err
	}

	done := state.timer.Track("replay " + args[0])
	c, err := capture.Load(args[0])
	if err != nil {
		done("error")
		return fmt.Errorf("load capture: %w", err)
	}
	filtered := *c
	filtered.Frames = filtered.Frames[:0:0]
	for _, f := range c.Frames {
		if want.Has(event.Kind(f.Kind)) {
			filtered.Frames = append(filtered.Frames, f)
		}
	}
	events, err := diagfmt.FromCapture(&filtered)
	done(fmt.Sprintf("%d events", len(events)))
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	bag := bagOf(c, 0)
	switch format {
	case "json":
		if err := diagfmt.FormatEventsJSON(out, c.Source, events); err != nil {
			return err
		}
		if bag.Len() > 0 {
			return diagfmt.JSON(cmd.ErrOrStderr(), c.Source, bag, diagfmt.JSONOpts{IncludeNotes: true})
		}
		return nil
	case "pretty":
		if err := diagfmt.FormatEventsPretty(out, events, diagfmt.PrettyOpts{Color: useColor(cmd, os.Stdout), Width: width}); err != nil {
			return err
		}
		return diagfmt.Pretty(cmd.ErrOrStderr(), c.Source, nil, bag, diagfmt.PrettyOpts{Color: useColor(cmd, os.Stderr)})
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
