package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/ivlev/canvasdeck/internal/logging"
	"github.com/ivlev/canvasdeck/internal/script"
	"github.com/ivlev/canvasdeck/internal/slide"
	"github.com/ivlev/canvasdeck/internal/ui"
)

func inspectCmd(a *app) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "inspect <deck> <slide>",
		Short: "Print a slide's frame, optionally after replaying a script",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			d, _, err := a.readDeck(cmd, args[:1])
			if err != nil {
				ui.Fail(cmd.ErrOrStderr(), "%v", err)
				return err
			}
			def, ok := d.FindSlide(args[1])
			if !ok {
				err := fmt.Errorf("slide %q not found in %s", args[1], args[0])
				ui.Fail(cmd.ErrOrStderr(), "%v", err)
				return err
			}

			policy, err := slide.ParseRecomputePolicy(a.cfg.Recompute)
			if err != nil {
				return err
			}
			log := logging.Component(a.log, "slide")
			sl, err := slide.New(*def, a.cfg.Viewport(), slide.Options{ZoomStep: a.cfg.ZoomStep, Recompute: policy, Logger: &log})
			if err != nil {
				ui.Fail(cmd.ErrOrStderr(), "%v", err)
				return err
			}

			if a.cfg.ScriptPath != "" {
				f, err := script.ReadFile(a.cfg.ScriptPath)
				if err != nil {
					ui.Fail(cmd.ErrOrStderr(), "%v", err)
					return err
				}
				if _, err := script.Apply(sl, f.For(def.ID)); err != nil {
					ui.Fail(cmd.ErrOrStderr(), "%v", err)
					return err
				}
			}

			frame := sl.Frame()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(frame)
			}
			printFrame(cmd, frame)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the frame as JSON")
	cmd.Flags().StringP("script", "s", "", "YAML script of input steps to replay first")
	return cmd
}

func printFrame(cmd *cobra.Command, f slide.Frame) {
	out := cmd.OutOrStdout()
	num := func(v float64) string { return strconv.FormatFloat(v, 'f', 1, 64) }

	ui.Step(out, "%s %s", ui.Brand.Sprint(f.SlideID), f.Title)
	ui.Step(out, "Transform: translate(%s, %s) scale(%s) | cursor %s", num(f.Transform.Translation.X), num(f.Transform.Translation.Y), num(f.Transform.Scale), f.Cursor)
	if f.Stale {
		ui.Warning(out, "Connector geometry is stale until the drag ends")
	}
	fmt.Fprintln(out)

	var rows [][]string
	for _, n := range f.Nodes {
		row := []string{n.ID, n.Symbol, strconv.FormatBool(n.Visible), "", ""}
		if n.Rect != nil {
			c := n.Rect.Center()
			row[3] = num(c.X) + "," + num(c.Y)
			row[4] = num(n.Rect.W)
		}
		rows = append(rows, row)
	}
	ui.Table(out, []string{"NODE", "SYMBOL", "VISIBLE", "CENTER", "SIZE"}, rows)
	fmt.Fprintln(out)

	rows = rows[:0]
	for _, c := range f.Connectors {
		row := []string{c.ID, "-", "-"}
		if c.Segment != nil {
			row[1] = num(c.Segment.Length)
			row[2] = num(c.Segment.Angle)
		}
		rows = append(rows, row)
	}
	ui.Table(out, []string{"CONNECTOR", "LENGTH", "ANGLE"}, rows)

	for _, o := range f.Overlays {
		if o.Open {
			fmt.Fprintln(out)
			ui.Step(out, "Overlay %s (%s) open on %s", o.ID, o.Kind, o.Trigger)
		}
	}
}
