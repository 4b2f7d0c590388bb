package main

import (
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ivlev/canvasdeck/internal/deck"
	"github.com/ivlev/canvasdeck/internal/ui"
)

func validateCmd(a *app) *cobra.Command {
	var normalize string

	cmd := &cobra.Command{
		Use:   "validate [deck]",
		Short: "Check a deck for broken references and invalid lengths",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			d, _, err := a.readDeck(cmd, args)
			if err != nil {
				ui.Fail(cmd.ErrOrStderr(), "%v", err)
				return err
			}

			if err := d.Validate(); err != nil {
				for _, line := range strings.Split(err.Error(), "\n") {
					ui.Fail(out, "%s", line)
				}
				return errors.New("deck is invalid")
			}
			ui.Done(out, "%d slides OK", len(d.Slides))

			if normalize != "" {
				if err := deck.WriteDeck(d, normalize); err != nil {
					ui.Fail(cmd.ErrOrStderr(), "%v", err)
					return err
				}
				ui.Step(out, "Normalized deck written to %s", normalize)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&normalize, "normalize", "", "Write the parsed deck back out as YAML")
	return cmd
}
