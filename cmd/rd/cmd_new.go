package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rdcore/internal/app"
	"rdcore/internal/core"
)

func newNewCmd(opts *rootOptions) *cobra.Command {
	var (
		description  string
		neighborhood string
		dataType     string
		noWrap       bool
	)
	cmd := &cobra.Command{
		Use:   "new <path>",
		Short: "Write a pattern with the engine's default rule and generator",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, _, err := opts.open("")
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("description") {
				e.SetDescription(description)
			}
			if neighborhood != "" {
				n, err := core.ParseNeighborhood(neighborhood)
				if err != nil {
					return err
				}
				e.SetNeighborhood(n)
			}
			if dataType != "" {
				d, err := core.ParseDataType(dataType)
				if err != nil {
					return err
				}
				if err := e.SetDataType(d); err != nil {
					return err
				}
			}
			if noWrap {
				if err := e.SetWrap(false); err != nil {
					return err
				}
			}
			if err := app.Save(e, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%s)\n", args[0], e.RuleName())
			return nil
		},
	}
	f := cmd.Flags()
	f.StringVar(&description, "description", "", "description stored in the pattern")
	f.StringVar(&neighborhood, "neighborhood", "", "vertex, edge or face")
	f.StringVar(&dataType, "data-type", "", "float or double")
	f.BoolVar(&noWrap, "no-wrap", false, "clamp the arena boundary instead of wrapping")
	return cmd
}
