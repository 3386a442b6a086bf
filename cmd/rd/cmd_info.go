package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"rdcore/internal/core"
)

func newInfoCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "info <path>",
		Short: "Describe a pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, update, err := opts.open(args[0])
			if err != nil {
				return err
			}
			printInfo(cmd, e, update)
			return nil
		},
	}
}

func printInfo(cmd *cobra.Command, e core.Engine, update bool) {
	w := cmd.OutOrStdout()
	size := e.Size()
	row := func(label, value string) {
		fmt.Fprintf(w, "%-14s%s\n", label+":", value)
	}
	if update {
		row("update", fmt.Sprintf("recommended: written by a format newer than %d", core.FormatVersion))
	}
	row("rule", fmt.Sprintf("%s (%s)", e.RuleName(), e.RuleType()))
	if d := e.Description(); d != "" {
		row("description", strings.ReplaceAll(d, "\n", "\n"+strings.Repeat(" ", 14)))
	}
	row("arena", fmt.Sprintf("%dx%d", size.W, size.H))
	row("neighborhood", e.Neighborhood().String())
	row("wrap", strconv.FormatBool(e.Wrap()))
	row("data type", e.DataType().String())
	row("chemicals", strconv.Itoa(e.NumberOfChemicals()))
	row("memory", fmt.Sprintf("%d bytes", e.MemorySize()))
	if e.HasEditableFormula() {
		row("formula", e.Formula())
	}
	fmt.Fprintln(w, "parameters:")
	printParams(cmd, e.Parameters())
}

func printParams(cmd *cobra.Command, params *core.ParameterStore) {
	for _, p := range params.All() {
		fmt.Fprintf(cmd.OutOrStdout(), "  %s = %s\n", p.Name, strconv.FormatFloat(p.Value, 'g', -1, 64))
	}
}
