package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"rdcore/internal/app"
	"rdcore/internal/core"
)

func newParamsCmd(opts *rootOptions) *cobra.Command {
	var (
		sets    []string
		adds    []string
		deletes []string
		out     string
	)
	cmd := &cobra.Command{
		Use:   "params <path>",
		Short: "List or edit the parameters of a pattern",
		Long: `Params prints the parameters of a pattern. Edits are applied in the
order delete, set, add and the pattern is written back (or to --out).`,
		Example: `  rd params spots.xml
  rd params spots.xml --set F=0.037 --set k=0.06
  rd params spots.xml --add noise=0.01 --delete timestep --out edited.yaml`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, _, err := opts.open(args[0])
			if err != nil {
				return err
			}
			params := e.Parameters()
			for _, name := range deletes {
				i := params.IndexOf(name)
				if i < 0 {
					return fmt.Errorf("%w: parameter %q", core.ErrNotFound, name)
				}
				params.DeleteAt(i)
			}
			for _, kv := range sets {
				name, v, err := parseAssignment(kv)
				if err != nil {
					return err
				}
				i := params.IndexOf(name)
				if i < 0 {
					return fmt.Errorf("%w: parameter %q", core.ErrNotFound, name)
				}
				params.SetValueAt(i, v)
			}
			for _, kv := range adds {
				name, v, err := parseAssignment(kv)
				if err != nil {
					return err
				}
				if params.Contains(name) {
					return fmt.Errorf("%w: parameter %q already exists", core.ErrInvalidOperation, name)
				}
				params.Add(name, v)
			}
			printParams(cmd, params)

			if !e.IsModified() && out == "" {
				return nil
			}
			dst := args[0]
			if out != "" {
				dst = out
			}
			return app.Save(e, dst)
		},
	}
	f := cmd.Flags()
	f.StringArrayVar(&sets, "set", nil, "set an existing parameter, name=value")
	f.StringArrayVar(&adds, "add", nil, "add a parameter, name=value")
	f.StringArrayVar(&deletes, "delete", nil, "delete a parameter by name")
	f.StringVarP(&out, "out", "o", "", "write to this path instead of the input")
	return cmd
}

func parseAssignment(s string) (string, float64, error) {
	name, value, ok := strings.Cut(s, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" {
		return "", 0, fmt.Errorf("%w: %q, want name=value", core.ErrInvalidFormat, s)
	}
	v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
	if err != nil {
		return "", 0, fmt.Errorf("%w: %q, want name=value", core.ErrInvalidFormat, s)
	}
	return name, v, nil
}
