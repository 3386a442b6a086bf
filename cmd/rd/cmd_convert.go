package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"rdcore/internal/core"
	"rdcore/internal/document"
)

func newConvertCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "convert <in> <out>",
		Short: "Re-encode a pattern between XML and YAML",
		Long: `Convert reads a pattern and writes it in the encoding chosen by the
output extension. The whole document is kept, including any wrapper around
the RD element; the RD element itself is validated first.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			root, err := document.ReadFile(args[0])
			if err != nil {
				return err
			}
			rd, err := core.FindRD(root)
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			cfg, update, err := core.DecodeConfiguration(rd, core.DefaultConfiguration())
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}
			if update {
				opts.log.Warn("pattern written by a newer version", "path", args[0])
			}
			if err := document.WriteFile(args[1], root); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "converted %s (%s) to %s\n", args[0], cfg.RuleName, document.FormatForPath(args[1]))
			return nil
		},
	}
}
