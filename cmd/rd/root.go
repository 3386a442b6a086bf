package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"rdcore/internal/app"
	"rdcore/internal/core"
)

type rootOptions struct {
	v   *viper.Viper
	log *slog.Logger
}

// open builds the configured engine, loading path when it is not empty. The
// bool reports that the document asks for a newer program.
func (o *rootOptions) open(path string) (core.Engine, bool, error) {
	return app.Open(o.v.GetString(keyEngine), engineOptions(o.v), path)
}

func newRootCmd(out, errOut io.Writer) *cobra.Command {
	opts := &rootOptions{v: viper.New()}
	var cfgFile string

	cmd := &cobra.Command{
		Use:   "rd",
		Short: "Create, inspect and run reaction-diffusion patterns",
		Long: `rd works with reaction-diffusion pattern documents.

Patterns are stored as XML (.xml, .vti) or YAML (.yaml, .yml); the encoding
follows the file extension. Settings come from flags, RD_* environment
variables and an optional settings file, in that order of precedence.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := loadSettings(opts.v, cfgFile); err != nil {
				return err
			}
			log, err := newLogger(opts.v.GetString(keyLogLevel), opts.v.GetString(keyLogFormat), errOut)
			if err != nil {
				return err
			}
			opts.log = log
			slog.SetDefault(opts.log)
			return nil
		},
	}
	cmd.SetOut(out)
	cmd.SetErr(errOut)

	pf := cmd.PersistentFlags()
	pf.StringVar(&cfgFile, "config", "", "settings file (default $HOME/.config/rd/config.yaml)")
	bindSettings(opts.v, pf)

	cmd.AddCommand(
		newNewCmd(opts),
		newInfoCmd(opts),
		newRunCmd(opts),
		newConvertCmd(opts),
		newParamsCmd(opts),
		newSweepCmd(opts),
		newEnginesCmd(),
	)
	return cmd
}

func newEnginesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "engines",
		Short: "List the available engines",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range core.EngineNames() {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}
}
