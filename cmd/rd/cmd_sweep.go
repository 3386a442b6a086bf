package main

import (
	"fmt"
	"runtime"
	"time"

	"github.com/spf13/cobra"

	"rdcore/internal/app"
	"rdcore/internal/core"
	"rdcore/internal/sweep"
)

func newSweepCmd(opts *rootOptions) *cobra.Command {
	var (
		axes     []string
		steps    int
		workers  int
		chemical int
		top      int
	)
	cmd := &cobra.Command{
		Use:   "sweep [path]",
		Short: "Run a pattern over a grid of parameter values",
		Long: `Sweep runs one simulation per combination of the given axes, in
parallel, and ranks the runs by the spread of the chosen chemical. A run that
settles to a uniform state scores zero.`,
		Example: `  rd sweep spots.xml --axis F=0.02:0.06:9 --axis k=0.055,0.06,0.065`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			var parsed []sweep.Axis
			for _, s := range axes {
				a, err := sweep.ParseAxis(s)
				if err != nil {
					return err
				}
				parsed = append(parsed, a)
			}
			sets := sweep.Grid(parsed)
			if len(sets) == 0 {
				return fmt.Errorf("%w: at least one --axis is required", core.ErrInvalidOperation)
			}

			// Settings are read once; the builder runs on the worker goroutines.
			name, engineOpts := opts.v.GetString(keyEngine), engineOptions(opts.v)
			build := func() (core.Engine, error) {
				e, _, err := app.Open(name, engineOpts, path)
				return e, err
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Sweeping %d parameter sets (%d workers, %d steps)\n", len(sets), workers, steps)
			start := time.Now()
			results, err := sweep.Run(cmd.Context(), build, sets, sweep.Options{
				Steps:    steps,
				Workers:  workers,
				Chemical: chemical,
				Logger:   opts.log,
			})
			if err != nil {
				return err
			}

			ranked := sweep.Rank(results)
			fmt.Fprintf(out, "\nTop %d results (elapsed %s):\n", min(top, len(ranked)), time.Since(start).Round(time.Millisecond))
			for i := 0; i < len(ranked) && i < top; i++ {
				res := ranked[i]
				if res.Err != nil {
					fmt.Fprintf(out, "%2d) failed: %v params=%s\n", i+1, res.Err, res)
					continue
				}
				fmt.Fprintf(out, "%2d) stddev=%.5f mean=%.5f params=%s\n", i+1, res.StdDev, res.Mean, res)
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.StringArrayVar(&axes, "axis", nil, "parameter axis, name=lo:hi:n or name=v1,v2,...")
	f.IntVarP(&steps, "steps", "n", 2000, "timesteps per run")
	f.IntVar(&workers, "workers", runtime.NumCPU(), "number of worker goroutines")
	f.IntVarP(&chemical, "chemical", "c", 1, "chemical scored")
	f.IntVar(&top, "top", 5, "number of results to print")
	return cmd
}
