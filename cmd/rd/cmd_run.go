package main

import (
	"fmt"
	"image/png"
	"os"

	"github.com/spf13/cobra"

	"rdcore/internal/app"
	"rdcore/internal/core"
	"rdcore/internal/render"
)

func newRunCmd(opts *rootOptions) *cobra.Command {
	var (
		steps    int
		chunk    int
		savePath string
		pngPath  string
		chemical int
		low      float64
		high     float64
	)
	cmd := &cobra.Command{
		Use:   "run [path]",
		Short: "Advance a pattern and export the result",
		Long: `Run loads the pattern at path (or the engine's default pattern) and
advances it. The configuration can be saved afterwards and a chemical can be
exported as a grayscale PNG.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			e, _, err := opts.open(path)
			if err != nil {
				return err
			}
			if chunk <= 0 {
				chunk = steps
			}
			for done := 0; done < steps; {
				if err := cmd.Context().Err(); err != nil {
					return err
				}
				n := min(chunk, steps-done)
				if err := e.Update(n); err != nil {
					return err
				}
				done += n
				opts.log.Debug("advanced", "timesteps", e.TimestepsTaken())
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d timesteps\n", e.RuleName(), e.TimestepsTaken())

			if pngPath != "" {
				if err := writePNG(e, pngPath, chemical, low, high); err != nil {
					return err
				}
			}
			if savePath != "" {
				if err := app.Save(e, savePath); err != nil {
					return err
				}
			}
			return nil
		},
	}
	f := cmd.Flags()
	f.IntVarP(&steps, "steps", "n", 1000, "timesteps to run")
	f.IntVar(&chunk, "chunk", 100, "timesteps per update call")
	f.StringVar(&savePath, "save", "", "write the configuration here afterwards")
	f.StringVar(&pngPath, "png", "", "export a chemical as a PNG")
	f.IntVarP(&chemical, "chemical", "c", 1, "chemical to export")
	f.Float64Var(&low, "low", 0, "value drawn black")
	f.Float64Var(&high, "high", 0, "value drawn white; when not above low the data range is used")
	return cmd
}

func writePNG(e core.Engine, path string, chemical int, low, high float64) error {
	if !e.Is2DImageAvailable() {
		return fmt.Errorf("%w: no 2D image for %s", core.ErrInvalidOperation, e.RuleName())
	}
	if high <= low {
		vals, err := e.Data(chemical)
		if err != nil {
			return err
		}
		low, high = render.Range(vals)
	}
	img, err := e.As2DImage(chemical, low, high)
	if err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
