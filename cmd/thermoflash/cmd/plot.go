package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/gothermo/thermocore/fluid"
	"github.com/gothermo/thermocore/internal/cubicbackend"
	"github.com/gothermo/thermocore/internal/pvplot"
	"github.com/gothermo/thermocore/quantity"
)

var (
	plotOutput string
	plotStates []string
)

var plotCmd = &cobra.Command{
	Use:   "plot",
	Short: "Render a PV diagram for one or more (T, P) states of a substance",
	RunE: func(c *cobra.Command, args []string) error {
		sp, err := lookupSpecies(substanceID)
		if err != nil {
			return err
		}
		if len(plotStates) == 0 {
			return fmt.Errorf("plot: at least one --state T,P is required")
		}

		fluids := make([]*fluid.Fluid, 0, len(plotStates))
		for _, spec := range plotStates {
			parts := strings.Split(spec, ",")
			if len(parts) != 2 {
				return fmt.Errorf("plot: malformed --state %q, want T,P", spec)
			}
			t, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
			if err != nil {
				return fmt.Errorf("plot: bad temperature in %q: %w", spec, err)
			}
			p, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
			if err != nil {
				return fmt.Errorf("plot: bad pressure in %q: %w", spec, err)
			}
			f := fluid.New(cubicbackend.New(sp)).WithLogger(log)
			results, err := f.Flash(quantity.PropP, p, quantity.PropT, t)
			if err != nil {
				log.WithError(err).Warn("state did not fully converge, plotting best-effort point")
			}
			fluids = append(fluids, fluid.New(results.Adapter.Backend))
		}

		cfg := &pvplot.Config{
			NumberStates:    true,
			TitleColor:      pvplot.Black,
			IsothermsColor:  pvplot.Blue,
			StatePointColor: pvplot.Red,
			ShowOutputPath:  true,
		}
		return pvplot.DrawPV(cfg, plotOutput, fluids...)
	},
}

func init() {
	plotCmd.Flags().StringVar(&plotOutput, "output", "pv.png", "output image path")
	plotCmd.Flags().StringSliceVar(&plotStates, "state", nil, "T,P pair (SI units); repeat for multiple states")
}
