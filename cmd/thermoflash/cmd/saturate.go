package cmd

import (
	"fmt"
	"math"

	"github.com/spf13/cobra"

	"github.com/gothermo/thermocore/fluid"
	"github.com/gothermo/thermocore/internal/cubicbackend"
)

var (
	saturateT float64
	saturateP float64
)

var saturateCmd = &cobra.Command{
	Use:   "saturate",
	Short: "Report the saturation pressure at a temperature, or the saturation temperature at a pressure",
	RunE: func(c *cobra.Command, args []string) error {
		sp, err := lookupSpecies(substanceID)
		if err != nil {
			return err
		}
		f := fluid.New(cubicbackend.New(sp)).WithLogger(log)

		switch {
		case !math.IsNaN(saturateT):
			psat, err := fluid.SaturationP(f, saturateT)
			if err != nil {
				return err
			}
			fmt.Printf("Psat(%.2f K) = %.6g Pa\n", saturateT, psat)
		case !math.IsNaN(saturateP):
			tsat, err := fluid.SaturationT(f, saturateP)
			if err != nil {
				return err
			}
			fmt.Printf("Tsat(%.6g Pa) = %.2f K\n", saturateP, tsat)
		default:
			return fmt.Errorf("saturate: one of --temperature or --pressure is required")
		}
		return nil
	},
}

func init() {
	saturateCmd.Flags().Float64Var(&saturateT, "temperature", math.NaN(), "temperature in K to find Psat for")
	saturateCmd.Flags().Float64Var(&saturateP, "pressure", math.NaN(), "pressure in Pa to find Tsat for")
}
