package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/gothermo/thermocore/fluid"
	"github.com/gothermo/thermocore/internal/cubicbackend"
	"github.com/gothermo/thermocore/registry"
	"github.com/gothermo/thermocore/units"
)

var (
	spec1Prop, spec2Prop   string
	spec1Val, spec2Val     float64
	massUnits              bool
	reportProps            []string
)

var flashCmd = &cobra.Command{
	Use:   "flash",
	Short: "Flash a substance to a two-property specification and report its state",
	RunE: func(c *cobra.Command, args []string) error {
		p1, p2, v1, v2, unit, substance := spec1Prop, spec2Prop, spec1Val, spec2Val, units.Molar, substanceID
		if massUnits {
			unit = units.Mass
		}
		if configPath != "" {
			fc, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			substance = fc.Substance
			p1, v1 = fc.Spec1.Property, fc.Spec1.Value
			p2, v2 = fc.Spec2.Property, fc.Spec2.Value
			if fc.Unit == "mass" {
				unit = units.Mass
			}
		}

		sp, err := lookupSpecies(substance)
		if err != nil {
			return err
		}
		prop1 := registry.Lookup(p1)
		prop2 := registry.Lookup(p2)

		f := fluid.New(cubicbackend.New(sp)).WithLogger(log)
		results, err := f.Flash(prop1, v1, prop2, v2)
		if err != nil {
			log.WithError(err).Warn("flash did not fully converge, reporting best-effort state")
		}

		names := reportProps
		if len(names) == 0 {
			names = []string{"T", "P", "Rho", "H", "S", "Phase"}
		}
		for _, name := range names {
			if name == "Phase" {
				fmt.Printf("%-6s %v\n", name, results.Phase())
				continue
			}
			v, err := results.PropertiesByName(unit, []string{name})
			if err != nil {
				continue
			}
			fmt.Printf("%-6s %g\n", name, v[name])
		}
		return err
	},
}

func init() {
	flashCmd.Flags().StringVar(&spec1Prop, "prop1", "P", "first specification property")
	flashCmd.Flags().Float64Var(&spec1Val, "v1", 101325, "first specification value (SI)")
	flashCmd.Flags().StringVar(&spec2Prop, "prop2", "T", "second specification property")
	flashCmd.Flags().Float64Var(&spec2Val, "v2", 300, "second specification value (SI)")
	flashCmd.Flags().BoolVar(&massUnits, "mass", false, "report extensive properties per unit mass instead of per mole")
	flashCmd.Flags().StringSliceVar(&reportProps, "report", nil, "comma-separated list of properties to report")
}
