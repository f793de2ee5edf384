package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/gothermo/thermocore/internal/cubicbackend"
)

var (
	log         = logrus.New()
	substanceID string
	logLevel    string
	configPath  string
)

var rootCmd = &cobra.Command{
	Use:   "thermoflash",
	Short: "Flash a fluid to a specification, query its saturation curve, or plot its PV diagram",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		lvl, err := logrus.ParseLevel(logLevel)
		if err != nil {
			return fmt.Errorf("invalid --log-level %q: %w", logLevel, err)
		}
		log.SetLevel(lvl)
		return nil
	},
}

func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		log.WithError(err).Error("thermoflash failed")
		return err
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&substanceID, "substance", "water", "substance to use: water, ethane, or ethanol")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "optional YAML config file overriding the flash subcommand's flags")

	rootCmd.AddCommand(flashCmd, saturateCmd, plotCmd)
}

func lookupSpecies(name string) (cubicbackend.Species, error) {
	switch name {
	case "water":
		return cubicbackend.Water, nil
	case "ethane":
		return cubicbackend.Ethane, nil
	case "ethanol":
		return cubicbackend.Ethanol, nil
	default:
		return cubicbackend.Species{}, fmt.Errorf("unknown substance %q (want water, ethane, or ethanol)", name)
	}
}
