/*
Copyright © 2020 the IsoLift authors.
This file is part of IsoLift.

IsoLift is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

IsoLift is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with IsoLift.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package isoliftutil provides the configuration and command-line
// interface for the IsoLift model.
package isoliftutil

import (
	"fmt"
	"os"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/isotopemodel/isolift"
	"github.com/isotopemodel/isolift/report"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var log = logrus.StandardLogger()

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	logrus.SetFormatter(&logrus.TextFormatter{
		ForceColors:    true,
		FullTimestamp:  true,
		DisableSorting: true,
	})

	// Options are the configuration options available to IsoLift.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "MinZ",
			usage: `
              MinZ is the lowest altitude of the simulation [m ASL].`,
			defaultVal: 0.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "MaxZ",
			usage: `
              MaxZ is the top level of the simulation [m ASL].`,
			defaultVal: 4000.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "ZRes",
			usage: `
              ZRes is the vertical resolution of the simulation [m].`,
			defaultVal: 10.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "LapseRate",
			usage: `
              LapseRate is the moist adiabatic lapse rate [°C/km]
              (mean lapse rate from Minder et al. (2010)).`,
			defaultVal: 5.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "BaseTemperature",
			usage: `
              BaseTemperature is the air temperature at the lowest
              level [°C].`,
			defaultVal: 20.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "BasePressure",
			usage: `
              BasePressure is the atmospheric pressure at sea
              level [hPa].`,
			defaultVal: 1013.25,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "InitialRH",
			usage: `
              InitialRH is the relative humidity at the lowest level,
              as a fraction in (0,1].`,
			defaultVal: 0.85,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "InitialD18O",
			usage: `
              InitialD18O is the δ18O of water vapor at the lowest
              level [‰ vs VSMOW].`,
			defaultVal: -12.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "InitialDD",
			usage: `
              InitialDD is the δD of water vapor at the lowest level
              [‰ vs VSMOW]. The default corresponds to a deuterium
              excess of 10 ‰ against the default InitialD18O.`,
			defaultVal: -86.0,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "SampleCount",
			usage: `
              SampleCount is the number of random (altitude, δ18O)
              pairs used for the demonstration regression.`,
			defaultVal: report.DefaultSampleCount,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Seed",
			usage: `
              Seed seeds the random subsample so that repeated runs
              produce identical regressions.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the path where the profile is written
              as CSV.`,
			defaultVal: "isolift_profile.csv",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "PlotFile",
			usage: `
              PlotFile is the path where the profile and regression
              figure is written as PNG. If empty, no figure is
              produced.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("ISOLIFT")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("isolift: problem reading configuration file: %v", err)
		}
	}
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "isolift",
	Short: "A Rayleigh distillation model of the isotopic altitude effect.",
	Long: `IsoLift estimates the isotopic lapse rate (altitude effect) of
precipitation by lifting an air mass adiabatically over a vertical grid and
tracking the isotopic composition of water vapor and precipitation with a
simple Rayleigh distillation model.

Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'ISOLIFT_var' where 'var'
is the name of the variable to be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of IsoLift.",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("IsoLift v%s\n", isolift.Version)
	},
	DisableAutoGenTag: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the model.",
	Long: `run lifts the air mass through the configured altitude grid,
fits the demonstration regression, writes the resulting profile as CSV,
and optionally renders a figure.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := SimulationConfig(Cfg)
		if err != nil {
			return err
		}
		outputFile, err := checkOutputFile(Cfg.GetString("OutputFile"))
		if err != nil {
			return err
		}
		return Run(
			cfg,
			Cfg.GetInt("SampleCount"),
			int64(Cfg.GetInt("Seed")),
			outputFile,
			os.ExpandEnv(Cfg.GetString("PlotFile")))
	},
	DisableAutoGenTag: true,
}
