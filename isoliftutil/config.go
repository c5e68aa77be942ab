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

package isoliftutil

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lnashier/viper"
	"github.com/spf13/cast"

	"github.com/isotopemodel/isolift"
)

// configFields maps configuration variable names to the fields of a
// simulation configuration.
type configFields struct {
	fields map[string]*float64
}

func (c *configFields) assign(cfg *viper.Viper) error {
	for name, field := range c.fields {
		v, err := cast.ToFloat64E(cfg.Get(name))
		if err != nil {
			return fmt.Errorf("isolift: configuration variable %s: %v", name, err)
		}
		*field = v
	}
	return nil
}

// SimulationConfig assembles and checks the simulation configuration
// from the configuration information in cfg.
func SimulationConfig(cfg *viper.Viper) (isolift.Config, error) {
	c := isolift.DefaultConfig()
	f := configFields{fields: map[string]*float64{
		"MinZ":            &c.MinZ,
		"MaxZ":            &c.MaxZ,
		"ZRes":            &c.ZRes,
		"LapseRate":       &c.LapseRate,
		"BaseTemperature": &c.BaseTemperature,
		"BasePressure":    &c.BasePressure,
		"InitialRH":       &c.InitialRH,
		"InitialD18O":     &c.InitialVapor.O18,
		"InitialDD":       &c.InitialVapor.H2,
	}}
	if err := f.assign(cfg); err != nil {
		return c, err
	}
	if err := c.Check(); err != nil {
		return c, err
	}
	return c, nil
}

// checkOutputFile makes sure that the output file is specified and its
// directory exists, and expands any environment variables.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`isolift: you need to specify an output file configuration variable (for example: OutputFile="isolift_profile.csv")`)
	}
	f = os.ExpandEnv(f)
	outdir := filepath.Dir(f)
	if _, err := os.Stat(outdir); err != nil {
		return f, fmt.Errorf("isolift: the OutputFile directory doesn't exist: %v", err)
	}
	return f, nil
}
