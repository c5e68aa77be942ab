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
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/isotopemodel/isolift"
	"github.com/isotopemodel/isolift/report"
)

// Run runs the model and its reporting consumers.
//
// sampleCount and seed control the random subsample used for the
// demonstration regression.
//
// outputFile is the path where the profile is written as CSV.
//
// plotFile is the path where the profile and regression figure is
// written as PNG; if empty, no figure is produced.
func Run(cfg isolift.Config, sampleCount int, seed int64, outputFile, plotFile string) error {
	log.Infof("Lifting air mass from %.0f m to %.0f m...", cfg.MinZ, cfg.MaxZ)
	profile, err := isolift.Run(cfg)
	if err != nil {
		return err
	}
	log.Infof("End of simulation: %d levels, first condensation at level %d",
		profile.Levels(), profile.FirstCondensation())

	fit, err := report.Estimate(profile, sampleCount, seed)
	if err != nil {
		return err
	}
	log.Infof("Isotopic lapse rate estimated: %.2f ‰/100m (R² = %.3f)",
		fit.PerHundredMeters(), fit.RSquared)

	if err := writeProfile(profile, outputFile); err != nil {
		return err
	}
	log.Infof("Wrote profile to %s", outputFile)

	if plotFile != "" {
		f, err := os.Create(plotFile)
		if err != nil {
			return fmt.Errorf("isolift: creating figure file: %v", err)
		}
		defer f.Close()
		if err := report.Plot(profile, fit, f); err != nil {
			return fmt.Errorf("isolift: rendering figure: %v", err)
		}
		log.Infof("Wrote figure to %s", plotFile)
	}
	return nil
}

// writeProfile writes every level of the profile as a CSV row.
// Precipitation columns are empty at levels before the first
// condensation event.
func writeProfile(p *isolift.Profile, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("isolift: creating output file: %v", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"altitude_m", "temperature_c", "vapor_ppmv",
		"vapor_fraction", "relative_humidity", "vapor_d18o", "vapor_dd",
		"precipitation_d18o", "precipitation_dd"}); err != nil {
		return err
	}
	for z := 0; z < p.Levels(); z++ {
		row := []string{
			formatFloat(p.Altitude[z]),
			formatFloat(p.Temperature[z]),
			formatFloat(p.VaporConcentration[z]),
			formatFloat(p.VaporFraction[z]),
			formatFloat(p.RelativeHumidity[z]),
			formatFloat(p.Vapor[z].O18),
			formatFloat(p.Vapor[z].H2),
			"", "",
		}
		if c := p.Precipitation[z]; c != nil {
			row[7] = formatFloat(c.O18)
			row[8] = formatFloat(c.H2)
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}
