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

// Package report estimates an isotopic lapse rate from a finished
// simulation profile by fitting a linear altitude/δ18O model to a
// random subsample of the precipitation levels. It only reads the
// engine's output and can be swapped out without touching the model.
package report

import (
	"fmt"
	"math/rand"

	"github.com/GaryBoone/GoStats/stats"

	"github.com/isotopemodel/isolift"
)

// DefaultSampleCount is the number of (altitude, δ18O) pairs drawn for
// the demonstration regression when no count is configured.
const DefaultSampleCount = 20

// LapseRate holds a fitted linear altitude/δ18O model together with
// the sample it was fitted to.
type LapseRate struct {
	Slope     float64 // ‰ per m
	Intercept float64 // ‰
	RSquared  float64

	Altitude []float64 // sampled altitudes [m ASL]
	Delta18O []float64 // sampled precipitation δ18O [‰]
}

// PerHundredMeters returns the fitted lapse rate in the conventional
// ‰ per 100 m of altitude.
func (l *LapseRate) PerHundredMeters() float64 { return l.Slope * 100 }

func (l *LapseRate) String() string {
	return fmt.Sprintf("δ18O = %.4f·altitude %+.4f (R² = %.3f)",
		l.Slope, l.Intercept, l.RSquared)
}

// Sample draws n random (altitude, precipitation δ18O) pairs from the
// levels of p where precipitation is defined. A count exceeding the
// number of valid levels is rejected.
func Sample(p *isolift.Profile, n int, rng *rand.Rand) (altitude, d18O []float64, err error) {
	first := p.FirstCondensation()
	if first < 0 {
		return nil, nil, &isolift.ConfigurationError{
			Problem: "cannot sample precipitation: the air mass never saturated"}
	}
	valid := p.Levels() - first
	if n <= 0 || n > valid {
		return nil, nil, &isolift.ConfigurationError{
			Problem: fmt.Sprintf("sample count %d is outside the %d valid "+
				"precipitation levels", n, valid)}
	}
	altitude = make([]float64, n)
	d18O = make([]float64, n)
	for i := range altitude {
		z := first + rng.Intn(valid)
		altitude[i] = p.Altitude[z]
		d18O[i] = p.Precipitation[z].O18
	}
	return altitude, d18O, nil
}

// Fit fits an ordinary least squares line through the sampled pairs.
func Fit(altitude, d18O []float64) *LapseRate {
	slope, intercept, rsquared, _, _, _ := stats.LinearRegression(altitude, d18O)
	return &LapseRate{
		Slope:     slope,
		Intercept: intercept,
		RSquared:  rsquared,
		Altitude:  altitude,
		Delta18O:  d18O,
	}
}

// Estimate samples n pairs from p with the given random seed and fits
// the lapse rate model. The seed makes the subsample, and therefore
// the fit, reproducible.
func Estimate(p *isolift.Profile, n int, seed int64) (*LapseRate, error) {
	altitude, d18O, err := Sample(p, n, rand.New(rand.NewSource(seed)))
	if err != nil {
		return nil, err
	}
	return Fit(altitude, d18O), nil
}
