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

package isolift

import (
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/isotopemodel/isolift/science/fractionation"
	"github.com/isotopemodel/isolift/science/met"
)

// AltitudeGrid returns a function that builds the altitude grid and the
// air temperature vector. Temperature decreases linearly with altitude
// at the configured lapse rate; it is computed once and never touched
// again during the pass.
func AltitudeGrid() ProfileManipulator {
	return func(s *Simulation) error {
		p, c := s.Profile, s.Config
		floats.Span(p.Altitude, c.MinZ, c.MaxZ)
		for z, alt := range p.Altitude {
			p.Temperature[z] = c.BaseTemperature - alt*c.LapseRate/1000
		}
		return nil
	}
}

// BaseState returns a function that assigns the initial conditions of
// the air parcel at the lowest level.
func BaseState() ProfileManipulator {
	return func(s *Simulation) error {
		p, c := s.Profile, s.Config
		p.VaporConcentration[0] = 1e6 * c.InitialRH *
			met.SaturationVaporPressure(c.BaseTemperature) / c.BasePressure
		p.VaporFraction[0] = 1
		p.RelativeHumidity[0] = c.InitialRH
		p.Vapor[0] = c.InitialVapor
		return nil
	}
}

// Saturation returns a function that computes the relative humidity at
// level z from the vapor concentration of the level below and the
// saturation vapor pressure at the current level's temperature.
func Saturation() LevelManipulator {
	return func(s *Simulation, z int) error {
		p, c := s.Profile, s.Config
		p.RelativeHumidity[z] = p.VaporConcentration[z-1] / 1e6 * c.BasePressure /
			met.SaturationVaporPressure(p.Temperature[z])
		return nil
	}
}

// Condensation returns a function that applies the per-level state
// test. When relative humidity exceeds SaturationThreshold the parcel
// condenses: vapor is forced down to the saturation mixing ratio, the
// residual vapor fraction is updated relative to the base level, the
// vapor composition follows the Rayleigh equation, and the
// precipitation composition is obtained by mass balance against the
// level below. Otherwise every field carries forward unchanged.
//
// The pressure divisor of the mixing ratio is evaluated at the level
// index taken as meters, so over typical grids it stays near sea-level
// pressure and the vapor fraction never rises above 1.
func Condensation() LevelManipulator {
	return func(s *Simulation, z int) error {
		p, c := s.Profile, s.Config

		if p.RelativeHumidity[z] <= SaturationThreshold {
			p.VaporConcentration[z] = p.VaporConcentration[z-1]
			p.VaporFraction[z] = p.VaporFraction[z-1]
			p.Vapor[z] = p.Vapor[z-1]
			if prev := p.Precipitation[z-1]; prev != nil {
				carried := *prev
				p.Precipitation[z] = &carried
			}
			return nil
		}

		divisor, err := met.AltitudeToPressure(float64(z))
		if err != nil {
			return err
		}
		p.VaporConcentration[z] = 1e6 *
			met.SaturationVaporPressure(p.Temperature[z]) / divisor
		p.VaporFraction[z] = p.VaporConcentration[z] / p.VaporConcentration[0]

		// Rayleigh update of the vapor composition. Both isotope
		// ratios are raised to the 18O exponent.
		alpha := fractionation.Alpha18O(p.Temperature[z])
		r18 := deltaToRatio(c.InitialVapor.O18, c.VSMOW18O) *
			math.Pow(p.VaporFraction[z], alpha-1)
		rD := deltaToRatio(c.InitialVapor.H2, c.VSMOWD) *
			math.Pow(p.VaporFraction[z], alpha-1)
		p.Vapor[z] = Composition{
			O18: ratioToDelta(r18, c.VSMOW18O),
			H2:  ratioToDelta(rD, c.VSMOWD),
		}

		df := p.VaporFraction[z-1] - p.VaporFraction[z]
		if df == 0 {
			return &DegenerateStepError{Level: z, Fraction: p.VaporFraction[z]}
		}
		p.Precipitation[z] = &Composition{
			O18: (p.VaporFraction[z-1]*p.Vapor[z-1].O18 -
				p.VaporFraction[z]*p.Vapor[z].O18) / df,
			H2: (p.VaporFraction[z-1]*p.Vapor[z-1].H2 -
				p.VaporFraction[z]*p.Vapor[z].H2) / df,
		}
		return nil
	}
}

// deltaToRatio recovers an absolute isotope ratio from a composition in
// delta notation [‰] and the reference standard's absolute ratio.
func deltaToRatio(delta, reference float64) float64 {
	return (delta*1e-3 + 1) * reference
}

// ratioToDelta converts an absolute isotope ratio to delta
// notation [‰] relative to the reference standard's absolute ratio.
func ratioToDelta(ratio, reference float64) float64 {
	return (ratio/reference - 1) * 1e3
}
