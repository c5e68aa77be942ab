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

// Package met provides pure conversions between meteorological
// parameters: altitude, pressure, saturation vapor pressure, and air
// density.
package met

import (
	"fmt"
	"math"
)

const (
	// SeaLevelPressure is the reference atmospheric pressure at mean
	// sea level [hPa].
	SeaLevelPressure = 1013.25

	// RAir is the specific gas constant for dry air [J/(kg·K)].
	RAir = 287.058

	// Constants of the pressure altitude formula
	// (www.weather.gov/epz/wxcalc_pressurealtitude).
	pressureScaleHeight = 44307.69396 // m
	pressureExponent    = 0.190284
)

// A DomainError reports an argument outside the mathematically valid
// domain of one of the formulas in this package.
type DomainError struct {
	Func string
	Arg  float64
}

func (e *DomainError) Error() string {
	return fmt.Sprintf("met: %s: argument %g is outside the formula domain",
		e.Func, e.Arg)
}

// AltitudeToPressure estimates the atmospheric pressure [hPa] at z
// meters above mean sea level. The formula is only defined below the
// scale height of ~44.3 km; above it the base of the power expression
// goes negative and a DomainError is returned.
func AltitudeToPressure(z float64) (float64, error) {
	base := 1 - z/pressureScaleHeight
	if base < 0 {
		return 0, &DomainError{Func: "AltitudeToPressure", Arg: z}
	}
	return math.Pow(base, 1/pressureExponent) * SeaLevelPressure, nil
}

// PressureToAltitude estimates the altitude [m above mean sea level] at
// atmospheric pressure p [hPa]. It is the exact inverse of
// AltitudeToPressure for positive pressures at or below
// SeaLevelPressure.
func PressureToAltitude(p float64) float64 {
	return (1 - math.Pow(p/SeaLevelPressure, pressureExponent)) * pressureScaleHeight
}

// SaturationVaporPressure estimates the saturation water vapor pressure
// [hPa] at temperature T [°C] with the formula of Buck (1981), which
// has the lowest error in the range 0–35 °C. It is used unmodified
// outside that range.
func SaturationVaporPressure(T float64) float64 {
	return 6.1121 * math.Exp((18.678-T/234.5)*(T/(257.14+T)))
}

// AirDensity estimates the air density [kg/m³] at z meters above mean
// sea level and temperature T [°C] by combining the pressure altitude
// formula with the ideal gas law.
func AirDensity(z, T float64) (float64, error) {
	p, err := AltitudeToPressure(z)
	if err != nil {
		return 0, err
	}
	return 100 * p / (RAir * (T + 273.15)), nil
}
