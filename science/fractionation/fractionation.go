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

// Package fractionation provides temperature-dependent equilibrium
// fractionation factors for the 18O/16O and 2H/1H isotope ratios in the
// condensed-phase/vapor system. At or above 268.16 K (-5 °C) the
// liquid–vapor factors of Majoube (1971) are used; below it the
// ice–vapor factors of Ellehoj et al. (2013). The formulas carry no
// explicit valid range check.
package fractionation

import "math"

// iceThreshold is the temperature [K] below which the ice–vapor
// formulas apply.
const iceThreshold = 268.16

// Alpha18O returns the equilibrium fractionation factor for the
// 18O/16O ratio at temperature T [°C].
func Alpha18O(T float64) float64 {
	TK := T + 273.15
	if TK >= iceThreshold {
		return math.Exp(1137/(TK*TK) - 0.4156/TK - 0.0020667)
	}
	return math.Exp(8312.58/(TK*TK) - 49.192/TK + 0.0831)
}

// AlphaD returns the equilibrium fractionation factor for the 2H/1H
// ratio at temperature T [°C].
func AlphaD(T float64) float64 {
	TK := T + 273.15
	if TK >= iceThreshold {
		return math.Exp(24844/(TK*TK) - 76.248/TK + 0.052612)
	}
	return math.Exp(48888/(TK*TK) - 203.10/TK + 0.2133)
}
