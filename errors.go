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

import "fmt"

// ConfigurationError reports a simulation setup that is rejected before
// the engine runs.
type ConfigurationError struct {
	Problem string
}

func (e *ConfigurationError) Error() string {
	return "isolift: invalid configuration: " + e.Problem
}

// DegenerateStepError reports a saturated level whose vapor fraction is
// identical to the level below it, which makes the precipitation mass
// balance a division by zero.
type DegenerateStepError struct {
	Level    int
	Fraction float64
}

func (e *DegenerateStepError) Error() string {
	return fmt.Sprintf("isolift: degenerate condensation step at level %d: "+
		"vapor fraction %g unchanged from the level below", e.Level, e.Fraction)
}
