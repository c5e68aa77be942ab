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
	"reflect"
	"testing"

	"github.com/isotopemodel/isolift/science/met"
)

const testTolerance = 1e-12

// referenceProfile runs the reference simulation: an air mass with 85%
// relative humidity and 20 °C at sea level lifted to 4000 m in 10 m
// steps.
func referenceProfile(t *testing.T) *Profile {
	t.Helper()
	p, err := Run(DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLevels(t *testing.T) {
	cfg := DefaultConfig()
	if n := cfg.Levels(); n != 400 {
		t.Fatalf("reference grid: got %d levels, want 400", n)
	}
	p := referenceProfile(t)
	if n := p.Levels(); n != 400 {
		t.Fatalf("reference profile: got %d levels, want 400", n)
	}
}

func TestTemperatureProfile(t *testing.T) {
	cfg := DefaultConfig()
	p := referenceProfile(t)

	if p.Temperature[0] != cfg.BaseTemperature {
		t.Errorf("base temperature: got %g, want %g",
			p.Temperature[0], cfg.BaseTemperature)
	}
	for z := 1; z < p.Levels(); z++ {
		if p.Temperature[z] >= p.Temperature[z-1] {
			t.Fatalf("temperature not strictly decreasing at level %d", z)
		}
		want := cfg.BaseTemperature - p.Altitude[z]*cfg.LapseRate/1000
		if different(p.Temperature[z], want, testTolerance) {
			t.Fatalf("temperature at level %d: got %g, want %g",
				z, p.Temperature[z], want)
		}
	}
	if last := p.Temperature[p.Levels()-1]; different(last, 0, testTolerance) {
		t.Errorf("temperature at 4000 m: got %g, want 0", last)
	}
}

func TestAltitudeGrid(t *testing.T) {
	cfg := DefaultConfig()
	p := referenceProfile(t)

	if p.Altitude[0] != cfg.MinZ {
		t.Errorf("first level: got %g, want %g", p.Altitude[0], cfg.MinZ)
	}
	if last := p.Altitude[p.Levels()-1]; different(last, cfg.MaxZ, 1e-9) {
		t.Errorf("last level: got %g, want %g", last, cfg.MaxZ)
	}
	for z := 1; z < p.Levels(); z++ {
		if p.Altitude[z] <= p.Altitude[z-1] {
			t.Fatalf("altitude not strictly increasing at level %d", z)
		}
	}
}

func TestVaporFraction(t *testing.T) {
	p := referenceProfile(t)
	first := p.FirstCondensation()

	if p.VaporFraction[0] != 1 {
		t.Errorf("base vapor fraction: got %g, want exactly 1", p.VaporFraction[0])
	}
	// Before condensation the parcel is conserved.
	for z := 1; z < first; z++ {
		if p.VaporFraction[z] != 1 {
			t.Fatalf("vapor fraction at level %d: got %g, want 1", z, p.VaporFraction[z])
		}
	}
	// The residual fraction stays in (0,1] and never rises across the
	// whole grid, including the condensation onset level.
	for z := 1; z < p.Levels(); z++ {
		f := p.VaporFraction[z]
		if f <= 0 || f > 1 {
			t.Fatalf("vapor fraction at level %d: got %g, want in (0,1]", z, f)
		}
		if f > p.VaporFraction[z-1] {
			t.Fatalf("vapor fraction increasing at level %d", z)
		}
	}
	if final := p.VaporFraction[p.Levels()-1]; final >= 1 {
		t.Errorf("final vapor fraction: got %g, want < 1", final)
	}
}

func TestFirstCondensation(t *testing.T) {
	p := referenceProfile(t)

	first := p.FirstCondensation()
	if first <= 0 {
		t.Fatalf("first condensation level: got %d, want > 0", first)
	}
	for z := 0; z < first; z++ {
		if p.Precipitation[z] != nil {
			t.Fatalf("precipitation defined at level %d, before first condensation", z)
		}
	}
	for z := first; z < p.Levels(); z++ {
		c := p.Precipitation[z]
		if c == nil {
			t.Fatalf("precipitation undefined at level %d, after first condensation", z)
		}
		if math.IsNaN(c.O18) || math.IsInf(c.O18, 0) ||
			math.IsNaN(c.H2) || math.IsInf(c.H2, 0) {
			t.Fatalf("precipitation at level %d is not finite: %+v", z, *c)
		}
	}
}

func TestVaporDepletion(t *testing.T) {
	cfg := DefaultConfig()
	p := referenceProfile(t)
	first := p.FirstCondensation()

	// The first condensed level already depletes the vapor below its
	// initial composition.
	if p.Vapor[first].O18 >= cfg.InitialVapor.O18 {
		t.Errorf("vapor δ18O at first condensation: got %g, want < %g",
			p.Vapor[first].O18, cfg.InitialVapor.O18)
	}
	if p.Vapor[first].H2 >= cfg.InitialVapor.H2 {
		t.Errorf("vapor δD at first condensation: got %g, want < %g",
			p.Vapor[first].H2, cfg.InitialVapor.H2)
	}
	// Across the whole grid, vapor concentration never rises and the
	// vapor becomes progressively depleted in heavy isotopes.
	for z := 1; z < p.Levels(); z++ {
		if p.VaporConcentration[z] > p.VaporConcentration[z-1] {
			t.Fatalf("vapor concentration increasing at level %d", z)
		}
		if p.Vapor[z].O18 > p.Vapor[z-1].O18 {
			t.Fatalf("vapor δ18O increasing at level %d", z)
		}
		if p.Vapor[z].H2 > p.Vapor[z-1].H2 {
			t.Fatalf("vapor δD increasing at level %d", z)
		}
	}
}

func TestRelativeHumidity(t *testing.T) {
	cfg := DefaultConfig()
	p := referenceProfile(t)
	if p.RelativeHumidity[0] != cfg.InitialRH {
		t.Errorf("base relative humidity: got %g, want %g",
			p.RelativeHumidity[0], cfg.InitialRH)
	}
	first := p.FirstCondensation()
	if p.RelativeHumidity[first] <= SaturationThreshold {
		t.Errorf("relative humidity at first condensation level: got %g, want > %g",
			p.RelativeHumidity[first], SaturationThreshold)
	}
}

func TestBaseVaporConcentration(t *testing.T) {
	cfg := DefaultConfig()
	p := referenceProfile(t)
	want := 1e6 * cfg.InitialRH *
		met.SaturationVaporPressure(cfg.BaseTemperature) / cfg.BasePressure
	if p.VaporConcentration[0] != want {
		t.Errorf("base vapor concentration: got %g, want %g",
			p.VaporConcentration[0], want)
	}
}

// The engine contains no randomness: repeated runs with the same
// configuration must produce bit-identical profiles.
func TestIdempotence(t *testing.T) {
	a := referenceProfile(t)
	b := referenceProfile(t)
	if !reflect.DeepEqual(a, b) {
		t.Error("two runs with identical configuration differ")
	}
}

func TestConfigurationErrors(t *testing.T) {
	bad := []Config{}
	c := DefaultConfig()
	c.ZRes = 0
	bad = append(bad, c)
	c = DefaultConfig()
	c.ZRes = -10
	bad = append(bad, c)
	c = DefaultConfig()
	c.MaxZ = c.MinZ
	bad = append(bad, c)
	c = DefaultConfig()
	c.MaxZ = c.MinZ - 1000
	bad = append(bad, c)
	c = DefaultConfig()
	c.InitialRH = 0
	bad = append(bad, c)
	c = DefaultConfig()
	c.InitialRH = 1.2
	bad = append(bad, c)
	c = DefaultConfig()
	c.BasePressure = 0
	bad = append(bad, c)

	for i, cfg := range bad {
		_, err := Run(cfg)
		if err == nil {
			t.Errorf("case %d: expected a configuration error", i)
			continue
		}
		if _, ok := err.(*ConfigurationError); !ok {
			t.Errorf("case %d: got %T, want *ConfigurationError", i, err)
		}
	}
}

// A grid with more levels than the pressure formula's scale height in
// meters forces the condensation divisor outside the formula domain;
// the run must abort with the domain error rather than produce NaNs.
func TestDomainErrorPropagation(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxZ = 50000
	cfg.ZRes = 1
	_, err := Run(cfg)
	if err == nil {
		t.Fatal("expected a domain error")
	}
	if _, ok := err.(*met.DomainError); !ok {
		t.Errorf("got %T (%v), want *met.DomainError", err, err)
	}
}

// A saturated level whose mixing ratio exactly reproduces the residual
// fraction carried up from below makes the mass balance degenerate; the
// run must fail rather than divide by zero.
func TestDegenerateStep(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxZ = 30 // three levels
	s := &Simulation{
		Config: cfg,
		InitFuncs: []ProfileManipulator{
			AltitudeGrid(),
			func(s *Simulation) error {
				p := s.Profile
				// Base the parcel at exactly the mixing ratio the
				// condensation step will compute for level 2, so the
				// fractions come out equal.
				divisor, err := met.AltitudeToPressure(2)
				if err != nil {
					return err
				}
				p.VaporConcentration[0] = 1e6 *
					met.SaturationVaporPressure(p.Temperature[2]) / divisor
				p.VaporFraction[0] = 1
				p.Vapor[0] = cfg.InitialVapor
				p.RelativeHumidity[1] = 0 // level 1 carries forward
				p.RelativeHumidity[2] = 2 // forces condensation
				return nil
			},
		},
		LevelFuncs: []LevelManipulator{Condensation()},
	}
	if err := s.Init(); err != nil {
		t.Fatal(err)
	}
	err := s.Run()
	if err == nil {
		t.Fatal("expected a degenerate step error")
	}
	degen, ok := err.(*DegenerateStepError)
	if !ok {
		t.Fatalf("got %T (%v), want *DegenerateStepError", err, err)
	}
	if degen.Level != 2 {
		t.Errorf("degenerate level: got %d, want 2", degen.Level)
	}
}

func TestDeltaRatioConversions(t *testing.T) {
	r := deltaToRatio(-12, VSMOW18O)
	if different(ratioToDelta(r, VSMOW18O), -12, testTolerance) {
		t.Error("delta/ratio conversion does not round trip")
	}
	if deltaToRatio(0, VSMOW18O) != VSMOW18O {
		t.Error("zero delta should recover the reference ratio")
	}
}

func different(a, b, tolerance float64) bool {
	return math.Abs(a-b) > tolerance
}
