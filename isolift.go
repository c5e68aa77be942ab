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

// Package isolift implements a Rayleigh distillation model of the isotopic
// altitude effect. An air parcel is lifted adiabatically over a vertical
// grid of altitude levels; at each level the parcel either condenses part
// of its water vapor under equilibrium fractionation or carries its state
// forward unchanged, producing a full altitude profile of the isotopic
// composition of water vapor and precipitation.
package isolift

import "math"

// Version gives the version number of this version of IsoLift.
const Version = "0.1.0"

// SaturationThreshold is the relative humidity above which condensation
// occurs. It is slightly higher than 100% to account for error in the
// saturation vapor pressure formula.
const SaturationThreshold = 1.05

// Absolute isotope ratios of the VSMOW reference standard.
const (
	VSMOW18O = 2005.20e-6 // 18O/16O
	VSMOWD   = 155.76e-6  // 2H/1H
)

// Composition is a water isotopic composition in delta notation
// relative to VSMOW.
type Composition struct {
	O18 float64 // δ18O [‰]
	H2  float64 // δD [‰]
}

// Config holds the simulation parameters and boundary conditions.
type Config struct {
	MinZ float64 // lowest altitude of the simulation [m ASL]
	MaxZ float64 // top level of the simulation [m ASL]
	ZRes float64 // vertical resolution [m]

	LapseRate       float64 // moist adiabatic lapse rate [°C/km]
	BaseTemperature float64 // air temperature at MinZ [°C]
	BasePressure    float64 // atmospheric pressure at sea level [hPa]
	InitialRH       float64 // relative humidity at MinZ [fraction]

	// InitialVapor is the isotopic composition of water vapor at MinZ.
	InitialVapor Composition

	// Absolute isotope ratios of the reference standard used for
	// delta notation conversions.
	VSMOW18O float64
	VSMOWD   float64
}

// DefaultConfig returns the configuration of the reference simulation:
// an air mass with 85% relative humidity and 20 °C at sea level lifted
// to 4000 m, with initial vapor δ18O of -12 ‰ and a deuterium excess
// of 10 ‰.
func DefaultConfig() Config {
	const d18O = -12.
	return Config{
		MinZ:            0,
		MaxZ:            4000,
		ZRes:            10,
		LapseRate:       5,
		BaseTemperature: 20,
		BasePressure:    1013.25,
		InitialRH:       0.85,
		InitialVapor:    Composition{O18: d18O, H2: 10 + 8*d18O},
		VSMOW18O:        VSMOW18O,
		VSMOWD:          VSMOWD,
	}
}

// Levels returns the number of altitude levels implied by the
// configured grid.
func (c Config) Levels() int {
	return int(math.Ceil((c.MaxZ - c.MinZ) / c.ZRes))
}

// Check rejects configurations the engine cannot run on.
func (c Config) Check() error {
	if c.ZRes <= 0 {
		return &ConfigurationError{Problem: "vertical resolution must be positive"}
	}
	if c.MaxZ <= c.MinZ {
		return &ConfigurationError{Problem: "top level must be above the lowest level"}
	}
	if c.Levels() < 2 {
		return &ConfigurationError{Problem: "altitude grid must contain at least two levels"}
	}
	if c.InitialRH <= 0 || c.InitialRH > 1 {
		return &ConfigurationError{Problem: "initial relative humidity must be in (0,1]"}
	}
	if c.BasePressure <= 0 {
		return &ConfigurationError{Problem: "base pressure must be positive"}
	}
	if c.VSMOW18O <= 0 || c.VSMOWD <= 0 {
		return &ConfigurationError{Problem: "reference isotope ratios must be positive"}
	}
	return nil
}

// Profile holds the state of every altitude level of a simulation.
// The slices are parallel: index z describes the parcel at
// Altitude[z]. A Profile is written once, level by level, during a
// single forward pass and is read-only afterwards.
type Profile struct {
	Altitude           []float64     // altitude levels [m ASL]
	Temperature        []float64     // air temperature [°C]
	VaporConcentration []float64     // water vapor concentration [ppmv]
	VaporFraction      []float64     // residual fraction of water vapor
	RelativeHumidity   []float64     // relative humidity [fraction]
	Vapor              []Composition // water vapor isotopic composition
	// Precipitation is the isotopic composition of precipitation,
	// nil at every level before the first condensation event.
	Precipitation []*Composition
}

func newProfile(n int) *Profile {
	return &Profile{
		Altitude:           make([]float64, n),
		Temperature:        make([]float64, n),
		VaporConcentration: make([]float64, n),
		VaporFraction:      make([]float64, n),
		RelativeHumidity:   make([]float64, n),
		Vapor:              make([]Composition, n),
		Precipitation:      make([]*Composition, n),
	}
}

// Levels returns the number of altitude levels in the profile.
func (p *Profile) Levels() int { return len(p.Altitude) }

// FirstCondensation returns the index of the first level where
// condensation occurred, or -1 if the air mass never saturated.
func (p *Profile) FirstCondensation() int {
	for z, c := range p.Precipitation {
		if c != nil {
			return z
		}
	}
	return -1
}

// A ProfileManipulator is a function that prepares the whole simulation
// before the vertical pass begins.
type ProfileManipulator func(s *Simulation) error

// A LevelManipulator is a function that updates the state of altitude
// level z from the state of the level directly below it.
type LevelManipulator func(s *Simulation, z int) error

// Simulation holds the current state of the model.
type Simulation struct {
	Config Config

	// Profile is the model output. It is allocated by Init and filled
	// in by Run.
	Profile *Profile

	// InitFuncs are run (in order) before the vertical pass.
	InitFuncs []ProfileManipulator

	// LevelFuncs are run (in order) for each level above the base
	// during the vertical pass.
	LevelFuncs []LevelManipulator
}

// Init checks the configuration, allocates the profile, and runs the
// initialization functions.
func (s *Simulation) Init() error {
	if err := s.Config.Check(); err != nil {
		return err
	}
	s.Profile = newProfile(s.Config.Levels())
	for _, f := range s.InitFuncs {
		if err := f(s); err != nil {
			return err
		}
	}
	return nil
}

// Run lifts the air mass through the altitude grid. Each level depends
// only on the level below it, so the pass is strictly sequential. Any
// error aborts the run immediately; the simulation is deterministic, so
// there is no retry and no partial output mode.
func (s *Simulation) Run() error {
	for z := 1; z < s.Profile.Levels(); z++ {
		for _, f := range s.LevelFuncs {
			if err := f(s, z); err != nil {
				return err
			}
		}
	}
	return nil
}

// DefaultLevelFuncs are the science functions that are run in typical
// simulations.
func DefaultLevelFuncs() []LevelManipulator {
	return []LevelManipulator{
		Saturation(),
		Condensation(),
	}
}

// Run runs a complete simulation with the default initialization and
// science functions and returns the finished profile.
func Run(cfg Config) (*Profile, error) {
	s := &Simulation{
		Config: cfg,
		InitFuncs: []ProfileManipulator{
			AltitudeGrid(),
			BaseState(),
		},
		LevelFuncs: DefaultLevelFuncs(),
	}
	if err := s.Init(); err != nil {
		return nil, err
	}
	if err := s.Run(); err != nil {
		return nil, err
	}
	return s.Profile, nil
}
