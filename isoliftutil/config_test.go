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
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/isotopemodel/isolift"
)

func TestSimulationConfigDefaults(t *testing.T) {
	cfg, err := SimulationConfig(Cfg)
	if err != nil {
		t.Fatal(err)
	}
	if cfg != isolift.DefaultConfig() {
		t.Errorf("flag defaults: got %+v, want the default configuration", cfg)
	}
}

func TestSimulationConfigOverride(t *testing.T) {
	Cfg.Set("MaxZ", 3000.0)
	defer Cfg.Set("MaxZ", 4000.0)

	cfg, err := SimulationConfig(Cfg)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.MaxZ != 3000 {
		t.Errorf("MaxZ: got %g, want 3000", cfg.MaxZ)
	}
}

func TestSimulationConfigInvalid(t *testing.T) {
	Cfg.Set("ZRes", -1.0)
	defer Cfg.Set("ZRes", 10.0)

	_, err := SimulationConfig(Cfg)
	if err == nil {
		t.Fatal("expected a configuration error")
	}
	if _, ok := err.(*isolift.ConfigurationError); !ok {
		t.Errorf("got %T, want *ConfigurationError", err)
	}
}

func TestCheckOutputFile(t *testing.T) {
	if _, err := checkOutputFile(""); err == nil {
		t.Error("expected an error for an empty output file")
	}
	if _, err := checkOutputFile("no/such/directory/out.csv"); err == nil {
		t.Error("expected an error for a missing output directory")
	}
	if _, err := checkOutputFile("out.csv"); err != nil {
		t.Errorf("current directory should be accepted: %v", err)
	}
}

func TestWriteProfile(t *testing.T) {
	cfg := isolift.DefaultConfig()
	cfg.MaxZ = 2000
	profile, err := isolift.Run(cfg)
	if err != nil {
		t.Fatal(err)
	}

	dir, err := ioutil.TempDir("", "isolift")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "profile.csv")
	if err := writeProfile(profile, path); err != nil {
		t.Fatal(err)
	}
	b, err := ioutil.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(b)), "\n")
	if len(lines) != profile.Levels()+1 {
		t.Errorf("got %d CSV lines, want %d", len(lines), profile.Levels()+1)
	}
	// Levels before the first condensation event have empty
	// precipitation columns.
	if !strings.HasSuffix(strings.TrimSpace(lines[1]), ",,") {
		t.Errorf("first level should have no precipitation: %q", lines[1])
	}
}
