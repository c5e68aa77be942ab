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

package report

import (
	"image/color"
	"io"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/isotopemodel/isolift"
)

const (
	figWidth  = 6 * vg.Inch
	figHeight = 7 * vg.Inch
)

// Plot renders a two-panel PNG figure to w: the δ18O of water vapor
// and precipitation against altitude on top, and the regression
// subsample with the fitted line below.
func Plot(p *isolift.Profile, fit *LapseRate, w io.Writer) error {
	top, err := profilePlot(p)
	if err != nil {
		return err
	}
	bottom, err := regressionPlot(fit)
	if err != nil {
		return err
	}

	img := vgimg.New(figWidth, figHeight)
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: 2,
		Cols: 1,
		PadY: 2 * vg.Millimeter,
	}
	top.Draw(tiles.At(dc, 0, 0))
	bottom.Draw(tiles.At(dc, 0, 1))

	png := vgimg.PngCanvas{Canvas: img}
	_, err = png.WriteTo(w)
	return err
}

// profilePlot draws the vapor and precipitation compositions as a
// function of altitude. Levels before the first condensation event
// have no precipitation and are left out of the precipitation line.
func profilePlot(p *isolift.Profile) (*plot.Plot, error) {
	pl, err := plot.New()
	if err != nil {
		return nil, err
	}
	pl.X.Label.Text = "Altitude (m ASL)"
	pl.Y.Label.Text = "δ18O (‰)"

	vapor := make(plotter.XYs, p.Levels())
	for z := range vapor {
		vapor[z].X = p.Altitude[z]
		vapor[z].Y = p.Vapor[z].O18
	}
	var precip plotter.XYs
	for z, c := range p.Precipitation {
		if c == nil {
			continue
		}
		precip = append(precip, struct{ X, Y float64 }{X: p.Altitude[z], Y: c.O18})
	}

	vaporLine, err := plotter.NewLine(vapor)
	if err != nil {
		return nil, err
	}
	precipLine, err := plotter.NewLine(precip)
	if err != nil {
		return nil, err
	}
	precipLine.Color = color.RGBA{R: 255, A: 255}

	pl.Add(vaporLine, precipLine)
	pl.Legend.Add("Water Vapor", vaporLine)
	pl.Legend.Add("Precipitation", precipLine)
	pl.Legend.Top = true
	return pl, nil
}

// regressionPlot draws the sampled (altitude, δ18O) pairs and the
// fitted lapse rate line.
func regressionPlot(fit *LapseRate) (*plot.Plot, error) {
	pl, err := plot.New()
	if err != nil {
		return nil, err
	}
	pl.Title.Text = fit.String()
	pl.X.Label.Text = "Altitude (m ASL)"
	pl.Y.Label.Text = "δ18O (‰)"

	pts := make(plotter.XYs, len(fit.Altitude))
	minZ, maxZ := fit.Altitude[0], fit.Altitude[0]
	for i := range pts {
		pts[i].X = fit.Altitude[i]
		pts[i].Y = fit.Delta18O[i]
		if fit.Altitude[i] < minZ {
			minZ = fit.Altitude[i]
		}
		if fit.Altitude[i] > maxZ {
			maxZ = fit.Altitude[i]
		}
	}
	scatter, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, err
	}

	line, err := plotter.NewLine(plotter.XYs{
		{X: minZ, Y: fit.Intercept + fit.Slope*minZ},
		{X: maxZ, Y: fit.Intercept + fit.Slope*maxZ},
	})
	if err != nil {
		return nil, err
	}
	line.Color = color.RGBA{R: 255, A: 255}
	line.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	pl.Add(scatter, line)
	return pl, nil
}
