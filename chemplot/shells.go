/*
 * shells.go, part of nearmol.
 *
 * Copyright 2020 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */
/***Dedicated to the long life of the Ven. Khenpo Phuntzok Tenzin Rinpoche***/

//Package chemplot produces plots from the results of neighbor searches.
package chemplot

import (
	"fmt"
	"image/color"

	"github.com/rmera/nearmol/neighbors"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

//points with error bars
type errPoints struct {
	plotter.XYs
	plotter.YErrors
}

//ShellPlot returns a plot of the mean distance from the sources to their n-th nearest
//molecule, against n, with the standard deviations as error bars. One line is drawn for
//each element of series, labeled with the corresponding element of names, if names is not nil.
func ShellPlot(series [][]neighbors.Shell, names []string, title string) (*plot.Plot, error) {
	if names != nil && len(names) != len(series) {
		return nil, fmt.Errorf("chemplot.ShellPlot: %d names for %d series", len(names), len(series))
	}
	p := plot.New()
	p.Title.Padding = 3 * vg.Millimeter
	p.Title.Text = title
	p.X.Label.Text = "Neighbor rank"
	p.Y.Label.Text = "Distance (A)"
	p.X.Min = 0
	p.Y.Min = 0
	p.Add(plotter.NewGrid())
	for key, shells := range series {
		if len(shells) == 0 {
			continue
		}
		data := errPoints{XYs: make(plotter.XYs, len(shells)), YErrors: make(plotter.YErrors, len(shells))}
		for i, s := range shells {
			data.XYs[i].X = float64(s.Rank)
			data.XYs[i].Y = s.Mean
			data.YErrors[i].Low = s.StdDev
			data.YErrors[i].High = s.StdDev
		}
		r, g, b := colors(key, len(series))
		col := color.RGBA{R: r, G: g, B: b, A: 255}
		l, s, err := plotter.NewLinePoints(data.XYs)
		if err != nil {
			return nil, err
		}
		l.Color = col
		s.Color = col
		e, err := plotter.NewYErrorBars(data)
		if err != nil {
			return nil, err
		}
		e.Color = col
		p.Add(l, s, e)
		if names != nil {
			p.Legend.Add(names[key], l, s)
		}
	}
	return p, nil
}

//ShellProfile builds the plot described in ShellPlot, and saves it to filename. The format is
//decided by the extension of filename (png, svg, pdf, etc.).
func ShellProfile(series [][]neighbors.Shell, names []string, title, filename string) error {
	p, err := ShellPlot(series, names, title)
	if err != nil {
		return err
	}
	return p.Save(5*vg.Inch, 5*vg.Inch, filename)
}
