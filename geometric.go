/*
 * geometric.go, part of nearmol.
 *
 * Copyright 2012 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

package chem

import (
	"fmt"
	"math"

	v3 "github.com/rmera/nearmol/v3"
	"gonum.org/v1/gonum/mat"
)

//CenterOfMass returns the center of mass of the atoms represented by the coordinates in geometry
//and the masses in mass (a column vector), and an error. If mass is nil, the geometric center
//is returned.
func CenterOfMass(geometry *v3.Matrix, mass *mat.Dense) (*v3.Matrix, error) {
	if geometry == nil {
		return nil, fmt.Errorf("nil matrix to get the center of mass")
	}
	gr := geometry.NVecs()
	if gr == 0 {
		return nil, fmt.Errorf("empty matrix to get the center of mass")
	}
	if mass == nil { //just obtain the geometric center
		return geometry.Centroid(), nil
	}
	mr, mc := mass.Dims()
	if mr != gr || mc != 1 {
		return nil, fmt.Errorf("mass vector (%dx%d) doesn't match the %d coordinates", mr, mc, gr)
	}
	total := mat.Sum(mass)
	if total == 0 {
		return nil, fmt.Errorf("total mass is zero")
	}
	ref := v3.Zeros(1)
	ref.Dense.Mul(mass.T(), geometry.Dense)
	ref.Dense.Scale(1/total, ref.Dense)
	return ref, nil
}

//MinimumImage returns the displacement that, added to point, brings it to the periodic image
//closest to ref in an orthorhombic box with the given side lengths. Axes with a non-positive
//length are not displaced.
func MinimumImage(point, ref, box [3]float64) [3]float64 {
	var d [3]float64
	for i := range d {
		if box[i] <= 0 {
			continue
		}
		//same rounding as numpy's, half goes to even.
		d[i] = -box[i] * math.RoundToEven((point[i]-ref[i])/box[i])
	}
	return d
}
