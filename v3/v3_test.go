/*
 * v3_test.go, part of nearmol.
 *
 * Copyright 2015 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

package v3

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMatrix(Te *testing.T) {
	_, err := NewMatrix([]float64{1, 2, 3, 4})
	require.Error(Te, err)
	A, err := NewMatrix([]float64{1, 2, 3, 4, 5, 6, 7, 8, 9})
	require.NoError(Te, err)
	assert.Equal(Te, 3, A.NVecs())
	View := A.VecView(1)
	View.Set(0, 0, 100)
	assert.Equal(Te, 100.0, A.At(1, 0))
}

func TestSomeVecs(Te *testing.T) {
	a := []float64{1.0, 2.0, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16, 17, 18}
	A, err := NewMatrix(a)
	require.NoError(Te, err)
	B := Zeros(3)
	B.SomeVecs(A, []int{1, 3, 5})
	assert.Equal(Te, []float64{4, 5, 6}, B.RawRowView(0))
	assert.Equal(Te, []float64{16, 17, 18}, B.RawRowView(2))
	C := Zeros(2)
	err = C.SomeVecsSafe(A, []int{1, 3, 5})
	assert.Error(Te, err)
	err = C.SomeVecsSafe(A, []int{1, 30})
	assert.Error(Te, err)
	D := Zeros(6)
	D.SetVecs(B, []int{0, 2, 4})
	assert.Equal(Te, []float64{10, 11, 12}, D.RawRowView(2))
	assert.Equal(Te, []float64{0, 0, 0}, D.RawRowView(1))
}

func TestShifts(Te *testing.T) {
	A, err := NewMatrix([]float64{0, 0, 0, 2, 2, 2})
	require.NoError(Te, err)
	c := A.Centroid()
	assert.Equal(Te, []float64{1, 1, 1}, c.RawRowView(0))
	B := Zeros(2)
	B.SubVec(A, c)
	assert.Equal(Te, []float64{-1, -1, -1}, B.RawRowView(0))
	B.AddVec(B, c)
	assert.Equal(Te, []float64{2, 2, 2}, B.RawRowView(1))
	assert.Panics(Te, func() { B.AddVec(B, A) })
}
