/*
 * chem_test.go, part of nearmol.
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

package chem

import (
	"errors"
	"testing"

	v3 "github.com/rmera/nearmol/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"
)

//water returns two water molecules in one frame, and one in a second frame.
func water() (*AtomTable, *MoleculeTable, *FrameTable, *PairTable) {
	atoms := &AtomTable{Rows: []*Atom{
		{ID: 10, Frame: 0, Molecule: 0, Symbol: "O", X: 0, Y: 0, Z: 0},
		{ID: 11, Frame: 0, Molecule: 0, Symbol: "H", X: 1, Y: 0, Z: 0},
		{ID: 12, Frame: 0, Molecule: 0, Symbol: "H", X: 0, Y: 1, Z: 0},
		{ID: 13, Frame: 0, Molecule: 1, Symbol: "O", X: 5, Y: 0, Z: 0},
		{ID: 14, Frame: 0, Molecule: 1, Symbol: "H", X: 6, Y: 0, Z: 0},
		{ID: 15, Frame: 0, Molecule: 1, Symbol: "H", X: 5, Y: 1, Z: 0},
		{ID: 16, Frame: 1, Molecule: 2, Symbol: "O", X: 2, Y: 2, Z: 2},
	}}
	mols := &MoleculeTable{Rows: []*Molecule{{ID: 0, Classification: "solvent"}, {ID: 1}, {ID: 2}}}
	frames := &FrameTable{Rows: []*Frame{{ID: 0}, {ID: 1, Periodic: true, RX: 10, RY: 10, RZ: 10}}}
	pairs := &PairTable{Rows: []*Pair{{ID: 0, Atom0: 10, Atom1: 13, Distance: 5}}}
	return atoms, mols, frames, pairs
}

func TestNewUniverse(Te *testing.T) {
	U, err := NewUniverse(water())
	require.NoError(Te, err)
	assert.True(Te, U.Periodic())
	assert.Equal(Te, 7, U.Atoms().Len())
	assert.Equal(Te, "H", U.Atom(14).Symbol)
	assert.Nil(Te, U.Atom(3))
	assert.Equal(Te, "solvent", U.Molecule(0).Classification)
	assert.Equal(Te, [3]float64{10, 10, 10}, U.Frame(1).Box())
	assert.Equal(Te, []int{0, 1}, U.FrameIDs())
	assert.True(Te, U.Molecules().Classified())
	U.Molecule(0).Classification = ""
	assert.False(Te, U.Molecules().Classified())

	U, err = NewUniverse(&AtomTable{}, &MoleculeTable{}, &FrameTable{}, nil)
	require.NoError(Te, err)
	assert.Equal(Te, 0, U.Pairs().Len())
	assert.False(Te, U.Periodic())
}

func TestUniverseIntegrity(Te *testing.T) {
	cases := map[string]func(*AtomTable, *MoleculeTable, *FrameTable, *PairTable){
		"repeated atom":     func(a *AtomTable, m *MoleculeTable, f *FrameTable, p *PairTable) { a.Rows[1].ID = 10 },
		"missing molecule":  func(a *AtomTable, m *MoleculeTable, f *FrameTable, p *PairTable) { a.Rows[0].Molecule = 7 },
		"missing frame":     func(a *AtomTable, m *MoleculeTable, f *FrameTable, p *PairTable) { a.Rows[0].Frame = 7 },
		"repeated frame":    func(a *AtomTable, m *MoleculeTable, f *FrameTable, p *PairTable) { f.Rows[1].ID = 0 },
		"repeated molecule": func(a *AtomTable, m *MoleculeTable, f *FrameTable, p *PairTable) { m.Rows[1].ID = 0 },
		"pair atom":         func(a *AtomTable, m *MoleculeTable, f *FrameTable, p *PairTable) { p.Rows[0].Atom1 = 99 },
		"distance":          func(a *AtomTable, m *MoleculeTable, f *FrameTable, p *PairTable) { p.Rows[0].Distance = -1 },
		"repeated label": func(a *AtomTable, m *MoleculeTable, f *FrameTable, p *PairTable) {
			a.Labeled = true //all labels are 0
		},
	}
	for name, spoil := range cases {
		a, m, f, p := water()
		spoil(a, m, f, p)
		_, err := NewUniverse(a, m, f, p)
		var terr TableError
		if assert.True(Te, errors.As(err, &terr), name) {
			assert.True(Te, terr.Critical())
			assert.NotEmpty(Te, terr.Table())
			assert.Contains(Te, terr.Decorate(""), "NewUniverse")
		}
	}
	_, err := NewUniverse(nil, &MoleculeTable{}, &FrameTable{}, nil)
	assert.Error(Te, err)
}

func TestLabels(Te *testing.T) {
	a, _, _, _ := water()
	labels := a.Labels()
	assert.Equal(Te, map[int]int{10: 0, 11: 1, 12: 2, 13: 3, 14: 4, 15: 5, 16: 0}, labels)
	assert.False(Te, a.Labeled)
	for i, at := range a.Rows {
		at.Label = 100 + i
	}
	a.Labeled = true
	assert.Equal(Te, 106, a.Labels()[16])
}

func TestSelectCopies(Te *testing.T) {
	U, err := NewUniverse(water())
	require.NoError(Te, err)
	sub := U.Atoms().Select(func(a *Atom) bool { return a.Molecule == 1 })
	require.Equal(Te, []int{13, 14, 15}, sub.IDs())
	sub.Rows[0].Shift([3]float64{1, 1, 1})
	assert.Equal(Te, [3]float64{6, 1, 1}, sub.Rows[0].Coords())
	assert.Equal(Te, [3]float64{5, 0, 0}, U.Atom(13).Coords())
	f := U.Frames().Select(func(f *Frame) bool { return true })
	f.Rows[1].Periodic = false
	assert.True(Te, U.Frame(1).Periodic)
	var nilpairs *PairTable
	assert.Equal(Te, 0, nilpairs.Select(func(*Pair) bool { return true }).Len())
}

func TestCOM(Te *testing.T) {
	U, err := NewUniverse(water())
	require.NoError(Te, err)
	require.NoError(Te, U.ComputeMoleculeCOM())
	assert.True(Te, U.Molecules().HasCOM)
	com := U.Molecule(0).COM()
	mO, mH := symbolMass["O"], symbolMass["H"]
	total := mO + 2*mH
	assert.InDelta(Te, mH/total, com[0], 1e-9)
	assert.InDelta(Te, mH/total, com[1], 1e-9)
	assert.InDelta(Te, 0, com[2], 1e-9)
	assert.Equal(Te, [3]float64{2, 2, 2}, U.Molecule(2).COM())

	U.Atom(16).Symbol = "Xx"
	U.Molecules().HasCOM = false
	err = U.ComputeMoleculeCOM()
	assert.Error(Te, err)

	g, err := v3.NewMatrix([]float64{0, 0, 0, 2, 4, 6})
	require.NoError(Te, err)
	c, err := CenterOfMass(g, nil)
	require.NoError(Te, err)
	assert.Equal(Te, []float64{1, 2, 3}, c.RawRowView(0))
	c, err = CenterOfMass(g, mat.NewDense(2, 1, []float64{3, 1}))
	require.NoError(Te, err)
	assert.InDeltaSlice(Te, []float64{0.5, 1, 1.5}, c.RawRowView(0), 1e-9)
	_, err = CenterOfMass(g, mat.NewDense(3, 1, []float64{3, 1, 1}))
	assert.Error(Te, err)
	_, err = CenterOfMass(g, mat.NewDense(2, 1, []float64{0, 0}))
	assert.Error(Te, err)
}

func TestMinimumImage(Te *testing.T) {
	box := [3]float64{10, 10, 0}
	assert.Equal(Te, [3]float64{-10, 0, 0}, MinimumImage([3]float64{9.5, 0, 0}, [3]float64{0.2, 0, 0}, box))
	assert.Equal(Te, [3]float64{10, 0, 0}, MinimumImage([3]float64{-9.5, 0, 0}, [3]float64{0.2, 0, 0}, box))
	assert.Equal(Te, [3]float64{0, 20, 0}, MinimumImage([3]float64{0, -19, 0}, [3]float64{0, 0, 0}, box))
	//no box in z
	assert.Equal(Te, [3]float64{0, 0, 0}, MinimumImage([3]float64{0, 0, 50}, [3]float64{0, 0, 0}, box))
	//half a box rounds to even
	assert.Equal(Te, [3]float64{0, 0, 0}, MinimumImage([3]float64{5, 0, 0}, [3]float64{0, 0, 0}, box))
	assert.Equal(Te, [3]float64{-20, 0, 0}, MinimumImage([3]float64{15, 0, 0}, [3]float64{0, 0, 0}, box))
}

func TestMasses(Te *testing.T) {
	m, err := Masses([]*Atom{{Symbol: "O"}, {Symbol: "H"}})
	require.NoError(Te, err)
	assert.Equal(Te, []float64{15.999, 1.008}, m)
	_, err = Mass("Q")
	assert.Error(Te, err)
	assert.Len(Te, symbolMass, 118)
	for _, s := range []string{"He", "B", "Al", "Ti", "Xe", "U", "Og"} {
		m, err := Mass(s)
		require.NoError(Te, err, s)
		assert.Greater(Te, m, 0.0, s)
	}
	//heavier elements are heavier, except for the few known inversions
	assert.Less(Te, symbolMass["Ar"], symbolMass["Ca"])
	assert.Greater(Te, symbolMass["Te"], symbolMass["I"])
}
