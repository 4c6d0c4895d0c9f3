/*
 * chem.go, part of nearmol.
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
	"sort"

	v3 "github.com/rmera/nearmol/v3"
	"gonum.org/v1/gonum/mat"
)

/**Note: Tables are "row oriented": a table is a slice of pointers to row structures,
 * each of which carries an explicit ID. IDs are kept when tables are sliced, so
 * foreign keys (Atom.Molecule, Atom.Frame, Pair.Atom0...) remain valid in sub-systems.
 * Slicing a table always copies the rows.**/

//Atom is one atom in one frame.
type Atom struct {
	ID       int
	Frame    int
	Molecule int
	Label    int //only meaningful if the table is labeled
	Symbol   string
	X, Y, Z  float64
}

//Copy returns a copy of the Atom object.
func (A *Atom) Copy() *Atom {
	if A == nil {
		panic("Attempted to copy a nil atom")
	}
	a := *A
	return &a
}

//Coords returns the cartesian coordinates of the atom
func (A *Atom) Coords() [3]float64 {
	return [3]float64{A.X, A.Y, A.Z}
}

//Shift adds d to the coordinates of the atom
func (A *Atom) Shift(d [3]float64) {
	A.X += d[0]
	A.Y += d[1]
	A.Z += d[2]
}

//AtomTable is the table of atoms for all frames. If Labeled is false, the
//table has no label column, and the Label field of the atoms is meaningless.
type AtomTable struct {
	Rows    []*Atom
	Labeled bool
}

//Len returns the number of rows in the table
func (T *AtomTable) Len() int {
	if T == nil {
		return 0
	}
	return len(T.Rows)
}

//Atom returns the ith row of the table. Panics if
//out of range.
func (T *AtomTable) Atom(i int) *Atom {
	if i >= T.Len() {
		panic("AtomTable: Requested Atom out of bounds")
	}
	return T.Rows[i]
}

//Select returns a new table with copies of the rows for which keep returns true.
func (T *AtomTable) Select(keep func(*Atom) bool) *AtomTable {
	ret := &AtomTable{Rows: make([]*Atom, 0, T.Len()/2+1), Labeled: T.Labeled}
	for _, v := range T.Rows {
		if keep(v) {
			ret.Rows = append(ret.Rows, v.Copy())
		}
	}
	return ret
}

//Copy returns a deep copy of the table
func (T *AtomTable) Copy() *AtomTable {
	return T.Select(func(*Atom) bool { return true })
}

//IDs returns the IDs of all the atoms in the table, in table order.
func (T *AtomTable) IDs() []int {
	ret := make([]int, T.Len())
	for i, v := range T.Rows {
		ret[i] = v.ID
	}
	return ret
}

//Labels returns a map from atom ID to label. If the table has no label column, the
//labels are synthesized as the running index of each atom within its frame,
//in table order. The table is not modified.
func (T *AtomTable) Labels() map[int]int {
	ret := make(map[int]int, T.Len())
	if T.Labeled {
		for _, v := range T.Rows {
			ret[v.ID] = v.Label
		}
		return ret
	}
	counters := make(map[int]int)
	for _, v := range T.Rows {
		ret[v.ID] = counters[v.Frame]
		counters[v.Frame]++
	}
	return ret
}

//Molecule is one molecule. The center of mass (CX, CY, CZ) is only meaningful if
//the HasCOM field of the table is true.
type Molecule struct {
	ID             int
	Classification string //empty if not classified
	CX, CY, CZ     float64
}

//Copy returns a copy of the Molecule object.
func (M *Molecule) Copy() *Molecule {
	if M == nil {
		panic("Attempted to copy a nil molecule")
	}
	m := *M
	return &m
}

//COM returns the center of mass of the molecule.
func (M *Molecule) COM() [3]float64 {
	return [3]float64{M.CX, M.CY, M.CZ}
}

//MoleculeTable is the table of molecules.
type MoleculeTable struct {
	Rows   []*Molecule
	HasCOM bool
}

//Len returns the number of rows in the table
func (T *MoleculeTable) Len() int {
	if T == nil {
		return 0
	}
	return len(T.Rows)
}

//Select returns a new table with copies of the rows for which keep returns true.
func (T *MoleculeTable) Select(keep func(*Molecule) bool) *MoleculeTable {
	ret := &MoleculeTable{Rows: make([]*Molecule, 0, T.Len()/2+1), HasCOM: T.HasCOM}
	for _, v := range T.Rows {
		if keep(v) {
			ret.Rows = append(ret.Rows, v.Copy())
		}
	}
	return ret
}

//IDs returns the IDs of all the molecules in the table, in table order.
func (T *MoleculeTable) IDs() []int {
	ret := make([]int, T.Len())
	for i, v := range T.Rows {
		ret[i] = v.ID
	}
	return ret
}

//Classified returns true if at least one molecule has a classification.
func (T *MoleculeTable) Classified() bool {
	for _, v := range T.Rows {
		if v.Classification != "" {
			return true
		}
	}
	return false
}

//Frame is one snapshot of the trajectory. RX, RY and RZ are the sides
//of the orthorhombic cell, and are only meaningful if Periodic is true.
type Frame struct {
	ID         int
	Periodic   bool
	RX, RY, RZ float64
}

//Copy returns a copy of the Frame object.
func (F *Frame) Copy() *Frame {
	f := *F
	return &f
}

//Box returns the cell side lengths.
func (F *Frame) Box() [3]float64 {
	return [3]float64{F.RX, F.RY, F.RZ}
}

//FrameTable is the table of frames.
type FrameTable struct {
	Rows []*Frame
}

//Len returns the number of rows in the table
func (T *FrameTable) Len() int {
	if T == nil {
		return 0
	}
	return len(T.Rows)
}

//Select returns a new table with copies of the rows for which keep returns true.
func (T *FrameTable) Select(keep func(*Frame) bool) *FrameTable {
	ret := &FrameTable{Rows: make([]*Frame, 0, T.Len())}
	for _, v := range T.Rows {
		if keep(v) {
			ret.Rows = append(ret.Rows, v.Copy())
		}
	}
	return ret
}

//Periodic returns true if any frame in the table is periodic.
func (T *FrameTable) Periodic() bool {
	if T == nil {
		return false
	}
	for _, v := range T.Rows {
		if v.Periodic {
			return true
		}
	}
	return false
}

//Pair is a unique unordered pair of atoms within some cutoff distance,
//in a given frame.
type Pair struct {
	ID           int
	Atom0, Atom1 int
	Distance     float64
	Frame        int
}

//Copy returns a copy of the Pair object.
func (P *Pair) Copy() *Pair {
	p := *P
	return &p
}

//PairTable is the two-body table.
type PairTable struct {
	Rows []*Pair
}

//Len returns the number of rows in the table
func (T *PairTable) Len() int {
	if T == nil {
		return 0
	}
	return len(T.Rows)
}

//Select returns a new table with copies of the rows for which keep returns true.
func (T *PairTable) Select(keep func(*Pair) bool) *PairTable {
	ret := &PairTable{Rows: make([]*Pair, 0, T.Len()/2+1)}
	if T == nil {
		return ret
	}
	for _, v := range T.Rows {
		if keep(v) {
			ret.Rows = append(ret.Rows, v.Copy())
		}
	}
	return ret
}

/*****Universe type***/

//Universe contains the four tables of an atomic system, and indexes to
//access their rows by ID. It implements Container.
type Universe struct {
	atoms     *AtomTable
	molecules *MoleculeTable
	frames    *FrameTable
	pairs     *PairTable
	atomIdx   map[int]int
	molIdx    map[int]int
	frameIdx  map[int]int
}

//NewUniverse builds a universe from the given tables, and checks that they are
//consistent with each other. pairs can be nil, in which case an empty table is used.
//The tables are used as given, not copied.
func NewUniverse(atoms *AtomTable, molecules *MoleculeTable, frames *FrameTable, pairs *PairTable) (*Universe, error) {
	if atoms == nil || molecules == nil || frames == nil {
		return nil, TableError{"Supplied a nil table", "universe", []string{"NewUniverse"}, true}
	}
	if pairs == nil {
		pairs = &PairTable{}
	}
	U := &Universe{atoms: atoms, molecules: molecules, frames: frames, pairs: pairs}
	if err := U.index(); err != nil {
		return nil, errDecorate(err, "NewUniverse")
	}
	return U, nil
}

//builds the ID indexes and checks referential integrity
func (U *Universe) index() error {
	U.frameIdx = make(map[int]int, U.frames.Len())
	for i, f := range U.frames.Rows {
		if _, ok := U.frameIdx[f.ID]; ok {
			return TableError{fmt.Sprintf("repeated frame ID %d", f.ID), "frame", []string{"index"}, true}
		}
		U.frameIdx[f.ID] = i
	}
	U.molIdx = make(map[int]int, U.molecules.Len())
	for i, m := range U.molecules.Rows {
		if _, ok := U.molIdx[m.ID]; ok {
			return TableError{fmt.Sprintf("repeated molecule ID %d", m.ID), "molecule", []string{"index"}, true}
		}
		U.molIdx[m.ID] = i
	}
	U.atomIdx = make(map[int]int, U.atoms.Len())
	type frameLabel struct{ frame, label int }
	labels := make(map[frameLabel]bool)
	for i, a := range U.atoms.Rows {
		if _, ok := U.atomIdx[a.ID]; ok {
			return TableError{fmt.Sprintf("repeated atom ID %d", a.ID), "atom", []string{"index"}, true}
		}
		if _, ok := U.molIdx[a.Molecule]; !ok {
			return TableError{fmt.Sprintf("atom %d references missing molecule %d", a.ID, a.Molecule), "atom", []string{"index"}, true}
		}
		if _, ok := U.frameIdx[a.Frame]; !ok {
			return TableError{fmt.Sprintf("atom %d references missing frame %d", a.ID, a.Frame), "atom", []string{"index"}, true}
		}
		if U.atoms.Labeled {
			k := frameLabel{a.Frame, a.Label}
			if labels[k] {
				return TableError{fmt.Sprintf("label %d repeated in frame %d", a.Label, a.Frame), "atom", []string{"index"}, true}
			}
			labels[k] = true
		}
		U.atomIdx[a.ID] = i
	}
	for _, p := range U.pairs.Rows {
		_, ok0 := U.atomIdx[p.Atom0]
		_, ok1 := U.atomIdx[p.Atom1]
		if !ok0 || !ok1 {
			return TableError{fmt.Sprintf("pair %d references missing atoms (%d, %d)", p.ID, p.Atom0, p.Atom1), "pair", []string{"index"}, true}
		}
		if p.Distance < 0 {
			return TableError{fmt.Sprintf("pair %d has negative distance %f", p.ID, p.Distance), "pair", []string{"index"}, true}
		}
	}
	return nil
}

//Atoms returns the atom table.
func (U *Universe) Atoms() *AtomTable { return U.atoms }

//Molecules returns the molecule table.
func (U *Universe) Molecules() *MoleculeTable { return U.molecules }

//Frames returns the frame table.
func (U *Universe) Frames() *FrameTable { return U.frames }

//Pairs returns the two-body table.
func (U *Universe) Pairs() *PairTable { return U.pairs }

//Periodic returns true if any frame of the universe is periodic.
func (U *Universe) Periodic() bool {
	return U.frames.Periodic()
}

//Atom returns the atom with the given ID, or nil if it doesn't exist.
func (U *Universe) Atom(id int) *Atom {
	i, ok := U.atomIdx[id]
	if !ok {
		return nil
	}
	return U.atoms.Rows[i]
}

//Molecule returns the molecule with the given ID, or nil if it doesn't exist.
func (U *Universe) Molecule(id int) *Molecule {
	i, ok := U.molIdx[id]
	if !ok {
		return nil
	}
	return U.molecules.Rows[i]
}

//Frame returns the frame with the given ID, or nil if it doesn't exist.
func (U *Universe) Frame(id int) *Frame {
	i, ok := U.frameIdx[id]
	if !ok {
		return nil
	}
	return U.frames.Rows[i]
}

//Build returns a new Universe from the given tables.
func (U *Universe) Build(atoms *AtomTable, molecules *MoleculeTable, frames *FrameTable, pairs *PairTable) (Container, error) {
	ret, err := NewUniverse(atoms, molecules, frames, pairs)
	if err != nil {
		return nil, errDecorate(err, "Build")
	}
	return ret, nil
}

//ComputeMoleculeCOM obtains the mass-weighted center of each molecule, from all
//of its atoms, if it has not been already obtained.
func (U *Universe) ComputeMoleculeCOM() error {
	if U.molecules.HasCOM {
		return nil
	}
	members := make(map[int][]*Atom, U.molecules.Len())
	for _, a := range U.atoms.Rows {
		members[a.Molecule] = append(members[a.Molecule], a)
	}
	for _, m := range U.molecules.Rows {
		ats := members[m.ID]
		if len(ats) == 0 {
			continue //a molecule without atoms keeps a zero center.
		}
		c, err := AtomsCOM(ats)
		if err != nil {
			return errDecorate(err, fmt.Sprintf("ComputeMoleculeCOM: molecule %d", m.ID))
		}
		m.CX, m.CY, m.CZ = c[0], c[1], c[2]
	}
	U.molecules.HasCOM = true
	return nil
}

//AtomsCOM returns the mass-weighted center of the given atoms.
func AtomsCOM(ats []*Atom) ([3]float64, error) {
	var ret [3]float64
	masses, err := Masses(ats)
	if err != nil {
		return ret, errDecorate(err, "AtomsCOM")
	}
	coords := v3.Zeros(len(ats))
	for i, a := range ats {
		coords.Set(i, 0, a.X)
		coords.Set(i, 1, a.Y)
		coords.Set(i, 2, a.Z)
	}
	c, err := CenterOfMass(coords, mat.NewDense(len(masses), 1, masses))
	if err != nil {
		return ret, err
	}
	copy(ret[:], c.RawRowView(0))
	return ret, nil
}

//FrameIDs returns the IDs of the frames, sorted.
func (U *Universe) FrameIDs() []int {
	ret := make([]int, 0, U.frames.Len())
	for _, f := range U.frames.Rows {
		ret = append(ret, f.ID)
	}
	sort.Ints(ret)
	return ret
}
