/*
 * resolve.go, part of nearmol.
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

package neighbors

import (
	"errors"

	chem "github.com/rmera/nearmol"
	"go.uber.org/zap"
)

//Selection contains the IDs of the source atoms and molecules and of the atoms and
//molecules that are eligible as neighbors ("other"). All slices follow table order.
type Selection struct {
	SourceAtoms     []int
	OtherAtoms      []int
	SourceMolecules []int
	OtherMolecules  []int
}

//set of IDs
type idSet map[int]struct{}

func newIDSet(ids []int) idSet {
	s := make(idSet, len(ids))
	for _, v := range ids {
		s[v] = struct{}{}
	}
	return s
}

func (s idSet) has(id int) bool {
	_, ok := s[id]
	return ok
}

//vocabulary holds the labels, symbols and classifications present in a universe.
type vocabulary struct {
	atomLabels map[int]int //atom ID -> label, synthesized if needed
	labels     map[int]bool
	symbols    map[string]bool
	classes    map[string]bool
}

func newVocabulary(atoms *chem.AtomTable, mols *chem.MoleculeTable) *vocabulary {
	V := &vocabulary{
		atomLabels: atoms.Labels(),
		labels:     make(map[int]bool),
		symbols:    make(map[string]bool),
		classes:    make(map[string]bool),
	}
	for _, l := range V.atomLabels {
		V.labels[l] = true
	}
	for _, a := range atoms.Rows {
		V.symbols[a.Symbol] = true
	}
	for _, m := range mols.Rows {
		if m.Classification != "" {
			V.classes[m.Classification] = true
		}
	}
	return V
}

//tag returns the set of categories the value belongs to.
func (V *vocabulary) tag(v Value) Category {
	if v.isInt {
		if V.labels[v.label] {
			return CatLabel
		}
		return Unrecognized
	}
	var c Category
	if V.symbols[v.name] {
		c |= CatSymbol
	}
	if V.classes[v.name] {
		c |= CatClassification
	}
	return c
}

//Tags returns the categories of each element of spec in the given universe.
func Tags(uni chem.Container, spec Spec) []Category {
	V := newVocabulary(uni.Atoms(), uni.Molecules())
	ret := make([]Category, len(spec))
	for i, v := range spec {
		ret[i] = V.tag(v)
	}
	return ret
}

//the elements of a spec split by category, for mixed mode. Unrecognized
//elements are not in any of the sets.
type partition struct {
	labels  map[int]bool
	symbols map[string]bool
	classes map[string]bool
}

func (V *vocabulary) partition(spec Spec, tags []Category) partition {
	p := partition{make(map[int]bool), make(map[string]bool), make(map[string]bool)}
	for i, v := range spec {
		t := tags[i]
		if t.Has(CatClassification) {
			p.classes[v.name] = true
		}
		if t.Has(CatSymbol) {
			p.symbols[v.name] = true
		}
		if t.Has(CatLabel) {
			p.labels[v.label] = true
		}
	}
	return p
}

func (p partition) empty() bool {
	return len(p.labels) == 0 && len(p.symbols) == 0 && len(p.classes) == 0
}

//pick selects, among the given atoms and molecules, the ones matching spec.
func (V *vocabulary) pick(spec Spec, atoms []*chem.Atom, mols []*chem.Molecule) ([]*chem.Atom, []*chem.Molecule, mode, error) {
	tags := make([]Category, len(spec))
	for i, v := range spec {
		tags[i] = V.tag(v)
	}
	m := decideMode(tags)
	var selAtoms []*chem.Atom
	var selMols []*chem.Molecule
	switch m {
	case modeLabel:
		want := make(map[int]bool, len(spec))
		for _, v := range spec {
			want[v.label] = true
		}
		selAtoms = filterAtoms(atoms, func(a *chem.Atom) bool { return want[V.atomLabels[a.ID]] })
		selMols = owners(selAtoms, mols)
	case modeSymbol:
		want := make(map[string]bool, len(spec))
		for _, v := range spec {
			want[v.name] = true
		}
		selAtoms = filterAtoms(atoms, func(a *chem.Atom) bool { return want[a.Symbol] })
		selMols = owners(selAtoms, mols)
	case modeClassification:
		want := make(map[string]bool, len(spec))
		for _, v := range spec {
			want[v.name] = true
		}
		selMols = filterMolecules(mols, func(m *chem.Molecule) bool { return want[m.Classification] })
		selAtoms = members(atoms, selMols)
	default:
		p := V.partition(spec, tags)
		if p.empty() {
			return nil, nil, m, newError(kindUnsupportedCategory, "pick", "no element of %v is a known label, symbol or classification", spec)
		}
		selAtoms = atoms
		if len(p.classes) > 0 {
			selMols = filterMolecules(mols, func(m *chem.Molecule) bool { return p.classes[m.Classification] })
			selAtoms = members(atoms, selMols)
		}
		if len(p.symbols) > 0 {
			selAtoms = filterAtoms(selAtoms, func(a *chem.Atom) bool { return p.symbols[a.Symbol] })
		}
		if len(p.labels) > 0 {
			selAtoms = filterAtoms(selAtoms, func(a *chem.Atom) bool { return p.labels[V.atomLabels[a.ID]] })
		}
		if len(p.classes) == 0 {
			selMols = owners(selAtoms, mols)
		}
	}
	return selAtoms, selMols, m, nil
}

func filterAtoms(atoms []*chem.Atom, keep func(*chem.Atom) bool) []*chem.Atom {
	ret := make([]*chem.Atom, 0, len(atoms)/2+1)
	for _, a := range atoms {
		if keep(a) {
			ret = append(ret, a)
		}
	}
	return ret
}

func filterMolecules(mols []*chem.Molecule, keep func(*chem.Molecule) bool) []*chem.Molecule {
	ret := make([]*chem.Molecule, 0, len(mols)/2+1)
	for _, m := range mols {
		if keep(m) {
			ret = append(ret, m)
		}
	}
	return ret
}

//owners returns the molecules, among mols, that own at least one of the atoms.
func owners(atoms []*chem.Atom, mols []*chem.Molecule) []*chem.Molecule {
	own := make(idSet, len(atoms))
	for _, a := range atoms {
		own[a.Molecule] = struct{}{}
	}
	return filterMolecules(mols, func(m *chem.Molecule) bool { return own.has(m.ID) })
}

//members returns the atoms, among atoms, that belong to one of the molecules.
func members(atoms []*chem.Atom, mols []*chem.Molecule) []*chem.Atom {
	ms := make(idSet, len(mols))
	for _, m := range mols {
		ms[m.ID] = struct{}{}
	}
	return filterAtoms(atoms, func(a *chem.Atom) bool { return ms.has(a.Molecule) })
}

func atomIDs(atoms []*chem.Atom) []int {
	ret := make([]int, len(atoms))
	for i, a := range atoms {
		ret[i] = a.ID
	}
	return ret
}

func moleculeIDs(mols []*chem.Molecule) []int {
	ret := make([]int, len(mols))
	for i, m := range mols {
		ret[i] = m.ID
	}
	return ret
}

//Resolve turns the sources and (optional, nil if not used) restrictions specifications into
//sets of atoms and molecules of uni. Each specification is resolved as atom labels, if all
//of its elements are known labels, else as element symbols, if all are known symbols, else
//as molecule classifications, if all are known classifications. Otherwise, the elements are
//split by category: molecules are selected by classification (if any classification was given)
//and their atoms further filtered by symbol and label. Elements that are none of the three
//are ignored in this last case. If the atom table has no labels, labels are the index of each
//atom in its frame. Restrictions are applied to the non-source atoms and molecules, and replace
//them as the set of neighbor candidates. The universe is not modified.
func Resolve(uni chem.Container, sources, restrictions Spec, logger *zap.Logger) (*Selection, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if len(sources) == 0 {
		return nil, newError(kindMalformedSpec, "Resolve", "no sources given")
	}
	atoms, mols := uni.Atoms(), uni.Molecules()
	V := newVocabulary(atoms, mols)
	srcAtoms, srcMols, m, err := V.pick(sources, atoms.Rows, mols.Rows)
	if err != nil {
		return nil, errDecorate(err, "Resolve: sources")
	}
	logger.Debug("Resolved sources", zap.Stringer("spec", sources), zap.Stringer("mode", m),
		zap.Int("atoms", len(srcAtoms)), zap.Int("molecules", len(srcMols)))
	sel := &Selection{SourceAtoms: atomIDs(srcAtoms), SourceMolecules: moleculeIDs(srcMols)}
	sa, sm := newIDSet(sel.SourceAtoms), newIDSet(sel.SourceMolecules)
	otherAtoms := filterAtoms(atoms.Rows, func(a *chem.Atom) bool { return !sa.has(a.ID) })
	otherMols := filterMolecules(mols.Rows, func(m *chem.Molecule) bool { return !sm.has(m.ID) })
	if len(restrictions) > 0 {
		otherAtoms, otherMols, m, err = V.pick(restrictions, otherAtoms, otherMols)
		if errors.Is(err, ErrUnsupportedCategory) {
			logger.Warn("No restriction element is a known label, symbol or classification. No neighbor candidates left",
				zap.Stringer("spec", restrictions))
			otherAtoms, otherMols = nil, nil
		} else if err != nil {
			return nil, errDecorate(err, "Resolve: restrictions")
		} else {
			logger.Debug("Resolved restrictions", zap.Stringer("spec", restrictions), zap.Stringer("mode", m),
				zap.Int("atoms", len(otherAtoms)), zap.Int("molecules", len(otherMols)))
		}
	}
	sel.OtherAtoms = atomIDs(otherAtoms)
	sel.OtherMolecules = moleculeIDs(otherMols)
	return sel, nil
}
