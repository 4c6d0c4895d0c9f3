/*
 * build.go, part of nearmol.
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
	"fmt"

	chem "github.com/rmera/nearmol"
	"go.uber.org/zap"
)

//SubsystemIDs returns the IDs of the molecules in the sub-system with n neighbors:
//the first n ranked molecules of every frame plus all the source molecules, without
//repetitions, in the order they are first found.
func SubsystemIDs(rankings []FrameRanking, n int, sel *Selection) []int {
	seen := make(idSet)
	ret := make([]int, 0, n*len(rankings)+len(sel.SourceMolecules))
	add := func(ids []int) {
		for _, id := range ids {
			if !seen.has(id) {
				seen[id] = struct{}{}
				ret = append(ret, id)
			}
		}
	}
	for _, r := range rankings {
		add(r.First(n))
	}
	add(sel.SourceMolecules)
	return ret
}

//BuildFree returns a new universe, of the same type as uni, containing the source molecules
//and the first n ranked molecules of each frame. The atom, pair and frame tables are sliced
//accordingly: atoms of the selected molecules, pairs where both atoms are kept, frames where at
//least one atom is kept. All the frames of the new universe are non-periodic. If uni is periodic,
//the neighbors are moved, in each frame, to their periodic image closest to the center of the
//source atoms (see Unwrap). uni is never modified.
func BuildFree(uni chem.Container, rankings []FrameRanking, n int, sel *Selection, cpus int, logger *zap.Logger) (chem.Container, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if n < 0 {
		return nil, newError(kindMalformedSpec, "BuildFree", "negative number of neighbors: %d", n)
	}
	mset := newIDSet(SubsystemIDs(rankings, n, sel))
	molecules := uni.Molecules().Select(func(m *chem.Molecule) bool { return mset.has(m.ID) })
	atoms := uni.Atoms().Select(func(a *chem.Atom) bool { return mset.has(a.Molecule) })
	aset := newIDSet(atoms.IDs())
	fset := make(idSet)
	for _, a := range atoms.Rows {
		fset[a.Frame] = struct{}{}
	}
	pairs := uni.Pairs().Select(func(p *chem.Pair) bool { return aset.has(p.Atom0) && aset.has(p.Atom1) })
	frames := uni.Frames().Select(func(f *chem.Frame) bool { return fset.has(f.ID) })
	for _, f := range frames.Rows {
		f.Periodic = false
	}
	sub, err := uni.Build(atoms, molecules, frames, pairs)
	if err != nil {
		return nil, errDecorate(err, "BuildFree")
	}
	logger.Debug("Built sub-system", zap.Int("neighbors", n), zap.Int("molecules", molecules.Len()),
		zap.Int("atoms", atoms.Len()), zap.Int("pairs", pairs.Len()), zap.Int("frames", frames.Len()))
	if uni.Periodic() {
		if _, err := Unwrap(sub, uni, sel, cpus, logger); err != nil {
			return nil, errDecorate(err, fmt.Sprintf("BuildFree: %d neighbors", n))
		}
	}
	return sub, nil
}

//BuildPeriodic would build a sub-system that keeps a periodic box around the selection.
//It is not implemented, and always returns an error matching ErrUnsupportedMode.
func BuildPeriodic(uni chem.Container, rankings []FrameRanking, n int, sel *Selection) (chem.Container, error) {
	return nil, newError(kindUnsupportedMode, "BuildPeriodic", "only free boundary sub-systems are implemented")
}
