/*
 * rank.go, part of nearmol.
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
	"sort"

	chem "github.com/rmera/nearmol"
	"golang.org/x/sync/errgroup"
)

//FrameRanking contains the candidate neighbor molecules of one frame, nearest first.
//Molecules, Pairs and Distances have the same length: Pairs[i] is the ID of the
//pair-table row that gave Molecules[i] its place, and Distances[i] its distance.
type FrameRanking struct {
	Frame     int
	Molecules []int
	Pairs     []int
	Distances []float64
}

//Len returns the number of ranked molecules.
func (F FrameRanking) Len() int {
	return len(F.Molecules)
}

//First returns the IDs of the first n ranked molecules (or all, if there are fewer than n).
func (F FrameRanking) First(n int) []int {
	if n > len(F.Molecules) {
		n = len(F.Molecules)
	}
	return F.Molecules[:n]
}

//RankByAtom ranks, in each frame, the molecules owning "other" atoms by their shortest
//distance to any source atom, using only the pairs of the two-body table that join a source
//atom with an other atom. Each molecule appears once per frame, and source molecules are
//never ranked. Ties keep the order of the pair table. The frames are processed concurrently,
//using up to cpus goroutines, and returned in increasing frame ID order. Frames without
//source-other pairs are not included.
func RankByAtom(uni chem.Container, sel *Selection, cpus int) ([]FrameRanking, error) {
	atomMol := make(map[int]int, uni.Atoms().Len())
	for _, a := range uni.Atoms().Rows {
		atomMol[a.ID] = a.Molecule
	}
	src := newIDSet(sel.SourceAtoms)
	other := newIDSet(sel.OtherAtoms)
	srcMols := newIDSet(sel.SourceMolecules)
	pairs := make([]*chem.Pair, 0, uni.Pairs().Len()/4+1)
	for _, p := range uni.Pairs().Rows {
		if (src.has(p.Atom0) && other.has(p.Atom1)) || (src.has(p.Atom1) && other.has(p.Atom0)) {
			pairs = append(pairs, p)
		}
	}
	sort.SliceStable(pairs, func(i, j int) bool { return pairs[i].Distance < pairs[j].Distance })
	groups := make(map[int][]*chem.Pair)
	for _, p := range pairs {
		groups[p.Frame] = append(groups[p.Frame], p)
	}
	frames := make([]int, 0, len(groups))
	for f := range groups {
		frames = append(frames, f)
	}
	sort.Ints(frames)
	ret := make([]FrameRanking, len(frames))
	var eg errgroup.Group
	if cpus > 0 {
		eg.SetLimit(cpus)
	}
	for i, f := range frames {
		i, f := i, f
		eg.Go(func() error {
			r, err := rankFrame(f, groups[f], atomMol, srcMols)
			if err != nil {
				return err
			}
			ret[i] = r //each goroutine owns its slot
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, errDecorate(err, "RankByAtom")
	}
	return ret, nil
}

//rankFrame ranks the molecules of one frame. The pairs must be sorted by distance.
func rankFrame(frame int, pairs []*chem.Pair, atomMol map[int]int, srcMols idSet) (FrameRanking, error) {
	r := FrameRanking{Frame: frame}
	seen := make(idSet)
	for _, p := range pairs {
		for _, at := range [2]int{p.Atom0, p.Atom1} {
			m, ok := atomMol[at]
			if !ok {
				return r, newError(kindInconsistentTables, "rankFrame", "pair %d references atom %d, not in the atom table", p.ID, at)
			}
			if seen.has(m) {
				continue
			}
			seen[m] = struct{}{}
			if srcMols.has(m) {
				continue
			}
			r.Molecules = append(r.Molecules, m)
			r.Pairs = append(r.Pairs, p.ID)
			r.Distances = append(r.Distances, p.Distance)
		}
	}
	return r, nil
}

//RankByCOM would rank molecules by the distance between their centers of mass and
//the source. It is not implemented, and always returns an error matching ErrUnsupportedMode.
func RankByCOM(uni chem.Container, sel *Selection) ([]FrameRanking, error) {
	return nil, newError(kindUnsupportedMode, "RankByCOM", "ranking by center of mass is not implemented")
}
