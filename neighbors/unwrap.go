/*
 * unwrap.go, part of nearmol.
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
	v3 "github.com/rmera/nearmol/v3"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

//FrameShift records what Unwrap did to one frame: the reference center (the mean
//position of the source atoms) and the displacement applied to each molecule.
type FrameShift struct {
	Frame  int
	Center [3]float64
	Shifts map[int][3]float64 //molecule ID -> displacement
}

//SourceCenters returns, for each frame, the mean position of the source atoms of sel in uni.
func SourceCenters(uni chem.Container, sel *Selection) map[int][3]float64 {
	src := newIDSet(sel.SourceAtoms)
	byFrame := make(map[int][]*chem.Atom)
	for _, a := range uni.Atoms().Rows {
		if src.has(a.ID) {
			byFrame[a.Frame] = append(byFrame[a.Frame], a)
		}
	}
	ret := make(map[int][3]float64, len(byFrame))
	for f, ats := range byFrame {
		coords := v3.Zeros(len(ats))
		for i, a := range ats {
			coords.Set(i, 0, a.X)
			coords.Set(i, 1, a.Y)
			coords.Set(i, 2, a.Z)
		}
		var c [3]float64
		copy(c[:], coords.Centroid().RawRowView(0))
		ret[f] = c
	}
	return ret
}

//Unwrap moves every molecule of sub, frame by frame, to the periodic image of its center of
//mass closest to the mean position of the source atoms (taken from the parent universe, uni)
//in that frame. The displacement is applied to all the atoms of the molecule in the frame,
//so the source stays where it is and the neighbors become contiguous with it. Box vectors
//are taken from the frame table of sub. A molecule present in several frames is treated
//independently in each. Frames without source atoms are left as they are. Only sub is modified.
func Unwrap(sub, uni chem.Container, sel *Selection, cpus int, logger *zap.Logger) ([]FrameShift, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	if err := sub.ComputeMoleculeCOM(); err != nil {
		return nil, errDecorate(err, "Unwrap")
	}
	centers := SourceCenters(uni, sel)
	byFrame := make(map[int]map[int][]*chem.Atom) //frame -> molecule -> atoms
	molFrames := make(map[int]int)                //molecule -> number of frames it is in
	for _, a := range sub.Atoms().Rows {
		mols, ok := byFrame[a.Frame]
		if !ok {
			mols = make(map[int][]*chem.Atom)
			byFrame[a.Frame] = mols
		}
		if _, ok := mols[a.Molecule]; !ok {
			molFrames[a.Molecule]++
		}
		mols[a.Molecule] = append(mols[a.Molecule], a)
	}
	coms := make(map[int][3]float64, sub.Molecules().Len())
	for _, m := range sub.Molecules().Rows {
		coms[m.ID] = m.COM()
	}
	frames := make([]*chem.Frame, 0, sub.Frames().Len())
	for _, f := range sub.Frames().Rows {
		if _, ok := byFrame[f.ID]; ok {
			frames = append(frames, f)
		}
	}
	sort.Slice(frames, func(i, j int) bool { return frames[i].ID < frames[j].ID })
	ret := make([]FrameShift, len(frames))
	var eg errgroup.Group
	if cpus > 0 {
		eg.SetLimit(cpus)
	}
	for i, f := range frames {
		i, f := i, f
		center, ok := centers[f.ID]
		if !ok {
			logger.Warn("No source atoms in frame, left wrapped", zap.Int("frame", f.ID))
			ret[i] = FrameShift{Frame: f.ID}
			continue
		}
		//each goroutine only touches the atoms of its own frame.
		eg.Go(func() error {
			shift := FrameShift{Frame: f.ID, Center: center, Shifts: make(map[int][3]float64)}
			box := f.Box()
			for mol, ats := range byFrame[f.ID] {
				com := coms[mol]
				if molFrames[mol] > 1 {
					var err error
					com, err = chem.AtomsCOM(ats)
					if err != nil {
						return errDecorate(err, "Unwrap")
					}
				}
				d := chem.MinimumImage(com, center, box)
				for _, a := range ats {
					a.Shift(d)
				}
				shift.Shifts[mol] = d
			}
			ret[i] = shift
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return ret, nil
}
