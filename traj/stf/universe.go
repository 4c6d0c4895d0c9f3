/*
 * universe.go, part of nearmol.
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

package stf

import (
	"fmt"
	"io"
	"slices"
	"sort"

	chem "github.com/rmera/nearmol"
	"github.com/rmera/nearmol/chemjson"
	v3 "github.com/rmera/nearmol/v3"
	"go.uber.org/zap"
)

//frameAtoms returns the atoms of uni grouped by frame, and the frame rows sorted by ID.
func frameAtoms(uni chem.Container) ([]*chem.Frame, map[int][]*chem.Atom) {
	frames := append([]*chem.Frame(nil), uni.Frames().Rows...)
	sort.Slice(frames, func(i, j int) bool { return frames[i].ID < frames[j].ID })
	byFrame := make(map[int][]*chem.Atom, len(frames))
	for _, a := range uni.Atoms().Rows {
		byFrame[a.Frame] = append(byFrame[a.Frame], a)
	}
	return frames, byFrame
}

func sameTopology(a, b *chemjson.Topology) bool {
	return slices.Equal(a.Symbols, b.Symbols) && slices.Equal(a.Molecules, b.Molecules) && slices.Equal(a.Labels, b.Labels)
}

//WriteUniverse writes the frames of uni, in increasing ID order, as an stf trajectory to w,
//with the topology of the first frame in the header. Periodic frames carry their box.
//All frames must contain the same atoms (same symbols, molecules and labels, in the same
//order), otherwise an error is returned before anything is written.
func WriteUniverse(w io.Writer, uni chem.Container, header map[string]string) error {
	frames, byFrame := frameAtoms(uni)
	if len(frames) == 0 {
		return Error{"Universe without frames", "", []string{"WriteUniverse"}, true}
	}
	top := chemjson.FrameTopology(uni, frames[0].ID)
	if top.Len() == 0 {
		return Error{fmt.Sprintf("No atoms in frame %d", frames[0].ID), "", []string{"WriteUniverse"}, true}
	}
	for _, f := range frames[1:] {
		if t := chemjson.FrameTopology(uni, f.ID); !sameTopology(top, t) {
			return Error{fmt.Sprintf("Frames %d and %d don't contain the same atoms", frames[0].ID, f.ID), "", []string{"WriteUniverse"}, true}
		}
	}
	topstr, jerr := top.Marshal()
	if jerr != nil {
		return errDecorate(jerr, "WriteUniverse")
	}
	h := map[string]string{"topology": topstr}
	for k, v := range header {
		if k != "topology" {
			h[k] = v
		}
	}
	S, err := NewStreamWriter(w, top.Len(), h)
	if err != nil {
		return errDecorate(err, "WriteUniverse")
	}
	coords := v3.Zeros(top.Len())
	box := make([]float64, 9)
	for _, f := range frames {
		for i, a := range byFrame[f.ID] {
			coords.Set(i, 0, a.X)
			coords.Set(i, 1, a.Y)
			coords.Set(i, 2, a.Z)
		}
		if f.Periodic {
			box[0], box[4], box[8] = f.RX, f.RY, f.RZ
			err = S.WNext(coords, box)
		} else {
			err = S.WNext(coords)
		}
		if err != nil {
			S.Close()
			return errDecorate(err, "WriteUniverse")
		}
	}
	if err := S.Close(); err != nil {
		return errDecorate(err, "WriteUniverse")
	}
	return nil
}

//ReadUniverse reads an stf trajectory with a topology in its header, as written by
//WriteUniverse, and builds a universe from it. Frames get consecutive IDs from 0, and
//atoms consecutive IDs in frame order. A frame is periodic if it has a non-zero box.
//Only orthorhombic boxes are supported: the off-diagonal elements are ignored. The
//returned universe has no pairs.
func ReadUniverse(r io.Reader, logger ...*zap.Logger) (*chem.Universe, error) {
	S, m, err := NewStreamReader(r, logger...)
	if err != nil {
		return nil, errDecorate(err, "ReadUniverse")
	}
	defer S.Close()
	topstr, ok := m["topology"]
	if !ok {
		return nil, Error{"No topology in the trajectory header", "", []string{"ReadUniverse"}, true}
	}
	top, jerr := chemjson.ParseTopology(topstr)
	if jerr != nil {
		return nil, errDecorate(jerr, "ReadUniverse")
	}
	if top.Len() == 0 || top.Len() != S.Len() {
		return nil, Error{fmt.Sprintf("Topology has %d atoms, frames have %d", top.Len(), S.Len()), "", []string{"ReadUniverse"}, true}
	}
	atoms := &chem.AtomTable{Labeled: top.Labels != nil}
	mols := &chem.MoleculeTable{}
	seen := make(map[int]bool)
	for _, id := range top.Molecules {
		if !seen[id] {
			seen[id] = true
			mols.Rows = append(mols.Rows, &chem.Molecule{ID: id, Classification: top.Classifications[id]})
		}
	}
	frames := &chem.FrameTable{}
	coords := v3.Zeros(S.Len())
	box := make([]float64, 9)
	for f := 0; ; f++ {
		err := S.Next(coords, box)
		if _, ok := err.(chem.LastFrameError); ok {
			break
		} else if err != nil {
			return nil, errDecorate(err, "ReadUniverse")
		}
		fr := &chem.Frame{ID: f, RX: box[0], RY: box[4], RZ: box[8]}
		fr.Periodic = fr.RX != 0 || fr.RY != 0 || fr.RZ != 0
		frames.Rows = append(frames.Rows, fr)
		for i := 0; i < S.Len(); i++ {
			a := &chem.Atom{ID: len(atoms.Rows), Frame: f, Molecule: top.Molecules[i], Symbol: top.Symbols[i],
				X: coords.At(i, 0), Y: coords.At(i, 1), Z: coords.At(i, 2)}
			if atoms.Labeled {
				a.Label = top.Labels[i]
			}
			atoms.Rows = append(atoms.Rows, a)
		}
	}
	uni, err := chem.NewUniverse(atoms, mols, frames, nil)
	if err != nil {
		return nil, errDecorate(err, "ReadUniverse")
	}
	return uni, nil
}
