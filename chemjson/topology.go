/*
 * topology.go, part of nearmol.
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

package chemjson

import (
	"encoding/json"
	"fmt"

	chem "github.com/rmera/nearmol"
)

//Topology describes the atoms of one frame, in table order: their symbols, the molecules
//they belong to and, if the atom table is labeled, their labels. Classifications maps
//the classified molecules to their classification.
type Topology struct {
	Symbols         []string
	Molecules       []int
	Labels          []int          `json:",omitempty"`
	Classifications map[int]string `json:",omitempty"`
}

//FrameTopology returns the topology of the given frame of uni.
func FrameTopology(uni chem.Container, frame int) *Topology {
	T := new(Topology)
	labeled := uni.Atoms().Labeled
	mols := make(map[int]bool)
	for _, a := range uni.Atoms().Rows {
		if a.Frame != frame {
			continue
		}
		T.Symbols = append(T.Symbols, a.Symbol)
		T.Molecules = append(T.Molecules, a.Molecule)
		if labeled {
			T.Labels = append(T.Labels, a.Label)
		}
		mols[a.Molecule] = true
	}
	for _, m := range uni.Molecules().Rows {
		if mols[m.ID] && m.Classification != "" {
			if T.Classifications == nil {
				T.Classifications = make(map[int]string)
			}
			T.Classifications[m.ID] = m.Classification
		}
	}
	return T
}

//Len returns the number of atoms in the topology.
func (T *Topology) Len() int {
	return len(T.Symbols)
}

//Marshal returns the topology as a single line of JSON.
func (T *Topology) Marshal() (string, *Error) {
	b, err := json.Marshal(T)
	if err != nil {
		return "", NewError("topology", "Topology.Marshal", err)
	}
	return string(b), nil
}

//ParseTopology unmarshals a topology produced by Topology.Marshal, and
//checks that all of its columns have the same length.
func ParseTopology(s string) (*Topology, *Error) {
	T := new(Topology)
	if err := json.Unmarshal([]byte(s), T); err != nil {
		return nil, NewError("topology", "ParseTopology", err)
	}
	if len(T.Molecules) != len(T.Symbols) || (T.Labels != nil && len(T.Labels) != len(T.Symbols)) {
		return nil, NewError("topology", "ParseTopology", fmt.Errorf("columns of different length: %d symbols, %d molecules, %d labels",
			len(T.Symbols), len(T.Molecules), len(T.Labels)))
	}
	return T, nil
}
