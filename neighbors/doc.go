/*
 * doc.go, part of nearmol.
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

//Package neighbors selects, for each frame of a trajectory, the molecules closest to a set of
//"source" atoms or molecules, and builds new, free-boundary universes containing the sources and
//their N nearest neighbors.
//
//The search works on a precomputed two-body (pair distance) table and proceeds in four steps:
//the source and restriction specifications are resolved into atom and molecule sets (Resolve),
//candidate molecules are ranked by their shortest source-neighbor atom distance in each
//frame (RankByAtom), the tables are sliced to the sources plus the first N ranked molecules
//of every frame (BuildFree) and, for periodic systems, the neighbors are moved to the
//periodic image closest to the source (Unwrap). NearestMolecules runs the whole thing.
//
//	src := neighbors.Spec{neighbors.Name("solute")}
//	unis, err := neighbors.NearestMolecules(uni, []int{5, 10}, src, nil)
//
//Sources and restrictions can mix atom labels, element symbols and molecule classifications:
//
//	src := neighbors.Spec{neighbors.Name("solute"), neighbors.Name("C")} //C atoms of the solute
//
//Ranking by molecular center of mass and reconstructions that keep the periodic box are
//not implemented, and requesting them returns an error matching ErrUnsupportedMode.
package neighbors
