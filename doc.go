/*
 * doc.go, part of nearmol.
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

/*Package chem is the main package of the nearmol library. It provides the tables that describe
an atomic "universe" (atoms, molecules, frames and precomputed atom pairs), the Universe
container that keeps them consistent, and a few geometric helpers (centers of mass and
minimum-image displacements) needed to carve local sub-systems out of periodic trajectories.

	**nearmol Capabilities**

    Keeps Atom, Molecule, Frame and Pair tables keyed by explicit integer IDs,
	which survive slicing, so a sub-system can always be traced back to its parent.

    Validates the referential integrity of the tables when a Universe is built.

    Computes (lazily) the center of mass of every molecule.

    Selects, per frame, the molecules nearest to a set of source atoms or molecules
	and rebuilds a free-boundary universe from them (see the neighbors package).

    Writes and reads universes as JSON (chemjson) and their coordinates as compressed
	trajectories (traj/stf).

nearmol uses its own matrix type for coordinates, v3.Matrix, based on gonum's Dense.
Each row of a v3.Matrix represents one point in space.*/
package chem
