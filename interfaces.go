/*
 * interfaces.go, part of nearmol.
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

//Container is the interface for any object that holds the four tables of an atomic
//universe. The neighbor search only needs read access to the tables, the periodicity flag,
//the (lazy) molecular centers of mass and a way to build a new object of the same kind.
type Container interface {

	//Atoms returns the atom table.
	Atoms() *AtomTable

	//Molecules returns the molecule table.
	Molecules() *MoleculeTable

	//Frames returns the frame table.
	Frames() *FrameTable

	//Pairs returns the two-body (atom pair) table.
	Pairs() *PairTable

	//Periodic returns true if any frame in the container is periodic.
	Periodic() bool

	//ComputeMoleculeCOM fills the CX, CY and CZ fields of every molecule,
	//if they have not been already obtained.
	ComputeMoleculeCOM() error

	//Build returns a new Container of the same concrete type as the receiver,
	//built from exactly the given tables.
	Build(atoms *AtomTable, molecules *MoleculeTable, frames *FrameTable, pairs *PairTable) (Container, error)
}

//Errors

// Error is the interface for errors that all packages in this library implement. The Decorate method allows to add and retrieve info from the
// error, without changing it's type or wrapping it around something else.
type Error interface {
	Error() string
	Decorate(string) []string //Each call adds the string to the "decoration" slice and returns the resulting slice. An empty string just returns the current value.
	Critical() bool
}

//LastFrameError has a useless function to distinguish the harmless errors (i.e. last frame) so they can be
//filtered in a typeswitch that tests for this interface.
type LastFrameError interface {
	Error
	FileName() string
	NormalLastFrameTermination() //does nothing, just to differentiate this interface
}

//TableError reports an inconsistency in one of the tables of a universe.
type TableError struct {
	message  string
	table    string //atom, molecule, frame or pair
	deco     []string
	critical bool
}

//Error returns a string with an error message.
func (err TableError) Error() string {
	return err.table + " table error: " + err.message
}

//Table returns the name of the offending table.
func (err TableError) Table() string {
	return err.table
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err TableError) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Critical return whether the error is critical or it can be ignored
func (err TableError) Critical() bool { return err.critical }

//errDecorate decorates err with the caller's name if err implements Error,
//and returns it unchanged otherwise.
func errDecorate(err error, caller string) error {
	switch e := err.(type) {
	case TableError:
		e.deco = append(e.deco, caller)
		return e
	case Error:
		e.Decorate(caller)
		return e
	}
	return err
}
