/*
 * errors.go, part of nearmol.
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
	"strings"
)

type errKind int

const (
	kindUnsupportedMode errKind = iota + 1
	kindMalformedSpec
	kindUnsupportedCategory
	kindInconsistentTables
)

var kindNames = map[errKind]string{
	kindUnsupportedMode:     "unsupported mode",
	kindMalformedSpec:       "malformed specification",
	kindUnsupportedCategory: "unsupported category",
	kindInconsistentTables:  "inconsistent tables",
}

//Error is the error type returned by this package. It fulfills chem.Error.
//Errors of the same kind match each other with errors.Is, so callers can
//test against the ErrXXX values.
type Error struct {
	kind    errKind
	message string
	deco    []string
}

//Sentinel values to be used with errors.Is.
var (
	//A center-of-mass search, a non-free-boundary reconstruction or an unknown search kind was requested.
	ErrUnsupportedMode = Error{kind: kindUnsupportedMode}
	//A source/restriction specification or a neighbor count is not valid.
	ErrMalformedSpec = Error{kind: kindMalformedSpec}
	//None of the elements of a specification is a known label, symbol or classification.
	ErrUnsupportedCategory = Error{kind: kindUnsupportedCategory}
	//The tables reference rows that do not exist.
	ErrInconsistentTables = Error{kind: kindInconsistentTables}
)

func newError(kind errKind, caller, format string, args ...interface{}) Error {
	return Error{kind: kind, message: fmt.Sprintf(format, args...), deco: []string{caller}}
}

//Error returns a string with an error message.
func (err Error) Error() string {
	if err.message == "" {
		return "neighbors: " + kindNames[err.kind]
	}
	return fmt.Sprintf("neighbors: %s: %s", kindNames[err.kind], err.message)
}

//Is reports whether target is an Error of the same kind.
func (err Error) Is(target error) bool {
	t, ok := target.(Error)
	return ok && t.kind == err.kind
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (err Error) Decorate(dec string) []string {
	if dec == "" {
		return err.deco
	}
	err.deco = append(err.deco, dec)
	return err.deco
}

//Trace returns the functions the error went through, innermost first.
func (err Error) Trace() string {
	return strings.Join(err.deco, " <- ")
}

//None of these conditions can be fixed by retrying.
func (err Error) Critical() bool { return true }

//errDecorate adds the caller to the trail of an Error, and wraps
//any other error with the caller's name.
func errDecorate(err error, caller string) error {
	if e, ok := err.(Error); ok {
		e.deco = append(e.deco, caller)
		return e
	}
	return fmt.Errorf("%s: %w", caller, err)
}
