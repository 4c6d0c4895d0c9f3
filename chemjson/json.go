/*
 * json.go, part of nearmol.
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

package chemjson

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	chem "github.com/rmera/nearmol"
)

//Header precedes the rows of a serialized universe.
type Header struct {
	Atoms     int
	Molecules int
	Frames    int
	Pairs     int
	Labeled   bool
	HasCOM    bool
}

//An easily JSON-serializable error type,
type Error struct {
	deco          []string
	IsError       bool   //If this is false (no error) all the other fields will be at their zero-values.
	InHeader      bool   //If error, was it in reading the header?
	InTables      bool   //Was it in reading or writing the rows?
	InTopology    bool
	InPostProcess bool   //was it in preparing the output?
	Table         string //Which table?
	Row           int    //Which row of it?
	Function      string //which go function gave the error
	Message       string //the error itself
}

//Error implements the error interface
func (J *Error) Error() string {
	if J.Table != "" {
		return fmt.Sprintf("%s: %s table, row %d: %s", J.Function, J.Table, J.Row, J.Message)
	}
	return J.Function + ": " + J.Message
}

//Decorate will add the dec string to the decoration slice of strings of the error,
//and return the resulting slice.
func (J *Error) Decorate(dec string) []string {
	if dec == "" {
		return J.deco
	}
	J.deco = append(J.deco, dec)
	return J.deco
}

//Critical returns true. A failure to serialize or unserialize leaves nothing usable.
func (J *Error) Critical() bool { return true }

//Serializes the error. Panics on failure.
func (J *Error) Marshal() []byte {
	ret, err2 := json.Marshal(J)
	if err2 != nil {
		panic(strings.Join([]string{J.Error(), err2.Error()}, " - ")) // Yo, dawg, I heard you like errors, so I got an error while serializing your error so you can... you know the drill.
	}
	return ret
}

//Takes an error and some additional info to create a json-marshal-ble error
func NewError(where, function string, err error) *Error {
	jerr := new(Error)
	jerr.IsError = true
	switch where {
	case "header":
		jerr.InHeader = true
	case "topology":
		jerr.InTopology = true
	case "postprocess":
		jerr.InPostProcess = true
	default:
		jerr.InTables = true
	}
	jerr.Function = function
	jerr.Message = err.Error()
	jerr.deco = []string{function}
	return jerr
}

func newTableError(function, table string, row int, err error) *Error {
	jerr := NewError("tables", function, err)
	jerr.Table = table
	jerr.Row = row
	return jerr
}

//Information about a neighbor search, to be passed back to the calling program.
type Info struct {
	Sources      string
	Restrictions string
	Counts       []int
	Molecules    [][]int //IDs of the molecules in each sub-system, in the order of Counts
	Atoms        []int   //Number of atoms in each sub-system
	FloatInfo    [][]float64
	StringInfo   [][]string
}

//Send Marshals the info and writes to out, returns an error or nil
func (J *Info) Send(out io.Writer) *Error {
	enc := json.NewEncoder(out)
	if err := enc.Encode(J); err != nil {
		return NewError("postprocess", "Info.Send", err)
	}
	return nil
}

//EncodeUniverse writes the header and the four tables of uni to out,
//one JSON object per line.
func EncodeUniverse(uni chem.Container, out io.Writer) *Error {
	const funcname = "EncodeUniverse"
	enc := json.NewEncoder(out)
	h := &Header{
		Atoms:     uni.Atoms().Len(),
		Molecules: uni.Molecules().Len(),
		Frames:    uni.Frames().Len(),
		Pairs:     uni.Pairs().Len(),
		Labeled:   uni.Atoms().Labeled,
		HasCOM:    uni.Molecules().HasCOM,
	}
	if err := enc.Encode(h); err != nil {
		return NewError("header", funcname, err)
	}
	for i, v := range uni.Atoms().Rows {
		if err := enc.Encode(v); err != nil {
			return newTableError(funcname, "atom", i, err)
		}
	}
	for i, v := range uni.Molecules().Rows {
		if err := enc.Encode(v); err != nil {
			return newTableError(funcname, "molecule", i, err)
		}
	}
	for i, v := range uni.Frames().Rows {
		if err := enc.Encode(v); err != nil {
			return newTableError(funcname, "frame", i, err)
		}
	}
	for i, v := range uni.Pairs().Rows {
		if err := enc.Encode(v); err != nil {
			return newTableError(funcname, "pair", i, err)
		}
	}
	return nil
}

//decodeRows reads n lines from stream, unmarshaling each into a new T.
//the header sizes are not trusted for preallocation beyond this.
const maxPrealloc = 1 << 16

func decodeRows[T any](stream *bufio.Reader, n int, table string) ([]*T, *Error) {
	const funcname = "DecodeUniverse"
	ret := make([]*T, 0, min(n, maxPrealloc))
	for i := 0; i < n; i++ {
		line, err := stream.ReadBytes('\n') //Using this function allocates a lot without need. There is no function that takes a []bytes AND a limit.
		if err != nil && (err != io.EOF || len(line) == 0) {
			return nil, newTableError(funcname, table, i, err)
		}
		r := new(T)
		if err := json.Unmarshal(line, r); err != nil {
			return nil, newTableError(funcname, table, i, err)
		}
		ret = append(ret, r)
	}
	return ret, nil
}

//DecodeUniverse reads a universe, as written by EncodeUniverse, from stream.
//The tables are checked for consistency.
func DecodeUniverse(stream *bufio.Reader) (*chem.Universe, *Error) {
	const funcname = "DecodeUniverse"
	line, err := stream.ReadBytes('\n')
	if err != nil {
		return nil, NewError("header", funcname, err)
	}
	h := new(Header)
	if err := json.Unmarshal(line, h); err != nil {
		return nil, NewError("header", funcname, err)
	}
	if h.Atoms < 0 || h.Molecules < 0 || h.Frames < 0 || h.Pairs < 0 {
		return nil, NewError("header", funcname, fmt.Errorf("negative table size in header %+v", *h))
	}
	atoms, jerr := decodeRows[chem.Atom](stream, h.Atoms, "atom")
	if jerr != nil {
		return nil, jerr
	}
	mols, jerr := decodeRows[chem.Molecule](stream, h.Molecules, "molecule")
	if jerr != nil {
		return nil, jerr
	}
	frames, jerr := decodeRows[chem.Frame](stream, h.Frames, "frame")
	if jerr != nil {
		return nil, jerr
	}
	pairs, jerr := decodeRows[chem.Pair](stream, h.Pairs, "pair")
	if jerr != nil {
		return nil, jerr
	}
	uni, err := chem.NewUniverse(&chem.AtomTable{Rows: atoms, Labeled: h.Labeled},
		&chem.MoleculeTable{Rows: mols, HasCOM: h.HasCOM},
		&chem.FrameTable{Rows: frames}, &chem.PairTable{Rows: pairs})
	if err != nil {
		return nil, NewError("tables", funcname, err)
	}
	return uni, nil
}
