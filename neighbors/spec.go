/*
 * spec.go, part of nearmol.
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
	"math"
	"strconv"
	"strings"
)

//Value is one element of a source or restriction specification: either an
//integer atom label, or a string, which can be an element symbol or a
//molecule classification.
type Value struct {
	label int
	name  string
	isInt bool
}

//Label returns a Value for the atom label l.
func Label(l int) Value {
	return Value{label: l, isInt: true}
}

//Name returns a Value for an element symbol or a molecule classification.
func Name(s string) Value {
	return Value{name: s}
}

//IsLabel returns true if the value is an integer (i.e. can only be an atom label).
func (V Value) IsLabel() bool {
	return V.isInt
}

func (V Value) String() string {
	if V.isInt {
		return strconv.Itoa(V.label)
	}
	return V.name
}

//Spec is a list of values selecting atoms or molecules.
type Spec []Value

func (S Spec) String() string {
	s := make([]string, len(S))
	for i, v := range S {
		s[i] = v.String()
	}
	return "[" + strings.Join(s, " ") + "]"
}

//ParseSpec builds a Spec from a plain value (an integer, an integral float, as produced
//by JSON/YAML decoders, or a string) or a list of plain values. A nil input returns a nil
//Spec. Anything else is a malformed specification.
func ParseSpec(v interface{}) (Spec, error) {
	switch t := v.(type) {
	case nil:
		return nil, nil
	case []interface{}:
		if len(t) == 0 {
			return nil, newError(kindMalformedSpec, "ParseSpec", "empty list")
		}
		ret := make(Spec, 0, len(t))
		for i, e := range t {
			val, err := parseValue(e)
			if err != nil {
				return nil, errDecorate(err, fmt.Sprintf("ParseSpec: element %d", i))
			}
			ret = append(ret, val)
		}
		return ret, nil
	case []string:
		if len(t) == 0 {
			return nil, newError(kindMalformedSpec, "ParseSpec", "empty list")
		}
		ret := make(Spec, len(t))
		for i, e := range t {
			ret[i] = Name(e)
		}
		return ret, nil
	case []int:
		if len(t) == 0 {
			return nil, newError(kindMalformedSpec, "ParseSpec", "empty list")
		}
		ret := make(Spec, len(t))
		for i, e := range t {
			ret[i] = Label(e)
		}
		return ret, nil
	case Spec:
		if len(t) == 0 {
			return nil, newError(kindMalformedSpec, "ParseSpec", "empty list")
		}
		return t, nil
	default:
		val, err := parseValue(v)
		if err != nil {
			return nil, errDecorate(err, "ParseSpec")
		}
		return Spec{val}, nil
	}
}

func parseValue(v interface{}) (Value, error) {
	switch t := v.(type) {
	case Value:
		return t, nil
	case int:
		return Label(t), nil
	case int64:
		if int64(int(t)) != t {
			return Value{}, newError(kindMalformedSpec, "parseValue", "label %d out of range", t)
		}
		return Label(int(t)), nil
	case int32:
		return Label(int(t)), nil
	case uint64:
		if t > math.MaxInt {
			return Value{}, newError(kindMalformedSpec, "parseValue", "label %d out of range", t)
		}
		return Label(int(t)), nil
	case float64:
		if t != math.Trunc(t) {
			return Value{}, newError(kindMalformedSpec, "parseValue", "non-integral label %v", t)
		}
		//float64(math.MaxInt) rounds up to 2^63, which is already out of range.
		if t < math.MinInt || t >= math.MaxInt {
			return Value{}, newError(kindMalformedSpec, "parseValue", "label %v out of range", t)
		}
		return Label(int(t)), nil
	case string:
		return Name(t), nil
	default:
		return Value{}, newError(kindMalformedSpec, "parseValue", "element of type %T is neither a label nor a name", v)
	}
}

//Category is a set of the categories a specification value belongs to.
type Category uint8

const (
	CatLabel Category = 1 << iota
	CatSymbol
	CatClassification
)

//Unrecognized is the category of a value that is not a known label, symbol or classification.
const Unrecognized Category = 0

//Has returns true if c contains all the categories in o.
func (c Category) Has(o Category) bool {
	return c&o == o
}

func (c Category) String() string {
	if c == Unrecognized {
		return "unrecognized"
	}
	s := make([]string, 0, 3)
	if c.Has(CatLabel) {
		s = append(s, "label")
	}
	if c.Has(CatSymbol) {
		s = append(s, "symbol")
	}
	if c.Has(CatClassification) {
		s = append(s, "classification")
	}
	return strings.Join(s, "|")
}

//resolution mode, decided from the tags of all the elements of a Spec.
type mode int

const (
	modeLabel mode = iota
	modeSymbol
	modeClassification
	modeMixed
)

func (m mode) String() string {
	return [...]string{"label", "symbol", "classification", "mixed"}[m]
}

//decideMode returns the first mode, in priority order, for which every tag
//has the corresponding category.
func decideMode(tags []Category) mode {
	for _, c := range []struct {
		cat Category
		m   mode
	}{{CatLabel, modeLabel}, {CatSymbol, modeSymbol}, {CatClassification, modeClassification}} {
		all := true
		for _, t := range tags {
			if !t.Has(c.cat) {
				all = false
				break
			}
		}
		if all {
			return c.m
		}
	}
	return modeMixed
}
