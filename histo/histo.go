/*
 * histo.go, part of nearmol.
 *
 * Copyright 2019 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

//Package histo implements simple histograms, used to build distance
//profiles from trajectory data.
package histo

import (
	"encoding/json"
	"fmt"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

//Data is a histogram with arbitrary dividers. Values outside
//the range of the dividers are not counted.
type Data struct {
	id         int
	normalized bool
	total      int
	dividers   []float64
	bins       []float64
}

//NewData returns a new histogram of rawdata over the given dividers, which must be
//sorted in increasing order. rawdata is not modified, and can be nil, in which case the
//histogram is empty. If an ID is given, it will be set, otherwise the ID is -1.
//NewData panics if less than 2 dividers are given.
func NewData(dividers []float64, rawdata []float64, ID ...int) *Data {
	if len(dividers) < 2 {
		panic("histo.NewData: At least 2 dividers are needed")
	}
	d := &Data{id: -1, dividers: append([]float64(nil), dividers...)}
	if len(ID) > 0 {
		d.id = ID[0]
	}
	d.fill(rawdata)
	return d
}

//fill bins the points within the range of the dividers.
func (D *Data) fill(rawdata []float64) {
	data := append([]float64(nil), rawdata...)
	sort.Float64s(data)
	//stat.Histogram panics on values out of range instead of skipping them.
	data = data[:sort.SearchFloat64s(data, D.dividers[len(D.dividers)-1])]
	data = data[sort.SearchFloat64s(data, D.dividers[0]):]
	D.total = len(data)
	D.bins = stat.Histogram(nil, D.dividers, data, nil)
}

//Dividers returns n+1 evenly spaced dividers from min to max, for n bins.
func Dividers(min, max float64, n int) ([]float64, error) {
	if n < 1 || !(max > min) {
		return nil, fmt.Errorf("histo.Dividers: can't make %d bins between %v and %v", n, min, max)
	}
	return floats.Span(make([]float64, n+1), min, max), nil
}

//CheckDividers returns an error if d can't be used as the dividers of a histogram.
func CheckDividers(d []float64) error {
	if len(d) < 2 {
		return fmt.Errorf("histo: %d dividers, at least 2 are needed", len(d))
	}
	for i := 1; i < len(d); i++ {
		if !(d[i] > d[i-1]) {
			return fmt.Errorf("histo: dividers not increasing at position %d (%v, %v)", i, d[i-1], d[i])
		}
	}
	return nil
}

func (D *Data) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		ID         int       `json:"id"`
		Normalized bool      `json:"normalized"`
		Total      int       `json:"total"`
		Dividers   []float64 `json:"dividers"`
		Bins       []float64 `json:"bins"`
	}{D.id, D.normalized, D.total, D.dividers, D.bins})
}

//ID returns the ID of the histogram
func (D *Data) ID() int {
	return D.id
}

//Total returns the number of data points counted in the histogram.
func (D *Data) Total() int {
	return D.total
}

//Normalized Returns true if the histogram is normalized
func (D *Data) Normalized() bool {
	return D.normalized
}

//Normalize divides every bin by the number of points counted, so the bins
//add up to 1. It does nothing on normalized or empty histograms.
func (D *Data) Normalize() {
	if D.total <= 0 || D.normalized {
		return
	}
	floats.Scale(1/float64(D.total), D.bins)
	D.normalized = true
}

//View returns the bins of the histogram. Changes to the slice
//affect the histogram.
func (D *Data) View() []float64 {
	return D.bins
}

//Merge returns a histogram, with the given ID, counting the points of all the
//given ones, which must have the same dividers and must not be normalized.
func Merge(id int, hs ...*Data) (*Data, error) {
	if len(hs) == 0 {
		return nil, fmt.Errorf("histo.Merge: nothing to merge")
	}
	ret := &Data{id: id, dividers: append([]float64(nil), hs[0].dividers...), bins: make([]float64, len(hs[0].bins))}
	for i, h := range hs {
		if h.normalized {
			return nil, fmt.Errorf("histo.Merge: histogram %d is normalized", i)
		}
		if !floats.Equal(ret.dividers, h.dividers) {
			return nil, fmt.Errorf("histo.Merge: dividers of histogram %d don't match", i)
		}
		floats.Add(ret.bins, h.bins)
		ret.total += h.total
	}
	return ret, nil
}
