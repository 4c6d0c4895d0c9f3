/*
 * config.go, part of nearmol.
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

package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/rmera/nearmol/histo"
	"github.com/rmera/nearmol/neighbors"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

//Request is the YAML description of a neighbor search.
type Request struct {
	Counts       []int       `yaml:"counts"`
	Sources      interface{} `yaml:"sources"`
	Restrictions interface{} `yaml:"restrictions"`
	How          string      `yaml:"how"`
	FreeBoundary *bool       `yaml:"free_boundary"`
	Center       []float64   `yaml:"center"`
	Cpus         int         `yaml:"cpus"`
	STF          bool        `yaml:"stf"`
	Plot         bool        `yaml:"plot"`
	MaxRank      int         `yaml:"max_rank"` //ranks in the shell statistics, the largest count if 0
	Histograms   *Histograms `yaml:"histograms"`
}

//Histograms requests per-rank distance histograms. The bins are given either as
//explicit dividers or as a number of equal bins between min and max.
type Histograms struct {
	Dividers  []float64 `yaml:"dividers"`
	Min       float64   `yaml:"min"`
	Max       float64   `yaml:"max"`
	Bins      int       `yaml:"bins"`
	Normalize bool      `yaml:"normalize"`
}

func (H *Histograms) dividers() ([]float64, error) {
	if len(H.Dividers) > 0 {
		if err := histo.CheckDividers(H.Dividers); err != nil {
			return nil, err
		}
		return H.Dividers, nil
	}
	return histo.Dividers(H.Min, H.Max, H.Bins)
}

//LoadRequest decodes a request from r. Unknown keys are an error.
func LoadRequest(r io.Reader) (*Request, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	R := new(Request)
	if err := dec.Decode(R); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("empty request")
		}
		return nil, fmt.Errorf("decoding request: %w", err)
	}
	return R, nil
}

//Search returns the sources and the options for the search described in the request.
func (R *Request) Search(logger *zap.Logger) (neighbors.Spec, *neighbors.Options, error) {
	if len(R.Counts) == 0 {
		return nil, nil, fmt.Errorf("no neighbor counts in request")
	}
	sources, err := neighbors.ParseSpec(R.Sources)
	if err != nil {
		return nil, nil, fmt.Errorf("sources: %w", err)
	}
	if len(sources) == 0 {
		return nil, nil, fmt.Errorf("no sources in request")
	}
	if R.Histograms != nil {
		if _, err := R.Histograms.dividers(); err != nil {
			return nil, nil, fmt.Errorf("histograms: %w", err)
		}
	}
	o := neighbors.DefaultOptions()
	o.Logger = logger
	if R.Restrictions != nil {
		r, err := neighbors.ParseSpec(R.Restrictions)
		if err != nil {
			return nil, nil, fmt.Errorf("restrictions: %w", err)
		}
		o.Restrictions = &r
	}
	if R.How != "" {
		o.How = R.How
	}
	if R.FreeBoundary != nil {
		o.FreeBoundary = *R.FreeBoundary
	}
	if R.Center != nil {
		if len(R.Center) != 3 {
			return nil, nil, fmt.Errorf("center needs 3 coordinates, got %d", len(R.Center))
		}
		o.Center = &[3]float64{R.Center[0], R.Center[1], R.Center[2]}
	}
	if R.Cpus > 0 {
		o.Cpus = R.Cpus
	}
	return sources, o, nil
}

//maxRank returns the number of ranks to include in the shell statistics.
func (R *Request) maxRank() int {
	if R.MaxRank > 0 {
		return R.MaxRank
	}
	m := 0
	for _, c := range R.Counts {
		if c > m {
			m = c
		}
	}
	return m
}
