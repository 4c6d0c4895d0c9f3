/*
 * nearest.go, part of nearmol.
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
	"runtime"

	chem "github.com/rmera/nearmol"
	"go.uber.org/zap"
)

//Search kinds for Options.How
const (
	HowAtom = "atom" //shortest atom-atom distance
	HowCOM  = "com"  //distance between centers of mass (not implemented)
)

//Options contains the parameters for a NearestMolecules search.
type Options struct {
	Restrictions *Spec //nil means all the non-source atoms and molecules are candidates
	How          string
	FreeBoundary bool
	Center       *[3]float64 //not used yet.
	Logger       *zap.Logger
	Cpus         int //goroutines used to process frames. 0 or less means no limit.
}

//DefaultOptions returns a set of options for a free-boundary, atom-distance
//search with no restrictions, using all available CPUs and no logging.
func DefaultOptions() *Options {
	r := new(Options)
	r.How = HowAtom
	r.FreeBoundary = true
	r.Cpus = runtime.NumCPU()
	r.Logger = zap.NewNop()
	return r
}

func (O *Options) logger() *zap.Logger {
	if O.Logger == nil {
		return zap.NewNop()
	}
	return O.Logger
}

//check returns an error if the options request something not implemented.
func (O *Options) check() error {
	switch O.How {
	case HowAtom:
	case HowCOM:
		return newError(kindUnsupportedMode, "check", "search by center of mass is not implemented")
	default:
		return newError(kindUnsupportedMode, "check", "unknown search kind %q, use %q or %q", O.How, HowAtom, HowCOM)
	}
	if !O.FreeBoundary {
		return newError(kindUnsupportedMode, "check", "only free boundary sub-systems are implemented")
	}
	return nil
}

//Search resolves the sources and restrictions, and ranks, per frame, the candidate molecules.
//It returns the selection, the rankings, and an error, if any.
func Search(uni chem.Container, sources Spec, opts *Options) (*Selection, []FrameRanking, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if err := opts.check(); err != nil {
		return nil, nil, errDecorate(err, "Search")
	}
	var restrictions Spec
	if opts.Restrictions != nil {
		restrictions = *opts.Restrictions
	}
	sel, err := Resolve(uni, sources, restrictions, opts.logger())
	if err != nil {
		return nil, nil, errDecorate(err, "Search")
	}
	var rankings []FrameRanking
	switch opts.How {
	case HowCOM:
		rankings, err = RankByCOM(uni, sel)
	default:
		rankings, err = RankByAtom(uni, sel, opts.Cpus)
	}
	if err != nil {
		return nil, nil, errDecorate(err, "Search")
	}
	opts.logger().Debug("Ranked candidates", zap.Int("frames", len(rankings)))
	return sel, rankings, nil
}

//Result holds the outcome of a search: the resolved selection, the per-frame rankings
//and one sub-system per requested number of neighbors.
type Result struct {
	Selection *Selection
	Rankings  []FrameRanking
	Systems   map[int]chem.Container
}

//NearestMolecules returns, for each number of neighbors in counts, a new free-boundary universe
//containing the sources and the counts[i] molecules nearest to them in each frame, as
//specified in opts (a nil opts is equivalent to DefaultOptions()). The returned map is
//indexed by the number of neighbors. If uni is periodic, the neighbors are unwrapped around
//the sources. On error, no universe is returned.
func NearestMolecules(uni chem.Container, counts []int, sources Spec, opts *Options) (map[int]chem.Container, error) {
	res, err := Nearest(uni, counts, sources, opts)
	if err != nil {
		return nil, errDecorate(err, "NearestMolecules")
	}
	return res.Systems, nil
}

//Nearest is like NearestMolecules, but also returns the selection and rankings the
//sub-systems were built from.
func Nearest(uni chem.Container, counts []int, sources Spec, opts *Options) (*Result, error) {
	if opts == nil {
		opts = DefaultOptions()
	}
	if len(counts) == 0 {
		return nil, newError(kindMalformedSpec, "Nearest", "no neighbor counts given")
	}
	for _, n := range counts {
		if n < 0 {
			return nil, newError(kindMalformedSpec, "Nearest", "negative number of neighbors: %d", n)
		}
	}
	if err := opts.check(); err != nil {
		return nil, errDecorate(err, "Nearest")
	}
	if opts.Center != nil {
		opts.logger().Debug("Recentering is not implemented, center ignored", zap.Float64s("center", opts.Center[:]))
	}
	sel, rankings, err := Search(uni, sources, opts)
	if err != nil {
		return nil, errDecorate(err, "Nearest")
	}
	ret := make(map[int]chem.Container, len(counts))
	for _, n := range counts {
		if _, ok := ret[n]; ok {
			continue
		}
		sub, err := BuildFree(uni, rankings, n, sel, opts.Cpus, opts.logger())
		if err != nil {
			return nil, errDecorate(err, fmt.Sprintf("Nearest: %d neighbors", n))
		}
		ret[n] = sub
	}
	return &Result{Selection: sel, Rankings: rankings, Systems: ret}, nil
}
