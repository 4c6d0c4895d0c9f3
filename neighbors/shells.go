/*
 * shells.go, part of nearmol.
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
	"github.com/rmera/nearmol/histo"
	"gonum.org/v1/gonum/stat"
)

//Shell contains the statistics, over all frames, of the distance between the
//sources and their Rank-th nearest molecule (Rank starts at 1).
type Shell struct {
	Rank   int
	Mean   float64
	StdDev float64
	Frames int //frames with at least Rank ranked molecules
}

//rankDistances returns, for each rank up to maxRank, the distances at that rank in all frames.
func rankDistances(rankings []FrameRanking, maxRank int) [][]float64 {
	ret := make([][]float64, maxRank)
	for _, r := range rankings {
		for i, d := range r.Distances {
			if i >= maxRank {
				break
			}
			ret[i] = append(ret[i], d)
		}
	}
	return ret
}

//ShellStats returns the mean and standard deviation of the distances to the first, second,
//etc. up to the maxRank-th nearest molecule, over all frames. Ranks that no frame reaches
//are not included.
func ShellStats(rankings []FrameRanking, maxRank int) []Shell {
	ret := make([]Shell, 0, maxRank)
	for i, d := range rankDistances(rankings, maxRank) {
		if len(d) == 0 {
			break
		}
		s := Shell{Rank: i + 1, Frames: len(d)}
		if len(d) == 1 {
			s.Mean = d[0]
		} else {
			s.Mean, s.StdDev = stat.MeanStdDev(d, nil)
		}
		ret = append(ret, s)
	}
	return ret
}

//ShellHistograms returns, for each rank up to maxRank, a histogram of the distances to the
//molecule at that rank over all frames. The ID of each histogram is its rank.
func ShellHistograms(rankings []FrameRanking, maxRank int, dividers []float64) []*histo.Data {
	dists := rankDistances(rankings, maxRank)
	ret := make([]*histo.Data, len(dists))
	for i, d := range dists {
		ret[i] = histo.NewData(dividers, d, i+1)
	}
	return ret
}
