/*
 * main.go, part of nearmol.
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

//nearmol extracts, from a trajectory stored as a JSON universe, the molecules nearest to a set of
//sources, and writes the resulting free-boundary universes.
//
//	nearmol select --universe traj.json --request req.yaml --out results/
//	nearmol inspect --universe traj.json solute Na 3
//	nearmol inspect --universe nearest_3.stf
package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	chem "github.com/rmera/nearmol"
	"github.com/rmera/nearmol/chemjson"
	"github.com/rmera/nearmol/chemplot"
	"github.com/rmera/nearmol/histo"
	"github.com/rmera/nearmol/neighbors"
	"github.com/rmera/nearmol/traj/stf"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

//app holds the state shared by all the commands.
type app struct {
	verbose  bool
	universe string
	logger   *zap.Logger
}

//NewRootCommand creates the root command for the nearmol CLI.
func NewRootCommand() *cobra.Command {
	a := &app{logger: zap.NewNop()}
	cmd := &cobra.Command{
		Use:          "nearmol",
		Short:        "Extract the molecules nearest to a selection",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if a.verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			a.logger, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = a.logger.Sync()
		},
	}
	cmd.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug output")
	cmd.PersistentFlags().StringVarP(&a.universe, "universe", "u", "", "JSON universe file (inspect also reads .stf trajectories)")
	_ = cmd.MarkPersistentFlagRequired("universe")
	cmd.AddCommand(newSelectCommand(a))
	cmd.AddCommand(newInspectCommand(a))
	return cmd
}

//readUniverse reads the universe file. Files with the .stf extension are read as stf
//trajectories, which carry no pair table, if stfOK is true.
func (a *app) readUniverse(stfOK bool) (*chem.Universe, error) {
	isSTF := strings.EqualFold(filepath.Ext(a.universe), ".stf")
	if isSTF && !stfOK {
		return nil, fmt.Errorf("%s: stf trajectories have no pair table, a JSON universe is needed", a.universe)
	}
	f, err := os.Open(a.universe)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var uni *chem.Universe
	if isSTF {
		uni, err = stf.ReadUniverse(f, a.logger)
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", a.universe, err)
		}
	} else {
		var jerr *chemjson.Error
		uni, jerr = chemjson.DecodeUniverse(bufio.NewReader(f))
		if jerr != nil {
			return nil, fmt.Errorf("reading %s: %w", a.universe, jerr)
		}
	}
	a.logger.Debug("Read universe", zap.String("file", a.universe), zap.Int("atoms", uni.Atoms().Len()),
		zap.Int("frames", uni.Frames().Len()), zap.Int("pairs", uni.Pairs().Len()))
	return uni, nil
}

func newSelectCommand(a *app) *cobra.Command {
	var request, out, how string
	var counts []int
	var cpus int
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Build universes with the sources and their N nearest molecules",
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(request)
			if err != nil {
				return err
			}
			req, err := LoadRequest(f)
			f.Close()
			if err != nil {
				return fmt.Errorf("%s: %w", request, err)
			}
			if cmd.Flags().Changed("counts") {
				req.Counts = counts
			}
			if how != "" {
				req.How = how
			}
			if cpus > 0 {
				req.Cpus = cpus
			}
			uni, err := a.readUniverse(false)
			if err != nil {
				return err
			}
			return a.runSelect(uni, req, out, cmd)
		},
	}
	cmd.Flags().StringVarP(&request, "request", "r", "", "YAML request file")
	cmd.Flags().StringVarP(&out, "out", "o", ".", "output directory")
	cmd.Flags().IntSliceVarP(&counts, "counts", "n", nil, "numbers of neighbors (override the request)")
	cmd.Flags().StringVar(&how, "how", "", "search kind (atom or com, overrides the request)")
	cmd.Flags().IntVar(&cpus, "cpus", 0, "goroutines used per search step (overrides the request)")
	_ = cmd.MarkFlagRequired("request")
	return cmd
}

func (a *app) runSelect(uni *chem.Universe, req *Request, out string, cmd *cobra.Command) error {
	sources, opts, err := req.Search(a.logger)
	if err != nil {
		return err
	}
	res, err := neighbors.Nearest(uni, req.Counts, sources, opts)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(out, 0o755); err != nil {
		return err
	}
	info := &chemjson.Info{Sources: sources.String()}
	if opts.Restrictions != nil {
		info.Restrictions = opts.Restrictions.String()
	}
	counts := make([]int, 0, len(res.Systems))
	for n := range res.Systems {
		counts = append(counts, n)
	}
	sort.Ints(counts)
	for _, n := range counts {
		sub := res.Systems[n]
		name := filepath.Join(out, fmt.Sprintf("nearest_%d.json", n))
		if err := writeUniverse(name, sub); err != nil {
			return err
		}
		a.logger.Info("Wrote sub-system", zap.String("file", name), zap.Int("neighbors", n),
			zap.Int("molecules", sub.Molecules().Len()), zap.Int("atoms", sub.Atoms().Len()))
		if req.STF {
			name = filepath.Join(out, fmt.Sprintf("nearest_%d.stf", n))
			if err := writeSTF(name, sub); err != nil {
				a.logger.Warn("Sub-system can't be written as stf", zap.String("file", name), zap.Error(err))
			}
		}
		info.Counts = append(info.Counts, n)
		info.Molecules = append(info.Molecules, sub.Molecules().IDs())
		info.Atoms = append(info.Atoms, sub.Atoms().Len())
	}
	shells := neighbors.ShellStats(res.Rankings, req.maxRank())
	for _, s := range shells {
		info.FloatInfo = append(info.FloatInfo, []float64{float64(s.Rank), s.Mean, s.StdDev, float64(s.Frames)})
	}
	if req.Plot && len(shells) > 0 {
		name := filepath.Join(out, "shells.png")
		if err := chemplot.ShellProfile([][]neighbors.Shell{shells}, nil, "Nearest molecules to "+sources.String(), name); err != nil {
			return err
		}
	}
	if req.Histograms != nil {
		if err := a.writeHistograms(filepath.Join(out, "shell_histograms.json"), res.Rankings, req); err != nil {
			return err
		}
	}
	if jerr := info.Send(cmd.OutOrStdout()); jerr != nil {
		return jerr
	}
	return nil
}

//shellHistograms is the content of the histogram file: one histogram per neighbor
//rank, with the rank as ID, and one (ID 0) with the distances of all ranks.
type shellHistograms struct {
	Ranks []*histo.Data `json:"ranks"`
	All   *histo.Data   `json:"all"`
}

func (a *app) writeHistograms(name string, rankings []neighbors.FrameRanking, req *Request) error {
	div, err := req.Histograms.dividers()
	if err != nil {
		return err
	}
	hs := neighbors.ShellHistograms(rankings, req.maxRank(), div)
	if len(hs) == 0 {
		a.logger.Warn("No ranks to build histograms from", zap.String("file", name))
		return nil
	}
	all, err := histo.Merge(0, hs...)
	if err != nil {
		return err
	}
	if req.Histograms.Normalize {
		for _, h := range hs {
			h.Normalize()
		}
		all.Normalize()
	}
	b, err := json.MarshalIndent(shellHistograms{Ranks: hs, All: all}, "", "  ")
	if err != nil {
		return err
	}
	if err := os.WriteFile(name, b, 0o644); err != nil {
		return err
	}
	a.logger.Info("Wrote shell histograms", zap.String("file", name), zap.Int("ranks", len(hs)), zap.Int("points", all.Total()))
	return nil
}

func writeUniverse(name string, uni chem.Container) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	w := bufio.NewWriter(f)
	if jerr := chemjson.EncodeUniverse(uni, w); jerr != nil {
		f.Close()
		return jerr
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func writeSTF(name string, uni chem.Container) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	if err := stf.WriteUniverse(f, uni, map[string]string{"program": "nearmol"}); err != nil {
		f.Close()
		os.Remove(name)
		return err
	}
	return f.Close()
}

func newInspectCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [values...]",
		Short: "Print the contents of a universe, and the categories of the given values",
		RunE: func(cmd *cobra.Command, args []string) error {
			uni, err := a.readUniverse(true)
			if err != nil {
				return err
			}
			return inspect(uni, args, cmd)
		},
	}
}

func inspect(uni *chem.Universe, args []string, cmd *cobra.Command) error {
	w := cmd.OutOrStdout()
	fmt.Fprintf(w, "atoms: %d (labeled: %v)\nmolecules: %d (classified: %v)\nframes: %d (periodic: %v)\npairs: %d\n",
		uni.Atoms().Len(), uni.Atoms().Labeled, uni.Molecules().Len(), uni.Molecules().Classified(),
		uni.Frames().Len(), uni.Periodic(), uni.Pairs().Len())
	if ids := uni.FrameIDs(); len(ids) > 0 {
		fmt.Fprintf(w, "frame IDs: %d to %d\n", ids[0], ids[len(ids)-1])
	}
	symbols := make(map[string]int)
	for _, a := range uni.Atoms().Rows {
		symbols[a.Symbol]++
	}
	classes := make(map[string]int)
	for _, m := range uni.Molecules().Rows {
		if m.Classification != "" {
			classes[m.Classification]++
		}
	}
	printCounts(cmd, "symbols", symbols)
	printCounts(cmd, "classifications", classes)
	if len(args) == 0 {
		return nil
	}
	vals := make([]interface{}, len(args))
	for i, v := range args {
		vals[i] = parseArg(v)
	}
	spec, err := neighbors.ParseSpec(vals)
	if err != nil {
		return err
	}
	for i, c := range neighbors.Tags(uni, spec) {
		fmt.Fprintf(w, "%s: %s\n", spec[i], c)
	}
	return nil
}

//parseArg returns v as an integer label if it is one, and as a name otherwise.
func parseArg(v string) interface{} {
	if i, err := strconv.Atoi(v); err == nil {
		return i
	}
	return v
}

func printCounts(cmd *cobra.Command, title string, counts map[string]int) {
	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	fmt.Fprintf(cmd.OutOrStdout(), "%s:", title)
	for _, k := range keys {
		fmt.Fprintf(cmd.OutOrStdout(), " %s(%d)", k, counts[k])
	}
	fmt.Fprintln(cmd.OutOrStdout())
}

func main() {
	if err := NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}
