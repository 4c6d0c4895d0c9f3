/*
 * stf.go, part of nearmol.
 *
 * Copyright 2021 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
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

package stf

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
	v3 "github.com/rmera/nearmol/v3"
	"go.uber.org/zap"
)

//DefaultPrec is the number of decimal places kept for the coordinates, if the header doesn't say otherwise.
const DefaultPrec = 2

//StfW writes stf trajectories.
type StfW struct {
	f         io.Closer //nil if we don't own the underlying writer
	h         *zstd.Encoder
	natoms    int
	filename  string
	writeable bool
	prec      int
}

//Close flushes and closes the trajectory. It can not be written after this call.
func (S *StfW) Close() error {
	if S == nil || !S.writeable {
		return nil
	}
	S.writeable = false
	err := S.h.Close()
	if S.f != nil {
		if err2 := S.f.Close(); err == nil {
			err = err2
		}
	}
	if err != nil {
		return Error{err.Error(), S.filename, []string{"Close"}, true}
	}
	return nil
}

//Len returns the number of atoms per frame.
func (S *StfW) Len() int {
	return S.natoms
}

//WNext writes the coordinates in coord as the next frame of the trajectory. If
//box is given and has at least 9 elements, they are written as the box vectors.
func (S *StfW) WNext(coord *v3.Matrix, box ...[]float64) error {
	if !S.writeable {
		return Error{TrajUnIniWrite, S.filename, []string{"WNext"}, true}
	}
	if coord == nil {
		return Error{NilCoordinates, S.filename, []string{"WNext"}, true}
	}
	v := coord.NVecs()
	if v != S.natoms {
		return Error{fmt.Sprintf("%d coordinates given, but %d expected", v, S.natoms), S.filename, []string{"WNext"}, true}
	}
	var floats [3]float64
	for i := 0; i < v; i++ {
		floats[0] = coord.At(i, 0)
		floats[1] = coord.At(i, 1)
		floats[2] = coord.At(i, 2)
		if _, err := io.WriteString(S.h, coordsEncode(floats, S.prec)); err != nil {
			return Error{err.Error(), S.filename, []string{"WNext"}, true}
		}
	}
	end := "*\n"
	if len(box) > 0 && len(box[0]) >= 9 {
		b := box[0]
		end = fmt.Sprintf("* %4.2f %4.2f %4.2f %4.2f %4.2f %4.2f %4.2f %4.2f %4.2f\n", b[0],
			b[1], b[2], b[3], b[4], b[5], b[6], b[7], b[8])
	}
	if _, err := io.WriteString(S.h, end); err != nil {
		return Error{err.Error(), S.filename, []string{"WNext"}, true}
	}
	return nil
}

//NewWriter creates the file name and returns a writer for a trajectory with natoms atoms per frame.
//The header map is written at the beginning of the file. If it contains the key "prec", its value
//will be used as the precision, otherwise DefaultPrec is used (and written to the header).
func NewWriter(name string, natoms int, header map[string]string) (*StfW, error) {
	f, err := os.Create(name)
	if err != nil {
		return nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"NewWriter"}, true}
	}
	S, err := newWriter(f, name, natoms, header)
	if err != nil {
		f.Close()
		return nil, errDecorate(err, "NewWriter")
	}
	S.f = f
	return S, nil
}

//NewStreamWriter is like NewWriter, but writes to w. Closing the returned object
//doesn't close w.
func NewStreamWriter(w io.Writer, natoms int, header map[string]string) (*StfW, error) {
	S, err := newWriter(w, "", natoms, header)
	if err != nil {
		return nil, errDecorate(err, "NewStreamWriter")
	}
	return S, nil
}

func newWriter(w io.Writer, name string, natoms int, header map[string]string) (*StfW, error) {
	S := new(StfW)
	S.filename = name
	S.natoms = natoms
	S.prec = DefaultPrec
	h := make(map[string]string, len(header)+1)
	for k, v := range header {
		h[k] = v
	}
	if p, ok := h["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err != nil || prec <= 0 {
			return nil, Error{fmt.Sprintf("Invalid precision %q", p), name, []string{"newWriter"}, true}
		}
		S.prec = prec
	} else {
		h["prec"] = strconv.Itoa(S.prec)
	}
	keys := make([]string, 0, len(h))
	for k := range h {
		if strings.ContainsAny(k, "=\n") || strings.Contains(h[k], "\n") || strings.HasPrefix(k, "*") {
			return nil, Error{fmt.Sprintf("Invalid header entry %q", k), name, []string{"newWriter"}, true}
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var headerstr strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&headerstr, "%s=%s\n", k, h[k])
	}
	fmt.Fprintf(&headerstr, "** %d\n", S.natoms)
	var err error
	S.h, err = zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedBestCompression))
	if err != nil {
		return nil, Error{"Can't start the compressor " + err.Error(), name, []string{"newWriter"}, true}
	}
	if _, err := io.WriteString(S.h, headerstr.String()); err != nil {
		return nil, Error{"Can't write header " + err.Error(), name, []string{"newWriter"}, true}
	}
	S.writeable = true
	return S, nil
}

//StfR reads stf trajectories.
type StfR struct {
	f        io.Closer //nil if we don't own the underlying reader
	dec      *zstd.Decoder
	h        *bufio.Reader
	natoms   int
	filename string
	prec     int
	readable bool
	logger   *zap.Logger
}

func coordsEncode(f [3]float64, prec int) string {
	p := math.Pow(10.0, float64(prec))
	var temp [3]int
	for i, v := range f {
		temp[i] = int(math.RoundToEven(v * p))
	}
	return fmt.Sprintf("%d %d %d\n", temp[0], temp[1], temp[2])
}

//New opens a STF trajectory for reading, and returns a pointer
//to the handle, a map with the metadata and error or nil. If a logger is given,
//problems that don't prevent reading (like ill-formed boxes) are logged to it.
func New(name string, logger ...*zap.Logger) (*StfR, map[string]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, nil, Error{UnableToOpen + ": " + err.Error(), name, []string{"New"}, true}
	}
	S, m, err := newReader(f, name, logger...)
	if err != nil {
		f.Close()
		return nil, nil, errDecorate(err, "New")
	}
	S.f = f
	return S, m, nil
}

//NewStreamReader is like New, but reads the trajectory from r. Closing the returned
//object doesn't close r.
func NewStreamReader(r io.Reader, logger ...*zap.Logger) (*StfR, map[string]string, error) {
	S, m, err := newReader(r, "", logger...)
	if err != nil {
		return nil, nil, errDecorate(err, "NewStreamReader")
	}
	return S, m, nil
}

func newReader(r io.Reader, name string, logger ...*zap.Logger) (*StfR, map[string]string, error) {
	S := new(StfR)
	S.natoms = -1 //just so we know if things don't work
	S.filename = name
	S.prec = DefaultPrec
	S.logger = zap.NewNop()
	if len(logger) > 0 && logger[0] != nil {
		S.logger = logger[0]
	}
	var err error
	S.dec, err = zstd.NewReader(bufio.NewReader(r))
	if err != nil {
		return nil, nil, Error{"Can't read header " + err.Error(), S.filename, []string{"newReader"}, true}
	}
	S.h = bufio.NewReader(S.dec)
	m := make(map[string]string)
	for {
		str, err := S.h.ReadString('\n')
		if err != nil {
			S.dec.Close()
			return nil, nil, Error{"Can't read header " + err.Error(), S.filename, []string{"newReader"}, true}
		}
		str = strings.TrimSuffix(str, "\n")
		if strings.HasPrefix(str, "**") {
			nat := strings.Fields(str)
			if len(nat) < 2 {
				S.dec.Close()
				return nil, nil, Error{fmt.Sprintf("Can't read atom number from '%s'", str), S.filename, []string{"newReader"}, true}
			}
			S.natoms, err = strconv.Atoi(nat[1])
			if err != nil || S.natoms < 0 {
				S.dec.Close()
				return nil, nil, Error{fmt.Sprintf("Can't read atom number from '%s'", nat[1]), S.filename, []string{"newReader"}, true}
			}
			break
		}
		kv := strings.SplitN(str, "=", 2)
		if len(kv) != 2 {
			S.dec.Close()
			return nil, nil, Error{WrongFormat + ": malformed header line " + str, S.filename, []string{"newReader"}, true}
		}
		m[kv[0]] = kv[1]
	}
	if p, ok := m["prec"]; ok {
		prec, err := strconv.Atoi(p)
		if err != nil || prec <= 0 {
			S.logger.Warn("Invalid precision in stf trajectory, will assume the default", zap.String("file", S.filename), zap.String("prec", p))
		} else {
			S.prec = prec
		}
	}
	S.readable = true
	return S, m, nil
}

//Readable returns true if the handle is readable (if it is possible to call Next on it)
func (S *StfR) Readable() bool {
	return S.readable
}

func coordsDecode(str string, temp *[3]float64, prec int) error {
	p := math.Pow(10.0, float64(prec))
	s := strings.Fields(str)
	if len(s) < 3 {
		return fmt.Errorf("Ill formated coordinates line in stf: Too few fields: %s", str)
	}
	if len(s) > 3 {
		return fmt.Errorf("Ill formated coordinates line in stf: Too many fields: %s", str)
	}
	for i, v := range s {
		f, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("Can't parse coordinate %d (%s). Error: %s", i, v, err.Error())
		}
		temp[i] = float64(f) / p
	}
	return nil
}

//Next puts in the given matrix (c) the coordinates for the next frame of the trajectory
//and, if given, and the information is present, puts the box vector information in box.
//If c is nil, the frame is read and checked, but discarded. If the trajectory has no more
//frames, the returned error implements chem.LastFrameError, and is not an actual error.
//If the frame has no box information, box is set to zeros.
func (S *StfR) Next(c *v3.Matrix, box ...[]float64) error {
	if !S.readable {
		return Error{TrajUnIniRead, S.filename, []string{"Next"}, true}
	}
	var temp [3]float64
	for i := 0; i < S.natoms; i++ {
		b, err := S.h.ReadString('\n')
		if err != nil {
			// EOF should only happen when reading the first atom
			if err == io.EOF && i == 0 && b == "" {
				S.Close()
				return newlastFrameError(S.filename, "Next")
			}
			return Error{ReadError + ": " + err.Error(), S.filename, []string{"Next"}, true}
		}
		if err := coordsDecode(strings.TrimSuffix(b, "\n"), &temp, S.prec); err != nil {
			return Error{err.Error(), S.filename, []string{"Next"}, true}
		}
		if c == nil {
			continue
		}
		for j, v := range temp {
			c.Set(i, j, v)
		}
	}
	s, err := S.h.ReadString('\n')
	if err != nil && !(err == io.EOF && s != "") {
		if err == io.EOF && S.natoms == 0 {
			S.Close()
			return newlastFrameError(S.filename, "Next")
		}
		return Error{"Can't read the frame termination mark: " + err.Error(), S.filename, []string{"Next"}, true}
	}
	if s[0] != '*' {
		return Error{"Wrong number of atoms in frame", S.filename, []string{"Next"}, true}
	}
	if len(box) == 0 || len(box[0]) < 9 {
		return nil
	}
	for i := range box[0] {
		box[0][i] = 0
	}
	fields := strings.Fields(s)
	if len(fields) == 1 {
		return nil
	}
	if len(fields) < 10 { // The "*" and the 9 numbers
		S.logger.Warn("Frame without (correct) box information", zap.String("file", S.filename), zap.Strings("fields", fields))
		return nil
	}
	for j, v := range fields[1:10] {
		f, errbox := strconv.ParseFloat(v, 64)
		if errbox != nil {
			//we set the whole thing to zero and log, no error returned.
			S.logger.Warn("Failed to read box in a frame", zap.String("file", S.filename), zap.Error(errbox))
			for i := range box[0] {
				box[0][i] = 0
			}
			return nil
		}
		box[0][j] = f
	}
	return nil
}

//Close closes the object, and marks it as unreadable
func (S *StfR) Close() {
	if !S.readable {
		return
	}
	S.dec.Close()
	if S.f != nil {
		S.f.Close()
	}
	S.readable = false
}

//Len returns the number of atoms in each frame of the trajectory.
func (S *StfR) Len() int {
	return S.natoms
}

//Errors

//errDecorate decorates the error with the caller's name before returning it.
func errDecorate(err error, caller string) error {
	switch e := err.(type) {
	case Error:
		e.deco = append(e.deco, caller)
		return e
	case *lastFrameError:
		e.deco = append(e.deco, caller)
		return e
	}
	return fmt.Errorf("%s: %w", caller, err)
}

//Error is the general structure for stf trajectory errors. It fullfills chem.Error
type Error struct {
	message  string
	filename string //the input file that has problems, or empty string if none.
	deco     []string
	critical bool
}

func (err Error) Error() string {
	if err.filename == "" {
		return "stf error: " + err.message
	}
	return fmt.Sprintf("stf file %s error: %s", err.filename, err.message)
}

//Decorate Adds new information to the error
func (E Error) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

//FileName returns the file to which the failing trajectory was associated
func (err Error) FileName() string { return err.filename }

//Format returns the format of the file (always "stf") associated to the error
func (err Error) Format() string { return "stf" }

//Critical returns true if the error is critical, false otherwise
func (err Error) Critical() bool { return err.critical }

const (
	TrajUnIniRead  = "Traj object uninitialized to read"
	TrajUnIniWrite = "Traj object uninitialized to write"
	ReadError      = "Error reading frame"
	UnableToOpen   = "Unable to open file"
	NilCoordinates = "Given nil coordinates"
	WrongFormat    = "Wrong format in the STF file or frame"
)

//lastFrameError implements chem.LastFrameError
type lastFrameError struct {
	deco     []string
	fileName string
}

//NormalLastFrameTermination does nothing
func (E *lastFrameError) NormalLastFrameTermination() {}

func (E *lastFrameError) FileName() string { return E.fileName }

func (E *lastFrameError) Error() string { return "EOF" }

func (E *lastFrameError) Critical() bool { return false }

func (E *lastFrameError) Format() string { return "stf" }

func (E *lastFrameError) Decorate(deco string) []string {
	if deco != "" {
		E.deco = append(E.deco, deco)
	}
	return E.deco
}

func newlastFrameError(filename string, caller string) *lastFrameError {
	e := new(lastFrameError)
	e.fileName = filename
	e.deco = []string{caller}
	return e
}
