package stf

import (
	"bytes"
	"path/filepath"
	"testing"

	chem "github.com/rmera/nearmol"
	v3 "github.com/rmera/nearmol/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSTFWriteRead(Te *testing.T) {
	name := filepath.Join(Te.TempDir(), "test.stf")
	w, err := NewWriter(name, 2, map[string]string{"comment": "two atoms"})
	require.NoError(Te, err)
	c, err := v3.NewMatrix([]float64{1.234, -2.5, 0, 10, 11.125, -0.004})
	require.NoError(Te, err)
	require.NoError(Te, w.WNext(c))
	box := []float64{10, 0, 0, 0, 20, 0, 0, 0, 30}
	require.NoError(Te, w.WNext(c, box))
	assert.Error(Te, w.WNext(v3.Zeros(3)))
	assert.Error(Te, w.WNext(nil))
	require.NoError(Te, w.Close())
	assert.Error(Te, w.WNext(c))

	r, m, err := New(name)
	require.NoError(Te, err)
	assert.Equal(Te, "two atoms", m["comment"])
	assert.Equal(Te, "2", m["prec"])
	assert.Equal(Te, 2, r.Len())
	got := v3.Zeros(2)
	rbox := make([]float64, 9)
	require.NoError(Te, r.Next(got, rbox))
	assert.InDeltaSlice(Te, []float64{1.23, -2.5, 0}, got.RawRowView(0), 1e-9)
	assert.InDeltaSlice(Te, []float64{10, 11.12, 0}, got.RawRowView(1), 1e-9)
	assert.Equal(Te, make([]float64, 9), rbox)
	require.NoError(Te, r.Next(nil, rbox))
	assert.Equal(Te, box, rbox)
	err = r.Next(got)
	_, ok := err.(chem.LastFrameError)
	assert.True(Te, ok, "expected the last frame, got %v", err)
	assert.False(Te, r.Readable())
}

func TestSTFHeader(Te *testing.T) {
	var buf bytes.Buffer
	_, err := NewStreamWriter(&buf, 1, map[string]string{"prec": "x"})
	assert.Error(Te, err)
	_, err = NewStreamWriter(&buf, 1, map[string]string{"a=b": "c"})
	assert.Error(Te, err)
	w, err := NewStreamWriter(&buf, 1, map[string]string{"prec": "3"})
	require.NoError(Te, err)
	c, _ := v3.NewMatrix([]float64{1.2341, 0, 0})
	require.NoError(Te, w.WNext(c))
	require.NoError(Te, w.Close())
	r, m, err := NewStreamReader(&buf)
	require.NoError(Te, err)
	assert.Equal(Te, "3", m["prec"])
	got := v3.Zeros(1)
	require.NoError(Te, r.Next(got))
	assert.InDelta(Te, 1.234, got.At(0, 0), 1e-9)
	_, _, err = New(filepath.Join(Te.TempDir(), "nothere.stf"))
	assert.Error(Te, err)
}

func universe(Te *testing.T) *chem.Universe {
	atoms := &chem.AtomTable{}
	for f := 0; f < 3; f++ {
		for i, s := range []string{"O", "H", "H", "Na"} {
			atoms.Rows = append(atoms.Rows, &chem.Atom{ID: 100 + len(atoms.Rows), Frame: 10 - f, Molecule: i / 3,
				Symbol: s, X: float64(f) + 0.25, Y: float64(i), Z: -1.5})
		}
	}
	mols := &chem.MoleculeTable{Rows: []*chem.Molecule{{ID: 0, Classification: "solvent"}, {ID: 1}}}
	frames := &chem.FrameTable{Rows: []*chem.Frame{{ID: 10}, {ID: 9, Periodic: true, RX: 15, RY: 15, RZ: 15}, {ID: 8}}}
	uni, err := chem.NewUniverse(atoms, mols, frames, nil)
	require.NoError(Te, err)
	return uni
}

func TestUniverse(Te *testing.T) {
	uni := universe(Te)
	var buf bytes.Buffer
	require.NoError(Te, WriteUniverse(&buf, uni, map[string]string{"source": "test"}))
	uni2, err := ReadUniverse(&buf)
	require.NoError(Te, err)
	require.Equal(Te, 3, uni2.Frames().Len())
	require.Equal(Te, 12, uni2.Atoms().Len())
	//frames are written in ID order: 8, 9, 10 become 0, 1, 2
	assert.False(Te, uni2.Frame(0).Periodic)
	assert.True(Te, uni2.Frame(1).Periodic)
	assert.Equal(Te, [3]float64{15, 15, 15}, uni2.Frame(1).Box())
	a := uni2.Atom(0)
	assert.Equal(Te, "O", a.Symbol)
	assert.InDelta(Te, 2.25, a.X, 1e-9)
	assert.InDelta(Te, -1.5, a.Z, 1e-9)
	assert.Equal(Te, 1, uni2.Atom(11).Molecule)
	assert.Equal(Te, []int{0, 1}, uni2.Molecules().IDs())
	assert.Equal(Te, "solvent", uni2.Molecule(0).Classification)
	assert.Equal(Te, 0, uni2.Pairs().Len())

	//a frame with different atoms can't be written
	uni.Atom(100).Symbol = "N"
	buf.Reset()
	assert.Error(Te, WriteUniverse(&buf, uni, nil))
	assert.Equal(Te, 0, buf.Len())
	//no topology
	buf.Reset()
	w, err := NewStreamWriter(&buf, 1, nil)
	require.NoError(Te, err)
	require.NoError(Te, w.Close())
	_, err = ReadUniverse(&buf)
	assert.Error(Te, err)
}
