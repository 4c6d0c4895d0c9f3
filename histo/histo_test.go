package histo

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewData(Te *testing.T) {
	raw := []float64{1, 6, 3, 2, 4, 5, 7, 6, 3.5, 3, 5, 1, 1, 0, 0, 5, 8, 1, 2, 3, 44, 3, 7, 3, 1, 3, 5, 32, 1}
	orig := append([]float64(nil), raw...)
	D := NewData([]float64{0, 1, 2, 3, 4, 8}, raw, 3)
	assert.Equal(Te, orig, raw, "raw data was modified")
	assert.Equal(Te, 3, D.ID())
	//8, 44 and 32 are out of range
	assert.Equal(Te, 26, D.Total())
	assert.Equal(Te, []float64{2, 6, 2, 7, 9}, D.View())
	D.Normalize()
	assert.True(Te, D.Normalized())
	assert.InDeltaSlice(Te, []float64{2.0 / 26, 6.0 / 26, 2.0 / 26, 7.0 / 26, 9.0 / 26}, D.View(), 1e-12)
	D.Normalize() //no-op
	assert.InDelta(Te, 9.0/26, D.View()[4], 1e-12)

	E := NewData([]float64{0, 1}, nil)
	assert.Equal(Te, -1, E.ID())
	assert.Equal(Te, []float64{0}, E.View())
	E.Normalize()
	assert.False(Te, E.Normalized())
	assert.Panics(Te, func() { NewData([]float64{1}, nil) })
}

func TestDividers(Te *testing.T) {
	d, err := Dividers(0, 4, 4)
	require.NoError(Te, err)
	assert.Equal(Te, []float64{0, 1, 2, 3, 4}, d)
	require.NoError(Te, CheckDividers(d))
	for _, bad := range [][3]float64{{0, 4, 0}, {4, 4, 2}, {5, 1, 2}} {
		_, err := Dividers(bad[0], bad[1], int(bad[2]))
		assert.Error(Te, err, "%v", bad)
	}
	assert.Error(Te, CheckDividers([]float64{1}))
	assert.Error(Te, CheckDividers([]float64{0, 2, 2, 3}))
	assert.Error(Te, CheckDividers([]float64{0, 3, 1}))
}

func TestMerge(Te *testing.T) {
	d, err := Dividers(0, 4, 4)
	require.NoError(Te, err)
	A := NewData(d, []float64{0, 0.5, 1, 3.99, 4, -1}, 1)
	B := NewData(d, []float64{1.5, 2.5}, 2)
	assert.Equal(Te, []float64{2, 1, 0, 1}, A.View())
	assert.Equal(Te, 4, A.Total())
	M, err := Merge(0, A, B)
	require.NoError(Te, err)
	assert.Equal(Te, 0, M.ID())
	assert.Equal(Te, []float64{2, 2, 1, 1}, M.View())
	assert.Equal(Te, 6, M.Total())
	assert.Equal(Te, []float64{2, 1, 0, 1}, A.View(), "inputs are not modified")

	_, err = Merge(0, A, NewData([]float64{0, 1}, nil))
	assert.Error(Te, err)
	B.Normalize()
	_, err = Merge(0, A, B)
	assert.Error(Te, err)
	_, err = Merge(0)
	assert.Error(Te, err)
}

func TestMarshal(Te *testing.T) {
	D := NewData([]float64{0, 1, 2}, []float64{0.5, 1.5, 1.7}, 1)
	j, err := json.Marshal(D)
	require.NoError(Te, err)
	var got struct {
		ID         int       `json:"id"`
		Normalized bool      `json:"normalized"`
		Total      int       `json:"total"`
		Dividers   []float64 `json:"dividers"`
		Bins       []float64 `json:"bins"`
	}
	require.NoError(Te, json.Unmarshal(j, &got))
	assert.Equal(Te, 1, got.ID)
	assert.False(Te, got.Normalized)
	assert.Equal(Te, 3, got.Total)
	assert.Equal(Te, []float64{0, 1, 2}, got.Dividers)
	assert.Equal(Te, []float64{1, 2}, got.Bins)
}
