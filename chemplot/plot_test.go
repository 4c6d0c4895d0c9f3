package chemplot

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rmera/nearmol/neighbors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShellProfile(Te *testing.T) {
	a := []neighbors.Shell{{Rank: 1, Mean: 2.5, StdDev: 0.2, Frames: 10}, {Rank: 2, Mean: 3.1, StdDev: 0.4, Frames: 10}}
	b := []neighbors.Shell{{Rank: 1, Mean: 2.0, Frames: 1}}
	name := filepath.Join(Te.TempDir(), "shells.png")
	require.NoError(Te, ShellProfile([][]neighbors.Shell{a, b, nil}, []string{"water", "ion", "empty"}, "Test shells", name))
	st, err := os.Stat(name)
	require.NoError(Te, err)
	assert.NotZero(Te, st.Size())
	_, err = ShellPlot([][]neighbors.Shell{a}, []string{"a", "b"}, "bad")
	assert.Error(Te, err)
}

func TestColors(Te *testing.T) {
	r, g, b := iHVS2RGB(0, 1, 1)
	assert.Equal(Te, [3]uint8{255, 0, 0}, [3]uint8{r, g, b})
	r, g, b = iHVS2RGB(120, 1, 1)
	assert.Equal(Te, [3]uint8{0, 255, 0}, [3]uint8{r, g, b})
	r, g, b = iHVS2RGB(0, 1, 0)
	assert.Equal(Te, [3]uint8{255, 255, 255}, [3]uint8{r, g, b})
	r1, g1, b1 := colors(0, 3)
	r2, g2, b2 := colors(1, 3)
	assert.NotEqual(Te, [3]uint8{r1, g1, b1}, [3]uint8{r2, g2, b2})
}
