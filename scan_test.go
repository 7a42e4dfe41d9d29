package pipeloop

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// pathGrid returns the path-only grid of a fixture.
func pathGrid(t *testing.T, name string) *Grid {
	t.Helper()
	g := mustLoad(t, name)
	loop, err := FindLoop(g)
	require.NoError(t, err)
	return PathOnly(g, loop, GuessStartShape(g, loop.Start))
}

func TestCountEnclosed_Fixtures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		file string
		want int
	}{
		{"simple.txt", 1},
		{"square_noisy.txt", 1},
		{"edge.txt", 1},
		{"complex.txt", 1},
		{"enclosed_small.txt", 4},
		{"squeezed.txt", 4},
		{"larger.txt", 8},
		{"sample.txt", 10},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, CountEnclosed(pathGrid(t, tt.file)))
		})
	}
}

func TestCountEnclosed_RowCrossings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		row  string
		want int
	}{
		{"|..|", 2},
		{"L--7..|", 2},
		{"F--J..|", 2},
		{"L--J..|", 0},
		{"F--7..|", 0},
		{"..|.|..|.", 2},
		{"......", 0},
	}
	for _, tt := range tests {
		g := mustGrid(t, tt.row)
		assert.Equal(t, tt.want, CountEnclosed(g), tt.row)
	}
}

func TestCountEnclosed_Deterministic(t *testing.T) {
	t.Parallel()
	path := pathGrid(t, "sample.txt")
	before := path.String()
	first := CountEnclosed(path)
	assert.Equal(t, first, CountEnclosed(path))
	assert.Equal(t, before, path.String())
}

func TestPathOnly(t *testing.T) {
	t.Parallel()
	path := pathGrid(t, "square_noisy.txt")
	assert.Equal(t, []string{
		".....",
		".F-7.",
		".|.|.",
		".L-J.",
		".....",
	}, path.Rows())
}

func TestPathOnly_LeavesSourceUntouched(t *testing.T) {
	t.Parallel()
	g := mustLoad(t, "square_noisy.txt")
	before := g.String()
	loop, err := FindLoop(g)
	require.NoError(t, err)
	PathOnly(g, loop, NorthEast)
	assert.Equal(t, before, g.String())
}

func TestMarkEnclosed(t *testing.T) {
	t.Parallel()
	marked := MarkEnclosed(pathGrid(t, "simple.txt"))
	assert.Equal(t, []string{
		".....",
		".F-7.",
		".|#|.",
		".L-J.",
		".....",
	}, marked.Rows())
}

func TestMarkEnclosed_MatchesCount(t *testing.T) {
	t.Parallel()
	for _, file := range []string{"enclosed_small.txt", "squeezed.txt", "larger.txt", "sample.txt"} {
		path := pathGrid(t, file)
		marked := MarkEnclosed(path)
		assert.Equal(t, CountEnclosed(path), strings.Count(marked.String(), string(rune(EnclosedGlyph))), file)
		assert.NotContains(t, path.String(), string(rune(EnclosedGlyph)), file)
	}
}
