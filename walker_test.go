package pipeloop

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestCycleLength_Fixtures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		file  string
		tiles int
		want  int
	}{
		{"simple.txt", 8, 4},
		{"square_noisy.txt", 8, 4},
		{"edge.txt", 8, 4},
		{"complex.txt", 16, 8},
		{"enclosed_small.txt", 46, 23},
		{"squeezed.txt", 44, 22},
		{"larger.txt", 140, 70},
		{"sample.txt", 160, 80},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			t.Parallel()
			g := mustLoad(t, tt.file)

			got, err := CycleLength(g)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)

			loop, err := FindLoop(g)
			require.NoError(t, err)
			assert.Equal(t, tt.tiles, loop.Len())
		})
	}
}

func TestFindLoop_WalkOrder(t *testing.T) {
	t.Parallel()
	loop, err := FindLoop(mustLoad(t, "simple.txt"))
	require.NoError(t, err)

	want := []Position{
		{1, 1}, {2, 1}, {3, 1}, {3, 2}, {3, 3}, {2, 3}, {1, 3}, {1, 2},
	}
	if diff := cmp.Diff(want, loop.Tiles); diff != "" {
		t.Errorf("loop tiles mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, Position{1, 1}, loop.Start)
	assert.Equal(t, South, loop.Heading)
	assert.True(t, loop.Contains(Position{3, 2}))
	assert.False(t, loop.Contains(Position{2, 2}))
}

func TestFindLoop_StartOnGridEdge(t *testing.T) {
	t.Parallel()
	loop, err := FindLoop(mustLoad(t, "edge.txt"))
	require.NoError(t, err)

	want := []Position{
		{0, 0}, {1, 0}, {2, 0}, {2, 1}, {2, 2}, {1, 2}, {0, 2}, {0, 1},
	}
	if diff := cmp.Diff(want, loop.Tiles); diff != "" {
		t.Errorf("loop tiles mismatch (-want +got):\n%s", diff)
	}
}

func TestFindLoop_NoClosedLoop(t *testing.T) {
	t.Parallel()
	_, err := FindLoop(mustLoad(t, "broken.txt"))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalidGrid)
}

func TestFindLoop_NoStart(t *testing.T) {
	t.Parallel()
	_, err := CycleLength(mustLoad(t, "nostart.txt"))
	assert.ErrorIs(t, err, ErrStartNotFound)
}

func TestFindLoop_IsolatedStart(t *testing.T) {
	t.Parallel()
	g := mustGrid(t, "...", ".S.", "...")
	_, err := FindLoop(g)
	assert.ErrorIs(t, err, ErrInvalidGrid)
}

// Every tile is at most Farthest steps from the start going either way
// around the loop, and some tile is exactly that far.
func TestLoop_FarthestIsMaxDistance(t *testing.T) {
	t.Parallel()
	loop, err := FindLoop(mustLoad(t, "sample.txt"))
	require.NoError(t, err)

	maxDist := 0
	for i := range loop.Tiles {
		d := min(i, loop.Len()-i)
		assert.LessOrEqual(t, d, loop.Farthest())
		maxDist = max(maxDist, d)
	}
	assert.Equal(t, loop.Farthest(), maxDist)
}

// A closed loop can be walked in either orientation from the start; both
// walks see the same tiles.
func TestWalk_BothOrientationsAgree(t *testing.T) {
	t.Parallel()

	for _, file := range []string{"simple.txt", "complex.txt", "sample.txt"} {
		g := mustLoad(t, file)
		start, err := g.FindStart()
		require.NoError(t, err)

		var closed []*Loop
		for _, d := range Directions {
			loop, err := walk(g, start, d)
			if err != nil {
				assert.ErrorIs(t, err, ErrUnsupportedMove, "%s %s", file, d)
				continue
			}
			closed = append(closed, loop)
		}
		require.Len(t, closed, 2, file)
		assert.Equal(t, closed[0].Len(), closed[1].Len(), file)
		assert.True(t, closed[0].sameTiles(closed[1]), file)
		assert.NotEqual(t, closed[0].Heading, closed[1].Heading, file)
	}
}

func TestWalk_FailureReasons(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rows    []string
		heading Direction
	}{
		{"off grid", []string{"S-7", "|.|", "L-J"}, North},
		{"rejecting tile", []string{"S|7", "|.|", "L-J"}, East},
		{"ground", []string{"S.", ".."}, South},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := mustGrid(t, tt.rows...)
			start, err := g.FindStart()
			require.NoError(t, err)
			_, err = walk(g, start, tt.heading)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUnsupportedMove), "got %v", err)
		})
	}
}

func TestWalker_SerialAndParallelAgree(t *testing.T) {
	t.Parallel()

	for _, file := range []string{"complex.txt", "larger.txt", "sample.txt"} {
		g := mustLoad(t, file)
		serial, err := (&walker{log: zap.NewNop()}).findLoop(context.Background(), g)
		require.NoError(t, err)
		parallel, err := (&walker{log: zap.NewNop(), parallel: true}).findLoop(context.Background(), g)
		require.NoError(t, err)

		assert.Equal(t, serial.Heading, parallel.Heading, file)
		if diff := cmp.Diff(serial.Tiles, parallel.Tiles); diff != "" {
			t.Errorf("%s: tiles differ (-serial +parallel):\n%s", file, diff)
		}
	}
}

func TestWalker_CanceledContext(t *testing.T) {
	t.Parallel()
	g := mustLoad(t, "sample.txt")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, parallel := range []bool{false, true} {
		w := &walker{log: zap.NewNop(), parallel: parallel}
		_, err := w.findLoop(ctx, g)
		assert.ErrorIs(t, err, context.Canceled, "parallel=%v", parallel)
	}
}
