package pipeloop

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuessStartShape(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rows []string
		want Shape
	}{
		{"right and down", []string{"S-7", "|.|", "L-J"}, NorthEast},
		{"left and down", []string{"F-S", "|.|", "L-J"}, NorthWest},
		{"left and up", []string{"F-7", "|.|", "L-S"}, SouthWest},
		{"right and up", []string{"F-7", "|.|", "S-J"}, SouthEast},
		{"up and down", []string{".|.", ".S.", ".|."}, NorthSouth},
		{"left and right", []string{"...", "-S-", "..."}, EastWest},
		{"nothing connects", []string{"...", ".S.", "..."}, EastWest},
		{"all four prefer F", []string{".|.", "-S-", ".|."}, NorthEast},
		{"left, up and down prefer 7", []string{".|.", "-S.", ".|."}, NorthWest},
		{"neighbors facing away", []string{".-.", "|S|", ".-."}, EastWest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			g := mustGrid(t, tt.rows...)
			start, err := g.FindStart()
			require.NoError(t, err)
			assert.Equal(t, tt.want, GuessStartShape(g, start))
		})
	}
}

func TestInferStartShape_Fixtures(t *testing.T) {
	t.Parallel()

	tests := []struct {
		file  string
		start Position
		want  Shape
	}{
		{"simple.txt", Position{1, 1}, NorthEast},
		{"square_noisy.txt", Position{1, 1}, NorthEast},
		{"edge.txt", Position{0, 0}, NorthEast},
		{"complex.txt", Position{2, 0}, NorthEast},
		{"sample.txt", Position{0, 4}, NorthWest},
	}
	for _, tt := range tests {
		t.Run(tt.file, func(t *testing.T) {
			t.Parallel()
			g := mustLoad(t, tt.file)
			start, shape, err := InferStartShape(g)
			require.NoError(t, err)
			assert.Equal(t, tt.start, start)
			assert.Equal(t, tt.want, shape)
		})
	}
}

func TestInferStartShape_NoStart(t *testing.T) {
	t.Parallel()
	_, shape, err := InferStartShape(mustLoad(t, "nostart.txt"))
	assert.ErrorIs(t, err, ErrStartNotFound)
	assert.Equal(t, NoConnection, shape)
}

func TestGuessStartShape_DoesNotModifyGrid(t *testing.T) {
	t.Parallel()
	g := mustLoad(t, "sample.txt")
	before := g.String()
	start, _, err := InferStartShape(g)
	require.NoError(t, err)
	GuessStartShape(g, start)
	assert.Equal(t, before, g.String())
}

// Substituting the guess for the start tile and guessing again gives the
// same shape, and on well-formed grids the shape opens exactly toward the
// neighbors that open back.
func TestGuessStartShape_Idempotent(t *testing.T) {
	t.Parallel()
	for _, file := range []string{"simple.txt", "complex.txt", "larger.txt", "sample.txt", "edge.txt"} {
		g := mustLoad(t, file)
		start, shape, err := InferStartShape(g)
		require.NoError(t, err)

		rows := g.Rows()
		row := []byte(rows[start.Row])
		row[start.Col] = shape.Glyph()
		rows[start.Row] = string(row)
		substituted := mustGrid(t, rows...)

		assert.Equal(t, shape, GuessStartShape(substituted, start), file)
		for _, d := range Directions {
			assert.Equal(t, opensToward(g, start, d), shape.Connects(d), "%s %s", file, d)
		}
	}
}
