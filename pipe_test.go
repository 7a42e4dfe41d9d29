package pipeloop

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShapeForGlyph(t *testing.T) {
	t.Parallel()

	tests := []struct {
		glyph byte
		want  Shape
	}{
		{'|', NorthSouth},
		{'-', EastWest},
		{'F', NorthEast},
		{'7', NorthWest},
		{'L', SouthEast},
		{'J', SouthWest},
		{'.', NoConnection},
		{'S', NoConnection},
		{'x', NoConnection},
		{' ', NoConnection},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ShapeForGlyph(tt.glyph), "glyph %q", tt.glyph)
	}
}

func TestShape_GlyphRoundTrip(t *testing.T) {
	t.Parallel()
	for _, s := range []Shape{NorthSouth, EastWest, NorthEast, NorthWest, SouthEast, SouthWest} {
		assert.Equal(t, s, ShapeForGlyph(s.Glyph()), s.String())
	}
	assert.Equal(t, byte('.'), NoConnection.Glyph())
}

func TestShape_MoveTable(t *testing.T) {
	t.Parallel()

	from := Position{Row: 5, Col: 5}
	type want struct {
		ok   bool
		next Position
		head Direction
	}
	none := want{}
	n := want{true, Position{4, 5}, North}
	s := want{true, Position{6, 5}, South}
	e := want{true, Position{5, 6}, East}
	w := want{true, Position{5, 4}, West}

	// Columns: heading north, south, east, west when entering the tile.
	table := map[Shape][4]want{
		NorthSouth:   {n, s, none, none},
		EastWest:     {none, none, e, w},
		NorthEast:    {e, none, none, s},
		NorthWest:    {w, none, s, none},
		SouthEast:    {none, e, none, n},
		SouthWest:    {none, w, n, none},
		NoConnection: {none, none, none, none},
	}
	headings := [4]Direction{North, South, East, West}

	for shape, row := range table {
		for i, heading := range headings {
			got, ok := shape.Move(from, heading)
			exp := row[i]
			assert.Equal(t, exp.ok, ok, "%s heading %s", shape, heading)
			if exp.ok {
				assert.Equal(t, Move{Next: exp.next, Heading: exp.head}, got, "%s heading %s", shape, heading)
			}
		}
	}
}

func TestShape_MoveAcceptsExactlyTwoHeadings(t *testing.T) {
	t.Parallel()
	for _, shape := range []Shape{NorthSouth, EastWest, NorthEast, NorthWest, SouthEast, SouthWest} {
		accepted := 0
		for _, d := range Directions {
			if _, ok := shape.Move(Position{}, d); ok {
				accepted++
			}
		}
		assert.Equal(t, 2, accepted, shape.String())
	}
}

// Entering through an opening must leave through the shape's other opening.
func TestShape_MoveAgreesWithConnects(t *testing.T) {
	t.Parallel()
	for _, shape := range []Shape{NorthSouth, EastWest, NorthEast, NorthWest, SouthEast, SouthWest} {
		for _, heading := range Directions {
			mv, ok := shape.Move(Position{}, heading)
			assert.Equal(t, shape.Connects(heading.Opposite()), ok, "%s heading %s", shape, heading)
			if ok {
				assert.True(t, shape.Connects(mv.Heading), "%s exits %s", shape, mv.Heading)
				assert.NotEqual(t, heading.Opposite(), mv.Heading, "%s reverses", shape)
			}
		}
	}
}

func TestDirection_Opposite(t *testing.T) {
	t.Parallel()
	assert.Equal(t, South, North.Opposite())
	assert.Equal(t, North, South.Opposite())
	assert.Equal(t, West, East.Opposite())
	assert.Equal(t, East, West.Opposite())
}

func TestParseDirection(t *testing.T) {
	t.Parallel()
	for _, d := range Directions {
		assert.Equal(t, d, parseDirection(d.String()))
	}
	assert.Equal(t, North, parseDirection("up"))
}

func TestPosition_Step(t *testing.T) {
	t.Parallel()
	p := Position{Row: 2, Col: 3}
	assert.Equal(t, Position{1, 3}, p.Step(North))
	assert.Equal(t, Position{3, 3}, p.Step(South))
	assert.Equal(t, Position{2, 4}, p.Step(East))
	assert.Equal(t, Position{2, 2}, p.Step(West))
	assert.Equal(t, "(2,3)", p.String())
}
