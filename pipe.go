package pipeloop

import "fmt"

// Position is a tile coordinate. Row grows downward, Col grows rightward.
type Position struct {
	Row int
	Col int
}

// Step returns the position one tile away in direction d.
func (p Position) Step(d Direction) Position {
	switch d {
	case North:
		return Position{p.Row - 1, p.Col}
	case South:
		return Position{p.Row + 1, p.Col}
	case East:
		return Position{p.Row, p.Col + 1}
	case West:
		return Position{p.Row, p.Col - 1}
	}
	return p
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

// Direction is a compass heading. There are no diagonals.
type Direction uint8

const (
	North Direction = iota
	South
	East
	West
)

// Directions lists the headings in the order the walker tries them from
// the start tile.
var Directions = [4]Direction{North, South, West, East}

func (d Direction) String() string {
	switch d {
	case North:
		return "north"
	case South:
		return "south"
	case East:
		return "east"
	case West:
		return "west"
	}
	return fmt.Sprintf("direction(%d)", uint8(d))
}

// parseDirection is the inverse of Direction.String. Unknown names map to
// North.
func parseDirection(s string) Direction {
	for _, d := range Directions {
		if d.String() == s {
			return d
		}
	}
	return North
}

// Opposite returns the reverse heading.
func (d Direction) Opposite() Direction {
	switch d {
	case North:
		return South
	case South:
		return North
	case East:
		return West
	default:
		return East
	}
}

// Move is the outcome of passing through a tile: the next tile to enter and
// the heading the traveler leaves with.
type Move struct {
	Next    Position
	Heading Direction
}

// Shape is a tile type. Every shape except NoConnection joins exactly two
// of the four sides of its tile.
type Shape uint8

const (
	NoConnection Shape = iota
	NorthSouth         // |
	EastWest           // -
	NorthEast          // F
	NorthWest          // 7
	SouthEast          // L
	SouthWest          // J
)

// ShapeForGlyph maps a grid glyph to its shape. Ground, the start marker and
// anything unrecognized map to NoConnection.
func ShapeForGlyph(c byte) Shape {
	switch c {
	case '|':
		return NorthSouth
	case '-':
		return EastWest
	case 'F':
		return NorthEast
	case '7':
		return NorthWest
	case 'L':
		return SouthEast
	case 'J':
		return SouthWest
	default:
		return NoConnection
	}
}

// Glyph returns the grid character for s. NoConnection renders as ground.
func (s Shape) Glyph() byte {
	switch s {
	case NorthSouth:
		return '|'
	case EastWest:
		return '-'
	case NorthEast:
		return 'F'
	case NorthWest:
		return '7'
	case SouthEast:
		return 'L'
	case SouthWest:
		return 'J'
	default:
		return '.'
	}
}

func (s Shape) String() string {
	switch s {
	case NorthSouth:
		return "NorthSouth"
	case EastWest:
		return "EastWest"
	case NorthEast:
		return "NorthEast"
	case NorthWest:
		return "NorthWest"
	case SouthEast:
		return "SouthEast"
	case SouthWest:
		return "SouthWest"
	default:
		return "NoConnection"
	}
}

// Connects reports whether the tile has an opening on side d.
func (s Shape) Connects(d Direction) bool {
	switch s {
	case NorthSouth:
		return d == North || d == South
	case EastWest:
		return d == East || d == West
	case NorthEast:
		return d == East || d == South
	case NorthWest:
		return d == West || d == South
	case SouthEast:
		return d == North || d == East
	case SouthWest:
		return d == North || d == West
	}
	return false
}

// Move passes a traveler heading in direction heading through a tile of
// shape s located at from. It returns false when the tile has no opening
// facing the traveler.
func (s Shape) Move(from Position, heading Direction) (Move, bool) {
	var out Direction
	switch s {
	case NorthSouth:
		switch heading {
		case North:
			out = North
		case South:
			out = South
		default:
			return Move{}, false
		}
	case EastWest:
		switch heading {
		case East:
			out = East
		case West:
			out = West
		default:
			return Move{}, false
		}
	case NorthEast:
		switch heading {
		case North:
			out = East
		case West:
			out = South
		default:
			return Move{}, false
		}
	case NorthWest:
		switch heading {
		case North:
			out = West
		case East:
			out = South
		default:
			return Move{}, false
		}
	case SouthEast:
		switch heading {
		case South:
			out = East
		case West:
			out = North
		default:
			return Move{}, false
		}
	case SouthWest:
		switch heading {
		case South:
			out = West
		case East:
			out = North
		default:
			return Move{}, false
		}
	default:
		return Move{}, false
	}
	return Move{Next: from.Step(out), Heading: out}, true
}
