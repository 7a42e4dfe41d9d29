package pipeloop

// GuessStartShape infers which shape the start tile at start stands for by
// checking which in-bounds neighbors open toward it. Combinations are tried
// in a fixed order and the first match wins: right+down (F), left+down (7),
// left+up (J), right+up (L), up+down (|). With no match the start is taken
// to be a horizontal pipe.
func GuessStartShape(g *Grid, start Position) Shape {
	right := opensToward(g, start, East)
	down := opensToward(g, start, South)
	left := opensToward(g, start, West)
	up := opensToward(g, start, North)

	switch {
	case right && down:
		return NorthEast
	case left && down:
		return NorthWest
	case left && up:
		return SouthWest
	case right && up:
		return SouthEast
	case up && down:
		return NorthSouth
	default:
		return EastWest
	}
}

// InferStartShape locates the start tile of g and guesses its shape.
func InferStartShape(g *Grid) (Position, Shape, error) {
	start, err := g.FindStart()
	if err != nil {
		return Position{}, NoConnection, err
	}
	return start, GuessStartShape(g, start), nil
}

// opensToward reports whether the neighbor of p in direction d has an
// opening facing back at p.
func opensToward(g *Grid, p Position, d Direction) bool {
	n := p.Step(d)
	if !g.InBounds(n) {
		return false
	}
	return ShapeForGlyph(g.At(n)).Connects(d.Opposite())
}
