package pipeloop

// EnclosedGlyph marks enclosed ground in MarkEnclosed output.
const EnclosedGlyph = '#'

// PathOnly returns a copy of g in which every tile off the loop is ground
// and the start tile is replaced by startShape.
func PathOnly(g *Grid, loop *Loop, startShape Shape) *Grid {
	return g.with(func(p Position, c byte) byte {
		switch {
		case p == loop.Start:
			return startShape.Glyph()
		case loop.Contains(p):
			return c
		default:
			return GroundGlyph
		}
	})
}

// CountEnclosed counts the ground tiles of a path-only grid that lie inside
// the loop. Each row is scanned left to right, flipping an inside flag at
// every vertical crossing of the loop: a '|', or a corner pair that enters
// and leaves on opposite sides (L...7 or F...J). L...J and F...7 run along
// the ray and do not flip it.
func CountEnclosed(path *Grid) int {
	total := 0
	for _, row := range path.rows {
		total += scanRow(row, nil)
	}
	return total
}

// MarkEnclosed returns a copy of the path-only grid with enclosed ground
// rendered as EnclosedGlyph.
func MarkEnclosed(path *Grid) *Grid {
	out := path.with(func(_ Position, c byte) byte { return c })
	for _, row := range out.rows {
		scanRow(row, func(col int) { row[col] = EnclosedGlyph })
	}
	return out
}

func scanRow(row []byte, mark func(col int)) int {
	var (
		count   int
		inside  bool
		pending byte
	)
	for col, c := range row {
		switch c {
		case GroundGlyph:
			if inside {
				count++
				if mark != nil {
					mark(col)
				}
			}
		case 'F', 'L':
			pending = c
		case '|':
			inside = !inside
		case '7':
			if pending == 'L' {
				inside = !inside
			}
		case 'J':
			if pending == 'F' {
				inside = !inside
			}
		}
	}
	return count
}
