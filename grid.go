package pipeloop

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jward/pipeloop/internal/store"
)

// StartGlyph marks the tile the loop starts from.
const StartGlyph = 'S'

// GroundGlyph is open terrain.
const GroundGlyph = '.'

// Grid is an immutable rectangular matrix of glyphs.
type Grid struct {
	rows [][]byte
}

// NewGrid builds a Grid from rows of glyphs. Rows must be non-empty and of
// equal length, and at most one start tile may appear.
func NewGrid(rows []string) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, fmt.Errorf("%w: empty grid", ErrMalformedInput)
	}
	width := len(rows[0])
	starts := 0
	g := &Grid{rows: make([][]byte, len(rows))}
	for i, row := range rows {
		if len(row) != width {
			return nil, fmt.Errorf("%w: row %d has length %d, want %d", ErrMalformedInput, i, len(row), width)
		}
		starts += strings.Count(row, string(StartGlyph))
		g.rows[i] = []byte(row)
	}
	if starts > 1 {
		return nil, fmt.Errorf("%w: %d start tiles", ErrMalformedInput, starts)
	}
	return g, nil
}

// ReadGrid reads one grid row per line from r. Line terminators are
// stripped and trailing blank lines ignored.
func ReadGrid(r io.Reader) (*Grid, error) {
	var rows []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		rows = append(rows, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: read: %v", ErrMalformedInput, err)
	}
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	return NewGrid(rows)
}

// LoadGrid reads a grid from the file at path.
func LoadGrid(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	defer f.Close()
	g, err := ReadGrid(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return g, nil
}

// Height returns the number of rows.
func (g *Grid) Height() int { return len(g.rows) }

// Width returns the length of every row.
func (g *Grid) Width() int { return len(g.rows[0]) }

// InBounds reports whether p addresses a tile of g.
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Row < len(g.rows) && p.Col >= 0 && p.Col < len(g.rows[p.Row])
}

// At returns the glyph at p, or ground when p is outside the grid.
func (g *Grid) At(p Position) byte {
	if !g.InBounds(p) {
		return GroundGlyph
	}
	return g.rows[p.Row][p.Col]
}

// FindStart scans row-major for the start tile.
func (g *Grid) FindStart() (Position, error) {
	for r, row := range g.rows {
		if c := bytes.IndexByte(row, StartGlyph); c >= 0 {
			return Position{Row: r, Col: c}, nil
		}
	}
	return Position{}, ErrStartNotFound
}

// Rows returns a copy of the grid as strings.
func (g *Grid) Rows() []string {
	out := make([]string, len(g.rows))
	for i, row := range g.rows {
		out[i] = string(row)
	}
	return out
}

// Hash returns a hex SHA-256 digest of the grid contents.
func (g *Grid) Hash() string {
	return store.ComputeGridHash(g.rows)
}

func (g *Grid) String() string {
	var sb strings.Builder
	for _, row := range g.rows {
		sb.Write(row)
		sb.WriteByte('\n')
	}
	return sb.String()
}

// with returns a copy of g with fn applied to every tile.
func (g *Grid) with(fn func(p Position, c byte) byte) *Grid {
	out := &Grid{rows: make([][]byte, len(g.rows))}
	for r, row := range g.rows {
		out.rows[r] = make([]byte, len(row))
		for c, glyph := range row {
			out.rows[r][c] = fn(Position{r, c}, glyph)
		}
	}
	return out
}
