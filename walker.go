package pipeloop

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Loop is the closed path of pipe tiles through the start tile.
type Loop struct {
	Start Position
	// Heading is the direction of the first step away from Start.
	Heading Direction
	// Tiles lists the loop in walk order; Tiles[0] is Start.
	Tiles []Position

	members map[Position]struct{}
}

func newLoop(start Position, heading Direction, tiles []Position) *Loop {
	l := &Loop{
		Start:   start,
		Heading: heading,
		Tiles:   tiles,
		members: make(map[Position]struct{}, len(tiles)),
	}
	for _, p := range tiles {
		l.members[p] = struct{}{}
	}
	return l
}

// Contains reports whether p is a loop tile.
func (l *Loop) Contains(p Position) bool {
	_, ok := l.members[p]
	return ok
}

// Len returns the number of tiles in the loop, start included.
func (l *Loop) Len() int { return len(l.Tiles) }

// Farthest returns the step distance from the start to the farthest loop
// tile, which is half the loop length truncated.
func (l *Loop) Farthest() int { return len(l.Tiles) / 2 }

// sameTiles reports whether both loops cover the same positions.
func (l *Loop) sameTiles(o *Loop) bool {
	if len(l.members) != len(o.members) {
		return false
	}
	for p := range l.members {
		if _, ok := o.members[p]; !ok {
			return false
		}
	}
	return true
}

// attempt is the outcome of walking from the start in one direction.
type attempt struct {
	heading Direction
	loop    *Loop
	err     error
}

// length is the walk length credited to the attempt; failed walks count 0.
func (a attempt) length() int {
	if a.loop == nil {
		return 0
	}
	return a.loop.Len()
}

type walker struct {
	log      *zap.Logger
	parallel bool
}

// FindLoop walks from the start tile of g in each direction and returns the
// longest loop that closes back on the start.
func FindLoop(g *Grid) (*Loop, error) {
	w := &walker{log: zap.NewNop()}
	return w.findLoop(context.Background(), g)
}

// CycleLength returns the distance from the start to the farthest point of
// the loop.
func CycleLength(g *Grid) (int, error) {
	loop, err := FindLoop(g)
	if err != nil {
		return 0, err
	}
	return loop.Farthest(), nil
}

func (w *walker) findLoop(ctx context.Context, g *Grid) (*Loop, error) {
	start, err := g.FindStart()
	if err != nil {
		return nil, err
	}
	attempts, err := w.walkAll(ctx, g, start)
	if err != nil {
		return nil, err
	}

	var best *Loop
	for _, a := range attempts {
		if a.err != nil {
			w.log.Debug("walk failed",
				zap.Stringer("heading", a.heading),
				zap.Error(a.err))
			continue
		}
		w.log.Debug("walk closed",
			zap.Stringer("heading", a.heading),
			zap.Int("tiles", a.length()))
		switch {
		case best == nil || a.length() > best.Len():
			best = a.loop
		case !best.sameTiles(a.loop):
			w.log.Warn("walks closed different loops",
				zap.Stringer("kept", best.Heading),
				zap.Stringer("dropped", a.heading))
		}
	}
	if best == nil {
		return nil, fmt.Errorf("%w at %v", ErrInvalidGrid, start)
	}
	return best, nil
}

func (w *walker) attempt(g *Grid, start Position, heading Direction) attempt {
	loop, err := walk(g, start, heading)
	return attempt{heading: heading, loop: loop, err: err}
}

// walk follows the pipes from start, first stepping in direction heading,
// until the path returns to start or breaks.
func walk(g *Grid, start Position, heading Direction) (*Loop, error) {
	visited := map[Position]bool{start: true}
	prev := make(map[Position]Position)

	mv := Move{Next: start.Step(heading), Heading: heading}
	prev[mv.Next] = start
	for {
		cur := mv.Next
		if cur == start {
			return newLoop(start, heading, trace(prev, start)), nil
		}
		if !g.InBounds(cur) {
			return nil, fmt.Errorf("%w: %v is outside the grid", ErrUnsupportedMove, cur)
		}
		if visited[cur] {
			return nil, fmt.Errorf("%w: %v visited twice", ErrUnsupportedMove, cur)
		}
		visited[cur] = true

		glyph := g.At(cur)
		next, ok := ShapeForGlyph(glyph).Move(cur, mv.Heading)
		if !ok {
			return nil, fmt.Errorf("%w: %q at %v does not accept heading %s",
				ErrUnsupportedMove, glyph, cur, mv.Heading)
		}
		prev[next.Next] = cur
		mv = next
	}
}

// trace follows predecessors back from start around the loop and returns
// the tiles in walk order beginning with start.
func trace(prev map[Position]Position, start Position) []Position {
	back := []Position{start}
	for cur := prev[start]; cur != start; cur = prev[cur] {
		back = append(back, cur)
	}
	tiles := make([]Position, len(back))
	tiles[0] = start
	for i := 1; i < len(back); i++ {
		tiles[i] = back[len(back)-i]
	}
	return tiles
}
