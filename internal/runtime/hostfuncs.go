package runtime

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/risor-io/risor/object"
	"go.uber.org/zap"
)

// Tile is one loop position handed to scripts.
type Tile struct {
	Row   int
	Col   int
	Glyph string
}

// Report is the analysis result as seen by report scripts. It holds only
// primitive data so this package does not depend on the analyzer.
type Report struct {
	Source     string
	Hash       string
	LoopLength int
	Enclosed   int
	StartRow   int
	StartCol   int
	StartGlyph string
	Heading    string
	Rows       []string
	PathRows   []string
	Loop       []Tile
	Cached     bool
}

// Globals converts a report into the script globals:
//
//	source, hash, loop_length, enclosed, cached   scalars
//	start                                         {row, col, glyph, heading}
//	rows, path_rows                               lists of strings
//	loop                                          list of {row, col, glyph}
//	glyph_at(row, col) → string or nil            reads path_rows
//	is_loop(row, col) → bool
func (rep *Report) Globals() map[string]any {
	loop := make([]object.Object, len(rep.Loop))
	members := make(map[[2]int]bool, len(rep.Loop))
	for i, t := range rep.Loop {
		loop[i] = object.NewMap(map[string]object.Object{
			"row":   object.NewInt(int64(t.Row)),
			"col":   object.NewInt(int64(t.Col)),
			"glyph": object.NewString(t.Glyph),
		})
		members[[2]int{t.Row, t.Col}] = true
	}

	return map[string]any{
		"source":      object.NewString(rep.Source),
		"hash":        object.NewString(rep.Hash),
		"loop_length": object.NewInt(int64(rep.LoopLength)),
		"enclosed":    object.NewInt(int64(rep.Enclosed)),
		"cached":      object.NewBool(rep.Cached),
		"start": object.NewMap(map[string]object.Object{
			"row":     object.NewInt(int64(rep.StartRow)),
			"col":     object.NewInt(int64(rep.StartCol)),
			"glyph":   object.NewString(rep.StartGlyph),
			"heading": object.NewString(rep.Heading),
		}),
		"rows":      stringList(rep.Rows),
		"path_rows": stringList(rep.PathRows),
		"loop":      object.NewList(loop),
		"glyph_at":  makeGlyphAtFn(rep.PathRows),
		"is_loop":   makeIsLoopFn(members),
	}
}

func stringList(ss []string) *object.List {
	items := make([]object.Object, len(ss))
	for i, s := range ss {
		items[i] = object.NewString(s)
	}
	return object.NewList(items)
}

// rowColArgs validates the (row, col) argument pair shared by grid lookups.
func rowColArgs(name string, args []object.Object) (int, int, object.Object) {
	if len(args) != 2 {
		return 0, 0, object.NewArgsError(name, 2, len(args))
	}
	row, ok := args[0].(*object.Int)
	if !ok {
		return 0, 0, object.Errorf("%s: row must be an int, got %s", name, args[0].Type())
	}
	col, ok := args[1].(*object.Int)
	if !ok {
		return 0, 0, object.Errorf("%s: col must be an int, got %s", name, args[1].Type())
	}
	return int(row.Value()), int(col.Value()), nil
}

// makeGlyphAtFn creates the "glyph_at" host function.
//
// glyph_at(row, col) → string, or nil outside the grid
func makeGlyphAtFn(rows []string) *object.Builtin {
	return object.NewBuiltin("glyph_at", func(ctx context.Context, args ...object.Object) object.Object {
		row, col, errObj := rowColArgs("glyph_at", args)
		if errObj != nil {
			return errObj
		}
		if row < 0 || row >= len(rows) || col < 0 || col >= len(rows[row]) {
			return object.Nil
		}
		return object.NewString(rows[row][col : col+1])
	})
}

// makeIsLoopFn creates the "is_loop" host function.
//
// is_loop(row, col) → bool
func makeIsLoopFn(members map[[2]int]bool) *object.Builtin {
	return object.NewBuiltin("is_loop", func(ctx context.Context, args ...object.Object) object.Object {
		row, col, errObj := rowColArgs("is_loop", args)
		if errObj != nil {
			return errObj
		}
		return object.NewBool(members[[2]int{row, col}])
	})
}

// makeEmitFn creates the "emit" host function. Arguments are written
// space-separated on one line.
//
// emit(values...) → nil
func makeEmitFn(w io.Writer) *object.Builtin {
	return object.NewBuiltin("emit", func(ctx context.Context, args ...object.Object) object.Object {
		parts := make([]string, len(args))
		for i, arg := range args {
			if s, ok := arg.(*object.String); ok {
				parts[i] = s.Value()
			} else {
				parts[i] = arg.Inspect()
			}
		}
		if _, err := fmt.Fprintln(w, strings.Join(parts, " ")); err != nil {
			return object.Errorf("emit: %v", err)
		}
		return object.Nil
	})
}

// logObject provides log.info/warn/error methods for Risor scripts.
type logObject struct {
	log *zap.Logger
}

func (l *logObject) Info(msg string) {
	l.log.Info(msg)
}

func (l *logObject) Warn(msg string) {
	l.log.Warn(msg)
}

func (l *logObject) Error(msg string) {
	l.log.Error(msg)
}
