package pipeloop

import (
	"errors"
	"fmt"
)

var (
	// ErrMalformedInput reports unreadable input, ragged rows, or a missing
	// or duplicated start tile.
	ErrMalformedInput = errors.New("malformed input")

	// ErrStartNotFound is returned when the grid holds no start tile.
	ErrStartNotFound = fmt.Errorf("%w: start tile not found", ErrMalformedInput)

	// ErrInvalidGrid reports that no walk from the start tile closes a loop.
	ErrInvalidGrid = errors.New("invalid grid: no loop through start")

	// ErrUnsupportedMove is the failure of a single candidate walk: it left
	// the grid, revisited a tile, or entered a tile with no facing opening.
	// The walker consumes it; callers of FindLoop never see it.
	ErrUnsupportedMove = errors.New("unsupported move")
)
