package store

import "time"

// Grid identifies an analyzed input by content hash.
type Grid struct {
	ID        int64
	Hash      string
	Height    int
	Width     int
	Source    string
	CreatedAt time.Time
}

// Run is one stored analysis of a grid.
type Run struct {
	ID         int64
	GridID     int64
	LoopLength int
	LoopTiles  int
	Enclosed   int
	StartRow   int
	StartCol   int
	StartGlyph string
	Heading    string
	AnalyzedAt time.Time
}

// LoopTile is one loop position of a run, in walk order.
type LoopTile struct {
	RunID int64
	Seq   int
	Row   int
	Col   int
	Glyph string
}

// RunSummary joins a run with the grid it analyzed.
type RunSummary struct {
	Run
	Hash   string
	Source string
	Height int
	Width  int
}
