package main

// CLIResult is the top-level JSON envelope for all commands.
type CLIResult struct {
	Command string `json:"command"`
	Results any    `json:"results"`
	Error   string `json:"error,omitempty"`
}

// CLIPosition is a JSON-friendly grid position.
type CLIPosition struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// CLIAnalysis is the JSON-friendly outcome of analyzing one grid.
type CLIAnalysis struct {
	Source     string      `json:"source,omitempty"`
	Hash       string      `json:"hash"`
	Length     int         `json:"length"`
	Enclosed   int         `json:"enclosed"`
	LoopTiles  int         `json:"loop_tiles"`
	Start      CLIPosition `json:"start"`
	StartShape string      `json:"start_shape"`
	Cached     bool        `json:"cached"`
	Marked     []string    `json:"marked,omitempty"`
}

// CLIRun is a JSON-friendly stored run.
type CLIRun struct {
	ID         int64  `json:"id"`
	Source     string `json:"source,omitempty"`
	Hash       string `json:"hash"`
	Height     int    `json:"height"`
	Width      int    `json:"width"`
	Length     int    `json:"length"`
	Enclosed   int    `json:"enclosed"`
	StartGlyph string `json:"start_glyph"`
	AnalyzedAt string `json:"analyzed_at"`
}
