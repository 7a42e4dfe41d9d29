// Package pipeloop finds the closed loop of pipes that runs through the start
// tile of a character grid, measures how far its farthest point is from the
// start, and counts the ground tiles the loop encloses.
//
// # Grid
//
// A grid is a rectangle of glyphs. Six glyphs are pipes, each joining two
// sides of its tile:
//
//	|  north and south      F  east and south
//	-  east and west        7  west and south
//	L  north and east       J  north and west
//
// '.' is ground and 'S' marks the start tile, whose pipe shape is hidden.
// Any other glyph is treated as ground.
//
// # Pipeline
//
// Analysis runs in three steps:
//
//  1. Walk: from the start, try each of the four directions and follow the
//     pipes until the path returns to the start or breaks. The longest
//     closed walk is the loop. Walks run concurrently unless
//     [WithParallel] turns that off.
//
//  2. Infer: guess the start tile's shape from which neighbors open toward
//     it, so the loop can be drawn without the 'S'.
//
//  3. Scan: blank everything off the loop and count enclosed ground with a
//     left-to-right parity scan of each row.
//
// # Usage
//
//	e, err := pipeloop.New(pipeloop.WithCache(".pipeloop/cache.db"))
//	if err != nil { ... }
//	defer e.Close()
//
//	res, err := e.AnalyzeFile(ctx, "grid.txt")
//	fmt.Println(res.Length, res.Enclosed)
//
// The building blocks are also usable without an Engine: [LoadGrid],
// [FindLoop], [CycleLength], [InferStartShape], [PathOnly], [CountEnclosed]
// and [MarkEnclosed].
//
// # Cache
//
// With [WithCache] every analysis is stored in SQLite keyed by a hash of the
// grid contents. Analyzing the same grid again rebuilds the result from the
// stored loop without walking. [Engine.History] lists stored runs.
//
// # Reports
//
// [Engine.Report] runs a Risor script with the result exposed as globals.
// Built-in scripts live in the scripts package under report/.
package pipeloop
