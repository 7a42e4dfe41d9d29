package pipeloop

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/jward/pipeloop/internal/runtime"
	"github.com/jward/pipeloop/internal/store"
)

// analyzerVersion is recorded in the cache; a mismatch discards stored runs.
const analyzerVersion = "1"

// Engine orchestrates loop analysis: walking, start inference, interior
// scanning, the optional result cache, and report scripts.
type Engine struct {
	log        *zap.Logger
	parallel   bool
	dbPath     string
	store      *store.Store
	scriptsDir string
	scriptsFS  fs.FS
	out        io.Writer
	now        func() time.Time
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the logger. Defaults to a no-op logger.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// WithParallel controls whether the four candidate walks run concurrently.
// Defaults to true.
func WithParallel(parallel bool) Option {
	return func(e *Engine) {
		e.parallel = parallel
	}
}

// WithCache enables the SQLite result cache at dbPath. Grids already
// analyzed are answered from the cache without walking.
func WithCache(dbPath string) Option {
	return func(e *Engine) {
		e.dbPath = dbPath
	}
}

// WithScriptsDir loads report scripts from dir on disk.
func WithScriptsDir(dir string) Option {
	return func(e *Engine) {
		e.scriptsDir = dir
	}
}

// WithScriptsFS loads report scripts from fsys, typically the embedded
// scripts.FS. Takes precedence over WithScriptsDir.
func WithScriptsFS(fsys fs.FS) Option {
	return func(e *Engine) {
		e.scriptsFS = fsys
	}
}

// WithOutput sets where report scripts write. Defaults to stdout.
func WithOutput(w io.Writer) Option {
	return func(e *Engine) {
		e.out = w
	}
}

// New creates an Engine. When WithCache is given the database is opened
// and migrated here.
func New(opts ...Option) (*Engine, error) {
	e := &Engine{
		log:      zap.NewNop(),
		parallel: true,
		out:      os.Stdout,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}

	if e.dbPath != "" {
		s, err := store.NewStore(e.dbPath)
		if err != nil {
			return nil, fmt.Errorf("pipeloop: create store: %w", err)
		}
		if err := s.Migrate(); err != nil {
			s.Close()
			return nil, fmt.Errorf("pipeloop: migrate: %w", err)
		}
		e.store = s
		if err := e.checkVersion(); err != nil {
			s.Close()
			return nil, err
		}
	}
	return e, nil
}

// Close releases the cache database, if any.
func (e *Engine) Close() error {
	if e.store == nil {
		return nil
	}
	return e.store.Close()
}

// Store returns the cache store, or nil when caching is disabled.
func (e *Engine) Store() *Store {
	return e.store
}

// checkVersion clears cached runs written by a different analyzer version.
func (e *Engine) checkVersion() error {
	stored, err := e.store.GetMetadata("analyzer_version")
	if err != nil {
		return fmt.Errorf("pipeloop: read cache version: %w", err)
	}
	if stored == analyzerVersion {
		return nil
	}
	if stored != "" {
		e.log.Info("analyzer version changed, clearing cache",
			zap.String("stored", stored),
			zap.String("current", analyzerVersion))
		if err := e.store.Reset(); err != nil {
			return fmt.Errorf("pipeloop: clear cache: %w", err)
		}
	}
	if err := e.store.SetMetadata("analyzer_version", analyzerVersion); err != nil {
		return fmt.Errorf("pipeloop: write cache version: %w", err)
	}
	return nil
}

// Result is the outcome of analyzing one grid.
type Result struct {
	Source string
	Hash   string
	// Length is the distance from the start to the farthest loop tile.
	Length int
	// Enclosed is the number of ground tiles inside the loop.
	Enclosed   int
	Start      Position
	StartShape Shape
	Loop       *Loop
	Grid       *Grid
	// Path is Grid with everything but the loop blanked and the start
	// replaced by StartShape.
	Path *Grid
	// Cached is set when the result came from the cache.
	Cached bool
}

// Marked renders the path-only grid with enclosed tiles marked.
func (r *Result) Marked() *Grid {
	return MarkEnclosed(r.Path)
}

// AnalyzeFile loads the grid at path and analyzes it.
func (e *Engine) AnalyzeFile(ctx context.Context, path string) (*Result, error) {
	g, err := LoadGrid(path)
	if err != nil {
		return nil, fmt.Errorf("pipeloop: %w", err)
	}
	return e.analyze(ctx, g, path)
}

// Analyze finds the loop of g, its length, and the enclosed tile count.
func (e *Engine) Analyze(ctx context.Context, g *Grid) (*Result, error) {
	return e.analyze(ctx, g, "")
}

func (e *Engine) analyze(ctx context.Context, g *Grid, source string) (*Result, error) {
	hash := g.Hash()
	log := e.log.With(zap.String("hash", hash[:12]))

	if e.store != nil {
		res, err := e.cached(g, hash, source)
		if err != nil {
			return nil, err
		}
		if res != nil {
			log.Debug("cache hit", zap.Int("length", res.Length))
			return res, nil
		}
	}

	start := time.Now()
	w := &walker{log: log, parallel: e.parallel}
	loop, err := w.findLoop(ctx, g)
	if err != nil {
		return nil, fmt.Errorf("pipeloop: find loop: %w", err)
	}
	shape := GuessStartShape(g, loop.Start)
	log.Debug("start shape inferred",
		zap.Stringer("start", loop.Start),
		zap.String("glyph", string(shape.Glyph())))

	res := newResult(g, hash, source, loop, shape)
	log.Debug("analyzed",
		zap.Int("length", res.Length),
		zap.Int("enclosed", res.Enclosed),
		zap.Duration("took", time.Since(start)))

	if e.store != nil {
		if err := e.save(res); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func newResult(g *Grid, hash, source string, loop *Loop, shape Shape) *Result {
	path := PathOnly(g, loop, shape)
	return &Result{
		Source:     source,
		Hash:       hash,
		Length:     loop.Farthest(),
		Enclosed:   CountEnclosed(path),
		Start:      loop.Start,
		StartShape: shape,
		Loop:       loop,
		Grid:       g,
		Path:       path,
	}
}

// save persists res as a new run of its grid.
func (e *Engine) save(res *Result) error {
	gridID, err := e.store.UpsertGrid(&store.Grid{
		Hash:      res.Hash,
		Height:    res.Grid.Height(),
		Width:     res.Grid.Width(),
		Source:    res.Source,
		CreatedAt: e.now(),
	})
	if err != nil {
		return fmt.Errorf("pipeloop: save grid: %w", err)
	}

	tiles := make([]store.LoopTile, len(res.Loop.Tiles))
	for i, p := range res.Loop.Tiles {
		tiles[i] = store.LoopTile{Seq: i, Row: p.Row, Col: p.Col, Glyph: string(res.Path.At(p))}
	}
	_, err = e.store.CommitRun(&store.Run{
		GridID:     gridID,
		LoopLength: res.Length,
		LoopTiles:  res.Loop.Len(),
		Enclosed:   res.Enclosed,
		StartRow:   res.Start.Row,
		StartCol:   res.Start.Col,
		StartGlyph: string(res.StartShape.Glyph()),
		Heading:    res.Loop.Heading.String(),
		AnalyzedAt: e.now(),
	}, tiles)
	if err != nil {
		return fmt.Errorf("pipeloop: save run: %w", err)
	}
	return nil
}

// cached rebuilds a result from the latest stored run of the grid with the
// given hash. Returns nil when the grid has not been analyzed.
func (e *Engine) cached(g *Grid, hash, source string) (*Result, error) {
	sg, err := e.store.GridByHash(hash)
	if err != nil || sg == nil {
		return nil, err
	}
	run, err := e.store.LatestRun(sg.ID)
	if err != nil || run == nil {
		return nil, err
	}
	stored, err := e.store.LoopTiles(run.ID)
	if err != nil {
		return nil, err
	}
	if len(stored) != run.LoopTiles || run.StartGlyph == "" {
		e.log.Warn("cached run is incomplete, recomputing", zap.Int64("run", run.ID))
		return nil, nil
	}

	tiles := make([]Position, len(stored))
	for i, t := range stored {
		tiles[i] = Position{Row: t.Row, Col: t.Col}
	}
	start := Position{Row: run.StartRow, Col: run.StartCol}
	loop := newLoop(start, parseDirection(run.Heading), tiles)
	shape := ShapeForGlyph(run.StartGlyph[0])

	if source == "" {
		source = sg.Source
	}
	res := newResult(g, hash, source, loop, shape)
	res.Cached = true
	return res, nil
}

// History returns up to limit stored runs, newest first.
func (e *Engine) History(limit int) ([]*RunSummary, error) {
	if e.store == nil {
		return nil, fmt.Errorf("pipeloop: history requires a cache database")
	}
	runs, err := e.store.Runs(limit)
	if err != nil {
		return nil, fmt.Errorf("pipeloop: history: %w", err)
	}
	return runs, nil
}

// ClearCache deletes every stored run.
func (e *Engine) ClearCache() error {
	if e.store == nil {
		return nil
	}
	return e.store.Reset()
}

// Report runs a Risor report script against res. script is a path
// relative to the configured scripts source, or absolute on disk.
func (e *Engine) Report(ctx context.Context, res *Result, script string) error {
	var rtOpts []runtime.RuntimeOption
	if e.scriptsFS != nil {
		rtOpts = append(rtOpts, runtime.WithRuntimeFS(e.scriptsFS))
	}
	rtOpts = append(rtOpts, runtime.WithLogger(e.log), runtime.WithOutput(e.out))
	rt := runtime.NewRuntime(e.store, e.scriptsDir, rtOpts...)

	if err := rt.RunScript(ctx, script, res.report().Globals()); err != nil {
		return fmt.Errorf("pipeloop: report: %w", err)
	}
	return nil
}

// report flattens res for the script runtime.
func (r *Result) report() *runtime.Report {
	tiles := make([]runtime.Tile, len(r.Loop.Tiles))
	for i, p := range r.Loop.Tiles {
		tiles[i] = runtime.Tile{Row: p.Row, Col: p.Col, Glyph: string(r.Path.At(p))}
	}
	return &runtime.Report{
		Source:     r.Source,
		Hash:       r.Hash,
		LoopLength: r.Length,
		Enclosed:   r.Enclosed,
		StartRow:   r.Start.Row,
		StartCol:   r.Start.Col,
		StartGlyph: string(r.StartShape.Glyph()),
		Heading:    r.Loop.Heading.String(),
		Rows:       r.Grid.Rows(),
		PathRows:   r.Path.Rows(),
		Loop:       tiles,
		Cached:     r.Cached,
	}
}
