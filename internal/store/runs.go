package store

import (
	"database/sql"
	"fmt"
)

const runCols = `id, grid_id, loop_length, loop_tiles, enclosed, start_row, start_col,
	start_glyph, heading, analyzed_at`

func scanRun(sc interface{ Scan(...any) error }, r *Run) error {
	return sc.Scan(&r.ID, &r.GridID, &r.LoopLength, &r.LoopTiles, &r.Enclosed,
		&r.StartRow, &r.StartCol, &r.StartGlyph, &r.Heading, &r.AnalyzedAt)
}

// --- Grid operations ---

// UpsertGrid returns the ID of the grid with g.Hash, inserting it when
// absent. A non-empty Source replaces the stored one.
func (s *Store) UpsertGrid(g *Grid) (int64, error) {
	existing, err := s.GridByHash(g.Hash)
	if err != nil {
		return 0, err
	}
	if existing != nil {
		g.ID = existing.ID
		if g.Source != "" && g.Source != existing.Source {
			if _, err := s.db.Exec("UPDATE grids SET source = ? WHERE id = ?", g.Source, g.ID); err != nil {
				return 0, fmt.Errorf("update grid source: %w", err)
			}
		}
		return g.ID, nil
	}

	res, err := s.db.Exec(
		"INSERT INTO grids (hash, height, width, source, created_at) VALUES (?, ?, ?, ?, ?)",
		g.Hash, g.Height, g.Width, g.Source, g.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert grid: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	g.ID = id
	return id, nil
}

// GridByHash returns the grid with the given content hash, or nil.
func (s *Store) GridByHash(hash string) (*Grid, error) {
	g := &Grid{}
	var source sql.NullString
	err := s.db.QueryRow(
		"SELECT id, hash, height, width, source, created_at FROM grids WHERE hash = ?", hash,
	).Scan(&g.ID, &g.Hash, &g.Height, &g.Width, &source, &g.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("grid by hash: %w", err)
	}
	g.Source = source.String
	return g, nil
}

// --- Run operations ---

// CommitRun inserts a run and its loop tiles in a single transaction and
// returns the run ID.
func (s *Store) CommitRun(run *Run, tiles []LoopTile) (int64, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("commit run: begin: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.Exec(
		`INSERT INTO runs (grid_id, loop_length, loop_tiles, enclosed, start_row, start_col,
			start_glyph, heading, analyzed_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		run.GridID, run.LoopLength, run.LoopTiles, run.Enclosed, run.StartRow, run.StartCol,
		run.StartGlyph, run.Heading, run.AnalyzedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("commit run: insert run: %w", err)
	}
	runID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("commit run: last insert id: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO loop_tiles (run_id, seq, row, col, glyph) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		return 0, fmt.Errorf("commit run: prepare tiles: %w", err)
	}
	defer stmt.Close()
	for i := range tiles {
		t := &tiles[i]
		t.RunID = runID
		if _, err := stmt.Exec(runID, t.Seq, t.Row, t.Col, t.Glyph); err != nil {
			return 0, fmt.Errorf("commit run: tile %d: %w", t.Seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit run: %w", err)
	}
	run.ID = runID
	return runID, nil
}

// LatestRun returns the most recent run for a grid, or nil.
func (s *Store) LatestRun(gridID int64) (*Run, error) {
	r := &Run{}
	err := scanRun(s.db.QueryRow(
		"SELECT "+runCols+" FROM runs WHERE grid_id = ? ORDER BY id DESC LIMIT 1", gridID,
	), r)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest run: %w", err)
	}
	return r, nil
}

// LoopTiles returns the tiles of a run in walk order.
func (s *Store) LoopTiles(runID int64) ([]*LoopTile, error) {
	rows, err := s.db.Query(
		"SELECT run_id, seq, row, col, glyph FROM loop_tiles WHERE run_id = ? ORDER BY seq", runID,
	)
	if err != nil {
		return nil, fmt.Errorf("loop tiles: %w", err)
	}
	defer rows.Close()
	var tiles []*LoopTile
	for rows.Next() {
		t := &LoopTile{}
		if err := rows.Scan(&t.RunID, &t.Seq, &t.Row, &t.Col, &t.Glyph); err != nil {
			return nil, fmt.Errorf("scan loop tile: %w", err)
		}
		tiles = append(tiles, t)
	}
	return tiles, rows.Err()
}

// Runs returns up to limit runs, newest first. A limit <= 0 returns all.
func (s *Store) Runs(limit int) ([]*RunSummary, error) {
	q := `SELECT r.id, r.grid_id, r.loop_length, r.loop_tiles, r.enclosed, r.start_row, r.start_col,
			r.start_glyph, r.heading, r.analyzed_at, g.hash, g.source, g.height, g.width
		FROM runs r JOIN grids g ON g.id = r.grid_id
		ORDER BY r.id DESC`
	var args []any
	if limit > 0 {
		q += " LIMIT ?"
		args = append(args, limit)
	}
	rows, err := s.db.Query(q, args...)
	if err != nil {
		return nil, fmt.Errorf("runs: %w", err)
	}
	defer rows.Close()
	var out []*RunSummary
	for rows.Next() {
		rs := &RunSummary{}
		var source sql.NullString
		if err := rows.Scan(&rs.ID, &rs.GridID, &rs.LoopLength, &rs.LoopTiles, &rs.Enclosed,
			&rs.StartRow, &rs.StartCol, &rs.StartGlyph, &rs.Heading, &rs.AnalyzedAt,
			&rs.Hash, &source, &rs.Height, &rs.Width); err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		rs.Source = source.String
		out = append(out, rs)
	}
	return out, rows.Err()
}
