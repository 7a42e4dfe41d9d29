package store

import (
	"crypto/sha256"
	"fmt"
)

// ComputeGridHash computes the cache key for a grid from its rows. Row
// boundaries are part of the hash, so reshaping the same glyphs into a
// different width changes it.
func ComputeGridHash(rows [][]byte) string {
	h := sha256.New()
	fmt.Fprintf(h, "rows:%d\n", len(rows))
	for _, row := range rows {
		h.Write(row)
		h.Write([]byte{'\n'})
	}
	return fmt.Sprintf("%x", h.Sum(nil))
}
