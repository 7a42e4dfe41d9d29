package pipeloop

import "github.com/jward/pipeloop/internal/store"

// Public type aliases for the cache store types returned by Engine.

type Store = store.Store
type Run = store.Run
type RunSummary = store.RunSummary
