package store

import "errors"

var (
	ErrMutatorPanic     = errors.New("store: mutator panicked")
	ErrPersist          = errors.New("store: persist failed")
	ErrConcurrentWriter = errors.New("store: document was written by another process")
)
