// Package store owns the single JSON document that holds all application
// state. Writers are serialized through Update in submission order; readers
// take independent copies with Snapshot and never wait for writers.
package store

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"hut/internal/domain"
)

type Persister interface {
	Load(ctx context.Context) (*domain.Document, error)
	Persist(ctx context.Context, doc *domain.Document) error
}

// Mutator receives the working document and may change it freely. It may also
// block, for example on a payment provider; every later writer waits for it.
type Mutator[T any] func(ctx context.Context, doc *domain.Document) (T, error)

type Store struct {
	persister Persister
	logger    *slog.Logger

	loadMu sync.Mutex

	// mu guards doc. A published document is never modified again; writers
	// work on a copy and swap it in.
	mu  sync.RWMutex
	doc *domain.Document

	queueMu sync.Mutex
	tail    chan struct{}
}

func New(persister Persister, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{persister: persister, logger: logger}
}

// Snapshot returns a deep copy of the latest committed document.
func (s *Store) Snapshot(ctx context.Context) (*domain.Document, error) {
	doc, err := s.committed(ctx)
	if err != nil {
		return nil, err
	}
	return Clone(doc)
}

// Update runs fn with exclusive access to the document. Mutators run one at a
// time in the order they were submitted, and a queued mutator is never
// dropped. Whatever fn leaves behind is normalized, published and persisted,
// including after an error or a panic, so failure paths must leave the
// document in a consistent shape.
func Update[T any](ctx context.Context, s *Store, fn Mutator[T]) (T, error) {
	var zero T

	release := s.enqueue()
	defer release()

	committed, err := s.committed(ctx)
	if err != nil {
		return zero, err
	}
	working, err := Clone(committed)
	if err != nil {
		return zero, fmt.Errorf("store: clone: %w", err)
	}

	result, mutErr := run(ctx, working, fn)

	working.Normalize()
	persistErr := s.persister.Persist(context.WithoutCancel(ctx), working)
	s.publish(working)

	if persistErr != nil {
		s.logger.Error("store persist failed", "error", persistErr)
		if mutErr == nil {
			return result, fmt.Errorf("%w: %w", ErrPersist, persistErr)
		}
	}
	return result, mutErr
}

// Do is Update for mutators without a result value.
func (s *Store) Do(ctx context.Context, fn func(ctx context.Context, doc *domain.Document) error) error {
	_, err := Update(ctx, s, func(ctx context.Context, doc *domain.Document) (struct{}, error) {
		return struct{}{}, fn(ctx, doc)
	})
	return err
}

func run[T any](ctx context.Context, doc *domain.Document, fn Mutator[T]) (result T, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", ErrMutatorPanic, r)
		}
	}()
	return fn(ctx, doc)
}

// enqueue blocks until every earlier submission has finished. The returned
// func hands the turn to the next submission and must be called exactly once.
func (s *Store) enqueue() func() {
	done := make(chan struct{})

	s.queueMu.Lock()
	prev := s.tail
	s.tail = done
	s.queueMu.Unlock()

	if prev != nil {
		<-prev
	}
	return func() { close(done) }
}

func (s *Store) committed(ctx context.Context) (*domain.Document, error) {
	s.mu.RLock()
	doc := s.doc
	s.mu.RUnlock()
	if doc != nil {
		return doc, nil
	}

	s.loadMu.Lock()
	defer s.loadMu.Unlock()

	s.mu.RLock()
	doc = s.doc
	s.mu.RUnlock()
	if doc != nil {
		return doc, nil
	}

	doc, err := s.persister.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("store: load: %w", err)
	}
	doc.Normalize()
	s.publish(doc)
	s.logger.Info("store loaded",
		"hotels", len(doc.Hotels),
		"rooms", len(doc.Rooms),
		"bookings", len(doc.Bookings),
	)
	return doc, nil
}

func (s *Store) publish(doc *domain.Document) {
	s.mu.Lock()
	s.doc = doc
	s.mu.Unlock()
}
