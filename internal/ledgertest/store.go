// Package ledgertest provides an in-memory ledger store for service tests.
// Transactions are serialized by a single lock and roll back by restoring a copy.
package ledgertest

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/google/uuid"

	"github.com/GlebRadaev/equb/internal/domain"
	"github.com/GlebRadaev/equb/internal/pg"
)

// Data is the raw content of the store. Tests may edit it through Store.Tamper.
type Data struct {
	Circles       map[uuid.UUID]domain.Circle
	Memberships   map[uuid.UUID]domain.Membership
	Contributions map[uuid.UUID]domain.Contribution
	Payouts       map[uuid.UUID]domain.Payout
	Events        []domain.AuditEvent
	Reports       []domain.IntegrityReport
}

func (d *Data) clone() Data {
	return Data{
		Circles:       maps.Clone(d.Circles),
		Memberships:   maps.Clone(d.Memberships),
		Contributions: maps.Clone(d.Contributions),
		Payouts:       maps.Clone(d.Payouts),
		Events:        slices.Clone(d.Events),
		Reports:       slices.Clone(d.Reports),
	}
}

type Store struct {
	tx    sync.Mutex
	mu    sync.Mutex
	data  Data
	seq   int64
	fails map[string]error
}

func New() *Store {
	return &Store{
		data: Data{
			Circles:       make(map[uuid.UUID]domain.Circle),
			Memberships:   make(map[uuid.UUID]domain.Membership),
			Contributions: make(map[uuid.UUID]domain.Contribution),
			Payouts:       make(map[uuid.UUID]domain.Payout),
		},
		fails: make(map[string]error),
	}
}

// FailOn makes every call of the named operation, e.g. "audit.Append", return err.
// A nil err clears the failure.
func (s *Store) FailOn(op string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if err == nil {
		delete(s.fails, op)
		return
	}
	s.fails[op] = err
}

// Tamper edits the stored data directly, bypassing every check.
func (s *Store) Tamper(fn func(d *Data)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.data)
}

// Events returns a copy of all appended audit events in insertion order.
func (s *Store) Events() []domain.AuditEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.data.Events)
}

func (s *Store) Reports() []domain.IntegrityReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.data.Reports)
}

// lock takes the data lock and reports an injected failure for op, if any.
func (s *Store) lock(op string) error {
	s.mu.Lock()
	if err := s.fails[op]; err != nil {
		s.mu.Unlock()
		return err
	}
	return nil
}

type txKey struct{}

// TXManager serializes transactions across the whole store.
type TXManager struct {
	store *Store
}

func (s *Store) TXManager() pg.TXManager {
	return &TXManager{store: s}
}

func (m *TXManager) Begin(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}

	s := m.store
	s.tx.Lock()
	defer s.tx.Unlock()

	s.mu.Lock()
	saved, seq := s.data.clone(), s.seq
	s.mu.Unlock()

	defer func() {
		if p := recover(); p != nil {
			s.restore(saved, seq)
			panic(p)
		}
		if err != nil {
			s.restore(saved, seq)
		}
	}()
	return fn(context.WithValue(ctx, txKey{}, true))
}

func (s *Store) restore(saved Data, seq int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data, s.seq = saved, seq
}
