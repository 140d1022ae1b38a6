// Package memdb is an in-process stand-in for the PostgreSQL transaction
// boundary. Memory repositories register their tables with a DB; WithinTx
// serializes units of work and restores every registered table when fn fails.
//
// Serializing whole transactions is stronger than row locking, so any
// interleaving the in-memory repositories allow is one PostgreSQL allows too.
package memdb

import (
	"context"
	"sync"
)

// Table is state owned by one memory repository.
type Table interface {
	// Snapshot captures the current state and returns a func that restores it.
	Snapshot() (restore func())
}

// DB implements database.TxRunner in memory.
type DB struct {
	mu     sync.Mutex
	tables []Table
}

type txKey struct{}

// New returns an empty DB.
func New() *DB {
	return &DB{}
}

// Register adds t to the set of tables rolled back on failure.
func (d *DB) Register(t Table) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.tables = append(d.tables, t)
}

// WithinTx runs fn while holding the DB lock. Nested calls join the outer unit.
func (d *DB) WithinTx(ctx context.Context, fn func(ctx context.Context) error) (err error) {
	if InTx(ctx) {
		return fn(ctx)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	restores := make([]func(), 0, len(d.tables))
	for _, t := range d.tables {
		restores = append(restores, t.Snapshot())
	}
	rollback := func() {
		for _, r := range restores {
			r()
		}
	}

	defer func() {
		if p := recover(); p != nil {
			rollback()
			panic(p)
		}
	}()

	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		rollback()
		return err
	}
	return nil
}

// Do runs fn under the DB lock unless ctx already holds it through WithinTx.
// Memory repositories wrap every read and write with Do.
func (d *DB) Do(ctx context.Context, fn func() error) error {
	if InTx(ctx) {
		return fn()
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	return fn()
}

// InTx reports whether ctx belongs to a WithinTx call.
func InTx(ctx context.Context) bool {
	v, _ := ctx.Value(txKey{}).(bool)
	return v
}
