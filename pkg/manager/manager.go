// Package manager provides the session-scoped convenience layer over a
// database adapter: CRUD helpers, table management, and import adapters for
// tabular files.
package manager

import (
	"context"
	"log/slog"

	"github.com/leapstack-labs/dataport/pkg/adapter"
	"github.com/leapstack-labs/dataport/pkg/dberr"
)

// DefaultBatchSize is the number of rows per multi-row insert statement when
// the caller doesn't choose one.
const DefaultBatchSize = 1000

// Manager owns one adapter connection for the lifetime of a session. It is
// not safe for concurrent use: one session per scope, released on scope exit.
type Manager struct {
	db        adapter.Adapter
	cfg       adapter.Config
	logger    *slog.Logger
	batchSize int
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for connection events, failed statement
// shapes and import row counts.
func WithLogger(logger *slog.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// WithBatchSize sets the default chunk size for batched inserts.
func WithBatchSize(n int) Option {
	return func(m *Manager) {
		if n > 0 {
			m.batchSize = n
		}
	}
}

// New creates a Manager over an already-constructed adapter. The connection
// is not opened until Connect.
func New(db adapter.Adapter, cfg adapter.Config, opts ...Option) *Manager {
	m := &Manager{
		db:        db,
		cfg:       cfg,
		logger:    slog.New(slog.DiscardHandler),
		batchSize: DefaultBatchSize,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Open constructs the adapter for cfg.Type from the registry and connects.
func Open(ctx context.Context, cfg adapter.Config, opts ...Option) (*Manager, error) {
	m := New(nil, cfg, opts...)

	db, err := adapter.New(cfg, m.logger)
	if err != nil {
		return nil, err
	}
	m.db = db

	if err := m.Connect(ctx); err != nil {
		return nil, err
	}
	return m, nil
}

// WithSession runs fn inside a scoped session: the connection is opened
// before fn and released on every exit path, including errors and panics.
func WithSession(ctx context.Context, cfg adapter.Config, fn func(*Manager) error, opts ...Option) error {
	m, err := Open(ctx, cfg, opts...)
	if err != nil {
		return err
	}
	defer m.Close()

	return fn(m)
}

// Connect establishes the session's connection. No-op when already open.
func (m *Manager) Connect(ctx context.Context) error {
	if m.db.Connected() {
		return nil
	}

	if err := m.db.Connect(ctx, m.cfg); err != nil {
		m.logger.Error("connection failed",
			slog.String("type", m.db.DialectName()),
			slog.String("database", m.cfg.Database),
			slog.Any("error", err))
		return dberr.New(dberr.KindConnection, err)
	}

	m.logger.Info("connected",
		slog.String("type", m.db.DialectName()),
		slog.String("database", m.cfg.Database))
	return nil
}

// Close releases the connection. Idempotent and never fails: release errors
// are logged and swallowed so no exit path can leak or throw past the scope.
func (m *Manager) Close() {
	if !m.db.Connected() {
		return
	}

	if err := m.db.Close(); err != nil {
		m.logger.Error("error releasing connection", slog.Any("error", err))
		return
	}
	m.logger.Info("disconnected", slog.String("type", m.db.DialectName()))
}

// Connected reports whether the session is open.
func (m *Manager) Connected() bool {
	return m.db.Connected()
}

// Adapter exposes the underlying adapter.
func (m *Manager) Adapter() adapter.Adapter {
	return m.db
}

// ensureOpen guards operations that need a live session.
func (m *Manager) ensureOpen() error {
	if !m.db.Connected() {
		return dberr.New(dberr.KindConnection, adapter.ErrNotConnected)
	}
	return nil
}
