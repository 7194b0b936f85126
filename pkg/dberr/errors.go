// Package dberr defines the error taxonomy shared by all dataport components.
//
// Every database-facing failure is wrapped in an *Error carrying a Kind, the
// table involved (when known) and the shape of the failing statement: the SQL
// text with placeholders, never the bound values.
package dberr

import (
	"errors"
	"fmt"
)

// Kind classifies a dataport error.
type Kind int

const (
	// KindUnknown is the zero kind, reported for errors outside the taxonomy.
	KindUnknown Kind = iota

	// KindConfiguration covers bad or missing connection parameters.
	// Raised before any I/O is attempted.
	KindConfiguration

	// KindConnection covers handshake and mid-session network failures.
	KindConnection

	// KindSchema covers DDL statements rejected by the engine.
	KindSchema

	// KindWrite covers rejected inserts, updates and deletes (constraint
	// violations, unknown columns, type mismatches).
	KindWrite

	// KindQuery covers malformed or mistyped read statements.
	KindQuery

	// KindRead covers source files that are missing or corrupt for their
	// declared format.
	KindRead

	// KindUnsupportedFormat means no reader matches the file extension.
	KindUnsupportedFormat
)

// String returns the taxonomy name for the kind.
func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindConnection:
		return "connection"
	case KindSchema:
		return "schema"
	case KindWrite:
		return "write"
	case KindQuery:
		return "query"
	case KindRead:
		return "read"
	case KindUnsupportedFormat:
		return "unsupported format"
	default:
		return "unknown"
	}
}

// Error is a classified dataport error. It always preserves the underlying
// engine error for errors.Is/errors.As inspection.
type Error struct {
	Kind  Kind
	Table string
	Stmt  string
	Err   error
}

func (e *Error) Error() string {
	switch {
	case e.Table != "" && e.Err != nil:
		return fmt.Sprintf("%s error on table %q: %v", e.Kind, e.Table, e.Err)
	case e.Err != nil:
		return fmt.Sprintf("%s error: %v", e.Kind, e.Err)
	case e.Table != "":
		return fmt.Sprintf("%s error on table %q", e.Kind, e.Table)
	default:
		return fmt.Sprintf("%s error", e.Kind)
	}
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind. This lets callers
// write errors.Is(err, &dberr.Error{Kind: dberr.KindWrite}).
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// New creates an Error of the given kind wrapping err.
func New(kind Kind, err error) *Error {
	return &Error{Kind: kind, Err: err}
}

// Newf creates an Error of the given kind from a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// Wrap creates an Error carrying table and statement-shape context.
// A nil err yields nil.
func Wrap(kind Kind, table, stmt string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Table: table, Stmt: stmt, Err: err}
}

// KindOf returns the Kind of err, or KindUnknown when err carries no *Error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsKind reports whether err is (or wraps) an *Error of the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
