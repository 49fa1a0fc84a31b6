// Package tools defines the catalogue of operations a reasoning loop may
// invoke against the vault and the document converter, and the adapter
// that exposes each operation as a callable taking a single string.
//
// Handlers never return errors across the tool boundary: every failure is
// rendered as a descriptive string result so the reasoning loop can
// recover conversationally instead of crashing. Success and failure are
// distinguished by message content, not by error type — a deliberate
// simplification preserved for compatibility with loops that do not model
// tool-level failure as a first-class signal.
package tools

import "context"

// Field describes one entry of a tool's input schema. Field order is
// fixed: it defines the positional decoding order used by the
// single-input adapter.
type Field struct {
	Name     string
	Type     string // "string", "integer", "boolean", "json"
	Required bool
	Default  string // rendered in the catalogue; empty means none
}

// Handler is a tagged variant over the three supported handler shapes.
// Exactly one of the funcs must be set. Handlers return their result as a
// string and render their own failures (conventionally prefixed with
// "operation failed: ").
type Handler struct {
	Nullary func(ctx context.Context) string
	Unary   func(ctx context.Context, arg string) string
	Binary  func(ctx context.Context, first, second string) string
}

// arity returns the number of positional arguments the handler takes, or
// -1 when the variant is malformed (none or more than one func set).
func (h Handler) arity() int {
	set := 0
	arity := -1
	if h.Nullary != nil {
		set++
		arity = 0
	}
	if h.Unary != nil {
		set++
		arity = 1
	}
	if h.Binary != nil {
		set++
		arity = 2
	}
	if set != 1 {
		return -1
	}
	return arity
}

// Spec declares one tool: its stable name, the description shown to the
// reasoning loop, its ordered input schema, and its handler.
type Spec struct {
	Name        string
	Description string
	Fields      []Field
	Handler     Handler
}
