// Package apperr defines the sentinel errors shared by all Summit services.
//
// Domain packages wrap these with fmt.Errorf("pkg: ...: %w", ...) so the
// HTTP layer can map them to status codes with errors.Is without parsing
// message text.
package apperr

import "errors"

var (
	// ErrNotFound marks a missing task, comment, period, node, objective
	// or project referenced by id.
	ErrNotFound = errors.New("not found")

	// ErrValidation marks malformed or missing required input: empty URL,
	// out-of-range index, empty comment, Done without a deliverable.
	ErrValidation = errors.New("invalid input")

	// ErrDuplicate marks a key-result description collision within an
	// objective.
	ErrDuplicate = errors.New("duplicate")
)
