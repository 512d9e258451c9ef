package domain

import (
	"errors"
	"fmt"
)

// ErrSessionNotFound is returned when a session ID cannot be found in the
// store, or when a requested artifact kind was never produced for it.
var ErrSessionNotFound = errors.New("session not found")

// ErrDuplicateSession is returned by a store insert when the ID is already
// taken. The orchestrator reacts by re-allocating the ID.
var ErrDuplicateSession = errors.New("session id already exists")

// PatternFaultKind classifies structural faults of a supplied pattern
// document.
type PatternFaultKind string

const (
	FaultEmptyPattern            PatternFaultKind = "empty_pattern"
	FaultPanelOrderMismatch      PatternFaultKind = "panel_order_mismatch"
	FaultDanglingStitchReference PatternFaultKind = "dangling_stitch_reference"
)

// PatternValidationError reports a structural inconsistency in a
// caller-supplied pattern document. Terminal for the request.
type PatternValidationError struct {
	Kind   PatternFaultKind
	Detail string
}

func (e *PatternValidationError) Error() string {
	return fmt.Sprintf("invalid pattern (%s): %s", e.Kind, e.Detail)
}

// PatternConstructionError wraps a failure of the pattern-construction
// collaborator.
type PatternConstructionError struct {
	Err error
}

func (e *PatternConstructionError) Error() string {
	return fmt.Sprintf("pattern construction failed: %v", e.Err)
}

func (e *PatternConstructionError) Unwrap() error { return e.Err }

// ExportError wraps a failure of a mesh or vector exporter. Stage names the
// step that failed ("mesh", "svg", "png", "print_pdf", ...). Generation is
// deterministic for a given input, so exports are never retried
// automatically.
type ExportError struct {
	Stage string
	Err   error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export failed at stage %q: %v", e.Stage, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// StorageError wraps a filesystem failure during artifact write or cleanup.
type StorageError struct {
	Op   string
	Path string
	Err  error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("storage %s %q: %v", e.Op, e.Path, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
