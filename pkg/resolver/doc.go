// Package resolver turns design input into a canonical pattern document.
//
// Two entry paths produce the same output type: the indirect path delegates
// a validated design specification to the pattern-construction collaborator,
// and the direct path structurally validates a caller-supplied pattern
// document and passes it through unchanged, skipping construction entirely.
package resolver
