// Package garment constructs canonical pattern documents from validated
// design specifications. It resolves per-side asymmetry first and then emits
// one panel set per body half, so a left override never perturbs the right
// half of the output.
package garment
