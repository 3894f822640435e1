// Package witness interprets layout programs to implement the generic
// value-lifecycle operations: destroy, copy-initialize, take-initialize
// and the two assignment forms built from them.
//
// An Interp binds a table of leaf reference-counting calls
// (refcount.Funcs) to the fixed set of reference kinds. Each lifecycle
// call decodes the type's layout program entry by entry, accumulates
// skip distances into a running byte offset, and dispatches the kind
// through the destroy or retain table at that offset:
//
//	program:  [header] [strong skip=16] [weak skip=9] [end skip=8]
//	                        │                │
//	value:    ┌─────────────▼────────────────▼─────────────┐
//	          │ 16 plain bytes │ handle │ 1B │ weak handle │
//	          └───────────────────────────────────────────-┘
//
// Composite entries recurse: Metatype entries dispatch into the
// referenced type's own witnesses, Resilient entries resolve their
// accessor first (and can be patched into Metatype entries up front via
// ResolveAndPatch), and single-payload enum entries inspect the value to
// decide between the nested payload sub-program and the no-payload skip.
//
// Take is move semantics: a raw byte copy handles every bitwise-takable
// field, and the take pass only fixes up the address-sensitive kinds
// (weak families, non-takable nested types, inline existentials).
package witness
