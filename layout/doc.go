// Package layout defines the layout-program wire format.
//
// A layout program is the per-type byte encoding of every
// ownership-relevant field of a value, in ascending memory-offset order.
// It is produced once during type-metadata construction and walked by the
// witness package at every destroy, copy-initialize and take-initialize.
//
// # Program structure
//
//	┌──────────────────────┬──────────────────────────────┬─────┐
//	│ header (16 bytes)    │ entries (variable length)    │ End │
//	└──────────────────────┴──────────────────────────────┴─────┘
//
// Every entry begins with one little-endian uint64: the low 56 bits are
// the skip distance (raw bytes to advance before acting), the high 8 bits
// the reference kind. Depending on the kind, fixed-width trailing fields
// follow:
//
//	Kind                     Trailing fields
//	─────────────────────────────────────────────────────────────
//	simple kinds             none
//	metatype                 type reference (8 bytes)
//	resilient                accessor reference (8 bytes, low 32 used)
//	single-payload-enum      packed word, payload size, zero-tag value,
//	                         inhabitant count, sub-program length, skip,
//	                         then the nested sub-program bytes
//	end                      none
//
// The resilient and metatype trailing fields are the same width so the
// one-time resilient resolution can rewrite entries in place without
// shifting anything after them.
//
// # Key types
//
//	Builder      - producer-side program construction
//	Entry        - decoded instruction (tooling only)
//	Disassemble  - program -> []Entry with structured errors
//	Validate     - well-formedness and size accounting checks
//
// Cursor functions (ReadUint64, ReadWord, WriteUint64, ReadTagBytes, ...)
// are the zero-overhead decoding primitives the interpreter uses. They do
// not bounds-check beyond Go's slice semantics: a malformed program on
// the hot path is a precondition violation, not a recoverable error.
package layout
