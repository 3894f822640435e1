// Package errors provides structured error types for the layout runtime.
//
// Errors carry a Phase (where processing failed), a Kind (what failed),
// an optional byte offset into the layout program, and an optional cause.
// The rendered form is stable and grep-friendly:
//
//	[parse] unknown_tag at offset 24: unknown reference kind 0x7f
//	[validate] truncated at offset 56: program truncated reading metatype reference
//
// Only the tooling surfaces (disassembler, validator, builder, fixtures)
// return errors. The interpreter hot path has no recoverable-error channel:
// malformed programs and unsupported platform kinds are precondition
// violations and fail fast by panicking.
package errors
