// Package layoutruntime provides a bytecode-driven interpreter for
// generic value-lifecycle operations.
//
// Types whose layout is only known at runtime describe themselves with a
// compact layout program: a sequence of skip distances and reference
// kinds covering every ownership-bearing field of a value. One shared
// interpreter then implements destroy, copy and move for all such types,
// replacing per-type specialized lifecycle code.
//
// # Architecture Overview
//
// The library is organized into several packages with distinct
// responsibilities:
//
//	layoutruntime/       Root package (this overview)
//	├── layout/          Wire format: constants, codec, builder,
//	│                    disassembler and validator for layout programs
//	├── metadata/        Runtime type records, the type and accessor
//	│                    registries, existential container ABI
//	├── refcount/        Leaf operation contract (Funcs) and a counted
//	│                    heap reference implementation
//	├── witness/         The interpreter: walks programs and dispatches
//	│                    lifecycle operations through kind tables
//	├── errors/          Structured error types for debugging
//	└── cmd/inspect/     CLI and TUI for disassembling, validating and
//	                     single-stepping layout programs
//
// # Quick Start
//
// Describe a type, install its program, and run lifecycle operations:
//
//	heap := refcount.NewHeap()
//	in := witness.New(heap.Funcs())
//
//	t := &metadata.Type{Name: "Node", Size: 24, Align: 8}
//	in.InstallLayout(t, layout.NewBuilder().
//	    Ref(layout.KindStrong, 0). // owning reference at offset 0
//	    Ref(layout.KindWeak, 8).   // weak reference at offset 8
//	    End(8).
//	    MustProgram())
//
//	dst := make([]byte, t.Size)
//	in.InitializeWithCopy(dst, src, t)
//	in.Destroy(dst, t)
//
// # Thread Safety
//
// The interpreter carries no per-operation state and is safe for
// concurrent use over different values. Operations on the same value
// require external synchronization, with one deliberate exception:
// resilient-entry patching writes deterministic bytes in place, so
// concurrent patching of the same program is benign.
//
// # Preconditions
//
// Layout programs are trusted input produced by a cooperating metadata
// producer. The interpreter validates nothing on the hot path; malformed
// programs have undefined behavior. The layout package's Disassemble and
// Validate exist for the tooling path, where structured errors are
// preferred over speed.
package layoutruntime
