package witness

import (
	"fmt"

	"github.com/wippyai/layout-runtime/layout"
	"github.com/wippyai/layout-runtime/metadata"
	"github.com/wippyai/layout-runtime/refcount"
)

// Interp executes lifecycle operations against layout programs. It is
// stateless across calls and safe for unlimited concurrent use over
// different value instances; callers serialize operations touching the
// same value, per the usual exclusive-access discipline.
type Interp struct {
	funcs   refcount.Funcs
	destroy [layout.NumTableKinds]destroyFn
	retain  [layout.NumTableKinds]retainFn
}

// New creates an interpreter bound to a leaf-operation table. Table slots
// left nil are wired to fail-fast stubs.
func New(funcs refcount.Funcs) *Interp {
	in := &Interp{funcs: funcs}
	in.buildTables()
	return in
}

// Destroy releases every ownership-bearing field of the value.
func (in *Interp) Destroy(v []byte, t *metadata.Type) {
	in.walk(t, 0, &destroyHandler{in: in, addr: v})
}

// InitializeWithCopy copies src into the uninitialized dst: a raw byte
// copy first, then an interpreter pass that independently retains or
// deep-copies every ownership-bearing field.
func (in *Interp) InitializeWithCopy(dst, src []byte, t *metadata.Type) {
	copy(dst[:t.Size], src[:t.Size])
	in.walk(t, 0, &copyHandler{in: in, dst: dst, src: src})
}

// InitializeWithTake moves src into the uninitialized dst, consuming src.
// For bitwise-takable types the byte copy alone is correct; otherwise a
// take pass fixes up the address-sensitive kinds the move invalidated.
func (in *Interp) InitializeWithTake(dst, src []byte, t *metadata.Type) {
	copy(dst[:t.Size], src[:t.Size])
	if t.BitwiseTakable {
		return
	}
	in.walk(t, 0, &takeHandler{in: in, dst: dst, src: src})
}

// AssignWithCopy replaces the live value in dst with a copy of src. The
// destination is destroyed first; initializing over a live value would
// leak or double-release.
func (in *Interp) AssignWithCopy(dst, src []byte, t *metadata.Type) {
	in.Destroy(dst, t)
	in.InitializeWithCopy(dst, src, t)
}

// AssignWithTake replaces the live value in dst with src, consuming src.
func (in *Interp) AssignWithTake(dst, src []byte, t *metadata.Type) {
	in.Destroy(dst, t)
	in.InitializeWithTake(dst, src, t)
}

// DestroyFirst replays the destroy pass over at most the first n entries
// of the program. Stopping short of End is by contract, not an error.
func (in *Interp) DestroyFirst(v []byte, t *metadata.Type, n int) {
	in.walk(t, n, &destroyHandler{in: in, addr: v})
}

// RetainFirst replays the retain pass over at most the first n entries.
// The caller is responsible for the raw byte copy of the covered region.
func (in *Interp) RetainFirst(dst, src []byte, t *metadata.Type, n int) {
	in.walk(t, n, &copyHandler{in: in, dst: dst, src: src})
}

// InstallLayout attaches a layout program to a type and binds the
// type's lifecycle witnesses to this interpreter, so Metatype recursion
// into the type routes back through the program.
func (in *Interp) InstallLayout(t *metadata.Type, program []byte) {
	t.InstallLayout(program)
	t.SetWitnesses(genericWitnesses{in: in, t: t})
}

// genericWitnesses adapts the interpreter to the metadata.Witnesses
// strategy for layout-described types.
type genericWitnesses struct {
	in *Interp
	t  *metadata.Type
}

func (w genericWitnesses) Destroy(v []byte)                 { w.in.Destroy(v, w.t) }
func (w genericWitnesses) InitializeWithCopy(dst, src []byte) { w.in.InitializeWithCopy(dst, src, w.t) }
func (w genericWitnesses) InitializeWithTake(dst, src []byte) { w.in.InitializeWithTake(dst, src, w.t) }

// Existential fields recurse through the inner dynamic type's own
// witnesses when the value is stored inline, and fall back to plain box
// handle counting otherwise.

func (in *Interp) existentialDestroy(field []byte) {
	t := containerType(field)
	if t.ValueInline() {
		t.Destroy(metadata.ContainerBuffer(field))
		return
	}
	in.funcs.Release(refcount.LoadHandle(field))
}

func (in *Interp) existentialCopy(dst, src []byte) {
	t := containerType(src)
	if t.ValueInline() {
		t.InitializeWithCopy(metadata.ContainerBuffer(dst), metadata.ContainerBuffer(src))
		return
	}
	// The box handle was already copied bitwise; one more owner now.
	in.funcs.Retain(refcount.LoadHandle(src))
}

func (in *Interp) existentialTake(dst, src []byte) {
	t := containerType(src)
	if t.ValueInline() && !t.BitwiseTakable {
		t.InitializeWithTake(metadata.ContainerBuffer(dst), metadata.ContainerBuffer(src))
	}
	// Boxed or bitwise-takable: the byte move already transferred
	// ownership of the contents.
}

func containerType(v []byte) *metadata.Type {
	t, ok := metadata.ContainerType(v)
	if !ok {
		panic(fmt.Sprintf("witness: existential container holds dangling type reference %d",
			refcount.LoadHandle(v[metadata.ExistentialBufferSize:])))
	}
	return t
}
