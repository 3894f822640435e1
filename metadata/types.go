package metadata

import "fmt"

// Witnesses is the strategy a Type uses for its three lifecycle
// operations. Leaf types (references, primitives with cleanup, boxes)
// supply hand-written witnesses; layout-described types get generic
// witnesses bound by the witness package.
type Witnesses interface {
	Destroy(v []byte)
	InitializeWithCopy(dst, src []byte)
	InitializeWithTake(dst, src []byte)
}

// Type is a runtime type-metadata record: the fixed per-type facts the
// lifecycle interpreter consumes. Layout programs reference Types through
// registry Refs rather than raw pointers.
type Type struct {
	Name           string
	Size           uint64
	Align          uint64
	BitwiseTakable bool

	// GenericArgs is the generic-argument vector handed to resilient
	// field accessors.
	GenericArgs []*Type

	layout    []byte
	witnesses Witnesses
	ref       Ref // assigned on first Register
}

// InstallLayout attaches a previously constructed layout program to the
// record. A pure pointer store: no validation happens at this layer, and
// installation must precede any lifecycle operation on values of the type.
func (t *Type) InstallLayout(program []byte) {
	t.layout = program
}

// Layout returns the installed layout program, or nil.
func (t *Type) Layout() []byte {
	return t.layout
}

// HasLayout reports whether a layout program is installed.
func (t *Type) HasLayout() bool {
	return t.layout != nil
}

// SetWitnesses installs the lifecycle strategy for the type.
func (t *Type) SetWitnesses(w Witnesses) {
	t.witnesses = w
}

func (t *Type) mustWitnesses() Witnesses {
	if t.witnesses == nil {
		panic(fmt.Sprintf("metadata: type %q has no value witnesses", t.Name))
	}
	return t.witnesses
}

// Destroy runs the type's destroy witness against a value.
func (t *Type) Destroy(v []byte) {
	t.mustWitnesses().Destroy(v)
}

// InitializeWithCopy runs the type's copy-initialize witness.
func (t *Type) InitializeWithCopy(dst, src []byte) {
	t.mustWitnesses().InitializeWithCopy(dst, src)
}

// InitializeWithTake runs the type's take-initialize witness.
func (t *Type) InitializeWithTake(dst, src []byte) {
	t.mustWitnesses().InitializeWithTake(dst, src)
}
