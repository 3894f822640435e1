package metadata

import "sync"

// Ref is the 8-byte type reference embedded in layout programs where the
// original ABI stores a raw metadata pointer. Ref 0 is invalid.
type Ref uint64

// AccessorRef identifies a registered resilient-type accessor. It is
// stored in the low 32 bits of a Resilient entry's trailing word, standing
// in for the original's signed relative function displacement.
// AccessorRef 0 is invalid.
type AccessorRef int32

// Accessor resolves a field's type from the owning type's
// generic-argument vector.
type Accessor func(args []*Type) *Type

// The process-wide registries. Programs are shared across the process and
// carry refs, so the tables they resolve against are process-wide too.
var registry struct {
	mu        sync.RWMutex
	types     []*Type
	accessors []Accessor
}

// Register assigns a Ref to a type, or returns the existing one.
// Registering the same *Type twice is idempotent, which keeps concurrent
// resilient patching deterministic.
func Register(t *Type) Ref {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if t.ref != 0 {
		return t.ref
	}
	registry.types = append(registry.types, t)
	t.ref = Ref(len(registry.types))
	return t.ref
}

// Lookup resolves a Ref to its type.
func Lookup(ref Ref) (*Type, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	idx := int(ref) - 1
	if idx < 0 || idx >= len(registry.types) {
		return nil, false
	}
	return registry.types[idx], true
}

// RegisterAccessor registers a resilient-type accessor and returns its
// reference.
func RegisterAccessor(fn Accessor) AccessorRef {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	registry.accessors = append(registry.accessors, fn)
	return AccessorRef(len(registry.accessors))
}

// LookupAccessor resolves an accessor reference.
func LookupAccessor(ref AccessorRef) (Accessor, bool) {
	registry.mu.RLock()
	defer registry.mu.RUnlock()

	idx := int(ref) - 1
	if idx < 0 || idx >= len(registry.accessors) {
		return nil, false
	}
	return registry.accessors[idx], true
}
