package metadata

import (
	"encoding/binary"

	"github.com/wippyai/layout-runtime/layout"
)

// Existential container ABI: a fixed-size in-memory box holding a value
// of some dynamically chosen type next to that type's identity.
//
//	┌───────────────────────────────┬──────────────┐
//	│ value buffer (3 words)        │ type Ref     │
//	└───────────────────────────────┴──────────────┘
//
// Small values live inline in the buffer; larger ones live out of line
// behind a strong box handle stored in the buffer's first word.
const (
	ExistentialBufferWords = 3
	ExistentialBufferSize  = ExistentialBufferWords * layout.WordSize
	ExistentialSize        = ExistentialBufferSize + layout.WordSize
)

// ContainerType reads the dynamic type out of an existential container.
func ContainerType(v []byte) (*Type, bool) {
	ref := Ref(binary.LittleEndian.Uint64(v[ExistentialBufferSize:]))
	return Lookup(ref)
}

// SetContainerType writes the dynamic type reference of a container.
// The type must already be registered.
func SetContainerType(v []byte, t *Type) {
	binary.LittleEndian.PutUint64(v[ExistentialBufferSize:], uint64(Register(t)))
}

// ContainerBuffer returns the container's inline value buffer.
func ContainerBuffer(v []byte) []byte {
	return v[:ExistentialBufferSize]
}

// ValueInline reports whether a value of the type is stored inline in an
// existential buffer, as opposed to out of line behind a box handle.
func (t *Type) ValueInline() bool {
	return t.Size <= ExistentialBufferSize && t.Align <= layout.WordSize
}
