package witness

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/wippyai/layout-runtime/layout"
	"github.com/wippyai/layout-runtime/metadata"
)

// resolveResilient reads a Resilient entry's accessor reference and
// invokes the accessor against the owning type's generic arguments to
// obtain the field's metadata. The trailing word is consumed.
func resolveResilient(owner *metadata.Type, program []byte, offset *int) *metadata.Type {
	word := layout.ReadUint64(program, offset)
	ref := metadata.AccessorRef(int32(uint32(word)))

	fn, ok := metadata.LookupAccessor(ref)
	if !ok {
		panic(fmt.Sprintf("witness: unregistered type accessor %d in layout program", ref))
	}
	ft := fn(owner.GenericArgs)
	if ft == nil {
		panic(fmt.Sprintf("witness: type accessor %d returned no metadata", ref))
	}
	return ft
}

// ResolveAndPatch rewrites every Resilient entry within
// [start, start+refCountBytes) of the program into a Metatype entry
// carrying the resolved type reference, preserving the skip distance.
// This trades one-time resolution cost for zero-cost dispatch on every
// later lifecycle call.
//
// The rewrite occupies exactly the bytes of the original entry, so
// nothing after it shifts. The resolved reference is deterministic for a
// given owner, which makes racing patches of the same entry benign:
// every racer writes the same bytes.
func ResolveAndPatch(program []byte, start, refCountBytes int, owner *metadata.Type) {
	i := start
	end := start + refCountBytes
	for i < end {
		current := i
		kind, skip := layout.UnpackEntry(layout.ReadUint64(program, &i))

		switch kind {
		case layout.KindResilient:
			ft := resolveResilient(owner, program, &i)
			ref := metadata.Register(ft)
			w := current
			layout.WriteUint64(program, &w, layout.PackEntry(layout.KindMetatype, skip))
			layout.WriteUint64(program, &w, uint64(ref))
			Logger().Debug("patched resilient entry",
				zap.Int("offset", current),
				zap.String("type", ft.Name))
		case layout.KindMetatype:
			i += layout.WordSize
		case layout.KindSinglePayloadEnumSimple:
			// Fixed trailing fields only; the nested sub-program's own
			// entries are scanned by the surrounding loop.
			i += layout.EnumFixedSize
		}
	}
}

// ResolveLayout patches a type's entire installed program in place.
// Idempotent: patching an already patched program is a no-op.
func ResolveLayout(t *metadata.Type) {
	program := t.Layout()
	if program == nil {
		return
	}
	ResolveAndPatch(program, layout.HeaderSize, len(program)-layout.HeaderSize, t)
}
