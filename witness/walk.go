package witness

import (
	"fmt"

	"github.com/wippyai/layout-runtime/layout"
	"github.com/wippyai/layout-runtime/metadata"
)

// handler is the per-operation strategy the traversal dispatches into.
// The walk itself only decodes entries and accumulates offsets; handlers
// decide which table to consult and how many addresses to pass.
type handler interface {
	handleMetatype(ft *metadata.Type, addrOffset uint64)
	handleEnum(program []byte, offset *int, addrOffset *uint64)
	handleReference(kind layout.RefKind, addrOffset uint64)
}

// walk runs the traversal over a type's layout program. n == 0 walks to
// the End entry; n > 0 replays at most the first n entries, stopping
// early only if End is reached first. All traversal state lives on this
// frame, so concurrent walks over different values need no coordination.
func (in *Interp) walk(t *metadata.Type, n int, h handler) {
	program := t.Layout()
	if program == nil {
		panic(fmt.Sprintf("witness: type %q has no layout program installed", t.Name))
	}

	offset := layout.HeaderSize
	var addrOffset uint64

	if n <= 0 {
		for in.step(t, program, &offset, &addrOffset, h) {
		}
		return
	}
	for i := 0; i < n; i++ {
		if !in.step(t, program, &offset, &addrOffset, h) {
			return
		}
	}
}

// step decodes one entry, adds its skip distance to the address offset,
// and dispatches. Returns false when the End entry is reached.
func (in *Interp) step(t *metadata.Type, program []byte, offset *int, addrOffset *uint64, h handler) bool {
	kind, skip := layout.UnpackEntry(layout.ReadUint64(program, offset))
	*addrOffset += skip

	switch kind {
	case layout.KindEnd:
		return false
	case layout.KindMetatype:
		ref := metadata.Ref(layout.ReadUint64(program, offset))
		ft, ok := metadata.Lookup(ref)
		if !ok {
			panic(fmt.Sprintf("witness: dangling type reference %d in layout program", ref))
		}
		h.handleMetatype(ft, *addrOffset)
	case layout.KindResilient:
		h.handleMetatype(resolveResilient(t, program, offset), *addrOffset)
	case layout.KindSinglePayloadEnumSimple:
		h.handleEnum(program, offset, addrOffset)
	default:
		h.handleReference(kind, *addrOffset)
	}
	return true
}

// destroyHandler consults the destroy table with the field address.
type destroyHandler struct {
	in   *Interp
	addr []byte
}

func (h *destroyHandler) handleMetatype(ft *metadata.Type, addrOffset uint64) {
	ft.Destroy(h.addr[addrOffset:])
}

func (h *destroyHandler) handleEnum(program []byte, offset *int, addrOffset *uint64) {
	evalSinglePayloadEnum(program, offset, h.addr, addrOffset)
}

func (h *destroyHandler) handleReference(kind layout.RefKind, addrOffset uint64) {
	h.in.destroyFor(kind)(h.addr[addrOffset:])
}

// copyHandler consults the retain table with destination and source. The
// destination holds the shallow bits by the time the handler runs.
type copyHandler struct {
	in  *Interp
	dst []byte
	src []byte
}

func (h *copyHandler) handleMetatype(ft *metadata.Type, addrOffset uint64) {
	ft.InitializeWithCopy(h.dst[addrOffset:], h.src[addrOffset:])
}

func (h *copyHandler) handleEnum(program []byte, offset *int, addrOffset *uint64) {
	evalSinglePayloadEnum(program, offset, h.src, addrOffset)
}

func (h *copyHandler) handleReference(kind layout.RefKind, addrOffset uint64) {
	h.in.retainFor(kind)(h.dst[addrOffset:], h.src[addrOffset:])
}

// takeHandler fixes up the kinds a raw byte move does not handle. Every
// trivially movable kind was already taken care of by the memcpy, so it
// is left untouched here.
type takeHandler struct {
	in  *Interp
	dst []byte
	src []byte
}

func (h *takeHandler) handleMetatype(ft *metadata.Type, addrOffset uint64) {
	if !ft.BitwiseTakable {
		ft.InitializeWithTake(h.dst[addrOffset:], h.src[addrOffset:])
	}
}

func (h *takeHandler) handleEnum(program []byte, offset *int, addrOffset *uint64) {
	evalSinglePayloadEnum(program, offset, h.src, addrOffset)
}

func (h *takeHandler) handleReference(kind layout.RefKind, addrOffset uint64) {
	switch kind {
	case layout.KindWeak:
		h.in.funcs.WeakTakeInit(h.dst[addrOffset:], h.src[addrOffset:])
	case layout.KindUnknownWeak:
		h.in.funcs.UnknownWeakTakeInit(h.dst[addrOffset:], h.src[addrOffset:])
	case layout.KindExistential:
		h.in.existentialTake(h.dst[addrOffset:], h.src[addrOffset:])
	}
}
