package refcount

// Funcs returns a fully wired leaf-operation table backed by the heap.
//
// The heap has a single object model, so the unknown-object, bridge, ObjC
// and block slots alias the native operations; blocks copy by retaining
// the stored handle. Embedders with real interop wire their own Funcs.
func (h *Heap) Funcs() Funcs {
	blockCopy := func(dst, src []byte) {
		handle := LoadHandle(src)
		h.Retain(handle)
		StoreHandle(dst, handle)
	}

	return Funcs{
		Retain:         h.Retain,
		Release:        h.Release,
		ErrorRetain:    h.Retain,
		ErrorRelease:   h.Release,
		UnownedRetain:  h.UnownedRetain,
		UnownedRelease: h.UnownedRelease,
		UnknownRetain:  h.Retain,
		UnknownRelease: h.Release,
		BridgeRetain:   h.Retain,
		BridgeRelease:  h.Release,
		ObjCRetain:     h.Retain,
		ObjCRelease:    h.Release,
		BlockRelease:   h.Release,

		BlockCopy:              blockCopy,
		WeakDestroy:            h.WeakDestroy,
		WeakCopyInit:           h.WeakCopyInit,
		WeakTakeInit:           h.WeakTakeInit,
		UnknownUnownedDestroy:  h.unownedDestroyField,
		UnknownUnownedCopyInit: h.unownedCopyField,
		UnknownWeakDestroy:     h.WeakDestroy,
		UnknownWeakCopyInit:    h.WeakCopyInit,
		UnknownWeakTakeInit:    h.WeakTakeInit,
	}
}

// unknown-object unowned references are address-sensitive in the ABI, so
// they arrive with the in-place shape even though the heap only needs the
// stored handle.
func (h *Heap) unownedDestroyField(field []byte) {
	handle := LoadHandle(field)
	h.UnownedRelease(handle)
	StoreHandle(field, 0)
}

func (h *Heap) unownedCopyField(dst, src []byte) {
	handle := LoadHandle(src)
	h.UnownedRetain(handle)
	StoreHandle(dst, handle)
}
