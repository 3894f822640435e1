package witness

import (
	"fmt"

	"github.com/wippyai/layout-runtime/layout"
	"github.com/wippyai/layout-runtime/refcount"
)

// The two dispatch tables map a reference kind to a leaf call. Destroy
// entries take the field bytes; retain entries take destination and
// source field bytes (the destination already holds the shallow-copied
// bits). Direct kinds dereference the stored handle before calling the
// leaf; in-place kinds hand the field itself over.
type (
	destroyFn func(field []byte)
	retainFn  func(dst, src []byte)
)

func unsupportedDestroy(kind layout.RefKind) destroyFn {
	return func([]byte) {
		panic(fmt.Sprintf("witness: reference kind %q not supported in this configuration", kind))
	}
}

func unsupportedRetain(kind layout.RefKind) retainFn {
	return func(_, _ []byte) {
		panic(fmt.Sprintf("witness: reference kind %q not supported in this configuration", kind))
	}
}

func (in *Interp) buildTables() {
	f := in.funcs

	directDestroy := func(kind layout.RefKind, fn func(refcount.Handle)) destroyFn {
		if fn == nil {
			return unsupportedDestroy(kind)
		}
		return func(field []byte) { fn(refcount.LoadHandle(field)) }
	}
	inPlaceDestroy := func(kind layout.RefKind, fn func([]byte)) destroyFn {
		if fn == nil {
			return unsupportedDestroy(kind)
		}
		return fn
	}
	directRetain := func(kind layout.RefKind, fn func(refcount.Handle)) retainFn {
		if fn == nil {
			return unsupportedRetain(kind)
		}
		// The destination holds the shallow-copied bits by the time the
		// retain pass runs, so the handle is read from there.
		return func(dst, _ []byte) { fn(refcount.LoadHandle(dst)) }
	}
	inPlaceRetain := func(kind layout.RefKind, fn func(dst, src []byte)) retainFn {
		if fn == nil {
			return unsupportedRetain(kind)
		}
		return fn
	}

	// End never dispatches; slot 0 stays a no-op placeholder.
	in.destroy[layout.KindEnd] = func([]byte) {}
	in.destroy[layout.KindError] = directDestroy(layout.KindError, f.ErrorRelease)
	in.destroy[layout.KindStrong] = directDestroy(layout.KindStrong, f.Release)
	in.destroy[layout.KindUnowned] = directDestroy(layout.KindUnowned, f.UnownedRelease)
	in.destroy[layout.KindWeak] = inPlaceDestroy(layout.KindWeak, f.WeakDestroy)
	in.destroy[layout.KindUnknown] = directDestroy(layout.KindUnknown, f.UnknownRelease)
	in.destroy[layout.KindUnknownUnowned] = inPlaceDestroy(layout.KindUnknownUnowned, f.UnknownUnownedDestroy)
	in.destroy[layout.KindUnknownWeak] = inPlaceDestroy(layout.KindUnknownWeak, f.UnknownWeakDestroy)
	in.destroy[layout.KindBridge] = directDestroy(layout.KindBridge, f.BridgeRelease)
	in.destroy[layout.KindBlock] = directDestroy(layout.KindBlock, f.BlockRelease)
	in.destroy[layout.KindObjC] = directDestroy(layout.KindObjC, f.ObjCRelease)
	in.destroy[layout.KindCustom1] = unsupportedDestroy(layout.KindCustom1)
	in.destroy[layout.KindCustom2] = unsupportedDestroy(layout.KindCustom2)
	in.destroy[layout.KindCustom3] = unsupportedDestroy(layout.KindCustom3)
	in.destroy[layout.KindExistential] = in.existentialDestroy

	in.retain[layout.KindEnd] = func(_, _ []byte) {}
	in.retain[layout.KindError] = directRetain(layout.KindError, f.ErrorRetain)
	in.retain[layout.KindStrong] = directRetain(layout.KindStrong, f.Retain)
	in.retain[layout.KindUnowned] = directRetain(layout.KindUnowned, f.UnownedRetain)
	in.retain[layout.KindWeak] = inPlaceRetain(layout.KindWeak, f.WeakCopyInit)
	in.retain[layout.KindUnknown] = directRetain(layout.KindUnknown, f.UnknownRetain)
	in.retain[layout.KindUnknownUnowned] = inPlaceRetain(layout.KindUnknownUnowned, f.UnknownUnownedCopyInit)
	in.retain[layout.KindUnknownWeak] = inPlaceRetain(layout.KindUnknownWeak, f.UnknownWeakCopyInit)
	in.retain[layout.KindBridge] = directRetain(layout.KindBridge, f.BridgeRetain)
	in.retain[layout.KindBlock] = inPlaceRetain(layout.KindBlock, f.BlockCopy)
	in.retain[layout.KindObjC] = directRetain(layout.KindObjC, f.ObjCRetain)
	in.retain[layout.KindCustom1] = unsupportedRetain(layout.KindCustom1)
	in.retain[layout.KindCustom2] = unsupportedRetain(layout.KindCustom2)
	in.retain[layout.KindCustom3] = unsupportedRetain(layout.KindCustom3)
	in.retain[layout.KindExistential] = in.existentialCopy
}

func (in *Interp) destroyFor(kind layout.RefKind) destroyFn {
	if kind >= layout.NumTableKinds {
		panic(fmt.Sprintf("witness: unknown reference kind 0x%02x", uint8(kind)))
	}
	return in.destroy[kind]
}

func (in *Interp) retainFor(kind layout.RefKind) retainFn {
	if kind >= layout.NumTableKinds {
		panic(fmt.Sprintf("witness: unknown reference kind 0x%02x", uint8(kind)))
	}
	return in.retain[kind]
}
