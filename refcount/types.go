package refcount

import "encoding/binary"

// Handle is the bit pattern an ownership-bearing field stores: an opaque
// 64-bit reference to a counted object. Handle 0 is the null reference.
type Handle uint64

// LoadHandle reads the handle stored at the start of a field.
func LoadHandle(field []byte) Handle {
	return Handle(binary.LittleEndian.Uint64(field))
}

// StoreHandle writes a handle into a field.
func StoreHandle(field []byte, h Handle) {
	binary.LittleEndian.PutUint64(field, uint64(h))
}

// Funcs is the leaf-operation contract between the lifecycle interpreter
// and the reference-counting subsystem. Each field corresponds to one
// dispatch-table slot and uses one of two argument shapes:
//
//   - direct: the interpreter dereferences the field and passes the
//     stored Handle (single-owning-pointer release/retain style);
//   - in-place: the interpreter passes the field bytes themselves
//     (weak references, unknown-object unowned/weak, blocks), so the
//     leaf can rewrite the field.
//
// Nil fields mark kinds unavailable in this configuration. The
// interpreter wires them to fail-fast stubs; a program produced for this
// platform must never reach one.
type Funcs struct {
	// Direct shape.
	Retain         func(Handle)
	Release        func(Handle)
	ErrorRetain    func(Handle)
	ErrorRelease   func(Handle)
	UnownedRetain  func(Handle)
	UnownedRelease func(Handle)
	UnknownRetain  func(Handle)
	UnknownRelease func(Handle)
	BridgeRetain   func(Handle)
	BridgeRelease  func(Handle)
	ObjCRetain     func(Handle)
	ObjCRelease    func(Handle)
	BlockRelease   func(Handle)

	// In-place shape.
	BlockCopy              func(dst, src []byte)
	WeakDestroy            func(field []byte)
	WeakCopyInit           func(dst, src []byte)
	WeakTakeInit           func(dst, src []byte)
	UnknownUnownedDestroy  func(field []byte)
	UnknownUnownedCopyInit func(dst, src []byte)
	UnknownWeakDestroy     func(field []byte)
	UnknownWeakCopyInit    func(dst, src []byte)
	UnknownWeakTakeInit    func(dst, src []byte)
}
