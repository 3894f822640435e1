package refcount_test

import (
	"testing"

	"github.com/wippyai/layout-runtime/refcount"
)

func TestStrongLifecycle(t *testing.T) {
	h := refcount.NewHeap()
	obj := h.Allocate()

	if got := h.StrongCount(obj); got != 1 {
		t.Fatalf("fresh object strong count: got %d, want 1", got)
	}

	h.Retain(obj)
	if got := h.StrongCount(obj); got != 2 {
		t.Fatalf("after retain: got %d, want 2", got)
	}

	h.Release(obj)
	h.Release(obj)
	if h.Alive(obj) {
		t.Error("object alive after final release")
	}
	if h.Live() != 0 {
		t.Errorf("live objects: got %d, want 0", h.Live())
	}
}

func TestOverreleasePanics(t *testing.T) {
	h := refcount.NewHeap()
	obj := h.Allocate()
	h.Release(obj)

	defer func() {
		if recover() == nil {
			t.Fatal("expected panic on overrelease")
		}
	}()
	h.Release(obj)
}

func TestHandleReuse(t *testing.T) {
	h := refcount.NewHeap()
	first := h.Allocate()
	h.Release(first)

	second := h.Allocate()
	if second != first {
		t.Errorf("freed slot not reused: got %d, want %d", second, first)
	}
	if got := h.StrongCount(second); got != 1 {
		t.Errorf("reused slot strong count: got %d, want 1", got)
	}
}

func TestWeakReferences(t *testing.T) {
	h := refcount.NewHeap()
	obj := h.Allocate()

	field := make([]byte, 8)
	h.WeakInit(field, obj)
	if got := h.WeakCount(obj); got != 1 {
		t.Fatalf("weak count: got %d, want 1", got)
	}

	// Copy-init adds a weak reference; take-init moves one.
	other := make([]byte, 8)
	h.WeakCopyInit(other, field)
	if got := h.WeakCount(obj); got != 2 {
		t.Fatalf("weak count after copy: got %d, want 2", got)
	}

	moved := make([]byte, 8)
	h.WeakTakeInit(moved, other)
	if got := h.WeakCount(obj); got != 2 {
		t.Fatalf("weak count after take: got %d, want 2", got)
	}
	if refcount.LoadHandle(other) != 0 {
		t.Error("take did not consume the source field")
	}

	if got, ok := h.WeakLoad(moved); !ok || got != obj {
		t.Errorf("WeakLoad: got %d, %v", got, ok)
	}

	// Weak references observe death without keeping the object alive.
	h.Release(obj)
	if _, ok := h.WeakLoad(moved); ok {
		t.Error("WeakLoad succeeded on dead object")
	}

	h.WeakDestroy(moved)
	h.WeakDestroy(field)
	if refcount.LoadHandle(field) != 0 {
		t.Error("WeakDestroy did not clear the field")
	}
}

func TestUnownedKeepsSlot(t *testing.T) {
	h := refcount.NewHeap()
	obj := h.Allocate()
	h.UnownedRetain(obj)

	h.Release(obj)
	if h.Alive(obj) {
		t.Fatal("object alive after release")
	}
	// The unowned count still pins the slot, so it must not be reused.
	next := h.Allocate()
	if next == obj {
		t.Fatal("slot reused while unowned count outstanding")
	}
	h.UnownedRelease(obj)
}

func TestFuncsWiring(t *testing.T) {
	h := refcount.NewHeap()
	funcs := h.Funcs()

	obj := h.Allocate()
	field := make([]byte, 8)
	refcount.StoreHandle(field, obj)

	funcs.Retain(obj)
	funcs.UnknownRetain(obj)
	funcs.BridgeRetain(obj)
	if got := h.StrongCount(obj); got != 4 {
		t.Fatalf("strong count: got %d, want 4", got)
	}

	dst := make([]byte, 8)
	funcs.BlockCopy(dst, field)
	if got := h.StrongCount(obj); got != 5 {
		t.Fatalf("strong count after block copy: got %d, want 5", got)
	}
	if refcount.LoadHandle(dst) != obj {
		t.Error("block copy did not store the handle")
	}

	udst := make([]byte, 8)
	funcs.UnknownUnownedCopyInit(udst, field)
	if got := h.UnownedCount(obj); got != 1 {
		t.Fatalf("unowned count: got %d, want 1", got)
	}
	funcs.UnknownUnownedDestroy(udst)
	if got := h.UnownedCount(obj); got != 0 {
		t.Fatalf("unowned count after destroy: got %d, want 0", got)
	}

	for i := 0; i < 5; i++ {
		funcs.Release(obj)
	}
	if h.Live() != 0 {
		t.Errorf("live objects: got %d, want 0", h.Live())
	}
}
