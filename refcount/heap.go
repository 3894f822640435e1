package refcount

import (
	"fmt"
	"sync"
)

// Heap is an in-process counted-object store: the reference
// implementation of the leaf operations the interpreter calls. Objects
// carry independent strong, unowned and weak counts. The object dies when
// its strong count reaches zero; its slot is reclaimed once unowned and
// weak counts drain too.
type Heap struct {
	entries  []object
	freeList []Handle
	mu       sync.Mutex
}

type object struct {
	strong  uint32
	unowned uint32
	weak    uint32
	alive   bool // strong count has not reached zero
	valid   bool // slot in use
}

// NewHeap creates an empty heap.
func NewHeap() *Heap {
	return &Heap{
		entries:  make([]object, 0, 64),
		freeList: make([]Handle, 0, 16),
	}
}

// Allocate creates a new object with a strong count of one.
func (h *Heap) Allocate() Handle {
	h.mu.Lock()
	defer h.mu.Unlock()

	o := object{strong: 1, alive: true, valid: true}
	if len(h.freeList) > 0 {
		handle := h.freeList[len(h.freeList)-1]
		h.freeList = h.freeList[:len(h.freeList)-1]
		h.entries[handle-1] = o
		return handle
	}
	h.entries = append(h.entries, o)
	return Handle(len(h.entries))
}

func (h *Heap) get(handle Handle, op string) *object {
	idx := int(handle) - 1
	if idx < 0 || idx >= len(h.entries) || !h.entries[idx].valid {
		panic(fmt.Sprintf("refcount: %s of invalid handle %d", op, handle))
	}
	return &h.entries[idx]
}

func (h *Heap) maybeFree(handle Handle, o *object) {
	if !o.alive && o.unowned == 0 && o.weak == 0 {
		*o = object{}
		h.freeList = append(h.freeList, handle)
	}
}

// Retain increments the strong count.
func (h *Heap) Retain(handle Handle) {
	if handle == 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	o := h.get(handle, "retain")
	if !o.alive {
		panic(fmt.Sprintf("refcount: retain of dead object %d", handle))
	}
	o.strong++
}

// Release decrements the strong count; the object dies at zero.
func (h *Heap) Release(handle Handle) {
	if handle == 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	o := h.get(handle, "release")
	if !o.alive || o.strong == 0 {
		panic(fmt.Sprintf("refcount: overrelease of object %d", handle))
	}
	o.strong--
	if o.strong == 0 {
		o.alive = false
		h.maybeFree(handle, o)
	}
}

// UnownedRetain increments the unowned count.
func (h *Heap) UnownedRetain(handle Handle) {
	if handle == 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.get(handle, "unowned retain").unowned++
}

// UnownedRelease decrements the unowned count.
func (h *Heap) UnownedRelease(handle Handle) {
	if handle == 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	o := h.get(handle, "unowned release")
	if o.unowned == 0 {
		panic(fmt.Sprintf("refcount: unowned overrelease of object %d", handle))
	}
	o.unowned--
	h.maybeFree(handle, o)
}

// WeakInit stores a weak reference to handle into a field.
func (h *Heap) WeakInit(field []byte, handle Handle) {
	if handle != 0 {
		h.mu.Lock()
		h.get(handle, "weak init").weak++
		h.mu.Unlock()
	}
	StoreHandle(field, handle)
}

// WeakCopyInit initializes dst as an additional weak reference to
// whatever src weakly references.
func (h *Heap) WeakCopyInit(dst, src []byte) {
	handle := LoadHandle(src)
	if handle != 0 {
		h.mu.Lock()
		h.get(handle, "weak copy").weak++
		h.mu.Unlock()
	}
	StoreHandle(dst, handle)
}

// WeakTakeInit moves the weak reference from src to dst. The weak count
// is unchanged; src is consumed.
func (h *Heap) WeakTakeInit(dst, src []byte) {
	StoreHandle(dst, LoadHandle(src))
	StoreHandle(src, 0)
}

// WeakDestroy drops the weak reference stored in a field.
func (h *Heap) WeakDestroy(field []byte) {
	handle := LoadHandle(field)
	if handle == 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	o := h.get(handle, "weak destroy")
	if o.weak == 0 {
		panic(fmt.Sprintf("refcount: weak overrelease of object %d", handle))
	}
	o.weak--
	h.maybeFree(handle, o)
	StoreHandle(field, 0)
}

// WeakLoad returns the weakly referenced handle, or 0 if the object died.
func (h *Heap) WeakLoad(field []byte) (Handle, bool) {
	handle := LoadHandle(field)
	if handle == 0 {
		return 0, false
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	idx := int(handle) - 1
	if idx < 0 || idx >= len(h.entries) {
		return 0, false
	}
	o := h.entries[idx]
	if !o.valid || !o.alive {
		return 0, false
	}
	return handle, true
}

// StrongCount returns the current strong count, or 0 for reclaimed slots.
func (h *Heap) StrongCount(handle Handle) uint32 {
	return h.count(handle, func(o object) uint32 { return o.strong })
}

// UnownedCount returns the current unowned count.
func (h *Heap) UnownedCount(handle Handle) uint32 {
	return h.count(handle, func(o object) uint32 { return o.unowned })
}

// WeakCount returns the current weak count.
func (h *Heap) WeakCount(handle Handle) uint32 {
	return h.count(handle, func(o object) uint32 { return o.weak })
}

func (h *Heap) count(handle Handle, f func(object) uint32) uint32 {
	h.mu.Lock()
	defer h.mu.Unlock()

	idx := int(handle) - 1
	if idx < 0 || idx >= len(h.entries) || !h.entries[idx].valid {
		return 0
	}
	return f(h.entries[idx])
}

// Alive reports whether the object's strong count is still positive.
func (h *Heap) Alive(handle Handle) bool {
	h.mu.Lock()
	defer h.mu.Unlock()

	idx := int(handle) - 1
	if idx < 0 || idx >= len(h.entries) {
		return false
	}
	return h.entries[idx].valid && h.entries[idx].alive
}

// Live returns the number of objects with a positive strong count.
func (h *Heap) Live() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	count := 0
	for _, o := range h.entries {
		if o.valid && o.alive {
			count++
		}
	}
	return count
}
