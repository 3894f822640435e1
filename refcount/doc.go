// Package refcount defines the leaf reference-counting operations the
// lifecycle interpreter dispatches to, and provides an in-process
// reference implementation.
//
// The interpreter itself never counts anything: it classifies fields and
// calls the one- or two-argument leaf operations supplied through a Funcs
// value. Production embedders hand in their own table; tests and the
// inspect tool use Heap, a counted-object store with strong, unowned and
// weak counts and full introspection.
//
// Field contents are opaque 64-bit Handles. Weak fields store the target
// handle directly; the weak count keeps the slot (not the object) alive
// so a dead target is observable through WeakLoad.
package refcount
