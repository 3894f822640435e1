// Package metadata holds runtime type-metadata records and the registries
// that stand in for raw pointers inside layout programs.
//
// A Type carries the facts the lifecycle interpreter needs: size,
// alignment, the bitwise-takable flag, the generic-argument vector, the
// installed layout program, and a Witnesses strategy for the three
// lifecycle operations.
//
// Layout programs are byte buffers and cannot hold Go pointers, so two
// process-wide registries translate the 8-byte references they carry:
// Register/Lookup for Metatype entries and RegisterAccessor/LookupAccessor
// for Resilient entries. Both registries are append-only and safe for
// concurrent use; registering the same type twice returns the same Ref,
// which is what makes concurrent resilient patching benign.
package metadata
