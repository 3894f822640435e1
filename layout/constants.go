package layout

// Layout program framing.
const (
	// HeaderSize is the fixed length of the program header: an 8-byte
	// reserved field followed by one word of producer-side bookkeeping.
	// The interpreter skips the header and never interprets it.
	HeaderSize = 8 + WordSize

	// WordSize is the width of a "platform word" in the wire format.
	// The encoding is pinned to 8-byte little-endian words regardless of
	// the host platform.
	WordSize = 8
)

// Entry header packing: one uint64 whose low 56 bits carry the skip
// distance (raw, ownerless bytes to advance before acting) and whose high
// 8 bits carry the reference kind.
const (
	KindShift = 56
	SkipMask  = (uint64(1) << KindShift) - 1
)

// RefKind classifies how the field at the current offset participates in
// ownership. The tag values are part of the wire contract.
type RefKind uint8

const (
	KindEnd            RefKind = 0x00 // terminates the walk
	KindError          RefKind = 0x01 // error reference
	KindStrong         RefKind = 0x02 // native strong reference
	KindUnowned        RefKind = 0x03 // native unowned reference
	KindWeak           RefKind = 0x04 // native weak reference (in-place)
	KindUnknown        RefKind = 0x05 // unknown-object reference
	KindUnknownUnowned RefKind = 0x06 // unknown-object unowned (in-place)
	KindUnknownWeak    RefKind = 0x07 // unknown-object weak (in-place)
	KindBridge         RefKind = 0x08 // bridged-object reference
	KindBlock          RefKind = 0x09 // block reference (interop)
	KindObjC           RefKind = 0x0A // ObjC object reference (interop)
	KindCustom1        RefKind = 0x0B // reserved custom slot
	KindCustom2        RefKind = 0x0C // reserved custom slot
	KindCustom3        RefKind = 0x0D // reserved custom slot
	KindExistential    RefKind = 0x0E // existential container (in-place)

	// Kinds below never consult the dispatch tables.
	KindResilient               RefKind = 0x0F // unresolved field type, accessor follows
	KindMetatype                RefKind = 0x10 // resolved field type, reference follows
	KindSinglePayloadEnumSimple RefKind = 0x11 // spare-bit single-payload enum
)

// NumTableKinds is the size of the destroy/retain dispatch tables. Kinds
// at or above this value are classified before table dispatch.
const NumTableKinds = 0x0F

var kindNames = [...]string{
	KindEnd:                     "end",
	KindError:                   "error",
	KindStrong:                  "strong",
	KindUnowned:                 "unowned",
	KindWeak:                    "weak",
	KindUnknown:                 "unknown",
	KindUnknownUnowned:          "unknown-unowned",
	KindUnknownWeak:             "unknown-weak",
	KindBridge:                  "bridge",
	KindBlock:                   "block",
	KindObjC:                    "objc",
	KindCustom1:                 "custom1",
	KindCustom2:                 "custom2",
	KindCustom3:                 "custom3",
	KindExistential:             "existential",
	KindResilient:               "resilient",
	KindMetatype:                "metatype",
	KindSinglePayloadEnumSimple: "single-payload-enum",
}

func (k RefKind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}
	return "unknown-kind"
}

// Known reports whether k is a defined wire tag.
func (k RefKind) Known() bool {
	return k <= KindSinglePayloadEnumSimple
}

// PackEntry combines a reference kind and a skip distance into an entry
// header word. Skip distances wider than 56 bits are a producer bug.
func PackEntry(kind RefKind, skip uint64) uint64 {
	return uint64(kind)<<KindShift | (skip & SkipMask)
}

// UnpackEntry splits an entry header word into kind and skip distance.
func UnpackEntry(word uint64) (RefKind, uint64) {
	return RefKind(word >> KindShift), word & SkipMask
}

// SinglePayloadEnumSimple trailing-word packing: bits 63..62 hold the
// extra-tag-bytes pattern, bits 61..59 the extra-inhabitant tag-bytes
// pattern, and bits 31..0 the byte offset of the inhabitant tag window.
const (
	ExtraTagPatternShift = 62
	XITagPatternShift    = 59
	XITagPatternMask     = 0x7
	XITagOffsetMask      = 0xFFFFFFFF
)

// EnumFixedSize is the byte length of a SinglePayloadEnumSimple entry's
// fixed trailing fields (everything after the header word, before the
// nested sub-program).
const EnumFixedSize = 8 + WordSize + 8 + WordSize + WordSize + WordSize

// TagBytes expands a 2- or 3-bit tag-bytes pattern into a byte count.
// Pattern 0 means the field is absent.
func TagBytes(pattern uint8) int {
	if pattern == 0 {
		return 0
	}
	return 1 << (pattern - 1)
}
