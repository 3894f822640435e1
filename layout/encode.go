package layout

import (
	"encoding/binary"

	"github.com/wippyai/layout-runtime/errors"
)

// Builder constructs layout programs in the wire encoding. It is the
// producer-side counterpart of the interpreter: tests, tooling and
// external metadata producers use it; the interpreter only consumes the
// resulting bytes.
//
// A Builder is append-only. Entries must be added in ascending
// memory-offset order and the program must be closed with End before
// Program is called.
type Builder struct {
	buf   []byte
	ended bool
}

// NewBuilder creates a builder with a zeroed header already reserved.
func NewBuilder() *Builder {
	return &Builder{buf: make([]byte, HeaderSize, HeaderSize+64)}
}

func (b *Builder) appendUint64(v uint64) {
	var tmp [8]byte
	binary.LittleEndian.PutUint64(tmp[:], v)
	b.buf = append(b.buf, tmp[:]...)
}

// Ref appends a simple reference entry: skip raw bytes, then act on the
// field with the leaf operation selected by kind.
func (b *Builder) Ref(kind RefKind, skip uint64) *Builder {
	b.appendUint64(PackEntry(kind, skip))
	return b
}

// Metatype appends an entry whose field type is already resolved to a
// registered type reference.
func (b *Builder) Metatype(skip uint64, ref uint64) *Builder {
	b.appendUint64(PackEntry(KindMetatype, skip))
	b.appendUint64(ref)
	return b
}

// Resilient appends a placeholder entry carrying an accessor reference.
// The trailing field occupies one word so an in-place rewrite to Metatype
// never shifts subsequent entries.
func (b *Builder) Resilient(skip uint64, accessor int32) *Builder {
	b.appendUint64(PackEntry(KindResilient, skip))
	b.appendUint64(uint64(uint32(accessor)))
	return b
}

// Enum describes a SinglePayloadEnumSimple entry for the builder.
type Enum struct {
	ExtraTagPattern uint8  // 0 absent, else 1<<(p-1) tag bytes after the payload
	XITagPattern    uint8  // 0 absent, else 1<<(p-1) inhabitant tag bytes
	XITagOffset     uint32 // byte offset of the inhabitant tag window
	PayloadSize     uint64 // payload byte length
	ZeroTagValue    uint64 // inhabitant tag value representing the payload case
	XITagValues     uint64 // count of no-payload extra inhabitants
	Skip            uint64 // advance past the whole enum in the no-payload case
	Payload         []byte // nested sub-program entries for the payload case, no End
}

// SinglePayloadEnum appends a spare-bit single-payload enum entry with its
// nested payload sub-program inline.
func (b *Builder) SinglePayloadEnum(skip uint64, e Enum) *Builder {
	b.appendUint64(PackEntry(KindSinglePayloadEnumSimple, skip))
	packed := uint64(e.ExtraTagPattern)<<ExtraTagPatternShift |
		uint64(e.XITagPattern&XITagPatternMask)<<XITagPatternShift |
		uint64(e.XITagOffset)
	b.appendUint64(packed)
	b.appendUint64(e.PayloadSize)
	b.appendUint64(e.ZeroTagValue)
	b.appendUint64(e.XITagValues)
	b.appendUint64(uint64(len(e.Payload)))
	b.appendUint64(e.Skip)
	b.buf = append(b.buf, e.Payload...)
	return b
}

// End terminates the program. The skip distance covers trailing raw bytes
// after the last ownership-bearing field.
func (b *Builder) End(skip uint64) *Builder {
	b.appendUint64(PackEntry(KindEnd, skip))
	b.ended = true
	return b
}

// Body returns the entries appended so far without the header. Used to
// build nested enum sub-programs, which carry no header and no End.
func (b *Builder) Body() []byte {
	return b.buf[HeaderSize:]
}

// Program returns the finished program bytes.
func (b *Builder) Program() ([]byte, error) {
	if !b.ended {
		return nil, errors.Unterminated(errors.PhaseBuild, len(b.buf))
	}
	return b.buf, nil
}

// MustProgram returns the finished program and panics if it was not
// terminated. Intended for fixtures and tests.
func (b *Builder) MustProgram() []byte {
	p, err := b.Program()
	if err != nil {
		panic(err)
	}
	return p
}
