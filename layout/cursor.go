package layout

import "encoding/binary"

// Cursor primitives for reading and writing fixed-width fields at an
// externally tracked offset. All fields are little-endian.
//
// These perform no bounds validation beyond Go's slice checks: the caller
// guarantees the program is well-formed and long enough for the field
// being read. This is a documented precondition of the hot path, not a
// validated invariant; use Validate for untrusted programs.

// ReadUint8 reads one byte at *off and advances the offset.
func ReadUint8(buf []byte, off *int) uint8 {
	v := buf[*off]
	*off++
	return v
}

// ReadUint16 reads a little-endian uint16 at *off and advances the offset.
func ReadUint16(buf []byte, off *int) uint16 {
	v := binary.LittleEndian.Uint16(buf[*off:])
	*off += 2
	return v
}

// ReadUint32 reads a little-endian uint32 at *off and advances the offset.
func ReadUint32(buf []byte, off *int) uint32 {
	v := binary.LittleEndian.Uint32(buf[*off:])
	*off += 4
	return v
}

// ReadUint64 reads a little-endian uint64 at *off and advances the offset.
func ReadUint64(buf []byte, off *int) uint64 {
	v := binary.LittleEndian.Uint64(buf[*off:])
	*off += 8
	return v
}

// ReadWord reads one platform word at *off and advances the offset.
func ReadWord(buf []byte, off *int) uint64 {
	return ReadUint64(buf, off)
}

// WriteUint64 writes a little-endian uint64 at *off and advances the offset.
func WriteUint64(buf []byte, off *int, v uint64) {
	binary.LittleEndian.PutUint64(buf[*off:], v)
	*off += 8
}

// WriteWord writes one platform word at *off and advances the offset.
func WriteWord(buf []byte, off *int, v uint64) {
	WriteUint64(buf, off, v)
}

// ReadTagBytes reads a 1-, 2-, 4- or 8-byte little-endian discriminator
// from the start of buf. Any other count is a malformed program.
func ReadTagBytes(buf []byte, count int) uint64 {
	switch count {
	case 1:
		return uint64(buf[0])
	case 2:
		return uint64(binary.LittleEndian.Uint16(buf))
	case 4:
		return uint64(binary.LittleEndian.Uint32(buf))
	case 8:
		return binary.LittleEndian.Uint64(buf)
	default:
		panic("layout: unsupported tag byte length")
	}
}
