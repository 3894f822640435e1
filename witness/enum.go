package witness

import (
	"github.com/wippyai/layout-runtime/layout"
)

// evalSinglePayloadEnum decides, for the value at addr, whether a
// single-payload enum currently holds its payload or a no-payload case,
// and positions the program offset accordingly: on the payload branch the
// walk falls through into the nested sub-program; on the no-payload
// branch the nested bytes are skipped and the recorded skip distance
// advances past the enum.
//
// The comparison direction and the zero-tag subtraction are load-bearing:
// an inhabitant tag value at or above the inhabitant count means the
// payload is live, and the subtraction wraps in uint64 exactly like the
// producer's encoding assumes.
func evalSinglePayloadEnum(program []byte, offset *int, addr []byte, addrOffset *uint64) {
	packed := layout.ReadUint64(program, offset)
	extraTagPattern := uint8(packed >> layout.ExtraTagPatternShift)
	xiTagPattern := uint8(packed>>layout.XITagPatternShift) & layout.XITagPatternMask
	xiTagOffset := packed & layout.XITagOffsetMask

	if extraTagPattern != 0 {
		payloadSize := layout.ReadWord(program, offset)
		tag := layout.ReadTagBytes(addr[*addrOffset+payloadSize:], layout.TagBytes(extraTagPattern))
		if tag != 0 {
			// No-payload case signaled by the extra tag bytes; the
			// inhabitant fields are irrelevant.
			*offset += 8 + layout.WordSize
			skipNoPayload(program, offset, addrOffset)
			return
		}
	} else {
		*offset += layout.WordSize // payload size unused
	}

	if xiTagPattern != 0 {
		zeroTagValue := layout.ReadUint64(program, offset)
		xiTagValues := layout.ReadWord(program, offset)
		tag := layout.ReadTagBytes(addr[*addrOffset+xiTagOffset:], layout.TagBytes(xiTagPattern)) - zeroTagValue
		if tag < xiTagValues {
			skipNoPayload(program, offset, addrOffset)
			return
		}
	} else {
		*offset += 8 + layout.WordSize // zero-tag value and inhabitant count
	}

	// Payload case: step over the sub-program length and skip fields so
	// the walk re-enters the nested entries.
	*offset += 2 * layout.WordSize
}

func skipNoPayload(program []byte, offset *int, addrOffset *uint64) {
	refCountBytes := layout.ReadWord(program, offset)
	skip := layout.ReadWord(program, offset)
	*offset += int(refCountBytes)
	*addrOffset += skip
}
