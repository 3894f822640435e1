package layout

import (
	"fmt"

	"github.com/wippyai/layout-runtime/errors"
)

// Entry is one decoded layout-program instruction. It exists for the
// tooling surface (disassembly, validation, the inspect TUI); the
// interpreter walks raw bytes and never materializes entries.
type Entry struct {
	Kind     RefKind
	Skip     uint64
	TypeRef  uint64      // Metatype only
	Accessor int32       // Resilient only
	Enum     *EnumDetail // SinglePayloadEnumSimple only
	Offset   int         // byte offset of the entry header within the program
}

// EnumDetail is the decoded form of a SinglePayloadEnumSimple entry.
type EnumDetail struct {
	ExtraTagPattern uint8
	XITagPattern    uint8
	XITagOffset     uint32
	PayloadSize     uint64
	ZeroTagValue    uint64
	XITagValues     uint64
	RefCountBytes   uint64
	Skip            uint64
	Entries         []Entry // decoded nested sub-program
}

func (e Entry) String() string {
	switch e.Kind {
	case KindMetatype:
		return fmt.Sprintf("%-20s skip=%-4d type=%d", e.Kind, e.Skip, e.TypeRef)
	case KindResilient:
		return fmt.Sprintf("%-20s skip=%-4d accessor=%d", e.Kind, e.Skip, e.Accessor)
	case KindSinglePayloadEnumSimple:
		return fmt.Sprintf("%-20s skip=%-4d payload=%dB xi=%d nested=%d entries",
			e.Kind, e.Skip, e.Enum.PayloadSize, e.Enum.XITagValues, len(e.Enum.Entries))
	default:
		return fmt.Sprintf("%-20s skip=%d", e.Kind, e.Skip)
	}
}

// Disassemble decodes a full program (header included) into entries,
// ending at and including the End entry. Unknown tags and truncated
// trailing fields yield structured errors rather than panics, so the
// tooling path can present malformed programs safely.
func Disassemble(program []byte) ([]Entry, error) {
	if len(program) < HeaderSize {
		return nil, errors.Truncated(errors.PhaseParse, 0, "program header")
	}
	return disassembleBody(program, HeaderSize, len(program), true)
}

// disassembleBody decodes entries in [off, end). When terminated is true
// an End entry is required and ends the decode; nested enum sub-programs
// decode with terminated=false and run to the range end.
func disassembleBody(program []byte, off, end int, terminated bool) ([]Entry, error) {
	var entries []Entry
	for off < end {
		start := off
		if off+8 > end {
			return nil, errors.Truncated(errors.PhaseParse, start, "entry header")
		}
		kind, skip := UnpackEntry(ReadUint64(program, &off))
		if !kind.Known() {
			return nil, errors.UnknownTag(errors.PhaseParse, start, uint8(kind))
		}

		e := Entry{Kind: kind, Skip: skip, Offset: start}
		switch kind {
		case KindEnd:
			if !terminated {
				return nil, errors.InvalidData(errors.PhaseParse, start,
					"End entry inside enum sub-program")
			}
			return append(entries, e), nil
		case KindMetatype:
			if off+8 > end {
				return nil, errors.Truncated(errors.PhaseParse, start, "metatype reference")
			}
			e.TypeRef = ReadUint64(program, &off)
		case KindResilient:
			if off+8 > end {
				return nil, errors.Truncated(errors.PhaseParse, start, "accessor reference")
			}
			e.Accessor = int32(uint32(ReadUint64(program, &off)))
		case KindSinglePayloadEnumSimple:
			detail, err := disassembleEnum(program, &off, end, start)
			if err != nil {
				return nil, err
			}
			e.Enum = detail
		}
		entries = append(entries, e)
	}
	if terminated {
		return nil, errors.Unterminated(errors.PhaseParse, end)
	}
	return entries, nil
}

func disassembleEnum(program []byte, off *int, end, start int) (*EnumDetail, error) {
	if *off+EnumFixedSize > end {
		return nil, errors.Truncated(errors.PhaseParse, start, "enum trailing fields")
	}
	packed := ReadUint64(program, off)
	d := &EnumDetail{
		ExtraTagPattern: uint8(packed >> ExtraTagPatternShift),
		XITagPattern:    uint8(packed>>XITagPatternShift) & XITagPatternMask,
		XITagOffset:     uint32(packed & XITagOffsetMask),
	}
	d.PayloadSize = ReadWord(program, off)
	d.ZeroTagValue = ReadUint64(program, off)
	d.XITagValues = ReadWord(program, off)
	d.RefCountBytes = ReadWord(program, off)
	d.Skip = ReadWord(program, off)

	nestedEnd := *off + int(d.RefCountBytes)
	if d.RefCountBytes > uint64(end) || nestedEnd > end {
		return nil, errors.Truncated(errors.PhaseParse, start, "enum sub-program")
	}
	nested, err := disassembleBody(program, *off, nestedEnd, false)
	if err != nil {
		return nil, err
	}
	d.Entries = nested
	*off = nestedEnd
	return d, nil
}
