package layout_test

import (
	"encoding/binary"
	"errors"
	"testing"

	layouterrs "github.com/wippyai/layout-runtime/errors"
	"github.com/wippyai/layout-runtime/layout"
)

func TestBuilderGoldenEncoding(t *testing.T) {
	program := layout.NewBuilder().
		Ref(layout.KindStrong, 16).
		Ref(layout.KindWeak, 9).
		End(8).
		MustProgram()

	if len(program) != layout.HeaderSize+3*8 {
		t.Fatalf("program length: got %d, want %d", len(program), layout.HeaderSize+24)
	}
	for i := 0; i < layout.HeaderSize; i++ {
		if program[i] != 0 {
			t.Fatalf("header byte %d not zero", i)
		}
	}

	words := []uint64{
		uint64(layout.KindStrong)<<56 | 16,
		uint64(layout.KindWeak)<<56 | 9,
		uint64(layout.KindEnd)<<56 | 8,
	}
	for i, want := range words {
		got := binary.LittleEndian.Uint64(program[layout.HeaderSize+i*8:])
		if got != want {
			t.Errorf("entry %d: got %#x, want %#x", i, got, want)
		}
	}
}

func TestBuilderUnterminated(t *testing.T) {
	_, err := layout.NewBuilder().Ref(layout.KindStrong, 0).Program()
	if err == nil {
		t.Fatal("expected error for unterminated program")
	}
	if !errors.Is(err, layouterrs.Unterminated(layouterrs.PhaseBuild, 0)) {
		t.Errorf("wrong error: %v", err)
	}
}

func TestDisassembleRoundTrip(t *testing.T) {
	payload := layout.NewBuilder().Ref(layout.KindStrong, 0).Body()
	program := layout.NewBuilder().
		Ref(layout.KindUnknown, 4).
		Metatype(8, 7).
		Resilient(16, -42).
		SinglePayloadEnum(0, layout.Enum{
			XITagPattern: 3,
			XITagOffset:  4,
			PayloadSize:  8,
			ZeroTagValue: 1,
			XITagValues:  250,
			Skip:         12,
			Payload:      payload,
		}).
		End(3).
		MustProgram()

	entries, err := layout.Disassemble(program)
	if err != nil {
		t.Fatalf("disassemble: %v", err)
	}
	if len(entries) != 5 {
		t.Fatalf("entries: got %d, want 5", len(entries))
	}

	if entries[0].Kind != layout.KindUnknown || entries[0].Skip != 4 {
		t.Errorf("entry 0: %+v", entries[0])
	}
	if entries[1].Kind != layout.KindMetatype || entries[1].TypeRef != 7 || entries[1].Skip != 8 {
		t.Errorf("entry 1: %+v", entries[1])
	}
	if entries[2].Kind != layout.KindResilient || entries[2].Accessor != -42 {
		t.Errorf("entry 2: %+v", entries[2])
	}

	enum := entries[3]
	if enum.Kind != layout.KindSinglePayloadEnumSimple || enum.Enum == nil {
		t.Fatalf("entry 3: %+v", enum)
	}
	d := enum.Enum
	if d.XITagPattern != 3 || d.XITagOffset != 4 || d.PayloadSize != 8 ||
		d.ZeroTagValue != 1 || d.XITagValues != 250 || d.Skip != 12 {
		t.Errorf("enum detail: %+v", d)
	}
	if d.RefCountBytes != uint64(len(payload)) {
		t.Errorf("refcount bytes: got %d, want %d", d.RefCountBytes, len(payload))
	}
	if len(d.Entries) != 1 || d.Entries[0].Kind != layout.KindStrong {
		t.Errorf("nested entries: %+v", d.Entries)
	}

	if entries[4].Kind != layout.KindEnd || entries[4].Skip != 3 {
		t.Errorf("entry 4: %+v", entries[4])
	}
}

func TestDisassembleMalformed(t *testing.T) {
	strong := layout.NewBuilder().Ref(layout.KindStrong, 0).Body()

	tests := []struct {
		name    string
		program []byte
		want    layouterrs.Kind
	}{
		{
			name:    "short header",
			program: make([]byte, 8),
			want:    layouterrs.KindTruncated,
		},
		{
			name:    "unknown tag",
			program: append(make([]byte, layout.HeaderSize), encodeWord(uint64(0x7F)<<56)...),
			want:    layouterrs.KindUnknownTag,
		},
		{
			name:    "missing end",
			program: append(make([]byte, layout.HeaderSize), strong...),
			want:    layouterrs.KindUnterminated,
		},
		{
			name: "truncated metatype",
			program: append(make([]byte, layout.HeaderSize),
				encodeWord(uint64(layout.KindMetatype)<<56)...),
			want: layouterrs.KindTruncated,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := layout.Disassemble(tt.program)
			if err == nil {
				t.Fatal("expected error")
			}
			var e *layouterrs.Error
			if !errors.As(err, &e) || e.Kind != tt.want {
				t.Errorf("got %v, want kind %s", err, tt.want)
			}
		})
	}
}

func encodeWord(v uint64) []byte {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return b[:]
}

func TestValidate(t *testing.T) {
	program := layout.NewBuilder().
		Ref(layout.KindStrong, 16).
		Ref(layout.KindWeak, 9).
		End(8).
		MustProgram()

	if err := layout.Validate(program, 41); err != nil {
		t.Errorf("valid program rejected: %v", err)
	}
	if err := layout.Validate(program, 32); err == nil {
		t.Error("oversized program accepted")
	}
}

func TestValidateEnumBranches(t *testing.T) {
	// No-payload branch accounts 8 via the recorded skip; the payload
	// branch's nested strong acts at the current offset (skip 0).
	payload := layout.NewBuilder().Ref(layout.KindStrong, 0).Body()
	program := layout.NewBuilder().
		SinglePayloadEnum(8, layout.Enum{
			ExtraTagPattern: 1,
			PayloadSize:     8,
			Skip:            8,
			Payload:         payload,
		}).
		End(8).
		MustProgram()

	if err := layout.Validate(program, 24); err != nil {
		t.Errorf("valid enum program rejected: %v", err)
	}
	if err := layout.Validate(program, 15); err == nil {
		t.Error("undersized enum program accepted")
	}
}
