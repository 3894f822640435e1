package witness_test

import (
	"slices"
	"testing"

	"github.com/wippyai/layout-runtime/layout"
	"github.com/wippyai/layout-runtime/metadata"
	"github.com/wippyai/layout-runtime/witness"
)

// An 8-byte strong payload at offset 0, a one-byte inhabitant tag window
// at offset 8, and a trailing strong reference at offset 9. Tag values 1
// through 3 select the three no-payload cases; anything else means the
// payload is live. Both branches leave the walk at the same offset, so
// the trailing reference resolves identically either way.
func spareBitEnumType(in *witness.Interp) *metadata.Type {
	nested := layout.NewBuilder().
		Ref(layout.KindStrong, 0)

	program := layout.NewBuilder().
		SinglePayloadEnum(0, layout.Enum{
			XITagPattern: 1,
			XITagOffset:  8,
			ZeroTagValue: 1,
			XITagValues:  3,
			Skip:         0,
			Payload:      nested.Body(),
		}).
		Ref(layout.KindStrong, 9).
		End(8).
		MustProgram()

	t := &metadata.Type{Name: "SpareBitEnum", Size: 17, Align: 8}
	in.InstallLayout(t, program)
	return t
}

func TestEnumSpareBitRouting(t *testing.T) {
	tests := []struct {
		name string
		tag  byte
		want []event
	}{
		{"payload live", 0, []event{{"release", 21}, {"release", 22}}},
		{"case 0", 1, []event{{"release", 22}}},
		{"case 1", 2, []event{{"release", 22}}},
		{"case 2", 3, []event{{"release", 22}}},
		{"tag past inhabitants means payload", 4, []event{{"release", 21}, {"release", 22}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			in := witness.New(rec.funcs())
			et := spareBitEnumType(in)

			v := make([]byte, 24)
			putHandle(v, 0, 21)
			v[8] = tt.tag
			putHandle(v, 9, 22)

			in.Destroy(v, et)
			if !slices.Equal(rec.events, tt.want) {
				t.Fatalf("events = %v, want %v", rec.events, tt.want)
			}
		})
	}
}

func TestEnumCopyInspectsSource(t *testing.T) {
	rec := &recorder{}
	in := witness.New(rec.funcs())
	et := spareBitEnumType(in)

	src := make([]byte, 24)
	putHandle(src, 0, 21)
	src[8] = 0 // payload live
	putHandle(src, 9, 22)
	dst := make([]byte, 24)

	in.InitializeWithCopy(dst, src, et)
	want := []event{{"retain", 21}, {"retain", 22}}
	if !slices.Equal(rec.events, want) {
		t.Fatalf("events = %v, want %v", rec.events, want)
	}
}

func TestEnumExtraTagBytes(t *testing.T) {
	// Payload of 8 bytes, one extra tag byte after it at offset 8, and no
	// inhabitant fields: a nonzero extra tag selects the no-payload case,
	// zero falls through to the payload unconditionally.
	nested := layout.NewBuilder().
		Ref(layout.KindStrong, 0)

	program := layout.NewBuilder().
		SinglePayloadEnum(0, layout.Enum{
			ExtraTagPattern: 1,
			PayloadSize:     8,
			Skip:            9,
			Payload:         nested.Body(),
		}).
		End(9).
		MustProgram()

	tests := []struct {
		name string
		tag  byte
		want []event
	}{
		{"extra tag zero means payload", 0, []event{{"release", 33}}},
		{"extra tag nonzero means no payload", 2, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := &recorder{}
			in := witness.New(rec.funcs())
			et := &metadata.Type{Name: "ExtraTagEnum", Size: 9, Align: 8}
			in.InstallLayout(et, program)

			v := make([]byte, 16)
			putHandle(v, 0, 33)
			v[8] = tt.tag

			in.Destroy(v, et)
			if !slices.Equal(rec.events, tt.want) {
				t.Fatalf("events = %v, want %v", rec.events, tt.want)
			}
		})
	}
}

func TestEnumWrappingTagSubtraction(t *testing.T) {
	// Zero-tag value above the stored tag: the subtraction wraps to a
	// huge value, which must read as payload-live, not an inhabitant.
	nested := layout.NewBuilder().
		Ref(layout.KindStrong, 0)

	program := layout.NewBuilder().
		SinglePayloadEnum(0, layout.Enum{
			XITagPattern: 1,
			XITagOffset:  8,
			ZeroTagValue: 200,
			XITagValues:  3,
			Payload:      nested.Body(),
		}).
		End(9).
		MustProgram()

	rec := &recorder{}
	in := witness.New(rec.funcs())
	et := &metadata.Type{Name: "WrapEnum", Size: 9, Align: 8}
	in.InstallLayout(et, program)

	v := make([]byte, 16)
	putHandle(v, 0, 44)
	v[8] = 5 // 5 - 200 wraps far above the inhabitant count

	in.Destroy(v, et)
	want := []event{{"release", 44}}
	if !slices.Equal(rec.events, want) {
		t.Fatalf("events = %v, want %v", rec.events, want)
	}
}

func TestEnumNoDiscriminatorMeansPayload(t *testing.T) {
	// Neither extra tag bytes nor inhabitant fields: the payload is
	// unconditionally treated as live.
	nested := layout.NewBuilder().
		Ref(layout.KindStrong, 0)

	program := layout.NewBuilder().
		SinglePayloadEnum(0, layout.Enum{
			Payload: nested.Body(),
		}).
		End(8).
		MustProgram()

	rec := &recorder{}
	in := witness.New(rec.funcs())
	et := &metadata.Type{Name: "BareEnum", Size: 8, Align: 8}
	in.InstallLayout(et, program)

	v := make([]byte, 8)
	putHandle(v, 0, 55)

	in.Destroy(v, et)
	want := []event{{"release", 55}}
	if !slices.Equal(rec.events, want) {
		t.Fatalf("events = %v, want %v", rec.events, want)
	}
}
