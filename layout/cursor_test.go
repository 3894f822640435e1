package layout_test

import (
	"testing"

	"github.com/wippyai/layout-runtime/layout"
)

func TestCursorRoundTrip(t *testing.T) {
	buf := make([]byte, 32)
	off := 0
	layout.WriteUint64(buf, &off, 0xDEADBEEF00112233)
	layout.WriteWord(buf, &off, 42)
	if off != 16 {
		t.Fatalf("write offset: got %d, want 16", off)
	}

	off = 0
	if got := layout.ReadUint64(buf, &off); got != 0xDEADBEEF00112233 {
		t.Errorf("ReadUint64: got %#x", got)
	}
	if got := layout.ReadWord(buf, &off); got != 42 {
		t.Errorf("ReadWord: got %d, want 42", got)
	}
	if off != 16 {
		t.Errorf("read offset: got %d, want 16", off)
	}
}

func TestCursorLittleEndian(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	off := 0
	if got := layout.ReadUint32(buf, &off); got != 0x04030201 {
		t.Errorf("ReadUint32: got %#x, want 0x04030201", got)
	}
	off = 0
	if got := layout.ReadUint16(buf, &off); got != 0x0201 {
		t.Errorf("ReadUint16: got %#x, want 0x0201", got)
	}
	off = 0
	if got := layout.ReadUint8(buf, &off); got != 0x01 {
		t.Errorf("ReadUint8: got %#x, want 0x01", got)
	}
}

func TestReadTagBytes(t *testing.T) {
	buf := []byte{0xEF, 0xBE, 0xAD, 0xDE, 0x00, 0x00, 0x00, 0x00}
	tests := []struct {
		count int
		want  uint64
	}{
		{1, 0xEF},
		{2, 0xBEEF},
		{4, 0xDEADBEEF},
		{8, 0xDEADBEEF},
	}
	for _, tt := range tests {
		if got := layout.ReadTagBytes(buf, tt.count); got != tt.want {
			t.Errorf("ReadTagBytes(%d): got %#x, want %#x", tt.count, got, tt.want)
		}
	}
}

func TestReadTagBytesUnsupportedCount(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic for 3-byte tag read")
		}
	}()
	layout.ReadTagBytes(make([]byte, 8), 3)
}

func TestPackUnpackEntry(t *testing.T) {
	tests := []struct {
		kind layout.RefKind
		skip uint64
	}{
		{layout.KindEnd, 0},
		{layout.KindStrong, 16},
		{layout.KindWeak, 25},
		{layout.KindSinglePayloadEnumSimple, layout.SkipMask},
	}
	for _, tt := range tests {
		word := layout.PackEntry(tt.kind, tt.skip)
		kind, skip := layout.UnpackEntry(word)
		if kind != tt.kind || skip != tt.skip {
			t.Errorf("pack/unpack(%v, %d): got (%v, %d)", tt.kind, tt.skip, kind, skip)
		}
	}
}

func TestTagBytes(t *testing.T) {
	tests := []struct {
		pattern uint8
		want    int
	}{
		{0, 0}, {1, 1}, {2, 2}, {3, 4}, {4, 8},
	}
	for _, tt := range tests {
		if got := layout.TagBytes(tt.pattern); got != tt.want {
			t.Errorf("TagBytes(%d): got %d, want %d", tt.pattern, got, tt.want)
		}
	}
}
