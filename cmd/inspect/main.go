package main

import (
	"flag"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/wippyai/layout-runtime/layout"
	"github.com/wippyai/layout-runtime/metadata"
	"github.com/wippyai/layout-runtime/refcount"
	"github.com/wippyai/layout-runtime/witness"
)

func main() {
	var (
		programFile = flag.String("program", "", "Path to a raw layout program file")
		fixtureFile = flag.String("fixture", "", "Path to a TOML program fixture")
		size        = flag.Uint64("size", 0, "Value size in bytes (overrides fixture)")
		disasm      = flag.Bool("disasm", false, "Disassemble the program and exit")
		validate    = flag.Bool("validate", false, "Validate skip accounting against -size")
		op          = flag.String("op", "", "Run a lifecycle operation: destroy or copy")
		interactive = flag.Bool("i", false, "Interactive single-stepping TUI")
		verbose     = flag.Bool("v", false, "Verbose logging")
	)
	flag.Parse()

	if *programFile == "" && *fixtureFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: inspect -fixture <file.toml> [-disasm] [-validate] [-op destroy|copy] [-i]")
		fmt.Fprintln(os.Stderr, "       inspect -program <file.bin> -size <bytes> [...]")
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		witness.SetLogger(logger)
	}

	program, valueSize, err := loadProgram(*programFile, *fixtureFile, *size)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode needs a terminal")
			os.Exit(1)
		}
		if err := runInteractive(program, valueSize); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := run(program, valueSize, *disasm, *validate, *op); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadProgram(programFile, fixtureFile string, size uint64) ([]byte, uint64, error) {
	if fixtureFile != "" {
		fx, err := loadFixture(fixtureFile)
		if err != nil {
			return nil, 0, fmt.Errorf("load fixture: %w", err)
		}
		program, err := fx.build()
		if err != nil {
			return nil, 0, fmt.Errorf("build fixture program: %w", err)
		}
		if size == 0 {
			size = fx.Size
		}
		return program, size, nil
	}

	program, err := os.ReadFile(programFile)
	if err != nil {
		return nil, 0, fmt.Errorf("read program: %w", err)
	}
	return program, size, nil
}

func run(program []byte, size uint64, disasm, validate bool, op string) error {
	entries, err := layout.Disassemble(program)
	if err != nil {
		return fmt.Errorf("disassemble: %w", err)
	}

	fmt.Printf("Program: %d bytes, %d entries\n", len(program), len(entries))
	if disasm {
		for _, e := range entries {
			fmt.Printf("  %04x  %s\n", e.Offset, e)
		}
	}

	if validate {
		if size == 0 {
			return fmt.Errorf("-validate needs -size (or a fixture with one)")
		}
		if err := layout.Validate(program, size); err != nil {
			return fmt.Errorf("validate: %w", err)
		}
		fmt.Printf("Skip accounting fits a %d-byte value\n", size)
	}

	if op == "" {
		return nil
	}

	heap := refcount.NewHeap()
	in := witness.New(heap.Funcs())
	t := &metadata.Type{Name: "inspect", Size: size, Align: layout.WordSize}
	in.InstallLayout(t, program)

	v, handles, err := scratchValue(heap, entries, size)
	if err != nil {
		return err
	}
	fmt.Printf("Scratch value: %d bytes, %d counted objects\n", len(v), len(handles))

	switch op {
	case "destroy":
		in.Destroy(v, t)
	case "copy":
		dst := make([]byte, size)
		in.InitializeWithCopy(dst, v, t)
	default:
		return fmt.Errorf("unknown operation %q (want destroy or copy)", op)
	}

	for _, h := range handles {
		fmt.Printf("  object %-4d strong=%d unowned=%d weak=%d\n",
			h, heap.StrongCount(h), heap.UnownedCount(h), heap.WeakCount(h))
	}
	fmt.Printf("Live objects after %s: %d\n", op, heap.Live())
	return nil
}

// scratchValue builds a zero value of the given size with a freshly
// allocated counted object behind every reference field, so lifecycle
// runs have something observable to act on.
func scratchValue(heap *refcount.Heap, entries []layout.Entry, size uint64) ([]byte, []refcount.Handle, error) {
	v := make([]byte, size)
	var handles []refcount.Handle

	var off uint64
	for _, e := range entries {
		off += e.Skip
		switch e.Kind {
		case layout.KindEnd:
			continue
		case layout.KindMetatype, layout.KindResilient, layout.KindSinglePayloadEnumSimple, layout.KindExistential:
			return nil, nil, fmt.Errorf("entry %s at %#x needs real metadata behind it; use -disasm", e.Kind, e.Offset)
		}
		if off+layout.WordSize > size {
			return nil, nil, fmt.Errorf("entry %s at %#x lands past the %d-byte value; check -size", e.Kind, e.Offset, size)
		}
		h := heap.Allocate()
		switch e.Kind {
		case layout.KindWeak, layout.KindUnknownWeak:
			heap.WeakInit(v[off:], h)
		case layout.KindUnowned, layout.KindUnknownUnowned:
			heap.UnownedRetain(h)
			refcount.StoreHandle(v[off:], h)
		default:
			refcount.StoreHandle(v[off:], h)
		}
		handles = append(handles, h)
	}
	return v, handles, nil
}
