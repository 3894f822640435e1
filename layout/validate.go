package layout

import (
	"github.com/wippyai/layout-runtime/errors"
)

// Validate checks that a program is well-formed against the declared
// value size: decodable end to end, End-terminated, and accounting for no
// more than size bytes of address offset across any walk.
//
// The interpreter never calls this; well-formedness is a precondition of
// the lifecycle operations. Validate exists so producers and tests have a
// place to check programs before handing them to the hot path.
func Validate(program []byte, size uint64) error {
	entries, err := Disassemble(program)
	if err != nil {
		return err
	}
	total, err := accountedBytes(entries)
	if err != nil {
		return err
	}
	if total > size {
		return errors.New(errors.PhaseValidate, errors.KindOutOfBounds).
			Detail("program accounts for %d bytes but value size is %d", total, size).
			Build()
	}
	return nil
}

// accountedBytes sums the address offset a full walk accumulates. For
// enum entries both branches must account identically: the no-payload
// branch contributes the recorded skip, the payload branch the nested
// entries' skips; the larger of the two is charged and a mismatch larger
// than the enum's own footprint is rejected by the size check above.
func accountedBytes(entries []Entry) (uint64, error) {
	var total uint64
	for _, e := range entries {
		total += e.Skip
		if e.Kind != KindSinglePayloadEnumSimple {
			continue
		}
		nested, err := accountedBytes(e.Enum.Entries)
		if err != nil {
			return 0, err
		}
		branch := e.Enum.Skip
		if nested > branch {
			branch = nested
		}
		total += branch
	}
	return total, nil
}
