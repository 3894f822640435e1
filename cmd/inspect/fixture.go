package main

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/wippyai/layout-runtime/layout"
)

// fixture is a declarative layout-program description:
//
//	size = 41
//
//	[[entry]]
//	kind = "strong"
//	skip = 16
//
//	[[entry]]
//	kind = "weak"
//	skip = 9
//
//	[[entry]]
//	kind = "end"
//	skip = 8
type fixture struct {
	Size    uint64         `toml:"size"`
	Entries []fixtureEntry `toml:"entry"`
}

type fixtureEntry struct {
	Kind string `toml:"kind"`
	Skip uint64 `toml:"skip"`
}

var kindNames = map[string]layout.RefKind{
	"end":             layout.KindEnd,
	"error":           layout.KindError,
	"strong":          layout.KindStrong,
	"unowned":         layout.KindUnowned,
	"weak":            layout.KindWeak,
	"unknown":         layout.KindUnknown,
	"unknown_unowned": layout.KindUnknownUnowned,
	"unknown_weak":    layout.KindUnknownWeak,
	"bridge":          layout.KindBridge,
	"block":           layout.KindBlock,
	"objc":            layout.KindObjC,
	"existential":     layout.KindExistential,
}

func loadFixture(path string) (*fixture, error) {
	var fx fixture
	if _, err := toml.DecodeFile(path, &fx); err != nil {
		return nil, err
	}
	if len(fx.Entries) == 0 {
		return nil, fmt.Errorf("%s: fixture has no entries", path)
	}
	return &fx, nil
}

func (fx *fixture) build() ([]byte, error) {
	b := layout.NewBuilder()
	for i, e := range fx.Entries {
		kind, ok := kindNames[strings.ToLower(e.Kind)]
		if !ok {
			return nil, fmt.Errorf("entry %d: unknown kind %q", i, e.Kind)
		}
		if kind == layout.KindEnd {
			if i != len(fx.Entries)-1 {
				return nil, fmt.Errorf("entry %d: end before the last entry", i)
			}
			b.End(e.Skip)
			continue
		}
		b.Ref(kind, e.Skip)
	}
	return b.Program()
}
