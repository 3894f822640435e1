package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/layout-runtime/layout"
	"github.com/wippyai/layout-runtime/metadata"
	"github.com/wippyai/layout-runtime/refcount"
	"github.com/wippyai/layout-runtime/witness"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	entryStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	doneStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))

	cursorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	callStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// stepModel single-steps a lifecycle operation over a layout program:
// each step replays the walk one entry further against a scratch value
// and shows the leaf calls made so far.
type stepModel struct {
	program []byte
	size    uint64
	entries []layout.Entry
	value   []byte

	op   string // destroy or copy
	step int    // entries executed so far
	log  viewport.Model
}

// leafRecorder captures leaf calls as display lines.
type leafRecorder struct {
	lines []string
}

func (r *leafRecorder) direct(op string) func(refcount.Handle) {
	return func(h refcount.Handle) {
		r.lines = append(r.lines, fmt.Sprintf("%-16s handle=%d", op, h))
	}
}

func (r *leafRecorder) field(op string) func([]byte) {
	return func(f []byte) {
		r.lines = append(r.lines, fmt.Sprintf("%-16s handle=%d", op, refcount.LoadHandle(f)))
	}
}

func (r *leafRecorder) pair(op string) func(dst, src []byte) {
	return func(_, src []byte) {
		r.lines = append(r.lines, fmt.Sprintf("%-16s handle=%d", op, refcount.LoadHandle(src)))
	}
}

func (r *leafRecorder) funcs() refcount.Funcs {
	return refcount.Funcs{
		Retain:         r.direct("retain"),
		Release:        r.direct("release"),
		ErrorRetain:    r.direct("error retain"),
		ErrorRelease:   r.direct("error release"),
		UnownedRetain:  r.direct("unowned retain"),
		UnownedRelease: r.direct("unowned release"),
		UnknownRetain:  r.direct("unknown retain"),
		UnknownRelease: r.direct("unknown release"),
		BridgeRetain:   r.direct("bridge retain"),
		BridgeRelease:  r.direct("bridge release"),
		ObjCRetain:     r.direct("objc retain"),
		ObjCRelease:    r.direct("objc release"),
		BlockRelease:   r.direct("block release"),

		BlockCopy:              r.pair("block copy"),
		WeakDestroy:            r.field("weak destroy"),
		WeakCopyInit:           r.pair("weak copy"),
		WeakTakeInit:           r.pair("weak take"),
		UnknownUnownedDestroy:  r.field("uunowned destroy"),
		UnknownUnownedCopyInit: r.pair("uunowned copy"),
		UnknownWeakDestroy:     r.field("uweak destroy"),
		UnknownWeakCopyInit:    r.pair("uweak copy"),
		UnknownWeakTakeInit:    r.pair("uweak take"),
	}
}

func newStepModel(program []byte, size uint64) (*stepModel, error) {
	entries, err := layout.Disassemble(program)
	if err != nil {
		return nil, fmt.Errorf("disassemble: %w", err)
	}

	// Synthetic handles (field offset + 1) make each leaf call
	// attributable to the field it acted on.
	value := make([]byte, size)
	var off uint64
	for _, e := range entries {
		off += e.Skip
		switch e.Kind {
		case layout.KindEnd:
			continue
		case layout.KindMetatype, layout.KindResilient, layout.KindSinglePayloadEnumSimple, layout.KindExistential:
			return nil, fmt.Errorf("entry %s at %#x needs real metadata behind it; interactive mode steps leaf programs", e.Kind, e.Offset)
		}
		if off+layout.WordSize > size {
			return nil, fmt.Errorf("entry %s at %#x lands past the %d-byte value", e.Kind, e.Offset, size)
		}
		refcount.StoreHandle(value[off:], refcount.Handle(off+1))
	}

	log := viewport.New(60, 12)
	return &stepModel{
		program: program,
		size:    size,
		entries: entries,
		value:   value,
		op:      "destroy",
		log:     log,
	}, nil
}

// replay recomputes the leaf-call log for the current step count. Steps
// are cheap enough that recomputing from scratch keeps the model free of
// mutable interpreter state.
func (m *stepModel) replay() {
	rec := &leafRecorder{}
	in := witness.New(rec.funcs())
	t := &metadata.Type{Name: "inspect", Size: m.size, Align: layout.WordSize}
	in.InstallLayout(t, m.program)

	if m.step > 0 {
		switch m.op {
		case "destroy":
			v := make([]byte, m.size)
			copy(v, m.value)
			in.DestroyFirst(v, t, m.step)
		case "copy":
			dst := make([]byte, m.size)
			copy(dst, m.value)
			in.RetainFirst(dst, m.value, t, m.step)
		}
	}

	if len(rec.lines) == 0 {
		m.log.SetContent(helpStyle.Render("(no leaf calls yet)"))
		return
	}
	styled := make([]string, len(rec.lines))
	for i, line := range rec.lines {
		styled[i] = callStyle.Render(line)
	}
	m.log.SetContent(strings.Join(styled, "\n"))
	m.log.GotoBottom()
}

func (m *stepModel) Init() tea.Cmd {
	m.replay()
	return nil
}

func (m *stepModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.log.Width = msg.Width - 4
		if h := msg.Height - len(m.entries) - 8; h > 3 {
			m.log.Height = h
		}

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit

		case " ", "n", "right":
			if m.step < len(m.entries) {
				m.step++
				m.replay()
			}

		case "p", "left":
			if m.step > 0 {
				m.step--
				m.replay()
			}

		case "r":
			m.step = 0
			m.replay()

		case "o":
			if m.op == "destroy" {
				m.op = "copy"
			} else {
				m.op = "destroy"
			}
			m.replay()

		default:
			var cmd tea.Cmd
			m.log, cmd = m.log.Update(msg)
			return m, cmd
		}
	}

	return m, nil
}

func (m *stepModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Layout Inspector"))
	b.WriteString(fmt.Sprintf("  %s over %d bytes\n\n", m.op, m.size))

	for i, e := range m.entries {
		line := fmt.Sprintf("  %04x  %s", e.Offset, e)
		switch {
		case i == m.step:
			b.WriteString(cursorStyle.Render("> " + line[2:]))
		case i < m.step:
			b.WriteString(doneStyle.Render(line))
		default:
			b.WriteString(entryStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.log.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("space step • p back • r reset • o op • q quit"))

	return b.String()
}

func runInteractive(program []byte, size uint64) error {
	m, err := newStepModel(program, size)
	if err != nil {
		return err
	}
	p := tea.NewProgram(m, tea.WithAltScreen())
	_, err = p.Run()
	return err
}
