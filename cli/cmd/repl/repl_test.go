package repl

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
)

func TestPreview_NumbersDocuments(t *testing.T) {
	m := testModel(t)

	first := m.preview("${<a>name::first} ${<a>name::first}")
	if m.doc != 1 {
		t.Fatalf("expected document counter 1, got %d", m.doc)
	}

	words := strings.Fields(first[0])
	if len(first) != 1 || len(words) != 2 || words[0] != words[1] {
		t.Errorf("expected one consistent line, got %q", first)
	}

	fresh := testModel(t)
	again := fresh.preview("${<a>name::first} ${<a>name::first}")
	if again[0] != first[0] {
		t.Errorf("expected the same seed to reproduce the document")
	}
}

func TestPreview_Diagnostics(t *testing.T) {
	m := testModel(t)

	lines := m.preview("x ${int:9} ${phone::fax}")
	if len(lines) != 3 {
		t.Fatalf("expected output plus two diagnostics, got %q", lines)
	}

	if !strings.Contains(lines[0], "${int:9}") {
		t.Errorf("expected malformed placeholder kept, got %q", lines[0])
	}
}

func TestExecuteCommand(t *testing.T) {
	m := testModel(t)
	m.doc = 3

	m, _ = m.executeCommand("seed 99")
	if m.renderer.Seed() != 99 || m.doc != 0 {
		t.Errorf("expected seed 99 and counter reset, got %d and %d",
			m.renderer.Seed(), m.doc)
	}

	m, _ = m.executeCommand("strict")
	if !m.strict {
		t.Error("expected strict mode")
	}

	if m.renderer.Seed() != 99 {
		t.Errorf("expected seed to survive a bounds change, got %d", m.renderer.Seed())
	}

	m, cmd := m.executeCommand("quit")
	if !m.quitting || cmd == nil {
		t.Error("expected quit")
	}
}

func TestHandleKey_ModeToggle(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("${int:1,2}")

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeCtrl || m.input.Value() != "" {
		t.Fatalf("expected empty command line, got mode %d %q", m.mode, m.input.Value())
	}

	m, _ = m.handleKey(tea.KeyMsg{Type: tea.KeyEsc})
	if m.mode != modeTemplate || m.input.Value() != "${int:1,2}" {
		t.Errorf("expected restored template, got mode %d %q", m.mode, m.input.Value())
	}
}

func TestExecuteInput_RecordsHistory(t *testing.T) {
	m := testModel(t)
	m.input.SetValue("${guid}")

	m, cmd := m.executeInput()
	if cmd == nil {
		t.Fatal("expected print command")
	}

	if m.history.Len() != 1 || m.doc != 1 || m.input.Value() != "" {
		t.Errorf("unexpected state: history=%d doc=%d input=%q",
			m.history.Len(), m.doc, m.input.Value())
	}

	m = m.historyStep(-1, false)
	if m.input.Value() != "${guid}" {
		t.Errorf("expected recalled entry, got %q", m.input.Value())
	}
}
