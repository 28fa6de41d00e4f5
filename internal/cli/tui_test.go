package cli

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/matzehuels/initializr/pkg/metadata/metadatatest"
	"github.com/matzehuels/initializr/pkg/version"
)

func pickerAt(t *testing.T, platform string) DependencyPickerModel {
	t.Helper()
	return NewDependencyPickerModel(metadatatest.Catalog(t), version.MustParse(platform))
}

func indexOf(t *testing.T, m DependencyPickerModel, id string) int {
	t.Helper()
	for i, it := range m.Items {
		if it.Dependency.ID == id {
			return i
		}
	}
	t.Fatalf("dependency %s not listed", id)
	return -1
}

func press(m DependencyPickerModel, keys ...tea.KeyMsg) DependencyPickerModel {
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(DependencyPickerModel)
	}
	return m
}

var (
	keyDown   = tea.KeyMsg{Type: tea.KeyDown}
	keyUp     = tea.KeyMsg{Type: tea.KeyUp}
	keyToggle = tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'x'}}
	keyEnter  = tea.KeyMsg{Type: tea.KeyEnter}
)

func moveTo(m DependencyPickerModel, i int) DependencyPickerModel {
	for m.Cursor < i {
		m = press(m, keyDown)
	}
	for m.Cursor > i {
		m = press(m, keyUp)
	}
	return m
}

func TestPickerCompatibility(t *testing.T) {
	m := pickerAt(t, "2.1.6.RELEASE")

	if !m.Items[indexOf(t, m, "web")].Compatible {
		t.Error("web has no range and should be compatible")
	}
	if m.Items[indexOf(t, m, "legacy")].Compatible {
		t.Error("legacy is limited to 1.5.x and should not be compatible with 2.1.6")
	}
}

func TestPickerToggle(t *testing.T) {
	m := pickerAt(t, "2.1.6.RELEASE")

	m = moveTo(m, indexOf(t, m, "reactive"))
	m = press(m, keyToggle)
	m = moveTo(m, indexOf(t, m, "web"))
	m = press(m, keyToggle)
	m = moveTo(m, indexOf(t, m, "legacy"))
	m = press(m, keyToggle)

	got := m.Selection()
	if len(got) != 2 || got[0] != "web" || got[1] != "reactive" {
		t.Errorf("Selection() = %v, want [web reactive] in catalog order", got)
	}

	m = moveTo(m, indexOf(t, m, "web"))
	m = press(m, keyToggle)
	if got := m.Selection(); len(got) != 1 || got[0] != "reactive" {
		t.Errorf("Selection() after untoggle = %v", got)
	}
}

func TestPickerConfirmAndQuit(t *testing.T) {
	m := pickerAt(t, "2.1.6.RELEASE")

	next, cmd := m.Update(keyEnter)
	if !next.(DependencyPickerModel).Confirmed || cmd == nil {
		t.Error("enter should confirm and quit")
	}

	next, cmd = m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if next.(DependencyPickerModel).Confirmed || cmd == nil {
		t.Error("esc should quit without confirming")
	}
}

func TestPickerCursorBounds(t *testing.T) {
	m := pickerAt(t, "2.1.6.RELEASE")
	m = press(m, keyUp)
	if m.Cursor != 0 {
		t.Errorf("cursor = %d, want 0", m.Cursor)
	}
	for range len(m.Items) + 3 {
		m = press(m, keyDown)
	}
	if m.Cursor != len(m.Items)-1 {
		t.Errorf("cursor = %d, want last item", m.Cursor)
	}
}

func TestPickerView(t *testing.T) {
	m := pickerAt(t, "2.1.6.RELEASE")
	view := m.View()
	for _, want := range []string{"Select Dependencies", "2.1.6.RELEASE", "Web", "requires"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
}
