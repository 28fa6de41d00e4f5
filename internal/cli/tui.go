package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/initializr/pkg/metadata"
	"github.com/matzehuels/initializr/pkg/version"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorPlatform)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorText)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorMuted)
	listGroupStyle    = lipgloss.NewStyle().Foreground(colorLabel).Bold(true)
)

// =============================================================================
// DependencyPickerModel - Interactive dependency selection
// =============================================================================

// pickerItem is one dependency row of the picker.
type pickerItem struct {
	Group      string
	Dependency *metadata.Dependency
	Compatible bool
}

// DependencyPickerModel is the bubbletea model for picking the dependencies
// of a project. Dependencies outside the range of the platform version are
// shown but cannot be picked.
type DependencyPickerModel struct {
	Platform  string
	Items     []pickerItem
	Cursor    int
	Offset    int
	Height    int
	Picked    map[string]bool
	Confirmed bool
}

// NewDependencyPickerModel lists the dependencies of c for platform.
func NewDependencyPickerModel(c *metadata.Catalog, platform version.Version) DependencyPickerModel {
	var items []pickerItem
	for _, g := range c.Dependencies.Groups() {
		for _, d := range g.Content {
			items = append(items, pickerItem{Group: g.Name, Dependency: d, Compatible: d.Match(platform)})
		}
	}
	return DependencyPickerModel{
		Platform: platform.String(),
		Items:    items,
		Height:   15,
		Picked:   make(map[string]bool),
	}
}

// Selection returns the picked dependency ids in catalog order.
func (m DependencyPickerModel) Selection() []string {
	var ids []string
	for _, it := range m.Items {
		if m.Picked[it.Dependency.ID] {
			ids = append(ids, it.Dependency.ID)
		}
	}
	return ids
}

func (m DependencyPickerModel) Init() tea.Cmd {
	return nil
}

func (m DependencyPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Items)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			if len(m.Items) == 0 {
				return m, nil
			}
			it := m.Items[m.Cursor]
			if !it.Compatible {
				return m, nil
			}
			// Picked is shared between model copies; copy before writing.
			picked := make(map[string]bool, len(m.Picked)+1)
			for id, v := range m.Picked {
				picked[id] = v
			}
			picked[it.Dependency.ID] = !picked[it.Dependency.ID]
			m.Picked = picked
		case "enter":
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m DependencyPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Dependencies"))
	b.WriteString(StyleDim.Render("  platform ") + StylePlatform.Render(m.Platform))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  ⏎ confirm  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Items) {
		end = len(m.Items)
	}

	group := ""
	for i := m.Offset; i < end; i++ {
		it := m.Items[i]
		if it.Group != group {
			group = it.Group
			b.WriteString(listGroupStyle.Render(group))
			b.WriteString("\n")
		}

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		box := "[ ]"
		if m.Picked[it.Dependency.ID] {
			box = "[" + iconSuccess + "]"
		}

		name := it.Dependency.Name
		if name == "" {
			name = it.Dependency.ID
		}
		line := fmt.Sprintf("%s%s %-24s %s", cursor, box, name, it.Dependency.ID)

		switch {
		case !it.Compatible:
			b.WriteString(listDimStyle.Render(line + "  (requires " + it.Dependency.Range().String() + ")"))
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]  %d picked", m.Cursor+1, len(m.Items), len(m.Selection()))))

	return b.String()
}
