package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/matzehuels/pathclip/pkg/errors"
	"github.com/matzehuels/pathclip/pkg/pathway"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listChosenStyle   = lipgloss.NewStyle().Foreground(colorGreen)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ElementPickerModel - Interactive multi-selection of elements to copy
// =============================================================================

// ElementPickerModel is the bubbletea model for choosing elements to copy.
type ElementPickerModel struct {
	Elements  []pathway.Element
	Cursor    int
	Chosen    map[int]bool
	Confirmed bool
	Height    int
	Offset    int
}

// NewElementPickerModel creates a picker over the document's elements.
func NewElementPickerModel(elements []pathway.Element) ElementPickerModel {
	return ElementPickerModel{
		Elements: elements,
		Chosen:   map[int]bool{},
		Height:   15,
	}
}

func (m ElementPickerModel) Init() tea.Cmd {
	return nil
}

func (m ElementPickerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Elements)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case " ", "x":
			if len(m.Elements) > 0 {
				m.toggle(m.Cursor)
			}
		case "a":
			all := len(m.Chosen) == len(m.Elements)
			m.Chosen = map[int]bool{}
			if !all {
				for i := range m.Elements {
					m.Chosen[i] = true
				}
			}
		case "enter":
			if len(m.Chosen) == 0 {
				return m, nil
			}
			m.Confirmed = true
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-8, 5)
	}
	return m, nil
}

// toggle flips index i. Chosen is shared between copies of the model, so it
// is replaced rather than mutated.
func (m *ElementPickerModel) toggle(i int) {
	next := make(map[int]bool, len(m.Chosen)+1)
	for k := range m.Chosen {
		next[k] = true
	}
	if next[i] {
		delete(next, i)
	} else {
		next[i] = true
	}
	m.Chosen = next
}

// Selection returns the chosen elements in document order.
func (m ElementPickerModel) Selection() []pathway.Element {
	if !m.Confirmed {
		return nil
	}
	var out []pathway.Element
	for i, e := range m.Elements {
		if m.Chosen[i] {
			out = append(out, e)
		}
	}
	return out
}

func (m ElementPickerModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Elements to Copy"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  a all  ⏎ copy  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Elements))
	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Elements[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		mark := "[ ]"
		if m.Chosen[i] {
			mark = "[x]"
		}
		rows = append(rows, []string{cursor + mark, e.ElementID(), e.Kind().String(), describe(e)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "ID", "Kind", "Label").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			switch {
			case idx == m.Cursor:
				return listSelectedStyle
			case m.Chosen[idx]:
				return listChosenStyle
			}
			return lipgloss.NewStyle()
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  %d selected · [%d/%d]", len(m.Chosen), m.Cursor+1, len(m.Elements))))
	return b.String()
}

// describe returns a short human label for an element.
func describe(e pathway.Element) string {
	switch v := e.(type) {
	case *pathway.DataNode:
		return v.TextLabel
	case *pathway.Label:
		return v.TextLabel
	case *pathway.Shape:
		return v.TextLabel
	case *pathway.Group:
		return fmt.Sprintf("%s (%d members)", v.TextLabel, len(v.Members))
	case *pathway.Line:
		from, to := v.StartRef(), v.EndRef()
		if from == "" {
			from = "·"
		}
		if to == "" {
			to = "·"
		}
		return from + " " + iconArrow + " " + to
	case *pathway.Info:
		return v.Title
	}
	return ""
}

// pickElements runs the picker and returns the chosen elements. Quitting
// without confirming is a cancellation.
func pickElements(elements []pathway.Element) ([]pathway.Element, error) {
	if len(elements) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "document has no elements")
	}
	final, err := tea.NewProgram(NewElementPickerModel(elements), tea.WithAltScreen()).Run()
	if err != nil {
		return nil, fmt.Errorf("element picker: %w", err)
	}
	sel := final.(ElementPickerModel).Selection()
	if len(sel) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "selection cancelled")
	}
	return sel, nil
}
