package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

func newTextInput(placeholder string, secret bool) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 128
	ti.Width = 40
	if secret {
		ti.EchoMode = textinput.EchoPassword
		ti.EchoCharacter = '•'
	}
	return ti
}

// picker is a vertical single-choice selector over a fixed option list.
type picker struct {
	label   string
	options []string
	cursor  int
	choice  string
}

func newPicker(label string, options []string) picker {
	return picker{label: label, options: options}
}

// newPickerWith restores a previously selected choice, e.g. from a draft.
func newPickerWith(label string, options []string, choice string) picker {
	p := newPicker(label, options)
	p.choice = choice
	for i, opt := range options {
		if opt == choice {
			p.cursor = i
		}
	}
	return p
}

func (p picker) Update(msg tea.Msg) (picker, bool) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return p, false
	}
	switch key.String() {
	case "up", "k":
		if p.cursor > 0 {
			p.cursor--
		}
	case "down", "j":
		if p.cursor < len(p.options)-1 {
			p.cursor++
		}
	case "enter", " ":
		p.choice = p.options[p.cursor]
		return p, true
	}
	return p, false
}

func (p picker) View() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render(p.label) + "\n")
	for i, opt := range p.options {
		cursor := "  "
		if i == p.cursor {
			cursor = selectedStyle.Render("> ")
		}
		mark := "( )"
		if opt == p.choice {
			mark = checkedStyle.Render("(x)")
		}
		line := fmt.Sprintf("%s%s %s", cursor, mark, opt)
		if i == p.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}

// multiPicker is a vertical multi-choice selector.
type multiPicker struct {
	label   string
	options []string
	cursor  int
	chosen  map[string]bool
}

func newMultiPicker(label string, options []string, chosen []string) multiPicker {
	m := multiPicker{label: label, options: options, chosen: make(map[string]bool)}
	for _, c := range chosen {
		m.chosen[c] = true
	}
	return m
}

// Update returns the toggled option, if any.
func (m multiPicker) Update(msg tea.Msg) (multiPicker, string) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, ""
	}
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case " ", "enter":
		opt := m.options[m.cursor]
		m.chosen[opt] = !m.chosen[opt]
		return m, opt
	}
	return m, ""
}

func (m multiPicker) View() string {
	var b strings.Builder
	b.WriteString(labelStyle.Render(m.label) + "\n")
	for i, opt := range m.options {
		cursor := "  "
		if i == m.cursor {
			cursor = selectedStyle.Render("> ")
		}
		mark := "[ ]"
		if m.chosen[opt] {
			mark = checkedStyle.Render("[x]")
		}
		line := fmt.Sprintf("%s%s %s", cursor, mark, opt)
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return b.String()
}
