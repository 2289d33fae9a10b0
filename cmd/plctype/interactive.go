package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/goccy/go-json"

	iec61131 "github.com/jisotalo/iec-61131-3"
	"github.com/jisotalo/iec-61131-3/dut"
	"github.com/jisotalo/iec-61131-3/resolver"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	kindStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

type modelState int

const (
	stateSelectType modelState = iota
	stateShowLayout
	stateInputBytes
	stateShowValue
)

type interactiveModel struct {
	err      error
	filename string
	units    []*dut.Unit
	resolved iec61131.DataType
	layout   []string
	value    string
	hexInput textinput.Model
	selected int
	state    modelState
}

type loadedMsg struct {
	err   error
	units []*dut.Unit
}

type decodedMsg struct {
	err   error
	value string
}

func newInteractiveModel(filename string) *interactiveModel {
	return &interactiveModel{
		filename: filename,
		state:    stateSelectType,
	}
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadDeclarations
}

func (m *interactiveModel) loadDeclarations() tea.Msg {
	source, err := os.ReadFile(m.filename)
	if err != nil {
		return loadedMsg{err: err}
	}
	units, err := dut.Extract(string(source))
	if err != nil {
		return loadedMsg{err: err}
	}
	if len(units) == 0 {
		return loadedMsg{err: fmt.Errorf("no TYPE declarations in %s", m.filename)}
	}
	return loadedMsg{units: units}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.state != stateInputBytes || msg.String() == "ctrl+c" {
				return m, tea.Quit
			}

		case "up", "k":
			if m.state == stateSelectType && m.selected > 0 {
				m.selected--
			}

		case "down", "j":
			if m.state == stateSelectType && m.selected < len(m.units)-1 {
				m.selected++
			}

		case "enter":
			switch m.state {
			case stateSelectType:
				m.resolveSelected()
				if m.err == nil {
					m.state = stateShowLayout
				}

			case stateInputBytes:
				return m, m.decodeInput

			case stateShowValue:
				m.state = stateShowLayout
				m.value = ""
				m.err = nil
			}

		case "d":
			if m.state == stateShowLayout {
				ti := textinput.New()
				ti.Placeholder = "hex bytes, e.g. 0102a0ff"
				ti.Prompt = "bytes: "
				ti.Width = 60
				ti.Focus()
				m.hexInput = ti
				m.state = stateInputBytes
				return m, nil
			}

		case "esc":
			switch m.state {
			case stateShowLayout:
				m.state = stateSelectType
				m.resolved = nil
				m.layout = nil
				m.err = nil
			case stateInputBytes:
				m.state = stateShowLayout
			case stateShowValue:
				m.state = stateShowLayout
				m.value = ""
				m.err = nil
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.units = msg.units

	case decodedMsg:
		m.value = msg.value
		m.err = msg.err
		m.state = stateShowValue
	}

	if m.state == stateInputBytes {
		var cmd tea.Cmd
		m.hexInput, cmd = m.hexInput.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m *interactiveModel) resolveSelected() {
	u := m.units[m.selected]
	dt, err := resolver.ResolveUnits(m.units, resolver.WithTopLevel(u.Name))
	if err != nil {
		m.err = err
		return
	}
	m.resolved = dt
	m.layout = m.layout[:0]
	for f := range iec61131.Elements(dt) {
		m.layout = append(m.layout, fmt.Sprintf("%5d  %5d  %-8s %s",
			f.Offset, f.Type.ByteLength(), kindStyle.Render(f.Type.Kind().String()), f.Name))
	}
}

func (m *interactiveModel) decodeInput() tea.Msg {
	raw := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' {
			return -1
		}
		return r
	}, m.hexInput.Value())

	data, err := hex.DecodeString(raw)
	if err != nil {
		return decodedMsg{err: fmt.Errorf("parse hex: %w", err)}
	}
	value, err := iec61131.DecodeFromBytes(m.resolved, data)
	if err != nil {
		return decodedMsg{err: err}
	}
	out, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return decodedMsg{err: err}
	}
	return decodedMsg{value: string(out)}
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowValue {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if len(m.units) == 0 {
		return "Loading declarations..."
	}

	var b strings.Builder

	b.WriteString(titleStyle.Render("PLC Type Browser"))
	b.WriteString(" ")
	b.WriteString(m.filename)
	b.WriteString("\n\n")

	switch m.state {
	case stateSelectType:
		b.WriteString("Select a data type:\n\n")
		for i, u := range m.units {
			line := nameStyle.Render(u.Name) + "  " + kindStyle.Render(u.Kind.String())
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + u.Name + "  " + u.Kind.String()))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ select • enter resolve • q quit"))

	case stateShowLayout:
		u := m.units[m.selected]
		b.WriteString(fmt.Sprintf("%s (%d bytes)\n\n", nameStyle.Render(u.Name), m.resolved.ByteLength()))
		b.WriteString(helpStyle.Render(fmt.Sprintf("%5s  %5s  %-8s %s\n", "OFF", "SIZE", "KIND", "NAME")))
		for _, line := range m.layout {
			b.WriteString(line)
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("d decode bytes • esc back • q quit"))

	case stateInputBytes:
		u := m.units[m.selected]
		b.WriteString(fmt.Sprintf("Decode as %s (%d bytes expected)\n\n",
			nameStyle.Render(u.Name), m.resolved.ByteLength()))
		b.WriteString(m.hexInput.View())
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter decode • esc back"))

	case stateShowValue:
		u := m.units[m.selected]
		b.WriteString(fmt.Sprintf("Decoded %s:\n\n", nameStyle.Render(u.Name)))
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(valueStyle.Render(m.value))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter back • q quit"))
	}

	return b.String()
}

func runInteractive(filename string) error {
	p := tea.NewProgram(newInteractiveModel(filename), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
