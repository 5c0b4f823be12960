// Package form implements the interactive terminal form that collects a module
// specification.
//
// The form follows The Elm Architecture through bubbletea: Model holds the five
// text inputs, Update moves focus and validates on submit, View renders the
// inputs with lipgloss styles.
//
// Keys: tab, down and enter advance; shift+tab and up go back; enter on the
// last field submits; esc and ctrl+c cancel.
package form

import (
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"go.eggybyte.com/bulone/core/errors"
)

// Validation messages shown under the form.
const (
	MsgFieldsRequired = "All fields are required"
	MsgPathMissing    = "File path missing"
)

// ErrCancelled is returned by Run when the user leaves the form.
var ErrCancelled = errors.New(errors.CodeInvalidArgument, "form cancelled")

// Values are the form fields.
type Values struct {
	ModuleName  string
	OutputPath  string
	ProjectName string
	Author      string
	Copyright   string
}

// Validate returns the message to show for incomplete values, or "".
// Text fields are checked before the output path.
func Validate(v Values) string {
	for _, s := range []string{v.ModuleName, v.ProjectName, v.Author, v.Copyright} {
		if strings.TrimSpace(s) == "" {
			return MsgFieldsRequired
		}
	}
	if strings.TrimSpace(v.OutputPath) == "" {
		return MsgPathMissing
	}
	return ""
}

type field int

const (
	fieldModule field = iota
	fieldOutput
	fieldProject
	fieldAuthor
	fieldCopyright
	fieldCount
)

var labels = [...]string{
	"Module name",
	"Output path",
	"Project",
	"Author",
	"Copyright",
}

var _ = [1]struct{}{}[len(labels)-int(fieldCount)]

var (
	titleStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4")).MarginBottom(1)
	labelStyle   = lipgloss.NewStyle().Width(14).Foreground(lipgloss.Color("245"))
	focusedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	blurredStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	errorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("196")).Bold(true)
	helpStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).MarginTop(1)
)

// Model is the bubbletea model of the form.
type Model struct {
	inputs    []textinput.Model
	focus     field
	message   string
	submitted bool
	cancelled bool
}

// New creates a form prefilled with initial.
func New(initial Values) Model {
	m := Model{inputs: make([]textinput.Model, fieldCount)}
	values := []string{initial.ModuleName, initial.OutputPath, initial.ProjectName, initial.Author, initial.Copyright}

	for i := range m.inputs {
		in := textinput.New()
		in.Prompt = "› "
		in.Placeholder = labels[i]
		in.CharLimit = 256
		in.Width = 48
		in.SetValue(values[i])
		m.inputs[i] = in
	}
	m.inputs[fieldModule].Placeholder = "Login"
	m.setFocus(fieldModule)
	return m
}

// Values returns the current field contents, trimmed.
func (m Model) Values() Values {
	get := func(f field) string { return strings.TrimSpace(m.inputs[f].Value()) }
	return Values{
		ModuleName:  get(fieldModule),
		OutputPath:  get(fieldOutput),
		ProjectName: get(fieldProject),
		Author:      get(fieldAuthor),
		Copyright:   get(fieldCopyright),
	}
}

// Submitted reports whether the form was completed.
func (m Model) Submitted() bool { return m.submitted }

// Cancelled reports whether the user left the form.
func (m Model) Cancelled() bool { return m.cancelled }

// Message returns the current validation message.
func (m Model) Message() string { return m.message }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return textinput.Blink
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "ctrl+c", "esc":
			m.cancelled = true
			return m, tea.Quit
		case "tab", "down":
			return m, m.setFocus((m.focus + 1) % fieldCount)
		case "shift+tab", "up":
			return m, m.setFocus((m.focus + fieldCount - 1) % fieldCount)
		case "enter":
			if m.focus < fieldCount-1 {
				return m, m.setFocus(m.focus + 1)
			}
			if m.message = Validate(m.Values()); m.message != "" {
				return m, nil
			}
			m.submitted = true
			return m, tea.Quit
		}
	}

	var cmd tea.Cmd
	m.inputs[m.focus], cmd = m.inputs[m.focus].Update(msg)
	return m, cmd
}

// setFocus moves focus to f and returns the input's blink command.
func (m *Model) setFocus(f field) tea.Cmd {
	m.focus = f
	var cmd tea.Cmd
	for i := range m.inputs {
		if field(i) == f {
			cmd = m.inputs[i].Focus()
			m.inputs[i].PromptStyle = focusedStyle
			m.inputs[i].TextStyle = focusedStyle
			continue
		}
		m.inputs[i].Blur()
		m.inputs[i].PromptStyle = blurredStyle
		m.inputs[i].TextStyle = blurredStyle
	}
	return cmd
}

// View implements tea.Model.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("bulone · new module"))
	b.WriteString("\n")

	for i, in := range m.inputs {
		b.WriteString(labelStyle.Render(labels[i]))
		b.WriteString(in.View())
		b.WriteString("\n")
	}

	if m.message != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render(m.message))
		b.WriteString("\n")
	}
	b.WriteString(helpStyle.Render("tab/shift+tab move · enter next/submit · esc cancel"))
	b.WriteString("\n")
	return b.String()
}

// Run shows the form on the terminal and blocks until it is submitted or
// cancelled. in and out default to the process terminal when nil.
func Run(initial Values, in io.Reader, out io.Writer) (Values, error) {
	var opts []tea.ProgramOption
	if in != nil {
		opts = append(opts, tea.WithInput(in))
	}
	if out != nil {
		opts = append(opts, tea.WithOutput(out))
	}

	final, err := tea.NewProgram(New(initial), opts...).Run()
	if err != nil {
		return Values{}, errors.Wrap(errors.CodeInternal, "form.Run", err)
	}

	m, ok := final.(Model)
	if !ok || m.Cancelled() || !m.Submitted() {
		return Values{}, ErrCancelled
	}
	return m.Values(), nil
}
