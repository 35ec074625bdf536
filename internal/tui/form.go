package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func newInput(placeholder string, limit int, secret bool) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.CharLimit = limit
	in.Width = 40
	if secret {
		in.EchoMode = textinput.EchoPassword
		in.EchoCharacter = '*'
	}
	return in
}

// inputForm is a column of text inputs with one focused field.
type inputForm struct {
	inputs []textinput.Model
	focus  int
}

func newInputForm(inputs ...textinput.Model) inputForm {
	f := inputForm{inputs: inputs}
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
	return f
}

func (f *inputForm) focusNext() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus + 1) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

func (f *inputForm) focusPrev() {
	f.inputs[f.focus].Blur()
	f.focus = (f.focus - 1 + len(f.inputs)) % len(f.inputs)
	f.inputs[f.focus].Focus()
}

// update forwards msg to the focused input.
func (f *inputForm) update(msg tea.Msg) tea.Cmd {
	if len(f.inputs) == 0 {
		return nil
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

// value returns the trimmed value of input i.
func (f inputForm) value(i int) string {
	return strings.TrimSpace(f.inputs[i].Value())
}

func (f *inputForm) reset() {
	for i := range f.inputs {
		f.inputs[i].SetValue("")
		f.inputs[i].Blur()
	}
	f.focus = 0
	if len(f.inputs) > 0 {
		f.inputs[0].Focus()
	}
}

// table renders the inputs as a two-column table with the given labels.
func (f inputForm) table(labels []string) string {
	width := lipgloss.Width("Поле")
	for _, l := range labels {
		if w := lipgloss.Width(l); w > width {
			width = w
		}
	}

	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s │ Значение\n", padRight("Поле", width)))
	b.WriteString(strings.Repeat("─", width+1))
	b.WriteString("┼")
	b.WriteString(strings.Repeat("─", 44))
	b.WriteString("\n")
	for i, in := range f.inputs {
		label := ""
		if i < len(labels) {
			label = labels[i]
		}
		b.WriteString(padRight(label, width))
		b.WriteString(" │ [")
		b.WriteString(in.View())
		b.WriteString("]\n")
	}
	return b.String()
}

func padRight(s string, width int) string {
	if w := lipgloss.Width(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
