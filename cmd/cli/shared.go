package cli

import (
	"github.com/charmbracelet/lipgloss"
)

// Screen types
type screen int

const (
	screenDeviceSetup screen = iota
	screenRemoteControl
)

// Common styles
var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Bold(true)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#7D56F4")).
			Bold(true)

	inputStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#7D56F4")).
			Padding(0, 1).
			Width(50)

	inputFocusedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("#FF79C6")).
				Padding(0, 1).
				Width(50)

	buttonStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("#7D56F4")).
			Foreground(lipgloss.Color("#FAFAFA")).
			Padding(0, 2).
			Margin(0, 1)

	buttonActiveStyle = lipgloss.NewStyle().
				Background(lipgloss.Color("#FF79C6")).
				Foreground(lipgloss.Color("#FAFAFA")).
				Padding(0, 2).
				Margin(0, 1)

	remoteButtonStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1).
				Margin(0, 1).
				Background(lipgloss.Color("#44475A")).
				Foreground(lipgloss.Color("#F8F8F2"))

	remoteButtonActiveStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1).
				Margin(0, 1).
				Background(lipgloss.Color("#FF79C6")).
				Foreground(lipgloss.Color("#FAFAFA"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF5555")).
			Bold(true)

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFB86C")).
			Bold(true)

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#50FA7B")).
			Bold(true)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6272A4"))
)

// textField is a single line input with a cursor
type textField struct {
	value  string
	cursor int
}

func newTextField(value string) textField {
	return textField{value: value, cursor: len(value)}
}

func (f *textField) insert(text string) {
	f.clamp()
	f.value = f.value[:f.cursor] + text + f.value[f.cursor:]
	f.cursor += len(text)
}

func (f *textField) backspace() {
	f.clamp()
	if f.cursor > 0 {
		f.value = f.value[:f.cursor-1] + f.value[f.cursor:]
		f.cursor--
	}
}

func (f *textField) deleteForward() {
	f.clamp()
	if f.cursor < len(f.value) {
		f.value = f.value[:f.cursor] + f.value[f.cursor+1:]
	}
}

func (f *textField) left() {
	if f.cursor > 0 {
		f.cursor--
	}
}

func (f *textField) right() {
	if f.cursor < len(f.value) {
		f.cursor++
	}
}

func (f *textField) home() { f.cursor = 0 }

func (f *textField) end() { f.cursor = len(f.value) }

func (f *textField) clamp() {
	if f.cursor < 0 {
		f.cursor = 0
	}
	if f.cursor > len(f.value) {
		f.cursor = len(f.value)
	}
}

// render shows the text with a cursor indicator when focused
func (f textField) render(focused bool) string {
	if !focused {
		return f.value
	}
	f.clamp()

	if f.cursor == len(f.value) {
		return f.value + "│"
	}

	highlighted := lipgloss.NewStyle().
		Background(lipgloss.Color("#FF79C6")).
		Foreground(lipgloss.Color("#FAFAFA")).
		Render(string(f.value[f.cursor]))

	return f.value[:f.cursor] + highlighted + f.value[f.cursor+1:]
}

// printable drops control characters from key input
func printable(input string) string {
	if len(input) == 0 || input == "\x00" {
		return ""
	}
	var out []rune
	for _, r := range input {
		if r >= 32 && r < 127 || r > 127 {
			out = append(out, r)
		}
	}
	return string(out)
}
