// Copyright 2025 Arion Yau
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"sonyremote/internal/bravia"
	"sonyremote/internal/sequencer"
	"sonyremote/internal/status"
)

// Runner sends a batch of buttons and blocks until it is done
type Runner interface {
	Run(ctx context.Context, tokens []string) (*sequencer.Report, error)
}

// LogEntry represents a log entry for display
type LogEntry struct {
	Timestamp time.Time
	Level     string // INF, WRN, ERR
	Message   string
}

type eventMsg status.Event

type batchDoneMsg struct {
	report *sequencer.Report
	err    error
}

// clearStatusMsg removes the status line unless a newer message replaced it
type clearStatusMsg struct {
	generation uint64
}

// single key shortcuts outside the channel entry
var keyCommands = map[string]string{
	"up":        "Up",
	"down":      "Down",
	"left":      "Left",
	"right":     "Right",
	"p":         "TvPower",
	"+":         "VolumeUp",
	"=":         "VolumeUp",
	"-":         "VolumeDown",
	"m":         "Mute",
	"pgup":      "ChannelUp",
	"ctrl+up":   "ChannelUp",
	"pgdown":    "ChannelDown",
	"ctrl+down": "ChannelDown",
	"h":         "Home",
	"o":         "Options",
	"i":         "Input",
	"g":         "GGuide",
	"n":         "Netflix",
	" ":         "Pause",
	"space":     "Pause",
	">":         "Play",
	"f1":        "Hdmi1",
	"f2":        "Hdmi2",
	"f3":        "Hdmi3",
	"f4":        "Hdmi4",
}

// RemoteModel handles the remote control screen
type RemoteModel struct {
	runner   Runner
	ctx      context.Context
	endpoint bravia.Endpoint

	// Remote control state
	selectedCommand string
	lastButtonPress time.Time

	// channel digits typed so far, sent on enter
	channel textField

	// free text batch entry opened with ':'
	commandMode bool
	command     textField

	statusText       string
	statusSeverity   status.Severity
	statusGeneration uint64

	// Flags
	debugMode bool
	testMode  bool

	// Screen dimensions for responsive layout
	width  int
	height int

	logBuffer   []LogEntry
	maxLogLines int
}

// NewRemoteModel creates a new remote control screen model
func NewRemoteModel(ctx context.Context, runner Runner, endpoint bravia.Endpoint, debug, test bool) RemoteModel {
	return RemoteModel{
		runner:      runner,
		ctx:         ctx,
		endpoint:    endpoint,
		debugMode:   debug,
		testMode:    test,
		maxLogLines: 3,
	}
}

// Typing reports whether keys go into a text field
func (m RemoteModel) Typing() bool {
	return m.commandMode
}

// Update handles remote control screen messages
func (m RemoteModel) Update(msg tea.Msg) (RemoteModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case eventMsg:
		return m.handleEvent(status.Event(msg))

	case clearStatusMsg:
		if msg.generation == m.statusGeneration {
			m.statusText = ""
		}
		return m, nil

	case batchDoneMsg:
		if msg.err != nil && (m.debugMode || m.testMode) && m.statusText == "" {
			m.addLogEntry("ERR", msg.err.Error())
		}
		return m, nil

	case tea.KeyMsg:
		if m.commandMode {
			return m.handleCommandKey(msg)
		}
		return m.handleRemoteKey(msg)
	}

	return m, nil
}

func (m RemoteModel) handleRemoteKey(msg tea.KeyMsg) (RemoteModel, tea.Cmd) {
	key := msg.String()

	switch key {
	case "0", "1", "2", "3", "4", "5", "6", "7", "8", "9", ".":
		m.channel.insert(key)
		return m, nil
	case "esc":
		m.channel = textField{}
		return m, nil
	case ":":
		m.commandMode = true
		m.command = textField{}
		return m, nil
	case "enter":
		if channel := m.channel.value; channel != "" {
			m.channel = textField{}
			return m.send(channel)
		}
		return m.send("Confirm")
	case "backspace":
		if m.channel.value != "" {
			m.channel.backspace()
			return m, nil
		}
		return m.send("Return")
	}

	if command, ok := keyCommands[key]; ok {
		return m.send(command)
	}
	return m, nil
}

func (m RemoteModel) handleCommandKey(msg tea.KeyMsg) (RemoteModel, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.commandMode = false
		return m, nil
	case "enter":
		m.commandMode = false
		tokens := sequencer.ParseButton(m.command.value)
		if len(tokens) == 0 {
			return m, nil
		}
		return m.send(tokens...)
	case "left":
		m.command.left()
	case "right":
		m.command.right()
	case "backspace":
		m.command.backspace()
	case "delete":
		m.command.deleteForward()
	case "home":
		m.command.home()
	case "end":
		m.command.end()
	case "space":
		m.command.insert(" ")
	default:
		if text := printable(msg.String()); text != "" && len(msg.Runes) > 0 {
			m.command.insert(text)
		}
	}
	return m, nil
}

// send runs a batch in the background; its progress arrives as eventMsg
func (m RemoteModel) send(tokens ...string) (RemoteModel, tea.Cmd) {
	if m.runner == nil || len(tokens) == 0 {
		return m, nil
	}

	m.selectedCommand = tokens[0]
	m.lastButtonPress = time.Now()

	runner, ctx := m.runner, m.ctx
	if ctx == nil {
		ctx = context.Background()
	}
	return m, func() tea.Msg {
		report, err := runner.Run(ctx, tokens)
		return batchDoneMsg{report: report, err: err}
	}
}

// handleEvent shows the latest sequencer message. A message with a display
// duration is cleared after it unless a newer one replaced it first.
func (m RemoteModel) handleEvent(e status.Event) (RemoteModel, tea.Cmd) {
	m.statusGeneration++
	m.statusText = e.Message
	m.statusSeverity = e.Severity

	if m.debugMode || m.testMode {
		level := "INF"
		switch e.Severity {
		case status.SeverityWarning:
			level = "WRN"
		case status.SeverityError:
			level = "ERR"
		}
		m.addLogEntry(level, e.Message)
	}

	if e.Duration <= 0 {
		return m, nil
	}
	generation := m.statusGeneration
	return m, tea.Tick(e.Duration, func(time.Time) tea.Msg {
		return clearStatusMsg{generation: generation}
	})
}

// View renders the remote control screen
func (m RemoteModel) View() string {
	var sections []string

	sections = append(sections, titleStyle.Render("Sony Remote - TV Remote Control"))

	deviceInfo := successStyle.Render("📺 Bravia @ " + m.endpoint.Address)
	if m.testMode {
		deviceInfo += " " + lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C")).Render("(Test)")
	}
	sections = append(sections, deviceInfo)

	sections = append(sections, m.renderHorizontalRemoteLayout())
	sections = append(sections, m.renderEntry())

	if line := m.renderStatusBar(); line != "" {
		sections = append(sections, line)
	}

	if m.debugMode || m.testMode {
		if logDisplay := m.renderLogDisplay(); logDisplay != "" {
			sections = append(sections, logDisplay)
		}
	}

	sections = append(sections, m.renderHelpText())

	return strings.Join(sections, "\n\n")
}

func (m RemoteModel) renderHorizontalRemoteLayout() string {
	button := func(command, label string) string {
		style := remoteButtonStyle
		if m.selectedCommand == command && time.Since(m.lastButtonPress) < 200*time.Millisecond {
			style = remoteButtonActiveStyle
		}
		return style.Render(label)
	}

	navColumn := lipgloss.JoinVertical(lipgloss.Center,
		lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B")).Render("Power & Navigation:"),
		button("TvPower", " PWR  "),
		"",
		button("Up", "  ↑   "),
		lipgloss.JoinHorizontal(lipgloss.Center,
			button("Left", "  ←   "),
			button("Confirm", " OK   "),
			button("Right", "  →   ")),
		button("Down", "  ↓   "),
	)

	volumeColumn := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Foreground(lipgloss.Color("#8BE9FD")).Render("Volume & Channel:"),
		lipgloss.JoinHorizontal(lipgloss.Left,
			button("VolumeUp", "VOL + "),
			"  ",
			button("ChannelUp", "CH +  ")),
		lipgloss.JoinHorizontal(lipgloss.Left,
			button("VolumeDown", "VOL - "),
			"  ",
			button("ChannelDown", "CH -  ")),
		button("Mute", "MUTE  "),
	)

	functionColumn := lipgloss.JoinVertical(lipgloss.Left,
		lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C")).Render("Functions:"),
		lipgloss.JoinHorizontal(lipgloss.Left,
			button("Home", "HOME  "),
			" ",
			button("Options", "OPTS  ")),
		lipgloss.JoinHorizontal(lipgloss.Left,
			button("Return", "BACK  "),
			" ",
			button("Input", "INPUT ")),
		"",
		lipgloss.NewStyle().Foreground(lipgloss.Color("#BD93F9")).Render("HDMI:"),
		lipgloss.JoinHorizontal(lipgloss.Left,
			button("Hdmi1", "HDMI1 "),
			" ",
			button("Hdmi2", "HDMI2 ")),
		lipgloss.JoinHorizontal(lipgloss.Left,
			button("Hdmi3", "HDMI3 "),
			" ",
			button("Hdmi4", "HDMI4 ")),
	)

	return lipgloss.JoinHorizontal(lipgloss.Top,
		navColumn,
		strings.Repeat(" ", 6),
		volumeColumn,
		strings.Repeat(" ", 6),
		functionColumn,
	)
}

func (m RemoteModel) renderEntry() string {
	if m.commandMode {
		return subtitleStyle.Render("Buttons: ") + inputFocusedStyle.Render(m.command.render(true))
	}
	channel := m.channel.value
	if channel == "" {
		channel = "--"
	}
	return subtitleStyle.Render("Channel: ") + channel
}

func (m RemoteModel) renderStatusBar() string {
	if m.statusText == "" {
		return ""
	}
	switch m.statusSeverity {
	case status.SeverityError:
		return errorStyle.Render("✗ " + m.statusText)
	case status.SeverityWarning:
		return warningStyle.Render("! " + m.statusText)
	default:
		return successStyle.Render("✓ " + m.statusText)
	}
}

func (m RemoteModel) renderLogDisplay() string {
	if len(m.logBuffer) == 0 {
		return ""
	}

	start := 0
	if len(m.logBuffer) > m.maxLogLines {
		start = len(m.logBuffer) - m.maxLogLines
	}

	header := "─── LOGS ───"
	if start > 0 {
		header = "─── LOGS ↓ ───"
	}
	logLines := []string{helpStyle.Render(header)}

	for i := 0; i < m.maxLogLines; i++ {
		if start+i >= len(m.logBuffer) {
			logLines = append(logLines, "")
			continue
		}
		entry := m.logBuffer[start+i]

		levelStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#50FA7B"))
		switch entry.Level {
		case "ERR":
			levelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF5555"))
		case "WRN":
			levelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFB86C"))
		}

		message := entry.Message
		if len(message) > 60 {
			message = message[:57] + "..."
		}
		logLines = append(logLines, fmt.Sprintf("%s [%s] %s",
			entry.Timestamp.Format("15:04:05"),
			levelStyle.Render(entry.Level),
			message))
	}

	return strings.Join(logLines, "\n")
}

func (m *RemoteModel) addLogEntry(level, message string) {
	m.logBuffer = append(m.logBuffer, LogEntry{
		Timestamp: time.Now(),
		Level:     level,
		Message:   message,
	})

	if len(m.logBuffer) > 20 {
		m.logBuffer = m.logBuffer[1:]
	}
}

func (m RemoteModel) renderHelpText() string {
	if m.commandMode {
		return helpStyle.Render("Type button names separated by spaces • Enter: Send • Esc: Cancel")
	}

	help := "Arrows: Navigate • Enter: OK/Channel • P: Power • +/-: Volume • M: Mute • 0-9 .: Channel • :: Buttons"
	if m.width > 100 {
		help += " • H: Home • I: Input • N: Netflix • F1-F4: HDMI • q: Setup"
	} else {
		help += " • q: Setup"
	}

	return helpStyle.Render(help)
}
