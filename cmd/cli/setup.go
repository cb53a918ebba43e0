package cli

import (
	"context"
	"net"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbletea"
	"sonyremote/internal/bravia"
	"sonyremote/internal/logger"
)

var hostnamePattern = regexp.MustCompile(`^[a-zA-Z0-9.-]+$`)

// Setup screen input fields
type setupField int

const (
	setupFieldHostAddress setupField = iota
	setupFieldCredential
	setupFieldSave
)

// EndpointSaver persists the device endpoint
type EndpointSaver interface {
	SaveEndpoint(ctx context.Context, endpoint bravia.Endpoint) error
}

type endpointSavedMsg struct {
	endpoint bravia.Endpoint
	err      error
}

// SetupModel handles the device setup screen
type SetupModel struct {
	focusedField setupField

	host textField
	psk  textField

	saving    bool
	saveError string
	saved     bool
	endpoint  bravia.Endpoint

	store EndpointSaver
}

// NewSetupModel creates a setup screen prefilled with the current endpoint
func NewSetupModel(store EndpointSaver, current bravia.Endpoint) SetupModel {
	return SetupModel{
		focusedField: setupFieldHostAddress,
		host:         newTextField(current.Address),
		psk:          newTextField(current.PSK),
		store:        store,
	}
}

// Update handles setup screen messages
func (m SetupModel) Update(msg tea.Msg) (SetupModel, tea.Cmd) {
	switch msg := msg.(type) {
	case endpointSavedMsg:
		m.saving = false
		if msg.err != nil {
			m.saveError = msg.err.Error()
			return m, nil
		}
		m.saved = true
		m.endpoint = msg.endpoint
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "tab", "down":
			return m.moveFocus(1), nil
		case "shift+tab", "up":
			return m.moveFocus(-1), nil
		case "enter":
			if m.focusedField == setupFieldSave {
				return m.handleSave()
			}
			return m.moveFocus(1), nil
		}

		field := m.focused()
		if field == nil {
			return m, nil
		}
		switch msg.String() {
		case "left":
			field.left()
		case "right":
			field.right()
		case "backspace":
			field.backspace()
		case "delete":
			field.deleteForward()
		case "home":
			field.home()
		case "end":
			field.end()
		case "space":
			field.insert(" ")
		default:
			if text := printable(msg.String()); text != "" && len(msg.Runes) > 0 {
				field.insert(text)
			}
		}
	}

	return m, nil
}

// View renders the setup screen
func (m SetupModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Sony Remote - Device Setup"))
	b.WriteString("\n\n")

	b.WriteString(subtitleStyle.Render("TV Address (IP or IP:Port):"))
	b.WriteString("\n")
	hostStyle := inputStyle
	if m.focusedField == setupFieldHostAddress {
		hostStyle = inputFocusedStyle
	}
	b.WriteString(hostStyle.Render(m.host.render(m.focusedField == setupFieldHostAddress)))
	b.WriteString("\n\n")

	b.WriteString(subtitleStyle.Render("Pre-Shared Key:"))
	b.WriteString("\n")
	pskStyle := inputStyle
	pskText := strings.Repeat("*", len(m.psk.value))
	if m.focusedField == setupFieldCredential {
		pskStyle = inputFocusedStyle
		pskText = m.psk.render(true)
	}
	b.WriteString(pskStyle.Render(pskText))
	b.WriteString("\n\n")

	saveStyle := buttonStyle
	if m.focusedField == setupFieldSave {
		saveStyle = buttonActiveStyle
	}
	saveText := "Save"
	if m.saving {
		saveText = "Saving..."
	}
	b.WriteString(saveStyle.Render(saveText))
	b.WriteString("\n\n")

	if m.saveError != "" {
		b.WriteString(errorStyle.Render("Error: " + m.saveError))
		b.WriteString("\n\n")
	}

	b.WriteString(helpStyle.Render("Tab/↑/↓: Next field • Enter: Save • ←/→: Move cursor • Home/End: Start/End • Esc: Quit"))

	return b.String()
}

// Typing reports whether keys go into a text field
func (m SetupModel) Typing() bool {
	return m.focused() != nil
}

// Saved returns the endpoint once it has been stored
func (m SetupModel) Saved() (bravia.Endpoint, bool) {
	return m.endpoint, m.saved
}

func (m *SetupModel) focused() *textField {
	switch m.focusedField {
	case setupFieldHostAddress:
		return &m.host
	case setupFieldCredential:
		return &m.psk
	default:
		return nil
	}
}

func (m SetupModel) moveFocus(delta int) SetupModel {
	fields := []setupField{setupFieldHostAddress, setupFieldCredential, setupFieldSave}
	next := (int(m.focusedField) + delta + len(fields)) % len(fields)
	m.focusedField = fields[next]
	return m
}

// handleSave validates the fields and stores them in the background
func (m SetupModel) handleSave() (SetupModel, tea.Cmd) {
	if m.saving {
		return m, nil
	}

	endpoint := bravia.Endpoint{
		Address: strings.TrimSpace(m.host.value),
		PSK:     m.psk.value,
	}

	switch {
	case endpoint.Address == "":
		m.saveError = "TV address is required"
		return m, nil
	case endpoint.PSK == "":
		m.saveError = "Pre-shared key is required"
		return m, nil
	case !IsValidHostAddress(endpoint.Address):
		m.saveError = "Invalid TV address format"
		return m, nil
	}

	m.saving = true
	m.saveError = ""

	store := m.store
	return m, func() tea.Msg {
		if store != nil {
			if err := store.SaveEndpoint(context.Background(), endpoint); err != nil {
				return endpointSavedMsg{err: err}
			}
		}

		log := logger.With("tui")
		log.Info().
			Str("address", endpoint.Address).
			Msg("Device settings saved")

		return endpointSavedMsg{endpoint: endpoint}
	}
}

// IsValidHostAddress validates the host address format (with optional port)
func IsValidHostAddress(address string) bool {
	host, portStr, err := net.SplitHostPort(address)
	if err != nil {
		host = address
		portStr = ""
	}

	if net.ParseIP(host) == nil && !hostnamePattern.MatchString(host) {
		return false
	}

	if portStr != "" {
		port, err := strconv.Atoi(portStr)
		if err != nil || port < 1 || port > 65535 {
			return false
		}
	}

	return true
}
