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
	"sync"

	"github.com/charmbracelet/bubbletea"
	"sonyremote/internal/bravia"
	"sonyremote/internal/status"
)

// Options wires the terminal remote to the sequencer and settings store
type Options struct {
	Runner   Runner
	Store    EndpointSaver
	Endpoint bravia.Endpoint
	// Relay must be among the sequencer's reporters for the status line to work
	Relay *Relay
	Debug bool
	Test  bool
}

// Relay forwards sequencer events into the running program
type Relay struct {
	mu      sync.Mutex
	program *tea.Program
}

// Report implements status.Reporter
func (r *Relay) Report(e status.Event) {
	r.mu.Lock()
	program := r.program
	r.mu.Unlock()

	if program != nil {
		program.Send(eventMsg(e))
	}
}

func (r *Relay) attach(program *tea.Program) {
	r.mu.Lock()
	r.program = program
	r.mu.Unlock()
}

// Main TUI model that routes between screens
type model struct {
	currentScreen screen
	width         int
	height        int
	quitting      bool

	ctx     context.Context
	options Options

	setupModel  SetupModel
	remoteModel RemoteModel
}

func initialModel(ctx context.Context, options Options) model {
	m := model{
		currentScreen: screenDeviceSetup,
		ctx:           ctx,
		options:       options,
		setupModel:    NewSetupModel(options.Store, options.Endpoint),
	}
	if options.Endpoint.Configured() {
		m.currentScreen = screenRemoteControl
		m.remoteModel = m.newRemote(options.Endpoint)
	}
	return m
}

func (m model) newRemote(endpoint bravia.Endpoint) RemoteModel {
	remote := NewRemoteModel(m.ctx, m.options.Runner, endpoint, m.options.Debug, m.options.Test)
	remote.width, remote.height = m.width, m.height
	return remote
}

func (m model) Init() tea.Cmd {
	return nil
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.remoteModel.width, m.remoteModel.height = msg.Width, msg.Height
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.quitting = true
			return m, tea.Quit

		case "esc":
			if m.currentScreen == screenDeviceSetup {
				m.quitting = true
				return m, tea.Quit
			}

		case "q":
			if m.currentScreen == screenRemoteControl && !m.remoteModel.Typing() {
				m.currentScreen = screenDeviceSetup
				m.setupModel = NewSetupModel(m.options.Store, m.remoteModel.endpoint)
				return m, nil
			}
			if m.currentScreen == screenDeviceSetup && !m.setupModel.Typing() {
				m.quitting = true
				return m, tea.Quit
			}
		}
	}

	// status traffic belongs to the remote even while setup is showing
	switch msg.(type) {
	case eventMsg, clearStatusMsg, batchDoneMsg:
		var cmd tea.Cmd
		m.remoteModel, cmd = m.remoteModel.Update(msg)
		return m, cmd
	}

	switch m.currentScreen {
	case screenDeviceSetup:
		var cmd tea.Cmd
		m.setupModel, cmd = m.setupModel.Update(msg)

		if endpoint, ok := m.setupModel.Saved(); ok {
			m.remoteModel = m.newRemote(endpoint)
			m.currentScreen = screenRemoteControl
		}
		return m, cmd

	case screenRemoteControl:
		var cmd tea.Cmd
		m.remoteModel, cmd = m.remoteModel.Update(msg)
		return m, cmd
	}

	return m, nil
}

func (m model) View() string {
	if m.quitting {
		return successStyle.Render("Thanks for using Sony Remote!") + "\n"
	}

	switch m.currentScreen {
	case screenDeviceSetup:
		return m.setupModel.View()
	case screenRemoteControl:
		return m.remoteModel.View()
	default:
		return "Unknown screen"
	}
}

// StartTUI runs the terminal remote until the user quits
func StartTUI(options Options) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := tea.NewProgram(
		initialModel(ctx, options),
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)

	if options.Relay != nil {
		options.Relay.attach(p)
		defer options.Relay.attach(nil)
	}

	defer func() {
		if r := recover(); r != nil {
			p.Kill()
		}
	}()

	_, err := p.Run()
	return err
}
