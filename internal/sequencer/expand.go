package sequencer

import (
	"strings"

	"sonyremote/internal/bravia"
)

// ParseButton splits a button's command string, e.g. "Wide Up Up", into tokens
func ParseButton(commands string) []string {
	return strings.Fields(commands)
}

// Expand flattens a batch of tokens into the commands to transmit, in order.
// Channel numbers are replaced by their keystrokes; any other token is kept
// as a command name, known or not.
func Expand(tokens []string) []string {
	commands := make([]string, 0, len(tokens))
	for _, token := range tokens {
		if keys, ok := bravia.Decompose(token); ok {
			commands = append(commands, keys...)
			continue
		}
		commands = append(commands, token)
	}
	return commands
}
