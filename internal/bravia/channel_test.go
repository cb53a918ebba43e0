package bravia_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"sonyremote/internal/bravia"
)

func TestDecompose(t *testing.T) {
	t.Run("expands channel numbers", func(t *testing.T) {
		tests := map[string][]string{
			"38.1":  {"Num3", "Num8", "Dot", "Num1"},
			"7":     {"Num7"},
			"0":     {"Num0"},
			"105":   {"Num1", "Num0", "Num5"},
			"2.10":  {"Num2", "Dot", "Num1", "Num0"},
			"007.9": {"Num0", "Num0", "Num7", "Dot", "Num9"},
		}

		for token, want := range tests {
			commands, ok := bravia.Decompose(token)
			assert.True(t, ok, token)
			assert.Equal(t, want, commands, token)
			assert.Len(t, commands, len(token), token)
			for _, command := range commands {
				_, known := bravia.Lookup(command)
				assert.True(t, known, command)
			}
		}
	})

	t.Run("rejects everything else", func(t *testing.T) {
		for _, token := range []string{"", "Mute", "12a", "1.2.3", ".1", "1.", "1..2", "-1", "1,2", " 1", "٣"} {
			commands, ok := bravia.Decompose(token)
			assert.False(t, ok, token)
			assert.Nil(t, commands, token)
		}
	})
}
