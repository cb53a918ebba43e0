package bravia_test

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sonyremote/internal/bravia"
)

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		code bravia.BraviaRemoteCode
	}{
		{"TvPower", "AAAAAQAAAAEAAAAVAw=="},
		{"Mute", "AAAAAQAAAAEAAAAUAw=="},
		{"Num0", "AAAAAQAAAAEAAAAJAw=="},
		{"Num1", "AAAAAQAAAAEAAAAAAw=="},
		{"Enter", "AAAAAQAAAAEAAAALAw=="},
		{"DOT", "AAAAAgAAAJcAAAAdAw=="},
		{"Dot", "AAAAAgAAAJcAAAAdAw=="},
		{"Hdmi1", "AAAAAgAAABoAAABaAw=="},
		{"*AD", "AAAAAgAAABoAAAA7Aw=="},
		{"WirelessSubwoofer", "AAAAAgAAAMQAAAB+Aw=="},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, ok := bravia.Lookup(tt.name)
			require.True(t, ok)
			assert.Equal(t, tt.code, code)

			again, _ := bravia.Lookup(tt.name)
			assert.Equal(t, code, again)
		})
	}

	t.Run("unknown names are absent", func(t *testing.T) {
		for _, name := range []string{"", "mute", "MUTE", "Power", "12a", "38.1"} {
			_, ok := bravia.Lookup(name)
			assert.False(t, ok, name)
		}
	})

	t.Run("shared codes are allowed", func(t *testing.T) {
		enter, _ := bravia.Lookup("Enter")
		num12, _ := bravia.Lookup("Num12")
		assert.Equal(t, enter, num12)
	})
}

func TestCommands(t *testing.T) {
	names := bravia.Commands()

	assert.Len(t, names, 115)
	assert.True(t, sort.StringsAreSorted(names))
	for _, name := range names {
		_, ok := bravia.Lookup(name)
		assert.True(t, ok, name)
	}
}
