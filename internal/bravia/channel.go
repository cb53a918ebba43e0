package bravia

import "regexp"

// channelPattern accepts "7", "38" or "38.1" but not "1.", ".1" or "1.2.3"
var channelPattern = regexp.MustCompile(`^(\d+\.\d+|\d+)$`)

// Decompose expands a channel number into the keystrokes that enter it on the
// remote, e.g. "38.1" becomes Num3 Num8 Dot Num1. The second return value is
// false when the token is not a channel number, in which case callers treat
// it as a literal command name.
func Decompose(token string) ([]string, bool) {
	if !channelPattern.MatchString(token) {
		return nil, false
	}

	commands := make([]string, 0, len(token))
	for _, c := range token {
		if c == '.' {
			commands = append(commands, "Dot")
			continue
		}
		commands = append(commands, "Num"+string(c))
	}
	return commands, true
}
