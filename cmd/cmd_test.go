package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"sonyremote/internal/config"
)

func writeTestConfig(t *testing.T, extra string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "sonyremote.yml")
	content := fmt.Sprintf("remote:\n  settle_delay: 0s\nstore:\n  path: %s\n%s", filepath.Join(dir, "settings.db"), extra)
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	verbose, configPath, hostFlag, pskFlag, testFlag = false, "", "", "", false
	listCodes, tokenClient, listenFlag = false, "cli", ""

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSetupAndSend(t *testing.T) {
	path := writeTestConfig(t, "")

	_, err := run(t, "send", "--config", path, "--test", "Home")
	require.Error(t, err)
	assert.ErrorContains(t, err, "set up yet")

	_, err = run(t, "setup", "--config", path, "--host", "10.0.0.5")
	require.Error(t, err)

	out, err := run(t, "setup", "--config", path, "--host", "10.0.0.5", "--psk", "123456")
	require.NoError(t, err)
	assert.Contains(t, out, "Saved TV 10.0.0.5")

	out, err = run(t, "setup", "show", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Address: 10.0.0.5")
	assert.Contains(t, out, "PSK:     ****56")
	assert.NotContains(t, out, "123456")

	out, err = run(t, "send", "--config", path, "--test", "38.1", "Enter")
	require.NoError(t, err)
	assert.Contains(t, out, "Sent 38.1 Enter")

	_, err = run(t, "send", "--config", path, "--test", "Bogus")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "Bogus")

	out, err = run(t, "info", "--config", path, "--test")
	require.NoError(t, err)
	assert.Contains(t, out, "PowerOff")
}

func TestList(t *testing.T) {
	path := writeTestConfig(t, "")

	out, err := run(t, "list", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Netflix\n")

	out, err = run(t, "list", "--config", path, "--codes")
	require.NoError(t, err)
	assert.Contains(t, out, "AAAAAQAAAAEAAAAUAw==")
}

func TestToken(t *testing.T) {
	_, err := run(t, "token", "--config", writeTestConfig(t, ""))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "jwt_secret")

	path := writeTestConfig(t, "server:\n  jwt_secret: 0123456789abcdef0123\n")
	out, err := run(t, "token", "--config", path, "--client", "tablet")
	require.NoError(t, err)
	assert.Regexp(t, `^[\w-]+\.[\w-]+\.[\w-]+\n$`, out)
}

func TestConfigGenerate(t *testing.T) {
	path := filepath.Join(t.TempDir(), "generated.yml")

	out, err := run(t, "config", "generate", path)
	require.NoError(t, err)
	assert.Contains(t, out, path)

	loaded, err := config.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, config.NewDefaultConfig(), loaded)

	out, err = run(t, "config", "validate", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Batch policy: queue")
}
