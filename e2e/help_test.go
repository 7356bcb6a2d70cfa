//go:build e2e && unix

package main

import (
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHelpCommand(t *testing.T) {
	t.Parallel()

	out, err := exec.Command(binPath, "--help").CombinedOutput()
	require.NoError(t, err)

	output := string(out)
	assert.Contains(t, output, "Usage")
	assert.Contains(t, output, "--no-mouse")
	assert.Contains(t, output, "query")
}

func TestVersionCommand(t *testing.T) {
	t.Parallel()

	out, err := exec.Command(binPath, "version").CombinedOutput()
	require.NoError(t, err)
	assert.Equal(t, "lookout "+e2eVersion, strings.TrimSpace(string(out)))
}

func TestQueryCommand(t *testing.T) {
	t.Parallel()
	gh := NewFakeGitHub(t, "gaearon", "gaeljw")
	tf := NewTUITest(t)

	cmd := exec.Command(binPath, "query", "gae", "--json", "--config", tf.WriteConfig(gh.URL))
	cmd.Env = tf.environ()
	out, err := cmd.Output()
	require.NoError(t, err)
	assert.Contains(t, string(out), `"login": "gaeljw"`)
}

func TestConfigInit(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "lookout", "config.toml")

	out, err := exec.Command(binPath, "config", "init", "--config", path).CombinedOutput()
	require.NoError(t, err, string(out))

	out, err = exec.Command(binPath, "config", "init", "--config", path).CombinedOutput()
	require.Error(t, err)
	assert.Contains(t, string(out), "already exists")
}
