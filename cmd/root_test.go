package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSubcommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range RootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, n := range []string{"run", "assign", "generate", "history", "version", "completion"} {
		assert.True(t, names[n], n)
	}
}

func TestVersionCommand(t *testing.T) {
	b := &bytes.Buffer{}
	RootCmd.SetOut(b)
	RootCmd.SetArgs([]string{"version"})
	require.NoError(t, RootCmd.Execute())
	assert.Contains(t, b.String(), "version: ")
}

func TestBashCompletion(t *testing.T) {
	b := &bytes.Buffer{}
	RootCmd.SetOut(b)
	RootCmd.SetArgs([]string{"completion", "bash"})
	require.NoError(t, RootCmd.Execute())
	assert.True(t, strings.Contains(b.String(), "balancer"))
}

func TestGenMarkdown(t *testing.T) {
	dir := t.TempDir()
	RootCmd.SetArgs([]string{"genmarkdown", "-o", dir})
	require.NoError(t, RootCmd.Execute())

	_, err := os.Stat(filepath.Join(dir, "balancer_run.md"))
	assert.NoError(t, err)
}
