package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewRootCmd()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestRootCmd_ShowsHelp(t *testing.T) {
	// When: executing with --help
	output, err := execute(t, "--help")

	// Then: it should show usage information
	require.NoError(t, err)
	assert.Contains(t, output, "knowgrep")
	assert.Contains(t, output, "Usage:")
}

func TestRootCmd_NoArgsShowsHelp(t *testing.T) {
	output, err := execute(t)

	require.NoError(t, err)
	assert.Contains(t, output, "Usage:")
}

func TestRootCmd_ShowsVersion(t *testing.T) {
	output, err := execute(t, "--version")

	require.NoError(t, err)
	assert.Contains(t, output, "knowgrep version")
	// Accept either a semantic version or "dev" for builds without ldflags
	hasVersion := strings.Contains(output, ".") || strings.Contains(output, "dev")
	assert.True(t, hasVersion, "version output should carry a version number")
}

func TestRootCmd_HasSubcommands(t *testing.T) {
	cmd := NewRootCmd()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}

	assert.Contains(t, names, "index")
	assert.Contains(t, names, "search")
	assert.Contains(t, names, "status")
	assert.Contains(t, names, "version")
}

func TestRootCmd_HasDebugFlag(t *testing.T) {
	cmd := NewRootCmd()

	flag := cmd.PersistentFlags().Lookup("debug")
	require.NotNil(t, flag)
	assert.Equal(t, "false", flag.DefValue)
}

func TestIndexCmd_ShowsHelp(t *testing.T) {
	output, err := execute(t, "index", "--help")

	require.NoError(t, err)
	assert.Contains(t, output, "full rebuild")
	assert.Contains(t, output, "--output")
}

func TestSearchCmd_ShowsHelp(t *testing.T) {
	output, err := execute(t, "search", "--help")

	require.NoError(t, err)
	assert.Contains(t, output, "--snippets")
	assert.Contains(t, output, "--limit")
}

func TestSearchCmd_RequiresQuery(t *testing.T) {
	_, err := execute(t, "search")

	assert.Error(t, err)
}

func TestVersionCmd_PrintsVersion(t *testing.T) {
	output, err := execute(t, "version")

	require.NoError(t, err)
	assert.Contains(t, output, "knowgrep")
	assert.Contains(t, output, "commit:")
}

func TestVersionCmd_Short(t *testing.T) {
	output, err := execute(t, "version", "--short")

	require.NoError(t, err)
	assert.NotContains(t, output, "commit:")
}
