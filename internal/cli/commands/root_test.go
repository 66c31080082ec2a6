package commands

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const zooSchema = "testdata/zoo.yaml"

// execute runs the root command with args and captures its output
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	cmd := NewRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(append([]string{"--no-color"}, args...))

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// rendered returns the message block carried by err
func rendered(t *testing.T, err error) string {
	t.Helper()
	var buf bytes.Buffer
	reportError(&buf, err)
	return buf.String()
}

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand()

	if cmd.Use != "schemaprof" {
		t.Errorf("expected Use to be 'schemaprof', got %s", cmd.Use)
	}
	if cmd.Short == "" {
		t.Error("expected Short description to be set")
	}
	if cmd.Long == "" {
		t.Error("expected Long description to be set")
	}

	expectedCommands := []string{
		"version",
		"profile",
		"data-product",
		"pydantic",
		"merge",
		"paths",
		"graph",
		"classes",
		"example",
		"dataset",
		"lint",
		"ddl",
		"gostruct",
	}

	for _, expected := range expectedCommands {
		found := false
		for _, sub := range cmd.Commands() {
			if sub.Name() == expected {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("expected command %s to be registered", expected)
		}
	}
}

func TestGlobalFlags(t *testing.T) {
	cmd := NewRootCommand()

	for _, name := range []string{"config", "log", "debug", "no-color"} {
		flag := cmd.PersistentFlags().Lookup(name)
		require.NotNil(t, flag, "missing flag %s", name)
	}
	assert.Equal(t, "false", cmd.PersistentFlags().Lookup("debug").DefValue)
}

func TestVersionCommand(t *testing.T) {
	Version = "1.0.0-test"
	GitCommit = "abc123"
	BuildDate = "2025-01-01"
	GoVersion = "go1.24"

	stdout, _, err := execute(t, "version")
	require.NoError(t, err)

	assert.Contains(t, stdout, "schemaprof version: 1.0.0-test")
	assert.Contains(t, stdout, "abc123")
	assert.Contains(t, stdout, "go1.24")
}

func TestMissingConfigFile(t *testing.T) {
	_, _, err := execute(t, "--config", "testdata/missing.yaml", "classes", zooSchema)
	require.Error(t, err)
	assert.Contains(t, rendered(t, err), "CONFIGURATION ERROR")
}

func TestLogFile(t *testing.T) {
	logFile := t.TempDir() + "/schemaprof.log"

	_, stderr, err := execute(t, "--log", logFile, "--debug", "profile", zooSchema, "-c", "Person")
	require.NoError(t, err)
	assert.Empty(t, stderr)
}

func TestReportError(t *testing.T) {
	var buf bytes.Buffer
	reportError(&buf, errors.New("boom"))
	assert.True(t, strings.HasSuffix(buf.String(), "Error: boom\n"))

	buf.Reset()
	reportError(&buf, &renderedError{msg: "block\n", err: errors.New("boom")})
	assert.Equal(t, "block\n", buf.String())
}
