// Package main provides tests for the ebnfgen CLI.
package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/ebnfgen/internal/cli"
	"github.com/leapstack-labs/ebnfgen/internal/cli/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testdataDir(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	return filepath.Join(wd, "..", "..", "testdata")
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	config.ResetConfig()

	buf := new(bytes.Buffer)
	cmd := cli.NewRootCmd()
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return buf.String(), err
}

func TestGenerateGolden(t *testing.T) {
	dir := testdataDir(t)
	golden, err := os.ReadFile(filepath.Join(dir, "TypeExpressions.g4"))
	require.NoError(t, err)

	out, err := execute(t, "generate", filepath.Join(dir, "type-expressions.ebnf"))
	require.NoError(t, err)
	assert.Equal(t, string(golden), out)
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "ebnfgen v"+cli.Version)
}

func TestHelpCommand(t *testing.T) {
	out, err := execute(t, "--help")
	require.NoError(t, err)

	for _, expected := range []string{"generate", "tokens", "rules", "watch", "version"} {
		assert.Contains(t, out, expected)
	}
}

func TestUnknownCommand(t *testing.T) {
	_, err := execute(t, "frobnicate")
	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unknown command"), err.Error())
}
