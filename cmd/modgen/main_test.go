package main

import (
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nomagicln/modgen/internal/testutil"
)

// run executes the CLI with an isolated config directory.
func run(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	testutil.IsolateConfigDir(t)

	var out, errOut bytes.Buffer
	err = Execute(context.Background(), args, &out, &errOut)
	return out.String(), errOut.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimRight(s, "\n"), "\n")
}

func TestClassesCommand(t *testing.T) {
	stdout, _, err := run(t, "classes")
	require.NoError(t, err)
	assert.Contains(t, stdout, "positive-int")
	assert.Contains(t, stdout, "printable-string")
}

func TestClassesFamily(t *testing.T) {
	stdout, _, err := run(t, "classes", "wide")
	require.NoError(t, err)
	assert.Len(t, lines(stdout), 4, "header plus three wide classes")

	_, stderr, err := run(t, "classes", "qqq")
	require.Error(t, err)
	assert.Contains(t, stderr, "Unknown class 'qqq'")
}

func TestSampleCommand(t *testing.T) {
	stdout, stderr, err := run(t, "sample", "narrow-int", "--count", "5", "--size", "3", "--seed", "7")
	require.NoError(t, err)

	got := lines(stdout)
	require.Len(t, got, 5)
	for _, l := range got {
		assert.Contains(t, []string{"-3", "-2", "-1", "0", "1", "2", "3"}, l)
	}
	assert.Contains(t, stderr, `"seed":7`, "info log carries the seed")

	again, _, err := run(t, "sample", "narrow-int", "--count", "5", "--size", "3", "--seed", "7", "--workers", "1")
	require.NoError(t, err)
	assert.Equal(t, stdout, again)
}

func TestSampleWhere(t *testing.T) {
	stdout, _, err := run(t, "sample", "positive-int", "-n", "10", "--seed", "3", "--where", "Even()")
	require.NoError(t, err)
	for _, l := range lines(stdout) {
		assert.Regexp(t, `^[0-9]*[02468]$`, l)
	}
}

func TestSampleSeedZero(t *testing.T) {
	first, stderr, err := run(t, "sample", "wide-int64", "-n", "4", "--seed", "0")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"seed":0`)

	second, _, err := run(t, "sample", "wide-int64", "-n", "4", "--seed", "0")
	require.NoError(t, err)
	assert.Equal(t, first, second)

	path := testutil.TempConfig(t, "seed: 0\ncount: 4\n")
	fromConfig, stderr, err := run(t, "--config", path, "sample", "wide-int64")
	require.NoError(t, err)
	assert.Contains(t, stderr, `"seed":0`)
	assert.Equal(t, first, fromConfig)
}

func TestSampleWhereKeepsSize(t *testing.T) {
	stdout, _, err := run(t, "sample", "narrow-int", "-n", "8", "--size", "5", "--seed", "2", "--where", "Gt(3)")
	require.NoError(t, err)
	for _, l := range lines(stdout) {
		assert.Contains(t, []string{"4", "5"}, l)
	}
}

func TestSampleErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want string
	}{
		{"unknown class", []string{"sample", "postive-int"}, "Did you mean"},
		{"bad filter", []string{"sample", "narrow-int", "--where", "Huge()"}, "Available conditions"},
		{"negative size", []string{"sample", "narrow-int", "--size", "-1"}, "invalid size"},
		{"no workers", []string{"sample", "narrow-int", "--workers", "0"}, "invalid workers"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, stderr, err := run(t, tt.args...)
			require.Error(t, err)
			assert.Contains(t, stderr, tt.want)
		})
	}
}

func TestShrinkCommand(t *testing.T) {
	stdout, _, err := run(t, "shrink", "narrow-int", "10")
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "5", "8", "9"}, lines(stdout))

	stdout, _, err = run(t, "shrink", "narrow-int", "10", "--order", "ranked", "--rank", "4")
	require.NoError(t, err)
	assert.Equal(t, []string{"#2 8", "#0 0", "#3 9", "#1 5"}, lines(stdout))

	stdout, _, err = run(t, "shrink", "narrow-int", "10", "-o", "double", "--limit", "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"0", "5"}, lines(stdout))

	stdout, stderr, err := run(t, "shrink", "latin1-char", "a")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "No shrink candidates.")
}

func TestShrinkErrors(t *testing.T) {
	_, stderr, err := run(t, "shrink", "narrow-int", "10", "--order", "smart")
	require.Error(t, err)
	assert.Contains(t, stderr, "Shrink orders")

	_, stderr, err = run(t, "shrink", "positive-int", "0")
	require.Error(t, err)
	assert.Contains(t, stderr, "not a valid positive-int")

	_, _, err = run(t, "shrink", "narrow-int")
	require.Error(t, err)
}

func TestConfigFileDefaults(t *testing.T) {
	path := testutil.TempConfig(t, testutil.MinimalConfig)

	stdout, _, err := run(t, "--config", path, "sample", "wide-int8")
	require.NoError(t, err)
	assert.Len(t, lines(stdout), 3)

	stdout, _, err = run(t, "--config", path, "shrink", "narrow-int", "10")
	require.NoError(t, err)
	assert.Equal(t, []string{"0"}, lines(stdout))

	require.NoError(t, os.WriteFile(path, []byte("workers: -1\n"), 0644))
	_, stderr, err := run(t, "--config", path, "classes")
	require.Error(t, err)
	assert.Contains(t, stderr, "'workers'")
}

func TestLogLevel(t *testing.T) {
	_, stderr, err := run(t, "--log-level", "error", "sample", "narrow-int", "-n", "1", "--seed", "1")
	require.NoError(t, err)
	assert.Empty(t, stderr, "info logs are suppressed at error level")

	_, stderr, err = run(t, "-v", "shrink", "narrow-int", "3")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Listed shrink candidates")

	_, _, err = run(t, "--log-level", "loud", "classes")
	require.Error(t, err)
}

func TestCompletion(t *testing.T) {
	stdout, _, err := run(t, "__complete", "sample", "wide-")
	require.NoError(t, err)
	assert.Contains(t, stdout, "wide-int8")
	assert.NotContains(t, stdout, "narrow-int")

	stdout, _, err = run(t, "__complete", "shrink", "narrow-int", "3", "--order", "r")
	require.NoError(t, err)
	assert.Contains(t, stdout, "ranked")
}
