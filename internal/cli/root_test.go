package cli_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/token-demo/internal/cli"
)

func TestRootCommandRunsDemo(t *testing.T) {
	t.Setenv("TOKEN_ALGORITHM", "HS256")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("DEMO_USERNAME", "Marmont")
	t.Setenv("DEMO_ROLE", "ADMIN")
	t.Setenv("LOG_LEVEL", "error")

	var out bytes.Buffer
	cmd := cli.NewRootCommand("test")
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasPrefix(lines[0], "Generated JWT: "))
	assert.Equal(t, `Parsed Claims: {"id":0,"role":"ADMIN","username":"Marmont"}`, lines[1])
}

func TestRootCommandWritesMetricsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "token-demo.prom")
	t.Setenv("TOKEN_ALGORITHM", "HS384")
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("DEMO_ROLE", "ADMIN")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("METRICS_FILE", path)

	var out bytes.Buffer
	cmd := cli.NewRootCommand("test")
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.ExecuteContext(context.Background()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `token_demo_tokens_issued_total{algorithm="HS384"} 1`)
	assert.Contains(t, string(data), `token_demo_token_verifications_total{result="ok"} 1`)
}

func TestRootCommandMetricsFileUnwritable(t *testing.T) {
	t.Setenv("TOKEN_TTL", "1h")
	t.Setenv("DEMO_ROLE", "ADMIN")
	t.Setenv("LOG_LEVEL", "fatal")
	t.Setenv("METRICS_FILE", filepath.Join(t.TempDir(), "missing", "token-demo.prom"))

	var out bytes.Buffer
	cmd := cli.NewRootCommand("test")
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write metrics")
}

func TestRootCommandRejectsArguments(t *testing.T) {
	var out bytes.Buffer
	cmd := cli.NewRootCommand("test")
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"extra"})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown command")
}

func TestRootCommandInvalidConfig(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "tokendemo.log")
	t.Setenv("TOKEN_ALGORITHM", "RS256")
	t.Setenv("LOG_LEVEL", "error")
	t.Setenv("LOG_OUTPUT", logPath)

	var out bytes.Buffer
	cmd := cli.NewRootCommand("test")
	cmd.SetOut(&out)
	cmd.SetArgs([]string{})

	err := cmd.ExecuteContext(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "TOKEN_ALGORITHM")
	assert.Empty(t, out.String())

	logs, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(logs), `"code":"INVALID_CONFIG"`)
}

func TestRootCommandVersion(t *testing.T) {
	var out bytes.Buffer
	cmd := cli.NewRootCommand("1.2.3")
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.ExecuteContext(context.Background()))
	assert.Contains(t, out.String(), "1.2.3")
}
