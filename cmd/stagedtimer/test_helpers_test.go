package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

type cliEnv struct {
	dir        string
	configPath string
	logDir     string
}

const baseConfig = `
[display]
color = "never"
show_plan = false

[notifications]
bell = false

[logging]
format = "json"
dir = %q
retention_days = 0
`

// setupCLIEnv isolates HOME and the working directory and writes a config
// file with bell disabled and logs under the test directory. extra is
// appended to the config.
func setupCLIEnv(t *testing.T, extra string) *cliEnv {
	t.Helper()
	dir := t.TempDir()
	home := filepath.Join(dir, "home")
	if err := os.MkdirAll(home, 0o755); err != nil {
		t.Fatalf("mkdir home: %v", err)
	}
	t.Setenv("HOME", home)
	t.Setenv("NO_COLOR", "")
	t.Setenv("STAGEDTIMER_NTFY_TOPIC", "")
	t.Chdir(dir)

	env := &cliEnv{
		dir:        dir,
		configPath: filepath.Join(dir, "config.toml"),
		logDir:     filepath.Join(dir, "logs"),
	}
	body := strings.Replace(baseConfig, "%q", `"`+env.logDir+`"`, 1) + extra
	writeConfig(t, env.configPath, body)
	return env
}

// writeConfig replaces the whole config file with body.
func writeConfig(t *testing.T, path, body string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
}

func (e *cliEnv) run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return runCLIContext(t, context.Background(), append([]string{"--config", e.configPath}, args...)...)
}

func runCLI(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	return runCLIContext(t, context.Background(), args...)
}

func runCLIContext(t *testing.T, ctx context.Context, args ...string) (string, string, error) {
	t.Helper()
	cmd := newRootCommand()
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(""))
	cmd.SetArgs(args)
	err := cmd.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func requireContains(t *testing.T, text, substr string) {
	t.Helper()
	if !strings.Contains(text, substr) {
		t.Fatalf("expected output to contain %q\nfull output:\n%s", substr, text)
	}
}
