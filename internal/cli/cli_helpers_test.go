package cli_test

import (
	"bytes"
	"testing"

	"github.com/contractlens/contractlens/internal/api/apitest"
	"github.com/contractlens/contractlens/internal/cli"
	"github.com/contractlens/contractlens/internal/config"
)

// isolate points the configuration at a fresh home directory and clears every
// override from the environment. It returns the home directory.
func isolate(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv(config.EnvHome, home)
	t.Setenv(config.EnvAPIURL, "")
	t.Setenv(config.EnvLogLevel, "error")
	t.Setenv(config.EnvLogFormat, "")
	t.Setenv("CONTRACTLENS_CACHE_ENABLED", "")
	t.Setenv("CONTRACTLENS_CACHE_TTL_SECONDS", "")
	t.Setenv("CONTRACTLENS_CACHE_DIR", "")
	config.ResetGlobalConfigForTest()
	t.Cleanup(config.ResetGlobalConfigForTest)
	return home
}

type result struct {
	stdout string
	stderr string
	err    error
}

// run executes the root command with args. A non-nil srv is passed as --api-url.
func run(t *testing.T, srv *apitest.Server, args ...string) result {
	t.Helper()
	config.ResetGlobalConfigForTest()

	root := cli.NewRootCmd("test")
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	if srv != nil {
		args = append([]string{"--api-url", srv.BaseURL()}, args...)
	}
	root.SetArgs(args)

	err := root.Execute()
	return result{stdout: stdout.String(), stderr: stderr.String(), err: err}
}
