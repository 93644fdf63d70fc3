package cli

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/extscan/internal/config"
	exterrors "github.com/matzehuels/extscan/pkg/errors"
	"github.com/matzehuels/extscan/pkg/report"
)

// isolate keeps the developer's environment and config files out of a test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TOP_N", "")
	for _, key := range []string{"TIMEOUT", "TOP_N", "OUTPUT_DIR", "POPULAR_URL", "PACKAGE_URL", "VERSION_ORDER", "USER_AGENT", "SOURCES_FILE"} {
		t.Setenv(config.EnvPrefix+"_"+key, "")
	}
}

type registry struct {
	*httptest.Server
	packageFetches atomic.Int32
	userAgent      atomic.Value
}

func newRegistry(t *testing.T) *registry {
	t.Helper()
	reg := &registry{}
	r := chi.NewRouter()
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			reg.userAgent.Store(req.UserAgent())
			next.ServeHTTP(w, req)
		})
	})
	r.Get("/composer/a.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"require": {"php": "^8.2", "ext-json": "*", "ext-mbstring": "*"}}`))
	})
	r.Get("/composer/b.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"require": {"ext-json": "*"}}`))
	})
	r.Get("/popular.json", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"packages": [{"name": "acme/a"}, {"name": "acme/b"}, {"name": "acme/c"}]}`))
	})
	r.Get("/p/{vendor}/{pkg}.json", func(w http.ResponseWriter, req *http.Request) {
		reg.packageFetches.Add(1)
		if chi.URLParam(req, "pkg") == "b" {
			_, _ = w.Write([]byte(`{"package": {"versions": {}}}`))
			return
		}
		_, _ = w.Write([]byte(`{"package": {"versions": {"dev-main": {"require": {"ext-intl": "*"}}, "v1.0.0": {"require": {"ext-curl": "*"}}}}}`))
	})
	reg.Server = httptest.NewServer(r)
	t.Cleanup(reg.Close)
	return reg
}

// sourcesFile writes a two-framework table where the second entry 404s.
func (r *registry) sourcesFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "sources.toml")
	content := "[[source]]\nname = \"A\"\nurl = \"" + r.URL + "/composer/a.json\"\n\n" +
		"[[source]]\nname = \"Gone\"\nurl = \"" + r.URL + "/composer/gone.json\"\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func execute(ctx context.Context, args ...string) (string, error) {
	var logs, out bytes.Buffer
	c := New(&logs, LogInfo)
	root := c.RootCommand()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.ExecuteContext(ctx)
	return out.String(), err
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestFrameworksCommand(t *testing.T) {
	isolate(t)
	reg := newRegistry(t)
	out := filepath.Join(t.TempDir(), "reports", "frameworks.md")

	_, err := execute(context.Background(), "frameworks", "--sources", reg.sourcesFile(t), "-o", out)
	require.NoError(t, err, "per-source failures must not fail the command")

	got := readFile(t, out)
	assert.True(t, strings.HasPrefix(got, "# PHP Extension Requirements (Framework Scan)\n\nGenerated: "))
	assert.Contains(t, got, "Timeout: 20s\n")
	assert.Contains(t, got, "## Fetch errors\n\n- Gone: HTTP_STATUS: ")
	assert.Contains(t, got, "### A\n\nSource: "+reg.URL+"/composer/a.json\nPHP: ^8.2\nExtensions:\njson, mbstring\n")
	assert.NotContains(t, got, "### Gone")
	assert.Contains(t, got, "| json | 1 |\n| mbstring | 1 |\n")
	assert.Equal(t, "extscan/dev", reg.userAgent.Load())
}

func TestFrameworksCommandOutputDir(t *testing.T) {
	isolate(t)
	reg := newRegistry(t)
	dir := filepath.Join(t.TempDir(), "out")

	_, err := execute(context.Background(), "frameworks", "--sources", reg.sourcesFile(t), "--output-dir", dir)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, report.FrameworksFile))
}

func TestFrameworksCommandDefaultsToWorkingDirectory(t *testing.T) {
	isolate(t)
	reg := newRegistry(t)
	sources := reg.sourcesFile(t)
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := execute(context.Background(), "frameworks", "--sources", sources)
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(dir, report.FrameworksFile))
}

func TestPackagesCommand(t *testing.T) {
	isolate(t)
	reg := newRegistry(t)
	out := filepath.Join(t.TempDir(), "packages.md")

	_, err := execute(context.Background(), "packages",
		"--top-n", "2",
		"--popular-url", reg.URL+"/popular.json",
		"--package-url", reg.URL+"/p/{name}.json",
		"-o", out)
	require.NoError(t, err)

	got := readFile(t, out)
	assert.Contains(t, got, "# PHP Extension Requirements (Top Composer Packages)\n")
	assert.Contains(t, got, "Top N: 2\nVersion order: document\nTimeout: 20s\n")
	assert.Contains(t, got, "- acme/a (v1.0.0): curl\n- acme/b: (none)\n")
	assert.NotContains(t, got, "acme/c")
	assert.NotContains(t, got, "## Fetch errors")
	assert.Equal(t, int32(2), reg.packageFetches.Load())
}

func TestPackagesCommandTopNFromEnvironment(t *testing.T) {
	isolate(t)
	t.Setenv("TOP_N", "1")
	reg := newRegistry(t)
	out := filepath.Join(t.TempDir(), "packages.md")

	_, err := execute(context.Background(), "packages",
		"--popular-url", reg.URL+"/popular.json",
		"--package-url", reg.URL+"/p/{name}.json",
		"-o", out)
	require.NoError(t, err)

	assert.Contains(t, readFile(t, out), "Top N: 1\n")
	assert.Equal(t, int32(1), reg.packageFetches.Load())
}

func TestPackagesCommandDiscoveryFailure(t *testing.T) {
	isolate(t)
	reg := newRegistry(t)
	out := filepath.Join(t.TempDir(), "packages.md")

	_, err := execute(context.Background(), "packages",
		"--popular-url", reg.URL+"/missing.json",
		"--package-url", reg.URL+"/p/{name}.json",
		"-o", out)
	require.NoError(t, err)

	got := readFile(t, out)
	assert.Contains(t, got, "## Fetch errors\n\n- popular list: DISCOVERY_ERROR: ")
	assert.Contains(t, got, "## Aggregate (union)\n\n(none)\n")
	assert.Zero(t, reg.packageFetches.Load())
}

func TestPackagesCommandInvalidConfig(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "zero top n", args: []string{"--top-n", "0"}},
		{name: "unknown version order", args: []string{"--version-order", "newest"}},
		{name: "package url without placeholder", args: []string{"--package-url", "https://example.test/p.json"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			out := filepath.Join(t.TempDir(), "packages.md")

			_, err := execute(context.Background(), append([]string{"packages", "-o", out}, tt.args...)...)
			require.Error(t, err)
			assert.True(t, exterrors.Is(err, exterrors.ErrCodeInvalidInput))
			assert.NoFileExists(t, out)
		})
	}
}

func TestScanCancelledWritesNothing(t *testing.T) {
	isolate(t)
	reg := newRegistry(t)
	out := filepath.Join(t.TempDir(), "frameworks.md")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := execute(ctx, "frameworks", "--sources", reg.sourcesFile(t), "-o", out)

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
	assert.NoFileExists(t, out)
}

func TestWriteFailureIsFatal(t *testing.T) {
	isolate(t)
	reg := newRegistry(t)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	_, err := execute(context.Background(), "frameworks", "--sources", reg.sourcesFile(t), "-o", filepath.Join(blocker, "out.md"))

	require.Error(t, err)
	assert.True(t, exterrors.Is(err, exterrors.ErrCodeFatalIO))
}

func TestSourcesCommand(t *testing.T) {
	isolate(t)

	t.Run("built-in table", func(t *testing.T) {
		out, err := execute(context.Background(), "sources")
		require.NoError(t, err)
		for _, name := range []string{"Laravel", "Symfony", "Magento", "Drupal", "WordPress"} {
			assert.Contains(t, out, name)
		}
		assert.Contains(t, out, "https://raw.githubusercontent.com/laravel/framework/11.x/composer.json")
	})

	t.Run("file", func(t *testing.T) {
		reg := newRegistry(t)
		out, err := execute(context.Background(), "sources", "--sources", reg.sourcesFile(t))
		require.NoError(t, err)
		assert.Contains(t, out, "Gone")
		assert.NotContains(t, out, "Laravel")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := execute(context.Background(), "sources", "--sources", filepath.Join(t.TempDir(), "none.toml"))
		require.Error(t, err)
	})
}

func TestCompletionCommand(t *testing.T) {
	isolate(t)

	out, err := execute(context.Background(), "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, out, "extscan")

	_, err = execute(context.Background(), "completion", "tcsh")
	assert.Error(t, err)
}
