package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/expressapi-labs/express-api/internal/console"
	"github.com/expressapi-labs/express-api/internal/exit"
	"github.com/expressapi-labs/express-api/internal/plog"
	"github.com/expressapi-labs/express-api/internal/prompt"
)

// testRun holds the observable outcome of one in-process CLI run.
type testRun struct {
	stdout bytes.Buffer
	stderr bytes.Buffer
	input  *prompt.ScriptedReader
	code   int
	exits  int
}

// runCLI executes the root command with args, answering prompts from input.
func runCLI(t *testing.T, input []string, args ...string) *testRun {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	t.Setenv("EXPRESSAPI_VIEW", "")
	t.Setenv("EXPRESSAPI_GIT", "")
	t.Setenv("EXPRESSAPI_FORCE", "")

	return runCLIWithConfig(t, filepath.Join(t.TempDir(), "config.yaml"), input, args...)
}

// runCLIWithConfig is runCLI reading its config file from configPath.
func runCLIWithConfig(t *testing.T, configPath string, input []string, args ...string) *testRun {
	t.Helper()
	r := &testRun{input: prompt.NewScriptedReader(input...), code: -1}
	con := console.New(&r.stdout, &r.stderr)
	plog.SetOutput(con.Out, con.Err)
	t.Cleanup(func() {
		plog.SetOutput(os.Stdout, os.Stderr)
		plog.SetVerbose(false)
	})

	app := &App{
		Console:    con,
		Input:      r.input,
		ConfigPath: configPath,
		Version:    "1.2.3",
		Commit:     "abc123",
		Date:       "2026-01-01",
	}
	app.Exit = exit.New(func(code int) {
		r.code = code
		r.exits++
	}, con.Out, con.Err)

	Run(context.Background(), app, args)
	return r
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	return names
}

func assertNonEmptyFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Errorf("missing %s: %v", path, err)
		return
	}
	if info.Size() == 0 {
		t.Errorf("%s is empty", path)
	}
}

func TestRunNewDirectory(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "my-app")
	r := runCLI(t, nil, dest)

	if r.code != 0 || r.exits != 1 {
		t.Fatalf("exit code = %d (exits %d), want 0 once\nstderr: %s", r.code, r.exits, r.stderr.String())
	}

	for _, f := range []string{"package.json", "app.js", "router.js", "bin/www", "controllers/home.js", "config/main.js", "models/home.js"} {
		assertNonEmptyFile(t, filepath.Join(dest, filepath.FromSlash(f)))
	}
	for _, d := range []string{"controllers", "config", "models"} {
		if len(listDir(t, filepath.Join(dest, d))) == 0 {
			t.Errorf("%s/ is empty", d)
		}
	}

	out := r.stdout.String()
	if n := strings.Count(out, "install dependencies:"); n != 1 {
		t.Errorf("next steps printed %d times, want 1\n%s", n, out)
	}
	if !strings.Contains(out, "create : "+filepath.Join(dest, "app.js")) {
		t.Errorf("missing create line for app.js\n%s", out)
	}
	if !strings.Contains(out, "DEBUG=my-app:* npm start") {
		t.Errorf("next steps do not use the app name\n%s", out)
	}
	if !strings.Contains(r.stderr.String(), "warning: the default view engine will not be jade") {
		t.Errorf("missing view deprecation warning\nstderr: %s", r.stderr.String())
	}
	if r.input.Reads() != 0 {
		t.Error("prompted for a missing destination")
	}
}

func TestRunNonEmptyDeclined(t *testing.T) {
	dest := t.TempDir()
	if err := os.WriteFile(filepath.Join(dest, "existing.txt"), []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	r := runCLI(t, []string{"n"}, dest)

	if r.code != 1 {
		t.Fatalf("exit code = %d, want 1", r.code)
	}
	if got := listDir(t, dest); len(got) != 1 || got[0] != "existing.txt" {
		t.Errorf("destination changed: %v", got)
	}
	if !strings.Contains(r.stdout.String(), prompt.Question) {
		t.Errorf("prompt not shown\n%s", r.stdout.String())
	}
	if !strings.Contains(r.stderr.String(), "aborting") {
		t.Errorf("abort notice missing\nstderr: %s", r.stderr.String())
	}
	if strings.Contains(r.stdout.String(), "create :") {
		t.Error("create lines printed after abort")
	}
}

func TestRunForceInConfigFileStillPrompts(t *testing.T) {
	dest := t.TempDir()
	if err := os.WriteFile(filepath.Join(dest, "existing.txt"), []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOME", t.TempDir())
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(configPath, []byte("force: true\n"), 0644); err != nil {
		t.Fatal(err)
	}

	r := runCLIWithConfig(t, configPath, []string{"n"}, dest)

	if r.code != 1 {
		t.Fatalf("exit code = %d, want 1", r.code)
	}
	if r.input.Reads() != 1 {
		t.Errorf("prompt read %d answers, want 1", r.input.Reads())
	}
	if got := listDir(t, dest); len(got) != 1 {
		t.Errorf("destination changed: %v", got)
	}
}

func TestRunNonEmptyConfirmed(t *testing.T) {
	dest := t.TempDir()
	if err := os.WriteFile(filepath.Join(dest, "existing.txt"), []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	r := runCLI(t, []string{"Yes"}, dest, "--view=ejs")

	if r.code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr: %s", r.code, r.stderr.String())
	}
	assertNonEmptyFile(t, filepath.Join(dest, "app.js"))
	if !r.input.Closed() {
		t.Error("input not released after confirmation")
	}
}

func TestRunNonEmptyForced(t *testing.T) {
	dest := t.TempDir()
	existing := filepath.Join(dest, "existing.txt")
	if err := os.WriteFile(existing, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	r := runCLI(t, nil, "--force", dest)

	if r.code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr: %s", r.code, r.stderr.String())
	}
	if r.input.Reads() != 0 {
		t.Error("prompted despite --force")
	}
	data, err := os.ReadFile(existing)
	if err != nil || string(data) != "hello" {
		t.Errorf("pre-existing file changed: %q, %v", data, err)
	}
	assertNonEmptyFile(t, filepath.Join(dest, "package.json"))
	assertNonEmptyFile(t, filepath.Join(dest, "bin", "www"))
}

func TestRunGitAndView(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "api")
	r := runCLI(t, nil, "--git", "--view=hbs", dest)

	if r.code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr: %s", r.code, r.stderr.String())
	}
	assertNonEmptyFile(t, filepath.Join(dest, ".gitignore"))

	pkg, err := os.ReadFile(filepath.Join(dest, "package.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(pkg), `"hbs": "~4.0.1"`) {
		t.Errorf("package.json missing view engine\n%s", pkg)
	}
	if strings.Contains(r.stderr.String(), "default view engine") {
		t.Error("deprecation warning shown despite --view")
	}
}

func TestRunViewFromEnv(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "api")
	t.Setenv("HOME", t.TempDir())

	r := &testRun{input: prompt.NewScriptedReader(), code: -1}
	con := console.New(&r.stdout, &r.stderr)
	app := &App{
		Console:    con,
		Input:      r.input,
		ConfigPath: filepath.Join(t.TempDir(), "config.yaml"),
	}
	app.Exit = exit.New(func(code int) { r.code = code }, con.Out, con.Err)
	t.Setenv("EXPRESSAPI_VIEW", "twig")

	Run(context.Background(), app, []string{dest})

	if r.code != 0 {
		t.Fatalf("exit code = %d, want 0\nstderr: %s", r.code, r.stderr.String())
	}
	pkg, err := os.ReadFile(filepath.Join(dest, "package.json"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(pkg), `"twig"`) {
		t.Errorf("view from environment ignored\n%s", pkg)
	}
}

func TestRunUnknownView(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "api")
	r := runCLI(t, nil, "--view=mustache", dest)

	if r.code != 1 {
		t.Fatalf("exit code = %d, want 1", r.code)
	}
	if !strings.Contains(r.stderr.String(), "unsupported view engine") {
		t.Errorf("stderr = %s", r.stderr.String())
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("destination created for an invalid view engine")
	}
	if strings.Contains(r.stderr.String(), "rejecting view engine") {
		t.Error("diagnostic logged without --verbose")
	}
}

func TestRunUnknownViewVerbose(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "api")
	r := runCLI(t, nil, "--verbose", "--view=mustache", dest)

	if r.code != 1 {
		t.Fatalf("exit code = %d, want 1", r.code)
	}
	if !strings.Contains(r.stderr.String(), `level=ERROR msg="rejecting view engine" view=mustache`) {
		t.Errorf("stderr = %s", r.stderr.String())
	}
}

func TestRunVersionSkipsScaffolding(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "api")
	r := runCLI(t, nil, "--version", dest)

	if r.code != 0 || r.exits != 1 {
		t.Fatalf("exit code = %d (exits %d), want 0 once", r.code, r.exits)
	}
	if strings.TrimSpace(r.stdout.String()) != "1.2.3" {
		t.Errorf("stdout = %q, want version", r.stdout.String())
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("scaffolded despite --version")
	}
}

func TestRunVerboseVersion(t *testing.T) {
	r := runCLI(t, nil, "--version", "--verbose")
	if !strings.Contains(r.stdout.String(), "express-api version 1.2.3 (commit: abc123, built: 2026-01-01)") {
		t.Errorf("stdout = %q", r.stdout.String())
	}
}

func TestRunHelpSkipsScaffolding(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "api")
	r := runCLI(t, nil, "--help", dest)

	if r.code != 0 || r.exits != 1 {
		t.Fatalf("exit code = %d (exits %d), want 0 once", r.code, r.exits)
	}
	if !strings.Contains(r.stdout.String(), "--force") {
		t.Errorf("help output missing flags\n%s", r.stdout.String())
	}
	if _, err := os.Stat(dest); !os.IsNotExist(err) {
		t.Error("scaffolded despite --help")
	}
}

func TestRunTooManyArgs(t *testing.T) {
	r := runCLI(t, nil, "one", "two")
	if r.code != 1 {
		t.Fatalf("exit code = %d, want 1", r.code)
	}
	if !strings.HasPrefix(r.stderr.String(), "error: ") {
		t.Errorf("stderr = %q", r.stderr.String())
	}
}

func TestRunReportsPartialScaffold(t *testing.T) {
	dest := filepath.Join(t.TempDir(), "api")
	if err := os.MkdirAll(dest, 0755); err != nil {
		t.Fatal(err)
	}
	// A file where the models directory should go breaks one branch.
	if err := os.WriteFile(filepath.Join(dest, "models"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	r := runCLI(t, nil, "--force", dest)

	if r.code != 1 {
		t.Fatalf("exit code = %d, want 1", r.code)
	}
	stderr := r.stderr.String()
	if !strings.Contains(stderr, "is incomplete") || !strings.Contains(stderr, "not created:") {
		t.Errorf("partial scaffold not reported\n%s", stderr)
	}
	if !strings.Contains(stderr, `level=WARN msg="scaffold incomplete"`) {
		t.Errorf("partial scaffold not logged\n%s", stderr)
	}
	if !strings.Contains(stderr, filepath.Join(dest, "models", "home.js")) {
		t.Errorf("missing file not listed\n%s", stderr)
	}
	if strings.Contains(r.stdout.String(), "install dependencies:") {
		t.Error("next steps printed for a failed run")
	}
}
