package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"setup-checklist/internal/model"
	"setup-checklist/internal/provider"
	"setup-checklist/internal/store"
)

func runCLI(t *testing.T, args []string) (stdout []byte, stderr []byte, err error) {
	t.Helper()

	cmd := NewRootCmd()

	var outBuf bytes.Buffer
	var errBuf bytes.Buffer
	cmd.SetOut(&outBuf)
	cmd.SetErr(&errBuf)
	cmd.SetArgs(args)

	e := cmd.Execute()
	return outBuf.Bytes(), errBuf.Bytes(), e
}

// isolate keeps the real user config dir and env out of the test.
func isolate(t *testing.T) {
	t.Helper()
	t.Setenv("CHECKLIST_CONFIG_DIR", t.TempDir())
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	for _, k := range []string{"CHECKLIST_DIR", "CHECKLIST_SOURCE", "CHECKLIST_BACKEND", "CHECKLIST_FORMAT", "CHECKLIST_TOKEN", "CHECKLIST_LOG_LEVEL"} {
		t.Setenv(k, "")
	}
	t.Setenv("CHECKLIST_LOG_LEVEL", "error")
}

func writeFixture(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "steps.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return p
}

const threeSteps = `items:
  - id: profile
    title: Complete your profile
    href: /settings/profile
    completed: true
  - id: invite
    title: Invite a teammate
    href: /team/invite
  - id: project
    title: Create a project
    href: /projects/new
`

const allDone = `items:
  - id: profile
    title: Complete your profile
    href: /settings/profile
    completed: true
`

func mustData(t *testing.T, args ...string) map[string]any {
	t.Helper()
	stdout, stderr, err := runCLI(t, args)
	if err != nil {
		t.Fatalf("command failed: checklist %v\nerr: %v\nstderr:\n%s\nstdout:\n%s", args, err, string(stderr), string(stdout))
	}
	var env map[string]any
	if err := json.Unmarshal(stdout, &env); err != nil {
		t.Fatalf("unmarshal stdout as json envelope: %v\nstdout:\n%s\nargs: %v", err, string(stdout), args)
	}
	data, ok := env["data"].(map[string]any)
	if !ok {
		t.Fatalf("expected JSON envelope with data object; got: %v", env)
	}
	return data
}

func TestCLI_ProgressDismissReset(t *testing.T) {
	for _, backend := range []string{"sqlite", "json"} {
		t.Run(backend, func(t *testing.T) {
			isolate(t)
			dir := t.TempDir()
			src := writeFixture(t, threeSteps)
			base := []string{"--dir", dir, "--source", src, "--backend", backend}

			p := mustData(t, append(base, "progress")...)
			if p["state"] != "active" || p["dismissed"] != false {
				t.Fatalf("expected active, not dismissed; got %v", p)
			}
			if p["completed"] != float64(1) || p["total"] != float64(3) || p["percent"] != float64(33) {
				t.Fatalf("unexpected counts: %v", p)
			}
			items, _ := p["items"].([]any)
			if len(items) != 3 || items[0].(map[string]any)["id"] != "profile" {
				t.Fatalf("expected items in source order; got %v", p["items"])
			}

			d := mustData(t, append(base, "dismiss")...)
			if d["persisted"] != true {
				t.Fatalf("expected dismissal to persist; got %v", d)
			}

			p = mustData(t, append(base, "progress")...)
			if p["state"] != "dismissed" || p["dismissed"] != true {
				t.Fatalf("expected dismissed after dismiss; got %v", p)
			}

			mustData(t, append(base, "reset")...)
			p = mustData(t, append(base, "progress")...)
			if p["state"] != "active" {
				t.Fatalf("expected active after reset; got %v", p)
			}
		})
	}
}

func TestCLI_ProgressWithoutSourceIsUnavailable(t *testing.T) {
	isolate(t)

	p := mustData(t, "--dir", t.TempDir(), "progress")
	if p["state"] != "unavailable" {
		t.Fatalf("expected unavailable without a source; got %v", p)
	}
	if items, _ := p["items"].([]any); len(items) != 0 {
		t.Fatalf("expected no items; got %v", p["items"])
	}
}

func TestCLI_ShowText(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	src := writeFixture(t, threeSteps)

	stdout, stderr, err := runCLI(t, []string{"--dir", dir, "--source", src, "show", "--width", "60"})
	if err != nil {
		t.Fatalf("show failed: %v\nstderr:\n%s", err, stderr)
	}
	out := string(stdout)
	for _, want := range []string{"Setup checklist", "Invite a teammate", "1/3"} {
		if !strings.Contains(out, want) {
			t.Fatalf("expected %q in output:\n%s", want, out)
		}
	}

	mustData(t, "--dir", dir, "dismiss")
	stdout, _, err = runCLI(t, []string{"--dir", dir, "--source", src, "show"})
	if err != nil {
		t.Fatalf("show after dismiss failed: %v", err)
	}
	if len(stdout) != 0 {
		t.Fatalf("expected no output once dismissed; got %q", stdout)
	}
}

func TestCLI_ShowHTML(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	src := writeFixture(t, allDone)

	stdout, stderr, err := runCLI(t, []string{"--dir", dir, "--source", src, "show", "--html", "--prerender"})
	if err != nil {
		t.Fatalf("show --prerender failed: %v\nstderr:\n%s", err, stderr)
	}
	if out := string(stdout); !strings.Contains(out, `data-state="unresolved"`) || strings.Contains(out, "All set!") {
		t.Fatalf("expected placeholder only; got %q", out)
	}

	stdout, _, err = runCLI(t, []string{"--dir", dir, "--source", src, "show", "--html"})
	if err != nil {
		t.Fatalf("show --html failed: %v", err)
	}
	if out := string(stdout); !strings.Contains(out, "All set!") || !strings.Contains(out, `data-action="dismiss-celebration"`) {
		t.Fatalf("expected celebration panel; got %q", out)
	}
}

func TestCLI_StatusAndEDN(t *testing.T) {
	isolate(t)
	dir := t.TempDir()

	s := mustData(t, "--dir", dir, "--backend", "json", "status")
	if s["dir"] != dir || s["dismissed"] != false {
		t.Fatalf("unexpected status: %v", s)
	}
	if loc, _ := s["location"].(string); !strings.HasPrefix(loc, dir) {
		t.Fatalf("expected location under %s; got %v", dir, s["location"])
	}

	stdout, _, err := runCLI(t, []string{"--dir", dir, "--format", "edn", "status"})
	if err != nil {
		t.Fatalf("status --format edn failed: %v", err)
	}
	if !strings.HasPrefix(string(stdout), "{:data {") || !strings.Contains(string(stdout), ":config-file") {
		t.Fatalf("expected EDN output; got %q", stdout)
	}
}

func TestCLI_RejectsUnknownBackend(t *testing.T) {
	isolate(t)

	_, _, err := runCLI(t, []string{"--dir", t.TempDir(), "--backend", "redis", "status"})
	if err == nil {
		t.Fatalf("expected error for unknown backend")
	}
}

func TestCLI_NoneBackendDismissesForSessionOnly(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	src := writeFixture(t, threeSteps)
	base := []string{"--dir", dir, "--source", src, "--backend", "none"}

	d := mustData(t, append(base, "dismiss")...)
	if d["dismissed"] != true || d["persisted"] != false {
		t.Fatalf("expected a session-only dismissal; got %v", d)
	}

	p := mustData(t, append(base, "progress")...)
	if p["state"] != "active" || p["dismissed"] != false {
		t.Fatalf("expected the next run to show the checklist again; got %v", p)
	}
}

func TestCLI_EmptyChecklistIsUnavailable(t *testing.T) {
	isolate(t)
	src := writeFixture(t, "items: []\n")

	p := mustData(t, "--dir", t.TempDir(), "--source", src, "progress")
	if p["state"] != "unavailable" {
		t.Fatalf("expected unavailable for an empty list; got %v", p)
	}
}

func TestCLI_ConfigErrorIsReported(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("backend: [oops\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	if _, _, err := runCLI(t, []string{"--dir", dir, "status"}); err == nil {
		t.Fatalf("expected malformed config to fail the command")
	}

	app := &App{Dir: dir}
	if _, err := app.config(); err == nil {
		t.Fatalf("expected config() to return the load error")
	}
}

func TestLoadSession_CancelledContextAborts(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	dismissals := store.NewDismissalStore(store.NewMemoryKV(), nil)
	data := &model.ChecklistData{Items: []model.ChecklistItem{{ID: "a", Title: "A", Href: "/a"}}}
	sess, err := loadSession(ctx, dismissals, provider.Static{Data: data})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled; got sess=%v err=%v", sess, err)
	}
}

func TestLoadSession_FetchFailureIsNotAnError(t *testing.T) {
	t.Parallel()

	dismissals := store.NewDismissalStore(store.NewMemoryKV(), nil)
	sess, err := loadSession(context.Background(), dismissals, provider.Static{Err: errors.New("backend down")})
	if err != nil {
		t.Fatalf("loadSession: %v", err)
	}
	if got := sess.State().String(); got != "unavailable" {
		t.Fatalf("expected unavailable; got %s", got)
	}
}
