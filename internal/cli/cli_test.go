package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/matzehuels/opencga/pkg/config"
	apierrors "github.com/matzehuels/opencga/pkg/errors"
	"github.com/matzehuels/opencga/pkg/observability"
	"github.com/matzehuels/opencga/pkg/rest/operation"
	"github.com/matzehuels/opencga/pkg/session"
)

func TestRoutesCommand(t *testing.T) {
	c := newTestCLI(t, t.TempDir(), nil)
	out, err := execute(c, "routes", "--long")
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	for _, r := range operation.Routes() {
		if !strings.Contains(out, r.Name) {
			t.Errorf("routes output missing %s", r.Name)
		}
	}
	if !strings.Contains(out, "/{apiVersion}/operation/variant/secondaryIndex") {
		t.Errorf("routes output missing camel case path:\n%s", out)
	}
	if !strings.Contains(out, "--job-depends-on") {
		t.Error("--long should list option flags")
	}
}

func TestRoutesPickNeedsTerminal(t *testing.T) {
	c := newTestCLI(t, t.TempDir(), nil)
	if _, err := execute(c, "routes", "pick"); err == nil {
		t.Error("routes pick should fail without a terminal")
	}
}

func TestConfigShow(t *testing.T) {
	c := newTestCLI(t, t.TempDir(), map[string]string{config.EnvHost: "https://env.example.com"})
	out, err := execute(c, "config", "show", "--format", "yaml", "--timeout", "1m")
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if !strings.Contains(out, "host: https://env.example.com") {
		t.Errorf("config show output:\n%s", out)
	}

	c = newTestCLI(t, t.TempDir(), nil)
	if _, err := execute(c, "config", "show", "--format", "ini"); !apierrors.Is(err, apierrors.ErrCodeUnsupported) {
		t.Errorf("unknown format error = %v", err)
	}
}

func TestConfigPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.toml")
	os.WriteFile(path, []byte("[rest]\nhost = \"https://x\"\n"), 0600)

	c := newTestCLI(t, t.TempDir(), nil)
	out, err := execute(c, "config", "path", "--config", path)
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if strings.TrimSpace(out) != path {
		t.Errorf("config path = %q, want %q", out, path)
	}
}

func TestSessionLifecycle(t *testing.T) {
	dir := t.TempDir()

	c := newTestCLI(t, dir, map[string]string{config.EnvToken: "opaque-token-value"})
	if _, err := execute(c, "session", "save", "--host", "ws.example.org/opencga", "--ttl", "1h"); err != nil {
		t.Fatalf("session save error: %v", err)
	}

	store, err := session.NewCLIStoreIn(dir, session.DefaultProfile)
	if err != nil {
		t.Fatal(err)
	}
	sess, err := store.GetSession(context.Background())
	if err != nil || sess == nil {
		t.Fatalf("GetSession() = %v, %v", sess, err)
	}
	if sess.Host != "https://ws.example.org/opencga" || sess.Token != "opaque-token-value" {
		t.Errorf("saved session = %+v", sess)
	}
	if time.Until(sess.ExpiresAt) > time.Hour {
		t.Errorf("ExpiresAt = %v, want capped by --ttl", sess.ExpiresAt)
	}

	c = newTestCLI(t, dir, nil)
	out, err := execute(c, "session", "list")
	if err != nil {
		t.Fatalf("session list error: %v", err)
	}
	if strings.TrimSpace(out) != "* default" {
		t.Errorf("session list = %q", out)
	}

	c = newTestCLI(t, dir, nil)
	if _, err := execute(c, "session", "clear"); err != nil {
		t.Fatalf("session clear error: %v", err)
	}
	if sess, _ := store.GetSession(context.Background()); sess != nil {
		t.Error("session should be gone after clear")
	}
}

func TestSessionSaveErrors(t *testing.T) {
	c := newTestCLI(t, t.TempDir(), nil)
	if _, err := execute(c, "session", "save", "--host", "https://x"); !apierrors.Is(err, apierrors.ErrCodeInvalidInput) {
		t.Errorf("no token error = %v", err)
	}

	c = newTestCLI(t, t.TempDir(), nil)
	if _, err := execute(c, "session", "save", "--token", "t"); !apierrors.Is(err, apierrors.ErrCodeInvalidConfig) {
		t.Errorf("no host error = %v", err)
	}

	c = newTestCLI(t, t.TempDir(), nil)
	if _, err := execute(c, "session", "save", "--host", "https://x", "--token", "t", "-p", "../etc"); !apierrors.Is(err, apierrors.ErrCodeInvalidProfile) {
		t.Errorf("bad profile error = %v", err)
	}
}

func TestCompletionCommand(t *testing.T) {
	c := newTestCLI(t, t.TempDir(), nil)
	out, err := execute(c, "completion", "bash")
	if err != nil {
		t.Fatalf("execute error: %v", err)
	}
	if !strings.Contains(out, "opencga") {
		t.Error("bash completion should mention the command name")
	}
}

func TestLogHooks(t *testing.T) {
	var buf bytes.Buffer
	h := newLogHooks(newLogger(&buf, log.DebugLevel))
	req := observability.RequestInfo{ID: "req-1", Method: "POST", Host: "example.com", Path: "/webservices/rest/v2/operation/variant/aggregate"}

	h.OnRequest(context.Background(), req)
	h.OnResponse(context.Background(), req, 200, 120*time.Millisecond)
	h.OnError(context.Background(), req, errors.New("boom"))

	out := buf.String()
	for _, want := range []string{"http request", "req-1", "http response", "200", "http error", "boom"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	quiet := newLogHooks(newLogger(&buf, log.InfoLevel))
	quiet.OnRequest(context.Background(), req)
	if buf.Len() != 0 {
		t.Errorf("hooks should log at debug level only, got %q", buf.String())
	}
}

func TestRouteListModel(t *testing.T) {
	routes := operation.Routes()
	m := NewRouteListModel(routes)

	var model tea.Model = m
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	model, _ = model.Update(tea.KeyMsg{Type: tea.KeyUp})
	model, cmd := model.Update(tea.KeyMsg{Type: tea.KeyEnter})

	got := model.(RouteListModel)
	if got.Selected == nil || got.Selected.Name != routes[1].Name {
		t.Fatalf("Selected = %v, want %s", got.Selected, routes[1].Name)
	}
	if cmd == nil {
		t.Error("enter should quit")
	}
	if view := got.View(); !strings.Contains(view, routes[1].Summary) {
		t.Error("view should show the summary of the highlighted route")
	}
}

func TestRouteListModelScrolls(t *testing.T) {
	m := NewRouteListModel(operation.Routes())
	m.Height = 3

	var model tea.Model = m
	for range 5 {
		model, _ = model.Update(tea.KeyMsg{Type: tea.KeyDown})
	}
	got := model.(RouteListModel)
	if got.Cursor != 5 || got.Offset != 3 {
		t.Errorf("Cursor, Offset = %d, %d; want 5, 3", got.Cursor, got.Offset)
	}
}

func TestConfirmModel(t *testing.T) {
	tests := []struct {
		key  tea.KeyMsg
		want bool
	}{
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("y")}, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("Y")}, true},
		{tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("n")}, false},
		{tea.KeyMsg{Type: tea.KeyEnter}, false},
	}
	for _, tt := range tests {
		model, cmd := NewConfirmModel("Delete?").Update(tt.key)
		got := model.(ConfirmModel)
		if !got.Done || got.Confirmed != tt.want || cmd == nil {
			t.Errorf("key %q: Done=%v Confirmed=%v", tt.key.String(), got.Done, got.Confirmed)
		}
	}

	m := NewConfirmModel("Delete?")
	model, cmd := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("x")})
	if model.(ConfirmModel).Done || cmd != nil {
		t.Error("other keys should be ignored")
	}
	if !strings.Contains(m.View(), "Delete?") {
		t.Error("view should show the prompt")
	}
}

func TestMaskToken(t *testing.T) {
	if got := maskToken("short"); got != "*****" {
		t.Errorf("maskToken(short) = %q", got)
	}
	if got := maskToken("abcd1234567890wxyz"); got != "abcd********wxyz" {
		t.Errorf("maskToken(long) = %q", got)
	}
}

func captureStdout(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := stdout
	stdout = &buf
	t.Cleanup(func() { stdout = prev })
	return &buf
}

func TestSessionShow(t *testing.T) {
	dir := t.TempDir()
	c := newTestCLI(t, dir, nil)
	if _, err := execute(c, "session", "save", "--host", "https://x", "--token", "abcd1234567890wxyz"); err != nil {
		t.Fatalf("session save error: %v", err)
	}

	status := captureStdout(t)
	c = newTestCLI(t, dir, nil)
	if _, err := execute(c, "session", "show"); err != nil {
		t.Fatalf("session show error: %v", err)
	}
	out := status.String()
	if !strings.Contains(out, "abcd********wxyz") || strings.Contains(out, "1234567890") {
		t.Errorf("token should be masked:\n%s", out)
	}
	if !strings.Contains(out, "never") {
		t.Errorf("opaque token without --ttl should never expire:\n%s", out)
	}

	status.Reset()
	c = newTestCLI(t, dir, nil)
	if _, err := execute(c, "session", "show", "-p", "other"); err != nil {
		t.Fatalf("session show error: %v", err)
	}
	if !strings.Contains(status.String(), "No token saved") {
		t.Errorf("missing profile output:\n%s", status.String())
	}
}

func TestCompleteProfiles(t *testing.T) {
	dir := t.TempDir()
	for _, p := range []string{"prod", "test"} {
		c := newTestCLI(t, dir, nil)
		if _, err := execute(c, "session", "save", "-p", p, "--host", "https://x", "--token", "t"); err != nil {
			t.Fatal(err)
		}
	}

	c := newTestCLI(t, dir, nil)
	root := c.RootCommand()
	root.SetContext(context.Background())
	got, _ := c.completeProfiles(root, nil, "")
	if strings.Join(got, ",") != "prod,test" {
		t.Errorf("completeProfiles() = %v", got)
	}
}
