package session

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt"

	apierrors "github.com/matzehuels/opencga/pkg/errors"
)

func signedToken(t *testing.T, sub string, exp time.Time) string {
	t.Helper()
	claims := jwt.StandardClaims{Subject: sub}
	if !exp.IsZero() {
		claims.ExpiresAt = exp.Unix()
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return tok
}

func TestNewFromJWT(t *testing.T) {
	exp := time.Now().Add(2 * time.Hour).Truncate(time.Second)
	sess, err := New("prod", "https://ws.opencb.org/opencga-prod", signedToken(t, "demouser", exp), 0)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if sess.ID != "prod" {
		t.Errorf("ID = %q", sess.ID)
	}
	if sess.User != "demouser" {
		t.Errorf("User = %q, want demouser", sess.User)
	}
	if !sess.ExpiresAt.Equal(exp) {
		t.Errorf("ExpiresAt = %v, want %v", sess.ExpiresAt, exp)
	}
	if sess.IsExpired() {
		t.Error("fresh session should not be expired")
	}
}

func TestNewOpaqueToken(t *testing.T) {
	sess, err := New("", "https://example.com", "not-a-jwt", 0)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if sess.ID != DefaultProfile {
		t.Errorf("ID = %q, want %q", sess.ID, DefaultProfile)
	}
	if sess.User != "" || !sess.ExpiresAt.IsZero() {
		t.Errorf("opaque token should carry no claims: %+v", sess)
	}
	if sess.IsExpired() {
		t.Error("session without expiry should never expire")
	}
}

func TestNewTTLCapsExpiry(t *testing.T) {
	far := time.Now().Add(30 * 24 * time.Hour)
	sess, err := New("p", "", signedToken(t, "u", far), time.Hour)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	if sess.ExpiresAt.After(time.Now().Add(time.Hour + time.Minute)) {
		t.Errorf("ExpiresAt = %v, want capped to one hour", sess.ExpiresAt)
	}
}

func TestNewRejectsBadInput(t *testing.T) {
	if _, err := New("../etc", "", "tok", 0); !apierrors.Is(err, apierrors.ErrCodeInvalidProfile) {
		t.Errorf("bad profile error = %v", err)
	}
	if _, err := New("p", "", "", 0); !apierrors.Is(err, apierrors.ErrCodeInvalidInput) {
		t.Errorf("empty token error = %v", err)
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store, err := NewFileStore(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileStore() error: %v", err)
	}

	sess, _ := New("lab", "https://example.com", "tok", 0)
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	info, err := os.Stat(filepath.Join(store.Path(), "lab.json"))
	if err != nil {
		t.Fatalf("session file missing: %v", err)
	}
	if perm := info.Mode().Perm(); perm != 0600 {
		t.Errorf("file mode = %o, want 600", perm)
	}

	got, err := store.Get(ctx, "lab")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got == nil || got.Token != "tok" || got.Host != "https://example.com" {
		t.Errorf("Get() = %+v", got)
	}

	if err := store.Delete(ctx, "lab"); err != nil {
		t.Fatalf("Delete() error: %v", err)
	}
	got, err = store.Get(ctx, "lab")
	if err != nil || got != nil {
		t.Errorf("Get() after delete = %v, %v", got, err)
	}
	if err := store.Delete(ctx, "lab"); err != nil {
		t.Errorf("Delete() of missing profile should succeed: %v", err)
	}
}

func TestFileStoreExpired(t *testing.T) {
	ctx := context.Background()
	store, _ := NewFileStore(t.TempDir())

	sess := &Session{ID: "old", Token: "tok", ExpiresAt: time.Now().Add(-time.Minute)}
	if err := store.Set(ctx, sess); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	got, err := store.Get(ctx, "old")
	if got != nil {
		t.Errorf("Get() = %+v, want nil", got)
	}
	if !apierrors.Is(err, apierrors.ErrCodeSessionExpired) || !errors.Is(err, ErrExpired) {
		t.Errorf("Get() error = %v, want SESSION_EXPIRED", err)
	}
	if _, err := os.Stat(filepath.Join(store.Path(), "old.json")); !os.IsNotExist(err) {
		t.Error("expired session file should be removed")
	}
}

func TestFileStoreExpiredRemoveFails(t *testing.T) {
	ctx := context.Background()
	store, _ := NewFileStore(t.TempDir())
	store.Set(ctx, &Session{ID: "old", Token: "tok", ExpiresAt: time.Now().Add(-time.Minute)})

	denied := errors.New("read-only file system")
	store.remove = func(string) error { return denied }

	_, err := store.Get(ctx, "old")
	if !apierrors.Is(err, apierrors.ErrCodeSessionExpired) || !errors.Is(err, ErrExpired) {
		t.Errorf("Get() error = %v, want SESSION_EXPIRED", err)
	}
	if !errors.Is(err, denied) {
		t.Errorf("Get() error = %v, should carry the remove failure", err)
	}

	if err := store.Cleanup(ctx); !errors.Is(err, denied) {
		t.Errorf("Cleanup() error = %v, want the remove failure", err)
	}
}

func TestSessionUnknownExpiryOmitted(t *testing.T) {
	ctx := context.Background()
	store, _ := NewFileStore(t.TempDir())
	if err := store.Set(ctx, &Session{ID: "lab", Token: "tok", CreatedAt: time.Now()}); err != nil {
		t.Fatalf("Set() error: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(store.Path(), "lab.json"))
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(data), "expires_at") {
		t.Errorf("session file should omit an unknown expiry:\n%s", data)
	}

	got, err := store.Get(ctx, "lab")
	if err != nil || got == nil || !got.ExpiresAt.IsZero() {
		t.Errorf("Get() = %+v, %v; want zero ExpiresAt", got, err)
	}
}

func TestFileStoreListAndCleanup(t *testing.T) {
	ctx := context.Background()
	store, _ := NewFileStore(t.TempDir())

	store.Set(ctx, &Session{ID: "b", Token: "1"})
	store.Set(ctx, &Session{ID: "a", Token: "2"})
	store.Set(ctx, &Session{ID: "gone", Token: "3", ExpiresAt: time.Now().Add(-time.Hour)})
	os.WriteFile(filepath.Join(store.Path(), "notes.txt"), []byte("x"), 0600)

	profiles, err := store.List(ctx)
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(profiles) != 3 || profiles[0] != "a" || profiles[1] != "b" || profiles[2] != "gone" {
		t.Errorf("List() = %v", profiles)
	}

	if err := store.Cleanup(ctx); err != nil {
		t.Fatalf("Cleanup() error: %v", err)
	}
	profiles, _ = store.List(ctx)
	if len(profiles) != 2 {
		t.Errorf("List() after cleanup = %v", profiles)
	}
}

func TestFileStoreRejectsTraversal(t *testing.T) {
	store, _ := NewFileStore(t.TempDir())
	if _, err := store.Get(context.Background(), "../../etc/passwd"); !apierrors.Is(err, apierrors.ErrCodeInvalidProfile) {
		t.Errorf("Get() error = %v, want INVALID_PROFILE", err)
	}
	if err := store.Set(context.Background(), &Session{ID: "a/b", Token: "t"}); !apierrors.Is(err, apierrors.ErrCodeInvalidProfile) {
		t.Errorf("Set() error = %v, want INVALID_PROFILE", err)
	}
}

func TestCLIStore(t *testing.T) {
	ctx := context.Background()
	fs, _ := NewFileStore(t.TempDir())
	cs, err := newCLIStore(fs, "")
	if err != nil {
		t.Fatalf("newCLIStore() error: %v", err)
	}
	if cs.Profile() != DefaultProfile {
		t.Errorf("Profile() = %q", cs.Profile())
	}

	sess := &Session{ID: "ignored", Token: "tok"}
	if err := cs.SaveSession(ctx, sess); err != nil {
		t.Fatalf("SaveSession() error: %v", err)
	}
	if sess.ID != DefaultProfile {
		t.Errorf("SaveSession should set ID to the profile, got %q", sess.ID)
	}
	if cs.Path() != filepath.Join(fs.Path(), DefaultProfile+".json") {
		t.Errorf("Path() = %q", cs.Path())
	}

	got, err := cs.GetSession(ctx)
	if err != nil || got == nil || got.Token != "tok" {
		t.Errorf("GetSession() = %v, %v", got, err)
	}

	profiles, _ := cs.Profiles(ctx)
	if len(profiles) != 1 {
		t.Errorf("Profiles() = %v", profiles)
	}

	if err := cs.DeleteSession(ctx); err != nil {
		t.Fatalf("DeleteSession() error: %v", err)
	}
	if got, _ := cs.GetSession(ctx); got != nil {
		t.Error("GetSession() after delete should be nil")
	}

	if _, err := newCLIStore(fs, "bad/name"); err == nil {
		t.Error("newCLIStore() should reject invalid profile names")
	}
}
