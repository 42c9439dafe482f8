package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	apierrors "github.com/matzehuels/opencga/pkg/errors"
)

// FileStore is a file-based session store for CLI applications.
// Sessions are stored as JSON files in a config directory.
type FileStore struct {
	mu      sync.RWMutex
	baseDir string
	remove  func(name string) error
}

// NewFileStore creates a new file-based session store.
// If baseDir is empty, defaults to ~/.config/opencga/sessions/
func NewFileStore(baseDir string) (*FileStore, error) {
	if baseDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home dir: %w", err)
		}
		baseDir = filepath.Join(home, ".config", "opencga", "sessions")
	}
	if err := os.MkdirAll(baseDir, 0700); err != nil {
		return nil, fmt.Errorf("create session dir: %w", err)
	}
	return &FileStore{baseDir: baseDir, remove: os.Remove}, nil
}

func (s *FileStore) sessionPath(profile string) (string, error) {
	if err := apierrors.ValidateProfileName(profile); err != nil {
		return "", err
	}
	return filepath.Join(s.baseDir, profile+".json"), nil
}

// Get loads a profile. Expired sessions are removed and reported as
// SESSION_EXPIRED wrapping ErrExpired.
func (s *FileStore) Get(ctx context.Context, profile string) (*Session, error) {
	path, err := s.sessionPath(profile)
	if err != nil {
		return nil, err
	}

	s.mu.RLock()
	data, err := os.ReadFile(path)
	s.mu.RUnlock()
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read session file: %w", err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("parse session: %w", err)
	}

	if sess.IsExpired() {
		expired := sess.ExpiresAt.Format("Jan 2, 2006")
		s.mu.Lock()
		err := s.remove(path)
		s.mu.Unlock()
		if err != nil && !os.IsNotExist(err) {
			return nil, apierrors.Wrap(apierrors.ErrCodeSessionExpired, errors.Join(ErrExpired, err),
				"profile %q expired on %s and %s could not be removed", profile, expired, path)
		}
		return nil, apierrors.Wrap(apierrors.ErrCodeSessionExpired, ErrExpired, "profile %q expired on %s", profile, expired)
	}
	return &sess, nil
}

func (s *FileStore) Set(ctx context.Context, sess *Session) error {
	path, err := s.sessionPath(sess.ID)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("write session file: %w", err)
	}
	return nil
}

func (s *FileStore) Delete(ctx context.Context, profile string) error {
	path, err := s.sessionPath(profile)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("remove session file: %w", err)
	}
	return nil
}

func (s *FileStore) List(ctx context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return nil, fmt.Errorf("read session dir: %w", err)
	}

	var profiles []string
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		profiles = append(profiles, strings.TrimSuffix(entry.Name(), ".json"))
	}
	sort.Strings(profiles)
	return profiles, nil
}

func (s *FileStore) Cleanup(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		return fmt.Errorf("read session dir: %w", err)
	}

	var errs []error
	for _, entry := range entries {
		if entry.IsDir() || filepath.Ext(entry.Name()) != ".json" {
			continue
		}
		path := filepath.Join(s.baseDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		var sess Session
		if err := json.Unmarshal(data, &sess); err != nil {
			continue
		}
		if !sess.IsExpired() {
			continue
		}
		if err := s.remove(path); err != nil && !os.IsNotExist(err) {
			errs = append(errs, fmt.Errorf("remove expired session: %w", err))
		}
	}
	return errors.Join(errs...)
}

func (s *FileStore) Close() error { return nil }

// Path returns the base directory for session files.
func (s *FileStore) Path() string {
	return s.baseDir
}

var _ Store = (*FileStore)(nil)

// =============================================================================
// CLI convenience wrapper
// =============================================================================

// CLIStore wraps FileStore for a single profile.
type CLIStore struct {
	store   *FileStore
	profile string
}

// NewCLIStore creates a store for the given profile in the default
// directory. An empty profile selects DefaultProfile.
func NewCLIStore(profile string) (*CLIStore, error) {
	store, err := NewFileStore("")
	if err != nil {
		return nil, err
	}
	return newCLIStore(store, profile)
}

// NewCLIStoreIn is like NewCLIStore with an explicit session directory.
func NewCLIStoreIn(dir, profile string) (*CLIStore, error) {
	store, err := NewFileStore(dir)
	if err != nil {
		return nil, err
	}
	return newCLIStore(store, profile)
}

func newCLIStore(store *FileStore, profile string) (*CLIStore, error) {
	if profile == "" {
		profile = DefaultProfile
	}
	if err := apierrors.ValidateProfileName(profile); err != nil {
		return nil, err
	}
	return &CLIStore{store: store, profile: profile}, nil
}

// Profile returns the profile name.
func (c *CLIStore) Profile() string {
	return c.profile
}

// GetSession retrieves the profile's session.
func (c *CLIStore) GetSession(ctx context.Context) (*Session, error) {
	return c.store.Get(ctx, c.profile)
}

// SaveSession stores sess under the store's profile.
func (c *CLIStore) SaveSession(ctx context.Context, sess *Session) error {
	sess.ID = c.profile
	return c.store.Set(ctx, sess)
}

// DeleteSession removes the profile's session.
func (c *CLIStore) DeleteSession(ctx context.Context) error {
	return c.store.Delete(ctx, c.profile)
}

// Profiles lists every stored profile.
func (c *CLIStore) Profiles(ctx context.Context) ([]string, error) {
	return c.store.List(ctx)
}

// Path returns the session file path.
func (c *CLIStore) Path() string {
	return filepath.Join(c.store.baseDir, c.profile+".json")
}
