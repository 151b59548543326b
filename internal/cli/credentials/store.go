// Package credentials persists the fedctl connection contexts.
package credentials

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

const (
	DefaultConfigDir = "fedctl"
	ConfigFileName   = "config.json"
	FilePermissions  = 0o600
	DirPermissions   = 0o700
)

var (
	ErrNoCurrentContext = errors.New("no current context set")
	ErrContextNotFound  = errors.New("context not found")
	ErrInvalidContext   = errors.New("invalid context")
)

// Context is one admin server a user works against: the server, the realm
// commands default to and the bearer token sent with every request.
type Context struct {
	ServerURL      string    `json:"server_url"`
	Realm          string    `json:"realm"`
	AccessToken    string    `json:"access_token,omitempty"`
	TokenExpiresAt time.Time `json:"token_expires_at,omitzero"`
}

// Validate checks the fields every request needs.
func (c *Context) Validate() error {
	if strings.TrimSpace(c.ServerURL) == "" {
		return fmt.Errorf("%w: server URL is required", ErrInvalidContext)
	}
	if strings.TrimSpace(c.Realm) == "" {
		return fmt.Errorf("%w: realm is required", ErrInvalidContext)
	}
	return nil
}

// TokenExpired reports whether a token with a known expiry is within a
// minute of expiring. Tokens without an expiry never expire here.
func (c *Context) TokenExpired(now time.Time) bool {
	if c.TokenExpiresAt.IsZero() {
		return false
	}
	return now.Add(time.Minute).After(c.TokenExpiresAt)
}

// Preferences are defaults applied when flags are not given.
type Preferences struct {
	DefaultOutput string `json:"default_output,omitempty"`
	NoColor       bool   `json:"no_color,omitempty"`
}

// File is the on-disk layout.
type File struct {
	CurrentContext string              `json:"current_context"`
	Contexts       map[string]*Context `json:"contexts"`
	Preferences    Preferences         `json:"preferences,omitzero"`
}

// Store reads and writes the contexts file.
type Store struct {
	path string
	file *File
}

// NewStore opens the store at $XDG_CONFIG_HOME/fedctl/config.json,
// falling back to ~/.config.
func NewStore() (*Store, error) {
	path, err := DefaultPath()
	if err != nil {
		return nil, err
	}
	return Open(path)
}

// Open opens the store at path. A missing file is an empty store.
func Open(path string) (*Store, error) {
	s := &Store{path: path, file: &File{Contexts: map[string]*Context{}}}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return s, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, s.file); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if s.file.Contexts == nil {
		s.file.Contexts = map[string]*Context{}
	}
	return s, nil
}

// DefaultPath returns the contexts file location.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("cannot determine home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, DefaultConfigDir, ConfigFileName), nil
}

// Path returns the file the store writes.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), DirPermissions); err != nil {
		return fmt.Errorf("cannot create config directory: %w", err)
	}
	data, err := json.MarshalIndent(s.file, "", "  ")
	if err != nil {
		return err
	}
	// Write then rename so a crash never leaves a truncated file.
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, FilePermissions); err != nil {
		return err
	}
	return os.Rename(tmp, s.path)
}

// Current returns the active context.
func (s *Store) Current() (string, *Context, error) {
	name := s.file.CurrentContext
	if name == "" {
		return "", nil, ErrNoCurrentContext
	}
	ctx, ok := s.file.Contexts[name]
	if !ok {
		return name, nil, fmt.Errorf("%w: %s", ErrContextNotFound, name)
	}
	return name, ctx, nil
}

// CurrentName returns the active context name, or "".
func (s *Store) CurrentName() string {
	return s.file.CurrentContext
}

// Get returns the named context.
func (s *Store) Get(name string) (*Context, error) {
	ctx, ok := s.file.Contexts[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrContextNotFound, name)
	}
	return ctx, nil
}

// Names returns the context names sorted.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.file.Contexts))
	for name := range s.file.Contexts {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Set creates or replaces a context. The first context becomes current.
func (s *Store) Set(name string, ctx *Context) error {
	if err := ctx.Validate(); err != nil {
		return err
	}
	s.file.Contexts[name] = ctx
	if s.file.CurrentContext == "" {
		s.file.CurrentContext = name
	}
	return s.save()
}

// Use makes name the active context.
func (s *Store) Use(name string) error {
	if _, ok := s.file.Contexts[name]; !ok {
		return fmt.Errorf("%w: %s", ErrContextNotFound, name)
	}
	s.file.CurrentContext = name
	return s.save()
}

// Delete removes a context, clearing the active one if it was current.
func (s *Store) Delete(name string) error {
	if _, ok := s.file.Contexts[name]; !ok {
		return fmt.Errorf("%w: %s", ErrContextNotFound, name)
	}
	delete(s.file.Contexts, name)
	if s.file.CurrentContext == name {
		s.file.CurrentContext = ""
	}
	return s.save()
}

// SetToken stores a token on the active context.
func (s *Store) SetToken(token string, expiresAt time.Time) error {
	_, ctx, err := s.Current()
	if err != nil {
		return err
	}
	ctx.AccessToken = token
	ctx.TokenExpiresAt = expiresAt
	return s.save()
}

// Preferences returns the stored preferences.
func (s *Store) Preferences() Preferences {
	return s.file.Preferences
}

// SetPreferences replaces the stored preferences.
func (s *Store) SetPreferences(p Preferences) error {
	s.file.Preferences = p
	return s.save()
}
