// Package auth keeps track of which user the CLI acts for. The session is a
// small YAML file in the data directory; there are no credentials.
package auth

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/ayoisaiah/focusflow/internal/apperr"
	"github.com/ayoisaiah/focusflow/internal/osutil"
)

var (
	ErrNoSession = &apperr.Error{
		Message: "not logged in",
	}

	errReadSession = &apperr.Error{
		Message: "unable to read session file",
	}

	errWriteSession = &apperr.Error{
		Message: "unable to write session file",
	}

	errEmptyUser = &apperr.Error{
		Message: "user id cannot be empty",
	}
)

// Session identifies the current user.
type Session struct {
	LoggedInAt time.Time `yaml:"logged_in_at"`
	UserID     string    `yaml:"user_id"`
	Email      string    `yaml:"email,omitempty"`
	ServerURL  string    `yaml:"server_url,omitempty"`
	path       string
}

// Hydrate loads the session stored at path. It returns ErrNoSession when
// nobody is logged in.
func Hydrate(path string) (*Session, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoSession
		}

		return nil, errReadSession.Wrap(err)
	}

	var s Session

	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, errReadSession.Wrap(err)
	}

	if s.UserID == "" {
		return nil, ErrNoSession
	}

	s.path = path

	return &s, nil
}

// Login persists s at path and returns the stored session.
func Login(path string, s Session) (*Session, error) {
	s.UserID = strings.TrimSpace(s.UserID)
	if s.UserID == "" {
		return nil, errEmptyUser
	}

	if s.LoggedInAt.IsZero() {
		s.LoggedInAt = time.Now()
	}

	b, err := yaml.Marshal(&s)
	if err != nil {
		return nil, errWriteSession.Wrap(err)
	}

	if err := os.MkdirAll(filepath.Dir(path), osutil.DirPermission); err != nil {
		return nil, errWriteSession.Wrap(err)
	}

	if err := os.WriteFile(path, b, osutil.FilePermission); err != nil {
		return nil, errWriteSession.Wrap(err)
	}

	s.path = path

	return &s, nil
}

// Logout removes the session file and clears s.
func (s *Session) Logout() error {
	if s.path != "" {
		err := os.Remove(s.path)
		if err != nil && !errors.Is(err, os.ErrNotExist) {
			return errWriteSession.Wrap(err)
		}
	}

	*s = Session{}

	return nil
}

// UserOr returns the logged in user, or fallback when s is nil.
func (s *Session) UserOr(fallback string) string {
	if s == nil || s.UserID == "" {
		return fallback
	}

	return s.UserID
}
