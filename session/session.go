// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package session

import (
	"context"
	"errors"
	"fmt"
	"time"
)

var (
	ErrInvalidTransition  = errors.New("invalid stage transition")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrNotFound           = errors.New("session not found")
	ErrInvariant          = errors.New("app stage requires authentication")
)

// Stage is a step of the access flow: home -> login -> app.
type Stage string

const (
	StageHome  Stage = "home"
	StageLogin Stage = "login"
	StageApp   Stage = "app"
)

func (s Stage) Valid() bool {
	switch s {
	case StageHome, StageLogin, StageApp:
		return true
	}
	return false
}

// State is the access-control state of one browser session.
type State struct {
	ID            string    `json:"id"`
	Stage         Stage     `json:"stage"`
	Authenticated bool      `json:"authenticated"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// New returns a session at the landing stage, not authenticated.
func New(id string) *State {
	now := time.Now().UTC()
	return &State{
		ID:        id,
		Stage:     StageHome,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Proceed moves Home to Login.
func (s *State) Proceed() error {
	if s.Stage != StageHome {
		return fmt.Errorf("%w: proceed from %s", ErrInvalidTransition, s.Stage)
	}
	s.Stage = StageLogin
	s.touch()
	return nil
}

// SubmitCredentials applies the outcome of a credential check. On success the
// session becomes authenticated and moves to App; on failure it stays at Login.
// Attempts are neither counted nor limited here.
func (s *State) SubmitCredentials(valid bool) error {
	if s.Stage != StageLogin {
		return fmt.Errorf("%w: login from %s", ErrInvalidTransition, s.Stage)
	}
	if !valid {
		return ErrInvalidCredentials
	}
	s.Authenticated = true
	s.Stage = StageApp
	s.touch()
	return nil
}

// InApp reports whether the dashboard may be shown.
func (s *State) InApp() bool {
	return s.Stage == StageApp && s.Authenticated
}

// Validate checks the stage value and that App implies authenticated.
func (s *State) Validate() error {
	if !s.Stage.Valid() {
		return fmt.Errorf("unknown stage %q", s.Stage)
	}
	if s.Stage == StageApp && !s.Authenticated {
		return ErrInvariant
	}
	return nil
}

func (s *State) touch() {
	s.UpdatedAt = time.Now().UTC()
}

// Clone returns an independent copy.
func (s *State) Clone() *State {
	c := *s
	return &c
}

// Store persists session states. Implementations must hand out copies so
// that concurrent requests never share a *State.
type Store interface {
	Create(ctx context.Context) (*State, error)
	Get(ctx context.Context, id string) (*State, error)
	Save(ctx context.Context, s *State) error
}

type ctxKey struct{}

// NewContext attaches the request's session.
func NewContext(ctx context.Context, s *State) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// FromContext returns the session attached by NewContext.
func FromContext(ctx context.Context) (*State, bool) {
	s, ok := ctx.Value(ctxKey{}).(*State)
	return s, ok && s != nil
}
