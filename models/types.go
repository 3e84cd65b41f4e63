// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package models

import (
	"time"

	"github.com/danielhkuo/inct-panel/catalog"
)

// Filter type query values
const (
	TypeInstitute = "inct"
	TypeArea      = "area"
)

// Request types

// LoginRequest is the login form, also accepted as JSON.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Response types

type SessionResponse struct {
	Stage         string    `json:"stage"`
	Authenticated bool      `json:"authenticated"`
	CreatedAt     time.Time `json:"created_at"`
}

type OptionsResponse struct {
	Type    string   `json:"type"`
	Options []string `json:"options"`
}

type SelectionResponse struct {
	Type    string          `json:"type"`
	Key     string          `json:"key"`
	Outcome string          `json:"outcome"` // prompt, institute or area
	Count   int             `json:"count"`
	Entries []catalog.Entry `json:"entries"`
}

type ReloadResponse struct {
	Entries    int       `json:"entries"`
	Institutes int       `json:"institutes"`
	Areas      int       `json:"areas"`
	ReloadedAt time.Time `json:"reloaded_at"`
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
