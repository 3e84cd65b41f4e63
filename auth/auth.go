// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidHash        = errors.New("invalid password hash")
)

// Validate reports whether username and password exactly match the configured
// pair. Comparison is case-sensitive and constant-time on both fields.
func Validate(username, password, configuredUsername, configuredPassword string) bool {
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(configuredUsername)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(configuredPassword)) == 1
	return userOK && passOK
}

// Credentials is the configured login. When PasswordHash is set it is a
// bcrypt hash and Password is ignored.
type Credentials struct {
	Username     string
	Password     string
	PasswordHash string
}

// Check validates a submitted username and password.
func (c Credentials) Check(username, password string) bool {
	if c.PasswordHash == "" {
		return Validate(username, password, c.Username, c.Password)
	}

	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(c.Username)) == 1
	// Always run bcrypt so a wrong username costs the same as a wrong password
	passOK := bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(password)) == nil
	return userOK && passOK
}

// Verify is Check returning ErrInvalidCredentials on mismatch.
func (c Credentials) Verify(username, password string) error {
	if !c.Check(username, password) {
		return ErrInvalidCredentials
	}
	return nil
}

// HashPassword produces a bcrypt hash suitable for DASHBOARD_PASSWORD_HASH.
func HashPassword(password string) (string, error) {
	h, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(h), nil
}

// CheckHash makes sure a configured hash is a usable bcrypt hash.
func CheckHash(hash string) error {
	if _, err := bcrypt.Cost([]byte(hash)); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidHash, err)
	}
	return nil
}

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// HashIP creates a one-way hash of an IP address for privacy
// Includes salt to prevent rainbow table attacks
func HashIP(ip, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(ip))
	sum := h.Sum(nil)
	// Return first 16 hex chars (64 bits) - enough for deduplication
	return hex.EncodeToString(sum[:8])
}
