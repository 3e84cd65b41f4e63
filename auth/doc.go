// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package auth provides credential validation and token utilities.

# Credential Check

Validate compares a submitted pair against the configured pair. Both
fields must match exactly (case-sensitive); comparison is constant-time:

	ok := auth.Validate(user, pass, cfg.Username, cfg.Password)

Credentials wraps the configured login and also accepts a bcrypt hash in
place of the plain password:

	creds := auth.Credentials{Username: "cgee", PasswordHash: hash}
	if err := creds.Verify(user, pass); err != nil {
		// auth.ErrInvalidCredentials
	}

Produce a hash for DASHBOARD_PASSWORD_HASH with HashPassword, or from
the binary with inct-panel -hash-password.

# ID Generation

Random hex IDs:

	id, err := auth.GenerateID(16)  // 32 hex characters

# IP Hashing

Login rate limiting keys clients by a salted hash instead of the raw
address:

	key := auth.HashIP(ipAddress, salt)

Returns first 8 bytes (16 hex chars) of HMAC-SHA256.
*/
package auth
