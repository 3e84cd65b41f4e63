// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

An optional .env file can be loaded first; values already present in the
environment win:

	if err := cliparse.LoadDotEnv(".env"); err != nil {
		log.Fatal(err)
	}

# Config Fields

  - Port: Server listen port (default: 3318)
  - DatabaseURL: Session store DSN (default: file:inct-panel.db for sqlite)
  - DatabaseType: sqlite, postgres or memory (default: sqlite)
  - DataDir: Directory holding bases/ and the fragment folders (default: .)
  - ManifestPath: YAML file overriding dataset paths (optional)
  - WatchData: Reload the dataset when its files change
  - Username: Dashboard username (required)
  - Password / PasswordHash: Plain password or bcrypt hash (one required)
  - IPHashSalt: Salt for client IP hashing (random when unset)
  - LoginRate / LoginBurst: Per-client login limiter (rate 0 disables it)
  - TrustProxy: Key limiter clients on X-Forwarded-For / X-Real-IP
  - SecureCookies: Mark the session cookie Secure

Memory sessions live in process and are lost on restart; UsesSQL reports
whether a database has to be opened.

# Hashing a Password

	inct-panel -hash-password 's3cret'

prints a bcrypt hash for DASHBOARD_PASSWORD_HASH and exits. ParseFlags
returns a Config holding only HashPassword in that case.

# Environment Variables

Flags fall back to environment variables:

	PORT                    → -p
	DATABASE_URL            → -d
	DATABASE_TYPE           → -t
	DATA_DIR                → -data
	DATA_MANIFEST           → -manifest
	WATCH_DATA              → -watch
	DASHBOARD_USERNAME      → -user
	DASHBOARD_PASSWORD      → -password
	DASHBOARD_PASSWORD_HASH → -password-hash
	IP_HASH_SALT            → -ip-salt
	LOGIN_RATE              → -login-rate
	LOGIN_BURST             → -login-burst
	TRUST_PROXY             → -trust-proxy
	SECURE_COOKIES          → -secure-cookies

CLI flags take precedence over environment variables.

# Validation

ParseFlags returns an error if:

  - DASHBOARD_USERNAME is missing
  - neither DASHBOARD_PASSWORD nor DASHBOARD_PASSWORD_HASH is set
  - the password hash is not a bcrypt hash
  - the database type is unknown, or postgres is chosen without a URL
  - the login rate is negative or the burst is below 1
*/
package cliparse
