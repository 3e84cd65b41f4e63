// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"

	"github.com/danielhkuo/inct-panel/auth"
	"github.com/danielhkuo/inct-panel/db"
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string

	DataDir      string
	ManifestPath string
	WatchData    bool

	Username     string
	Password     string
	PasswordHash string
	IPHashSalt   string

	LoginRate     float64 // attempts per second per client, 0 = unlimited
	LoginBurst    int
	TrustProxy    bool // key clients on X-Forwarded-For / X-Real-IP
	SecureCookies bool

	// HashPassword, when set, asks the binary to print its bcrypt hash and
	// exit. No other setting is read.
	HashPassword string
}

// UsesSQL reports whether sessions live in a database.
func (c Config) UsesSQL() bool {
	return c.DatabaseType != db.TypeMemory
}

// Credentials returns the configured login pair.
func (c Config) Credentials() auth.Credentials {
	return auth.Credentials{
		Username:     c.Username,
		Password:     c.Password,
		PasswordHash: c.PasswordHash,
	}
}

// LoadDotEnv reads KEY=VALUE pairs from path into the environment without
// overriding variables that are already set. A missing file is ignored.
func LoadDotEnv(path string) error {
	err := godotenv.Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

// ParseFlags reads flags, falling back to environment variables
func ParseFlags(args []string) (Config, error) {
	var cfg Config

	fs := flag.NewFlagSet("inct-panel", flag.ContinueOnError)

	// Network and storage (can be CLI args or env)
	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseType, "t", "", "Session store (sqlite, postgres or memory)")

	// Dataset
	fs.StringVar(&cfg.DataDir, "data", "", "Directory holding the dataset")
	fs.StringVar(&cfg.ManifestPath, "manifest", "", "YAML manifest overriding dataset paths")
	fs.BoolVar(&cfg.WatchData, "watch", false, "Reload the dataset when files change")

	// Secrets (prefer env variables, but allow CLI for dev)
	fs.StringVar(&cfg.Username, "user", "", "Dashboard username (prefer env)")
	fs.StringVar(&cfg.Password, "password", "", "Dashboard password (prefer env)")
	fs.StringVar(&cfg.PasswordHash, "password-hash", "", "Bcrypt hash of the dashboard password (prefer env)")
	fs.StringVar(&cfg.IPHashSalt, "ip-salt", "", "Salt for hashing client IPs (prefer env)")

	// Login limiter and cookies
	fs.Float64Var(&cfg.LoginRate, "login-rate", 0, "Login attempts per second per client (0 = unlimited)")
	fs.IntVar(&cfg.LoginBurst, "login-burst", 0, "Login attempts allowed in a burst")
	fs.BoolVar(&cfg.TrustProxy, "trust-proxy", false, "Trust X-Forwarded-For and X-Real-IP for client addresses")
	fs.BoolVar(&cfg.SecureCookies, "secure-cookies", false, "Mark the session cookie Secure")

	fs.StringVar(&cfg.HashPassword, "hash-password", "", "Print the bcrypt hash of this password and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.HashPassword != "" {
		return Config{HashPassword: cfg.HashPassword}, nil
	}

	// Bools have no zero value to test, so look at what was passed
	passed := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { passed[f.Name] = true })

	// Fall back to environment variables
	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = 3318 // default
		}
	}

	if cfg.DatabaseType == "" {
		cfg.DatabaseType = os.Getenv("DATABASE_TYPE")
		if cfg.DatabaseType == "" {
			cfg.DatabaseType = db.TypeSQLite
		}
	}
	if cfg.DatabaseType == db.TypeMemory {
		cfg.DatabaseURL = ""
	} else if _, err := db.DriverName(cfg.DatabaseType); err != nil {
		return Config{}, err
	}
	if cfg.DatabaseURL == "" && cfg.UsesSQL() {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseURL == "" && cfg.UsesSQL() {
		if cfg.DatabaseType != db.TypeSQLite {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
		cfg.DatabaseURL = "file:inct-panel.db"
	}

	if cfg.DataDir == "" {
		cfg.DataDir = os.Getenv("DATA_DIR")
		if cfg.DataDir == "" {
			cfg.DataDir = "."
		}
	}
	if cfg.ManifestPath == "" {
		cfg.ManifestPath = os.Getenv("DATA_MANIFEST")
	}
	if !passed["watch"] {
		v, err := envBool("WATCH_DATA")
		if err != nil {
			return Config{}, err
		}
		cfg.WatchData = v
	}

	// Secrets - username and one form of the password MUST be provided
	if cfg.Username == "" {
		cfg.Username = os.Getenv("DASHBOARD_USERNAME")
	}
	if cfg.Username == "" {
		return Config{}, errors.New("DASHBOARD_USERNAME required")
	}
	if cfg.Password == "" {
		cfg.Password = os.Getenv("DASHBOARD_PASSWORD")
	}
	if cfg.PasswordHash == "" {
		cfg.PasswordHash = os.Getenv("DASHBOARD_PASSWORD_HASH")
	}
	if cfg.PasswordHash != "" {
		if err := auth.CheckHash(cfg.PasswordHash); err != nil {
			return Config{}, fmt.Errorf("DASHBOARD_PASSWORD_HASH: %w", err)
		}
	} else if cfg.Password == "" {
		return Config{}, errors.New("DASHBOARD_PASSWORD or DASHBOARD_PASSWORD_HASH required")
	}

	if cfg.IPHashSalt == "" {
		cfg.IPHashSalt = os.Getenv("IP_HASH_SALT")
	}
	if cfg.IPHashSalt == "" {
		salt, err := auth.GenerateID(16)
		if err != nil {
			return Config{}, fmt.Errorf("failed to generate IP salt: %w", err)
		}
		cfg.IPHashSalt = salt
	}

	if cfg.LoginRate == 0 {
		if s := os.Getenv("LOGIN_RATE"); s != "" {
			rate, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return Config{}, errors.New("invalid LOGIN_RATE env variable")
			}
			cfg.LoginRate = rate
		}
	}
	if cfg.LoginRate < 0 {
		return Config{}, errors.New("login rate must not be negative")
	}
	if cfg.LoginBurst == 0 {
		if s := os.Getenv("LOGIN_BURST"); s != "" {
			burst, err := strconv.Atoi(s)
			if err != nil {
				return Config{}, errors.New("invalid LOGIN_BURST env variable")
			}
			cfg.LoginBurst = burst
		} else {
			cfg.LoginBurst = 5
		}
	}
	if cfg.LoginBurst < 1 {
		return Config{}, errors.New("login burst must be at least 1")
	}

	if !passed["trust-proxy"] {
		v, err := envBool("TRUST_PROXY")
		if err != nil {
			return Config{}, err
		}
		cfg.TrustProxy = v
	}
	if !passed["secure-cookies"] {
		v, err := envBool("SECURE_COOKIES")
		if err != nil {
			return Config{}, err
		}
		cfg.SecureCookies = v
	}

	return cfg, nil
}

func envBool(key string) (bool, error) {
	s := os.Getenv(key)
	if s == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(s)
	if err != nil {
		return false, fmt.Errorf("invalid %s env variable", key)
	}
	return v, nil
}
