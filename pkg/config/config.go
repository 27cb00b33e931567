package config

import (
	"fmt"
	"slices"
	"time"
)

// Storage backends.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// Password hashers.
const (
	HasherSHA256 = "sha256"
	HasherBcrypt = "bcrypt"
)

type Storage struct {
	Backend string `envconfig:"BACKEND" default:"file"`
	Dir     string `envconfig:"DIR" default:"data"`
	DSN     string `envconfig:"DSN" default:"data/wallet.db"`
}

type Auth struct {
	Hasher     string        `envconfig:"HASHER" default:"sha256"`
	BcryptCost int           `envconfig:"BCRYPT_COST" default:"10"`
	OTPTTL     time.Duration `envconfig:"OTP_TTL" default:"5m"`
	SessionTTL time.Duration `envconfig:"SESSION_TTL" default:"24h"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[wallet]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
	// ProxyHeader names the header carrying the client IP, e.g.
	// X-Forwarded-For. It is honoured only for TrustedProxies.
	ProxyHeader    string   `envconfig:"PROXY_HEADER"`
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`
}

// Addr returns host:port for net.Listen.
func (s *Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type App struct {
	Env       string     `envconfig:"APP_ENV" default:"development"`
	Server    *Server    `envconfig:"SERVER"`
	Log       *Log       `envconfig:"LOG"`
	Storage   *Storage   `envconfig:"STORAGE"`
	Auth      *Auth      `envconfig:"AUTH"`
	RateLimit *RateLimit `envconfig:"RATE_LIMIT"`
}

// Validate rejects unknown backend and hasher names.
func (a *App) Validate() error {
	if !slices.Contains([]string{BackendFile, BackendSQLite, BackendMemory}, a.Storage.Backend) {
		return fmt.Errorf("config: unknown storage backend %q", a.Storage.Backend)
	}
	if !slices.Contains([]string{HasherSHA256, HasherBcrypt}, a.Auth.Hasher) {
		return fmt.Errorf("config: unknown password hasher %q", a.Auth.Hasher)
	}
	if a.Auth.OTPTTL <= 0 || a.Auth.SessionTTL <= 0 {
		return fmt.Errorf("config: auth TTLs must be positive")
	}
	return nil
}
