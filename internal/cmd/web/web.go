// Package web parses dashboard flags and launches the web service.
package web

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	entrypoint "github.com/sufni/dashboard/internal/platform/cmd"
	"github.com/sufni/dashboard/internal/services/sessions/model"
	"github.com/sufni/dashboard/internal/services/sessions/storage"
	"github.com/sufni/dashboard/internal/services/sessions/storage/sqlite"
	"github.com/sufni/dashboard/internal/services/web"
	"github.com/sufni/dashboard/internal/services/web/modules"
	"github.com/sufni/dashboard/internal/services/web/platform/accesstoken"
)

// Config holds the web command configuration.
type Config struct {
	HTTPAddr string `env:"SUFNI_WEB_HTTP_ADDR" envDefault:"localhost:8080"`
	DBPath   string `env:"SUFNI_WEB_DB_PATH" envDefault:"data/sessions.db"`
	// Timezone derives session day keys and renders timestamps.
	Timezone       string        `env:"SUFNI_WEB_TIMEZONE" envDefault:"UTC"`
	JWTSecret      string        `env:"SUFNI_WEB_JWT_SECRET"`
	AccessTokenTTL time.Duration `env:"SUFNI_WEB_ACCESS_TOKEN_TTL" envDefault:"24h"`
	// Username and PasswordHash seed the operator account on first start.
	Username string `env:"SUFNI_WEB_USERNAME"`
	// PasswordHash is a bcrypt hash of the operator password.
	PasswordHash string   `env:"SUFNI_WEB_PASSWORD_HASH"`
	APITokens    []string `env:"SUFNI_WEB_API_TOKENS" envSeparator:","`
}

// ParseConfig parses environment and flags into Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP listen address")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite session database path")
	fs.StringVar(&cfg.Timezone, "timezone", cfg.Timezone, "IANA time zone for session days")
	fs.DurationVar(&cfg.AccessTokenTTL, "access-token-ttl", cfg.AccessTokenTTL, "Lifetime of sign-in cookies")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the dashboard web service.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceWeb, func(ctx context.Context) error {
		return serve(ctx, cfg)
	})
}

func serve(ctx context.Context, cfg Config) error {
	location, err := time.LoadLocation(strings.TrimSpace(cfg.Timezone))
	if err != nil {
		return fmt.Errorf("load timezone: %w", err)
	}
	if strings.TrimSpace(cfg.JWTSecret) == "" {
		return errors.New("SUFNI_WEB_JWT_SECRET is required")
	}
	tokens, err := accesstoken.NewManager(cfg.JWTSecret, cfg.AccessTokenTTL)
	if err != nil {
		return fmt.Errorf("init access tokens: %w", err)
	}

	if dir := filepath.Dir(cfg.DBPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data dir: %w", err)
		}
	}
	store, err := sqlite.Open(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	defer func() {
		_ = store.Close()
	}()
	if err := seedOperator(ctx, store, cfg.Username, cfg.PasswordHash); err != nil {
		return err
	}

	server, err := web.NewServer(ctx, web.Config{
		HTTPAddr: cfg.HTTPAddr,
		Modules: modules.Dependencies{
			Sessions:  model.New(store, model.WithLocation(location)),
			Location:  location,
			Users:     store,
			Boards:    store,
			APITokens: cfg.APITokens,
		},
		AccessTokens: tokens,
	})
	if err != nil {
		return fmt.Errorf("init web server: %w", err)
	}
	defer server.Close()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("serve web: %w", err)
	}
	return nil
}

// seedOperator creates the configured operator account when it does not
// exist yet. An existing account keeps its stored hash, so a password
// changed through /auth/pwchange survives restarts.
func seedOperator(ctx context.Context, users storage.UserStore, username string, passwordHash string) error {
	username = strings.TrimSpace(username)
	passwordHash = strings.TrimSpace(passwordHash)
	if username == "" && passwordHash == "" {
		return nil
	}
	if username == "" || passwordHash == "" {
		return errors.New("SUFNI_WEB_USERNAME and SUFNI_WEB_PASSWORD_HASH must be set together")
	}
	if _, err := bcrypt.Cost([]byte(passwordHash)); err != nil {
		return fmt.Errorf("SUFNI_WEB_PASSWORD_HASH is not a bcrypt hash: %w", err)
	}
	if _, err := users.EnsureUser(ctx, username, passwordHash); err != nil {
		return fmt.Errorf("seed operator account: %w", err)
	}
	return nil
}
