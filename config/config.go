// Package config loads journey's settings from, in increasing priority:
// built-in defaults, an optional YAML file, an optional .env file, and the
// environment.
//
// Environment variables are JOURNEY_ prefixed and map onto the config tree
// with double underscores, like JOURNEY_SPOTIFY__CLIENT_ID. The names the
// web app used (CLIENTID, CLIENTSECRET, REDIRECTURI, REFRESHTOKEN) are also
// understood.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// PathEnvVar overrides the config file location.
const PathEnvVar = "JOURNEY_CONFIG"

// DefaultPath is read if it exists and PathEnvVar is unset.
const DefaultPath = "journey.yaml"

type Config struct {
	Spotify  SpotifyConfig  `koanf:"spotify"`
	Curation CurationConfig `koanf:"curation"`
	Database DatabaseConfig `koanf:"database"`
	Logging  LoggingConfig  `koanf:"logging"`
}

type SpotifyConfig struct {
	ClientID     string `koanf:"client_id" validate:"required"`
	ClientSecret string `koanf:"client_secret" validate:"required"`
	RedirectURL  string `koanf:"redirect_url"`

	// Without a refresh token the client falls back to client credentials,
	// which can read the catalog but can't create playlists.
	RefreshToken string `koanf:"refresh_token"`

	Market       string        `koanf:"market" validate:"len=2"`
	RequestDelay time.Duration `koanf:"request_delay" validate:"gte=0"`
	Timeout      time.Duration `koanf:"timeout" validate:"gt=0"`

	// Empty disables the response cache.
	CacheDir      string `koanf:"cache_dir"`
	RateLimitFile string `koanf:"rate_limit_file" validate:"required"`
}

type CurationConfig struct {
	// "breadth" or "strictness"
	Policy string `koanf:"policy" validate:"oneof=breadth strictness"`

	Overshoot           time.Duration `koanf:"overshoot" validate:"gt=0"`
	MaxAttempts         int           `koanf:"max_attempts" validate:"gt=0"`
	TopUpIterations     int           `koanf:"top_up_iterations" validate:"gt=0"`
	Workers             int           `koanf:"workers" validate:"gt=0"`
	PlaylistName        string        `koanf:"playlist_name" validate:"required"`
	PlaylistDescription string        `koanf:"playlist_description"`
	PreviewEnrichment   bool          `koanf:"preview_enrichment"`

	// Zero means seed from the clock.
	Seed uint64 `koanf:"seed"`
}

type DatabaseConfig struct {
	Path string `koanf:"path" validate:"required"`
}

type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn error disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
}

// Default returns the configuration used when nothing overrides it.
func Default() *Config {
	return &Config{
		Spotify: SpotifyConfig{
			Market:        "US",
			RequestDelay:  time.Second / 10,
			Timeout:       30 * time.Second,
			RateLimitFile: "next-req",
		},
		Curation: CurationConfig{
			Policy:              "breadth",
			Overshoot:           120 * time.Second,
			MaxAttempts:         10_000,
			TopUpIterations:     100,
			Workers:             4,
			PlaylistName:        "Road Trip!",
			PlaylistDescription: "Made with love on Spotify Journey",
		},
		Database: DatabaseConfig{
			Path: "journey.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Load reads .env (if present) into the process environment, then layers
// defaults, the config file, and the environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env: %w", err)
	}

	path := os.Getenv(PathEnvVar)
	if path == "" {
		if _, err := os.Stat(DefaultPath); err == nil {
			path = DefaultPath
		}
	}

	return load(path)
}

func load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(Default(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("error loading defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("error loading config file '%s': %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("error loading environment: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("error decoding config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// legacyEnv maps the web app's variable names onto config paths.
var legacyEnv = map[string]string{
	"CLIENTID":     "spotify.client_id",
	"CLIENTSECRET": "spotify.client_secret",
	"REDIRECTURI":  "spotify.redirect_url",
	"REFRESHTOKEN": "spotify.refresh_token",
}

// envKey turns JOURNEY_SPOTIFY__CLIENT_ID into spotify.client_id. Returning
// "" makes koanf skip the variable.
func envKey(key string) string {
	if path, ok := legacyEnv[key]; ok {
		return path
	}
	if !strings.HasPrefix(key, "JOURNEY_") || key == PathEnvVar {
		return ""
	}
	key = strings.ToLower(strings.TrimPrefix(key, "JOURNEY_"))
	return strings.ReplaceAll(key, "__", ".")
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate checks every field's constraints, reporting all violations at once.
func (cfg *Config) Validate() error {
	err := validate.Struct(cfg)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("error validating config: %w", err)
	}
	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s failed '%s'", fe.Namespace(), fe.Tag())
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
