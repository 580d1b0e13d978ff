package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaultsAndEnv(t *testing.T) {
	t.Setenv("CLIENTID", "legacy-id")
	t.Setenv("JOURNEY_SPOTIFY__CLIENT_SECRET", "secret")
	t.Setenv("JOURNEY_CURATION__OVERSHOOT", "90s")

	cfg, err := load("")
	require.NoError(t, err)

	assert.Equal(t, "legacy-id", cfg.Spotify.ClientID)
	assert.Equal(t, "secret", cfg.Spotify.ClientSecret)
	assert.Equal(t, 90*time.Second, cfg.Curation.Overshoot)
	assert.Equal(t, "US", cfg.Spotify.Market)
	assert.Equal(t, "breadth", cfg.Curation.Policy)
	assert.Equal(t, "Road Trip!", cfg.Curation.PlaylistName)
	assert.Equal(t, 10_000, cfg.Curation.MaxAttempts)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journey.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
spotify:
  client_id: file-id
  client_secret: file-secret
  market: GB
curation:
  policy: strictness
  workers: 8
`), 0666))

	cfg, err := load(path)
	require.NoError(t, err)

	assert.Equal(t, "file-id", cfg.Spotify.ClientID)
	assert.Equal(t, "GB", cfg.Spotify.Market)
	assert.Equal(t, "strictness", cfg.Curation.Policy)
	assert.Equal(t, 8, cfg.Curation.Workers)
	assert.Equal(t, 120*time.Second, cfg.Curation.Overshoot)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ClientID")

	cfg.Spotify.ClientID, cfg.Spotify.ClientSecret = "id", "secret"
	assert.NoError(t, cfg.Validate())

	cfg.Curation.Policy = "vibes"
	assert.ErrorContains(t, cfg.Validate(), "Policy")
}

func TestValidateOvershoot(t *testing.T) {
	cfg := Default()
	cfg.Spotify.ClientID, cfg.Spotify.ClientSecret = "id", "secret"

	cfg.Curation.Overshoot = 0
	assert.ErrorContains(t, cfg.Validate(), "Overshoot")

	cfg.Curation.Overshoot = -time.Second
	assert.ErrorContains(t, cfg.Validate(), "Overshoot")

	cfg.Curation.Overshoot = time.Second
	assert.NoError(t, cfg.Validate())
}

func TestLoadRejectsZeroOvershoot(t *testing.T) {
	t.Setenv("JOURNEY_SPOTIFY__CLIENT_ID", "id")
	t.Setenv("JOURNEY_SPOTIFY__CLIENT_SECRET", "secret")
	t.Setenv("JOURNEY_CURATION__OVERSHOOT", "0s")

	_, err := load("")
	assert.ErrorContains(t, err, "Overshoot")
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "spotify.client_id", envKey("JOURNEY_SPOTIFY__CLIENT_ID"))
	assert.Equal(t, "curation.max_attempts", envKey("JOURNEY_CURATION__MAX_ATTEMPTS"))
	assert.Equal(t, "spotify.refresh_token", envKey("REFRESHTOKEN"))
	assert.Equal(t, "", envKey("HOME"))
	assert.Equal(t, "", envKey(PathEnvVar))
}
