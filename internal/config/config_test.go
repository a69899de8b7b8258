package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/timmy/mememania/internal/domain"
)

// chdirTemp moves the test into an empty directory so no stray .env or
// config.yaml from the repository is picked up.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_FromEnvironment(t *testing.T) {
	chdirTemp(t)
	t.Setenv("AUTH_TOKEN", "secret")
	t.Setenv("MY_NUMBER", "919876543210")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "secret", cfg.Auth.Token)
	assert.Equal(t, "919876543210", cfg.Auth.CallerID)
	assert.Equal(t, "0.0.0.0:8086", cfg.Server.Addr())
	assert.Equal(t, "/mcp", cfg.Server.Path)
	assert.Equal(t, "https://meme-api.com", cfg.MemeAPI.BaseURL)
	assert.Equal(t, 10*time.Second, cfg.MemeAPI.Timeout)
}

func TestLoad_MissingRequiredValues(t *testing.T) {
	tests := []struct {
		name    string
		token   string
		number  string
		wantMsg string
	}{
		{name: "missing token", number: "123", wantMsg: "AUTH_TOKEN"},
		{name: "missing number", token: "secret", wantMsg: "MY_NUMBER"},
		{name: "missing both", wantMsg: "AUTH_TOKEN"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			chdirTemp(t)
			t.Setenv("AUTH_TOKEN", tc.token)
			t.Setenv("MY_NUMBER", tc.number)

			cfg, err := Load("")
			require.Error(t, err)
			assert.Nil(t, cfg)
			assert.ErrorIs(t, err, domain.ErrConfigurationMissing)
			assert.Contains(t, err.Error(), tc.wantMsg)
		})
	}
}

func TestLoad_ConfigFileAndDotEnv(t *testing.T) {
	dir := chdirTemp(t)
	t.Setenv("AUTH_TOKEN", "")
	t.Setenv("MY_NUMBER", "")
	os.Unsetenv("AUTH_TOKEN")
	os.Unsetenv("MY_NUMBER")

	yaml := []byte("server:\n  port: 9090\n  mode: debug\nmeme_api:\n  base_url: http://localhost:1234\n  timeout: 3s\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), yaml, 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("AUTH_TOKEN=from-dotenv\nMY_NUMBER=42\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "from-dotenv", cfg.Auth.Token)
	assert.Equal(t, "42", cfg.Auth.CallerID)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Server.Mode)
	assert.Equal(t, "http://localhost:1234", cfg.MemeAPI.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.MemeAPI.Timeout)
}

func TestValidate_Timeout(t *testing.T) {
	cfg := &Config{
		Auth:    AuthConfig{Token: "t", CallerID: "c"},
		MemeAPI: MemeAPIConfig{BaseURL: "http://x", Timeout: 0},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.NotErrorIs(t, err, domain.ErrConfigurationMissing)
}
