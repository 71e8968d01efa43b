package config

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSecrets map[string]string

func (f fakeSecrets) GetSecret(_ context.Context, name string) (string, error) {
	if v, ok := f[name]; ok {
		return v, nil
	}
	return "", errors.New("secret not found")
}

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"API_BASE_URL", "REQUEST_TIMEOUT", "POSTGRES_HOST", "ALLOWED_ORIGINS", "AWS_USE_SECRETS"} {
		t.Setenv(k, "")
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5000/api", cfg.APIBaseURL)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	assert.False(t, cfg.AuditEnabled())
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("AWS_USE_SECRETS", "")
	t.Setenv("API_BASE_URL", "https://deals.example.com/api/")
	t.Setenv("REQUEST_TIMEOUT", "5s")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("POSTGRES_HOST", "db")
	t.Setenv("POSTGRES_USER", "app")
	t.Setenv("POSTGRES_DB", "landdeals")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "https://deals.example.com/api", cfg.APIBaseURL)
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins)
	assert.True(t, cfg.AuditEnabled())
	assert.Contains(t, cfg.DSN(), "host=db user=app")
}

func TestLoadConfig_InvalidValues(t *testing.T) {
	t.Setenv("AWS_USE_SECRETS", "")
	t.Setenv("POSTGRES_HOST", "")

	t.Setenv("REQUEST_TIMEOUT", "soon")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("REQUEST_TIMEOUT", "")
	t.Setenv("API_BASE_URL", "not a url")
	_, err = LoadConfig()
	assert.Error(t, err)
}

func TestApplySecrets_Overrides(t *testing.T) {
	cfg := &Config{PostgresUser: "env-user", PostgresHost: "env-host", JWTSecret: "env"}
	applySecrets(context.Background(), cfg, fakeSecrets{
		SecretDBCredentials: `{"POSTGRES_USER":"sm-user","POSTGRES_PASSWORD":"pw"}`,
		SecretJWT:           "sm-jwt",
	})

	assert.Equal(t, "sm-user", cfg.PostgresUser)
	assert.Equal(t, "pw", cfg.PostgresPassword)
	assert.Equal(t, "env-host", cfg.PostgresHost)
	assert.Equal(t, "sm-jwt", cfg.JWTSecret)
}

func TestApplySecrets_MissingKeepsEnv(t *testing.T) {
	cfg := &Config{JWTSecret: "env"}
	applySecrets(context.Background(), cfg, fakeSecrets{SecretDBCredentials: "not-json"})
	assert.Equal(t, "env", cfg.JWTSecret)
}
