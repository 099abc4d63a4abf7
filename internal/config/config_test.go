package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Env:             "development",
		Port:            "8080",
		JWTSecret:       "secure-secret-at-least-32-chars-long",
		TokenTTLMinutes: 60,
		DBDriver:        "postgres",
		DBPassword:      "secure-password",
		DBSSLMode:       "require",
		TracingExporter: "stdout",
	}
}

func TestConfig_ValidateSSLMode(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		sslMode     string
		expectError bool
	}{
		{"Production with empty SSL mode", "production", "", true},
		{"Production with disable SSL mode", "production", "disable", true},
		{"Production with require SSL mode", "production", "require", false},
		{"Prod with verify-full SSL mode", "prod", "verify-full", false},
		{"Development with disable SSL mode", "development", "disable", false},
		{"Test with empty SSL mode", "test", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			c.Env = tt.env
			c.DBSSLMode = tt.sslMode

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		errMsg string
	}{
		{"missing port", func(c *Config) { c.Port = "" }, "PORT is required"},
		{"missing secret", func(c *Config) { c.JWTSecret = "" }, "JWT_SECRET is required"},
		{"zero ttl", func(c *Config) { c.TokenTTLMinutes = 0 }, "TOKEN_TTL_MINUTES"},
		{"unknown driver", func(c *Config) { c.DBDriver = "mongo" }, "unsupported DB_DRIVER"},
		{"sqlite without path", func(c *Config) { c.DBDriver = "sqlite"; c.DBPath = "" }, "DB_PATH"},
		{"bad exporter", func(c *Config) { c.TracingEnabled = true; c.TracingExporter = "zipkin" }, "TRACING_EXPORTER"},
		{"default secret in production", func(c *Config) { c.Env = "production"; c.JWTSecret = defaultJWTSecret }, "default value"},
		{"short secret in production", func(c *Config) { c.Env = "production"; c.JWTSecret = "short" }, "at least 32"},
		{"sqlite in production", func(c *Config) { c.Env = "production"; c.DBDriver = "sqlite"; c.DBPath = "x.db" }, "sqlite"},
		{"wildcard origin", func(c *Config) { c.AllowedOrigins = "*" }, "ALLOWED_ORIGINS"},
		{"wildcard among origins", func(c *Config) { c.AllowedOrigins = "http://a.test, *" }, "ALLOWED_ORIGINS"},
		{"weak db password in production", func(c *Config) { c.Env = "production"; c.DBPassword = "password" }, "DB_PASSWORD"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			err := c.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	assert.NoError(t, validConfig().Validate())
}

func TestConfig_Origins(t *testing.T) {
	c := &Config{AllowedOrigins: " http://a.test ,, http://b.test"}
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, c.Origins())
}

func TestLoadConfig_EnvOverridesAndNormalization(t *testing.T) {
	t.Cleanup(viper.Reset)

	t.Setenv("APP_ENV", "development")
	t.Setenv("DB_DRIVER", "  SQLITE ")
	t.Setenv("DB_PATH", "test.db")
	t.Setenv("TOKEN_TTL_MINUTES", "15")
	t.Setenv("CSRF_ENABLED", "false")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", c.DBDriver)
	assert.Equal(t, "test.db", c.DBPath)
	assert.Equal(t, 15, c.TokenTTLMinutes)
	assert.False(t, c.CSRFEnabled)
	assert.True(t, c.RevokeOnLogout)
	assert.Equal(t, "8080", c.Port)
}
