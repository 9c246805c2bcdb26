package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseTestConfig() *Config {
	return &Config{
		JWTSecret:       "secure-secret-at-least-32-chars-long",
		Port:            "8080",
		DBPassword:      "secure-password",
		DBSSLMode:       "require",
		RedisURL:        "redis://localhost:6379",
		UploadDir:       "./uploads",
		UploadMaxSizeMB: 10,
		Env:             "test",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		expectError bool
	}{
		{"Valid Test Config", func(c *Config) {}, false},
		{"Missing Port", func(c *Config) { c.Port = "" }, true},
		{"Missing JWT Secret", func(c *Config) { c.JWTSecret = "" }, true},
		{"Missing Upload Dir", func(c *Config) { c.UploadDir = "" }, true},
		{"Production With Default JWT Secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "your-secret-key-change-in-production"
		}, true},
		{"Production With Short JWT Secret", func(c *Config) {
			c.Env = "production"
			c.JWTSecret = "short"
		}, true},
		{"Production With Default DB Password", func(c *Config) {
			c.Env = "production"
			c.DBPassword = "password"
		}, true},
		{"Production With Empty DB Password", func(c *Config) {
			c.Env = "prod"
			c.DBPassword = ""
		}, true},
		{"Production Fully Configured", func(c *Config) { c.Env = "production" }, false},
		{"Development With Short JWT Secret", func(c *Config) {
			c.Env = "development"
			c.JWTSecret = "short"
		}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := baseTestConfig()
			tt.mutate(c)
			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("APP_ENV", "development")

	c, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", c.Port)
	assert.Equal(t, "recipehub", c.DBName)
	assert.Equal(t, "hybrid", c.DBSchemaMode)
	assert.Equal(t, "./uploads", c.UploadDir)
	assert.Equal(t, 10, c.UploadMaxSizeMB)
	assert.False(t, c.TracingEnabled)
	assert.Equal(t, "stdout", c.TracingExporter)
	assert.InDelta(t, 0.1, c.TracingSamplerRatio, 1e-9)
}

func TestLoadConfig_EnvironmentOverrides(t *testing.T) {
	t.Cleanup(viper.Reset)
	t.Setenv("APP_ENV", "development")
	t.Setenv("PORT", "9090")
	t.Setenv("UPLOAD_MAX_SIZE_MB", "25")
	t.Setenv("DB_SCHEMA_MODE", "sql")

	c, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9090", c.Port)
	assert.Equal(t, 25, c.UploadMaxSizeMB)
	assert.Equal(t, "sql", c.DBSchemaMode)
}
