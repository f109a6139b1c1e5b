package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "development")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "minio", cfg.Storage.Driver)
	assert.Equal(t, int64(2048*1024), cfg.Storage.MaxPhotoSize)
	assert.Equal(t, time.Hour, cfg.Cache.ListTTL)
	assert.True(t, cfg.Store.Open)
	assert.Equal(t, "smtp", cfg.Email.Provider)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("STORE_OPEN", "false")
	t.Setenv("CACHE_LIST_TTL", "90s")
	t.Setenv("STORAGE_DRIVER", "local")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.False(t, cfg.Store.Open)
	assert.Equal(t, 90*time.Second, cfg.Cache.ListTTL)
	assert.Equal(t, "local", cfg.Storage.Driver)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr string
	}{
		{
			name:    "unknown storage driver",
			env:     map[string]string{"STORAGE_DRIVER": "ftp"},
			wantErr: "STORAGE_DRIVER",
		},
		{
			name:    "unknown email provider",
			env:     map[string]string{"EMAIL_PROVIDER": "pigeon"},
			wantErr: "EMAIL_PROVIDER",
		},
		{
			name:    "production default secret",
			env:     map[string]string{"APP_ENV": "production", "DB_PASSWORD": "x"},
			wantErr: "JWT_SECRET",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoadDatabaseConfig(t *testing.T) {
	t.Setenv("DB_RETRY_DELAY", "250ms")

	dbCfg, err := LoadDatabaseConfig(DatabaseConfig{
		Host: "db", Port: 5433, User: "u", Password: "p", Database: "academy",
		SSLMode: "disable", MaxConns: 10, MinConns: 2,
	})
	require.NoError(t, err)
	assert.Equal(t, 250*time.Millisecond, dbCfg.RetryDelay)
	assert.Equal(t, 10*time.Second, dbCfg.ConnectTimeout)
	assert.Equal(t, int32(10), dbCfg.MaxConns)

	t.Setenv("DB_CONNECT_TIMEOUT", "soon")
	_, err = LoadDatabaseConfig(DatabaseConfig{MaxConns: 1})
	assert.ErrorContains(t, err, "DB_CONNECT_TIMEOUT")
}
