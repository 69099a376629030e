package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *AppConfig {
	cfg := new(AppConfig)
	cfg.AppID = "course-platform"
	cfg.Env = EnvDevelopment
	cfg.Database.Driver = "sqlite3"
	cfg.Database.Schema = "course.db"
	cfg.Database.MaxConn = 1
	cfg.Logging.Level = "info"
	cfg.Security.IDLength = 24
	cfg.Security.JWTMethod = "HS256"
	cfg.Security.JWTSecret = "secret"
	cfg.Security.TokenName = "access_token"
	cfg.Payment.BaseURL = "https://api.tosspayments.com"
	cfg.Payment.SecretKey = "test_sk"
	cfg.Progress.Fanout = 8
	return cfg
}

func TestValidateConfig(t *testing.T) {
	assert.NoError(t, ValidateConfig(validConfig()))
}

func TestValidateConfig_Violations(t *testing.T) {
	cfg := validConfig()
	cfg.AppID = ""
	cfg.Database.Driver = "oracle"
	cfg.Progress.Fanout = 0

	err := ValidateConfig(cfg)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "app_id is required")
	assert.Contains(t, err.Error(), "database.driver must be one of (postgres mysql sqlite3)")
	assert.Contains(t, err.Error(), "progress.fanout must be at least 1")
}
