package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCSV(t *testing.T) {
	assert.Nil(t, CSV(""))
	assert.Equal(t, []string{"a:9092", "b:9092"}, CSV(" a:9092, ,b:9092 "))
}

func TestEnvDurationDefault(t *testing.T) {
	t.Setenv("TOKEN_EXPIRE", "")
	assert.Equal(t, time.Hour, EnvDurationDefault("TOKEN_EXPIRE", time.Hour))

	t.Setenv("TOKEN_EXPIRE", "30m")
	assert.Equal(t, 30*time.Minute, EnvDurationDefault("TOKEN_EXPIRE", time.Hour))

	t.Setenv("TOKEN_EXPIRE", "120")
	assert.Equal(t, 2*time.Minute, EnvDurationDefault("TOKEN_EXPIRE", time.Hour))

	t.Setenv("TOKEN_EXPIRE", "soon")
	assert.Equal(t, time.Hour, EnvDurationDefault("TOKEN_EXPIRE", time.Hour))
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SERVER_PORT", "")
	t.Setenv("DB_DRIVER", "")
	t.Setenv("ES_INDEX", "")
	t.Setenv("UPLOAD_DIR", "")
	t.Setenv("JWT_SECRET", "s3cret")

	cfg := Load()

	assert.Equal(t, 3001, cfg.ServerPort)
	assert.Equal(t, "pgx", cfg.DBDriver)
	assert.Equal(t, "products", cfg.ESIndex)
	assert.Equal(t, "uploads", cfg.UploadDir)
	assert.Equal(t, []byte("s3cret"), cfg.JWTSecret)
}

func TestMustNonEmpty_AcceptsSetValues(t *testing.T) {
	MustNonEmpty("postgres://db", "DATABASE_URL")
	MustNonEmpty([]byte("s3cret"), "JWT_SECRET")
}
