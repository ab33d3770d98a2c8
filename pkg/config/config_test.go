package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadConfig(t *testing.T) {
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("DB_HOST", "db.local")
	os.Setenv("DB_PORT", "5433")
	os.Setenv("DB_USER", "testuser")
	os.Setenv("DB_PASSWORD", "testpass")
	os.Setenv("DB_NAME", "testdb")
	os.Setenv("RABBITMQ_HOST", "mq.local")
	os.Setenv("JWT_SECRET", "test-secret")
	os.Setenv("S3_BUCKET_NAME", "test-bucket")
	os.Setenv("FFMPEG_BINARY", "/usr/bin/ffmpeg")
	os.Setenv("USER_RPC_TIMEOUT", "2s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.NotNil(t, cfg)
	assert.Equal(t, "9090", cfg.ServerPort)
	assert.Equal(t, "db.local", cfg.DBHost)
	assert.Equal(t, "5433", cfg.DBPort)
	assert.Equal(t, "testuser", cfg.DBUser)
	assert.Equal(t, "testpass", cfg.DBPassword)
	assert.Equal(t, "testdb", cfg.DBName)
	assert.Equal(t, "mq.local", cfg.RabbitMQHost)
	assert.Equal(t, "test-secret", cfg.JWTSecret)
	assert.Equal(t, "test-bucket", cfg.S3BucketName)
	assert.Equal(t, "/usr/bin/ffmpeg", cfg.FFmpegBinary)
	assert.Equal(t, 2*time.Second, cfg.UserRPCTimeout)

	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("DB_HOST")
	os.Unsetenv("DB_PORT")
	os.Unsetenv("DB_USER")
	os.Unsetenv("DB_PASSWORD")
	os.Unsetenv("DB_NAME")
	os.Unsetenv("RABBITMQ_HOST")
	os.Unsetenv("JWT_SECRET")
	os.Unsetenv("S3_BUCKET_NAME")
	os.Unsetenv("FFMPEG_BINARY")
	os.Unsetenv("USER_RPC_TIMEOUT")
}

func TestLoadConfig_Defaults(t *testing.T) {
	os.Unsetenv("SERVER_PORT")
	os.Unsetenv("DB_HOST")
	os.Unsetenv("RABBITMQ_PORT")
	os.Unsetenv("FFMPEG_BINARY")
	os.Unsetenv("USER_RPC_QUEUE")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.Equal(t, "8080", cfg.ServerPort)
	assert.Equal(t, "localhost", cfg.DBHost)
	assert.Equal(t, "5672", cfg.RabbitMQPort)
	assert.Equal(t, "ffmpeg", cfg.FFmpegBinary)
	assert.Equal(t, "users.get", cfg.UserRPCQueue)
	assert.Equal(t, 5*time.Second, cfg.UserRPCTimeout)
	assert.Equal(t, 10*time.Minute, cfg.UserCacheTTL)
}

func TestLoadConfig_InvalidDuration(t *testing.T) {
	os.Setenv("USER_RPC_TIMEOUT", "not-a-duration")
	defer os.Unsetenv("USER_RPC_TIMEOUT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	assert.Equal(t, 5*time.Second, cfg.UserRPCTimeout)
}
