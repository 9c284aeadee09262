package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

const testYAML = `app:
  name: test-app
  env: development
  port: 9090
mongo:
  uri: mongodb://localhost:27017
  database: testdb
redis:
  addr: localhost:6379
kafka:
  brokers:
    - localhost:9092
  notifications_topic: notifications
  group_id: test
jwt:
  secret: test-secret
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Run("reads yaml and applies defaults", func(t *testing.T) {
		req := require.New(t)
		cfg, err := Load(writeConfig(t, testYAML))
		req.NoError(err)
		req.Equal("test-app", cfg.App.Name)
		req.Equal(9090, cfg.App.Port)
		req.Equal("9090", cfg.App.PortString())
		req.True(cfg.App.Development())
		req.Equal("users", cfg.Mongo.UserCollection)
		req.Equal("messages", cfg.Mongo.MessageCollection)
		req.Equal(60, cfg.JWT.AccessTTLMin)
		req.Equal(10*time.Second, cfg.App.ShutdownTimeout())
		req.Equal(30*time.Second, cfg.WS.PingInterval())
	})

	t.Run("environment overrides the file", func(t *testing.T) {
		req := require.New(t)
		t.Setenv("MONGO_URI", "mongodb://db:27017")
		t.Setenv("JWT_SECRET", "env-secret")
		t.Setenv("KAFKA_BROKERS", "k1:9092,k2:9092")

		cfg, err := Load(writeConfig(t, testYAML))
		req.NoError(err)
		req.Equal("mongodb://db:27017", cfg.Mongo.URI)
		req.Equal("env-secret", cfg.JWT.Secret)
		req.Equal([]string{"k1:9092", "k2:9092"}, cfg.Kafka.Brokers)
	})

	t.Run("rejects a config without a jwt secret", func(t *testing.T) {
		req := require.New(t)
		yaml := `app:
  port: 9090
mongo:
  uri: mongodb://localhost:27017
  database: testdb
redis:
  addr: localhost:6379
kafka:
  brokers:
    - localhost:9092
  notifications_topic: notifications
`
		_, err := Load(writeConfig(t, yaml))
		req.Error(err)
		req.Contains(err.Error(), "jwt.secret")
	})

	t.Run("rejects a missing port", func(t *testing.T) {
		req := require.New(t)
		_, err := Load(writeConfig(t, "mongo:\n  uri: mongodb://localhost\n"))
		req.Error(err)
	})
}
