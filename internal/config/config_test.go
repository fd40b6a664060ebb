package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"
)

type ConfigSuite struct {
	suite.Suite
}

func TestConfigSuite(t *testing.T) {
	suite.Run(t, new(ConfigSuite))
}

func (s *ConfigSuite) TestDefaults() {
	cfg, err := Load("")
	s.Require().NoError(err)

	s.Equal("http://localhost:5000", cfg.Server.Endpoint)
	s.Equal(StorageMemory, cfg.Storage.Backend)
	s.Equal("redis://localhost:6379", cfg.Redis.URL)
	s.Equal("steeldart", cfg.Redis.KeyPrefix)
	s.Equal(10, cfg.Redis.PoolSize)
}

func (s *ConfigSuite) TestEnvironmentOverrides() {
	s.T().Setenv("STEELDART_SERVER_ENDPOINT", "http://darts.example:8080")
	s.T().Setenv("STEELDART_STORAGE_BACKEND", StorageRedis)

	cfg, err := Load("")
	s.Require().NoError(err)

	s.Equal("http://darts.example:8080", cfg.Server.Endpoint)
	s.Equal(StorageRedis, cfg.Storage.Backend)
}

func (s *ConfigSuite) TestConfigFile() {
	path := filepath.Join(s.T().TempDir(), "config.yaml")
	content := `server:
  endpoint: http://darts.example:9000
storage:
  backend: redis
redis:
  url: redis://darts.example:6379
  key_prefix: scores
`
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	s.Require().NoError(err)

	s.Equal("http://darts.example:9000", cfg.Server.Endpoint)
	s.Equal(StorageRedis, cfg.Storage.Backend)
	s.Equal("redis://darts.example:6379", cfg.Redis.URL)
	s.Equal("scores", cfg.Redis.KeyPrefix)
}

func (s *ConfigSuite) TestMissingConfigFile() {
	_, err := Load(filepath.Join(s.T().TempDir(), "nope.yaml"))
	s.Error(err)
}

func (s *ConfigSuite) TestInvalidBackendRejected() {
	s.T().Setenv("STEELDART_STORAGE_BACKEND", "carrier-pigeon")

	_, err := Load("")
	s.Require().Error(err)
	s.Contains(err.Error(), "carrier-pigeon")
}
