package providers

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sid/internal/structures"
)

const testConfigYaml = `
webServer:
  host: 127.0.0.1
  port: 8080
store:
  path: /tmp/sid-test.db
importer:
  interval: 5m
  fetchTimeout: 30s
logger:
  level: info
  mode: 0644
  dir: /tmp
cache:
  enabled: true
  size: 16
metrics:
  enabled: true
`

func TestNewConfigProvider(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sid-test-config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigYaml), 0644))

	conf, err := NewConfigProvider(&structures.CliFlags{ConfigPath: path, DebugMode: true})
	require.NoError(t, err)

	assert.Equal(t, "SimpleImportDaemon", conf.AppName)
	assert.True(t, conf.Debug)
	assert.Equal(t, path, conf.Path)
	assert.Equal(t, "127.0.0.1", conf.WebServer.Host)
	assert.Equal(t, 8080, conf.WebServer.Port)
	assert.Equal(t, "/tmp/sid-test.db", conf.Store.Path)
	assert.Equal(t, 5*time.Minute, conf.Importer.Interval)
	assert.Equal(t, 30*time.Second, conf.Importer.FetchTimeout)
	assert.True(t, conf.Cache.Enabled)
	assert.Equal(t, 16, conf.Cache.Size)
}

func TestNewConfigProvider_MissingFile(t *testing.T) {
	_, err := NewConfigProvider(&structures.CliFlags{ConfigPath: filepath.Join(t.TempDir(), "sid-test-nowhere.yaml")})
	assert.Error(t, err)
}
