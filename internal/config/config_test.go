package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func chdirTemp(t *testing.T) {
	t.Helper()
	dir := t.TempDir()
	origDir, _ := os.Getwd()
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { os.Chdir(origDir) })
}

func TestLoadDefaults(t *testing.T) {
	// Change to temp dir so no config.yaml is found
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, []string{"*"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.Model)
	assert.Equal(t, int64(1024), cfg.Anthropic.MaxTokens)
	assert.InDelta(t, 2.0, cfg.Anthropic.RequestsPerSecond, 0.001)
	assert.Equal(t, "local", cfg.Extract.Engine)
	assert.Equal(t, "pdftotext", cfg.Extract.PdfToTextPath)
	assert.Equal(t, 4, cfg.Batch.MaxConcurrentDocs)
}

func TestLoadFromYAML(t *testing.T) {
	chdirTemp(t)

	yaml := `
log:
  level: debug
  format: console
server:
  port: 9090
extract:
  engine: claude
batch:
  max_concurrent_docs: 8
`
	wd, _ := os.Getwd()
	require.NoError(t, os.WriteFile(filepath.Join(wd, "config.yaml"), []byte(yaml), 0644))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "claude", cfg.Extract.Engine)
	assert.Equal(t, 8, cfg.Batch.MaxConcurrentDocs)
	// Defaults still apply for unset values
	assert.Equal(t, "claude-sonnet-4-5-20250929", cfg.Anthropic.Model)
}

func TestLoadEnvOverridesFile(t *testing.T) {
	chdirTemp(t)

	yaml := `
log:
  level: debug
extract:
  engine: claude
`
	wd, _ := os.Getwd()
	require.NoError(t, os.WriteFile(filepath.Join(wd, "config.yaml"), []byte(yaml), 0644))

	t.Setenv("LOANDESK_LOG_LEVEL", "warn")
	t.Setenv("LOANDESK_EXTRACT_ENGINE", "local")

	cfg, err := Load()
	require.NoError(t, err)

	// Env overrides file
	assert.Equal(t, "warn", cfg.Log.Level)
	assert.Equal(t, "local", cfg.Extract.Engine)
}

func TestLoadEnvOverridesDefaults(t *testing.T) {
	chdirTemp(t)

	t.Setenv("LOANDESK_SERVER_PORT", "3000")
	t.Setenv("LOANDESK_ANTHROPIC_KEY", "sk-ant-test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "sk-ant-test", cfg.Anthropic.Key)
}

func validDefaults() *Config {
	cfg := &Config{}
	cfg.Extract.Engine = "local"
	cfg.Server.Port = 8080
	cfg.Batch.MaxConcurrentDocs = 4
	return cfg
}

func TestValidateServe_ValidPort(t *testing.T) {
	assert.NoError(t, validDefaults().Validate("serve"))
}

func TestValidateServe_InvalidPort(t *testing.T) {
	cfg := validDefaults()
	cfg.Server.Port = 0

	err := cfg.Validate("serve")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "server.port")
}

func TestValidateBatch_ConcurrencyBounds(t *testing.T) {
	cfg := validDefaults()

	cfg.Batch.MaxConcurrentDocs = 0
	err := cfg.Validate("batch")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "max_concurrent_docs must be between 1 and 64")

	cfg.Batch.MaxConcurrentDocs = 65
	assert.Error(t, cfg.Validate("batch"))

	cfg.Batch.MaxConcurrentDocs = 64
	assert.NoError(t, cfg.Validate("batch"))
}

func TestValidate_BadEngine(t *testing.T) {
	cfg := validDefaults()
	cfg.Extract.Engine = "oracle"

	err := cfg.Validate("extract")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "extract.engine must be local or claude")
}

func TestValidateUnknownMode(t *testing.T) {
	err := validDefaults().Validate("unknown")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unknown mode")
}

func TestInitLoggerConsole(t *testing.T) {
	err := InitLogger(LogConfig{Level: "debug", Format: "console"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerJSON(t *testing.T) {
	err := InitLogger(LogConfig{Level: "info", Format: "json"})
	require.NoError(t, err)
	assert.NotNil(t, zap.L())
}

func TestInitLoggerInvalidLevel(t *testing.T) {
	err := InitLogger(LogConfig{Level: "invalid", Format: "json"})
	assert.Error(t, err)
}
