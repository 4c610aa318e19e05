package gateway

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestGetEnvHelpers verifies the env lookup helpers and their defaults.
func TestGetEnvHelpers(t *testing.T) {
	t.Setenv("PROBE_STR", "value")
	t.Setenv("PROBE_BOOL", "true")
	t.Setenv("PROBE_INT", "42")

	assert.Equal(t, "value", GetEnv("PROBE_STR", "default"))
	assert.Equal(t, "default", GetEnv("PROBE_UNSET", "default"))
	assert.Equal(t, true, GetEnvBool("PROBE_BOOL", false))
	assert.Equal(t, true, GetEnvBool("PROBE_UNSET", true))
	assert.Equal(t, int64(42), GetEnvInt64("PROBE_INT", 7))
	assert.Equal(t, int64(7), GetEnvInt64("PROBE_UNSET", 7))

	t.Setenv("PROBE_INT", "not-a-number")
	assert.Equal(t, int64(7), GetEnvInt64("PROBE_INT", 7))
}

// TestLoadConfig verifies defaults and the dotenv extra-environment file.
func TestLoadConfig(t *testing.T) {
	envFile := filepath.Join(t.TempDir(), "probe.env")
	assert.NoError(t, os.WriteFile(envFile, []byte("PROBE_EXTRA=hello\n"), 0o644))
	t.Setenv("CGI_ENV_FILE", envFile)
	t.Setenv("SCRIPT_DIR", "/srv/cgi-bin")

	config, err := LoadConfig()
	assert.NoError(t, err)
	assert.Equal(t, ":8080", config.ListenAddress)
	assert.Equal(t, "/srv/cgi-bin", config.ScriptDir)
	assert.Equal(t, 30*time.Second, config.Timeout)
	assert.Equal(t, int64(1<<20), config.MaxOutput)
	assert.Contains(t, config.ExtraEnv, "PROBE_EXTRA=hello")
}

// TestLoadConfig_Errors verifies the invalid timeout and missing env file
// error paths.
func TestLoadConfig_Errors(t *testing.T) {
	t.Setenv("CGI_TIMEOUT", "soon")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("CGI_TIMEOUT", "30s")
	t.Setenv("CGI_ENV_FILE", "/does/not/exist.env")
	_, err = LoadConfig()
	assert.Error(t, err)
}
