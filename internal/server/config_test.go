package server

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	for _, k := range []string{"LABELEVAL_PORT", "LABELEVAL_CORS_ORIGINS", "LABELEVAL_USE_HTTP2", "LABELEVAL_SPEC", "LABELEVAL_DATA_DIR"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, []string{"*"}, cfg.CorsOrigins)
	assert.Empty(t, cfg.DataDir)
}

func TestLoadConfig_FromEnv(t *testing.T) {
	t.Setenv("LABELEVAL_PORT", "9090")
	t.Setenv("LABELEVAL_CORS_ORIGINS", "http://a.test, ,http://b.test")
	t.Setenv("LABELEVAL_SPEC", "configs/eval.yaml")
	t.Setenv("LABELEVAL_DATA_DIR", "/srv/labels")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Port)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CorsOrigins)
	assert.Equal(t, "configs/eval.yaml", cfg.SpecPath)
	assert.Equal(t, "/srv/labels", cfg.DataDir)
}

func TestLoadConfig_InvalidPort(t *testing.T) {
	t.Setenv("LABELEVAL_PORT", "70000")
	_, err := LoadConfig()
	assert.ErrorContains(t, err, "invalid port")

	t.Setenv("LABELEVAL_PORT", "abc")
	_, err = LoadConfig()
	assert.Error(t, err)
}
