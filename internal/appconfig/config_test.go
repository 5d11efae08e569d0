package appconfig

import (
	"bytes"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)
	for _, k := range []string{"INDENT", "EXCLUDE_LANGUAGES", "PROFILE_CACHE_SIZE", "LOG_PREVIEW_LIMIT", "STYLESHEET_LANGUAGES", "JSX_LANGUAGES", "TRIGGER_CHARACTERS"} {
		t.Setenv(EnvPrefix+"_"+k, "")
		os.Unsetenv(EnvPrefix + "_" + k)
	}
	return dir
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func TestReadDefaults(t *testing.T) {
	isolate(t)
	cfg, err := Read(Options{})
	require.NoError(t, err)
	assert.Equal(t, newDefaultConfig(), cfg)
}

func TestReadXDGFile(t *testing.T) {
	dir := isolate(t)
	writeFile(t, filepath.Join(dir, "emmet-ls", "config.json"), `{
		"indent": "  ",
		"stylesheet_languages": ["css", "scss", "less"],
		"exclude_languages": [" markdown "],
		"profile_cache_size": 8
	}`)
	cfg, err := Read(Options{})
	require.NoError(t, err)
	assert.Equal(t, "  ", cfg.Indent)
	assert.Equal(t, []string{"css", "scss", "less"}, cfg.StylesheetLanguages)
	assert.Equal(t, []string{"markdown"}, cfg.ExcludeLanguages)
	assert.Equal(t, 8, cfg.ProfileCacheSize)
	assert.Equal(t, 100, cfg.LogPreviewLimit)
}

func TestReadExplicitYAMLAndEnvOverride(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "custom.yaml")
	writeFile(t, path, "indent: \"    \"\nlog_preview_limit: 10\n")
	t.Setenv("EMMET_LS_LOG_PREVIEW_LIMIT", "25")
	t.Setenv("EMMET_LS_EXCLUDE_LANGUAGES", "markdown,plaintext")
	cfg, err := Read(Options{ConfigFile: path})
	require.NoError(t, err)
	assert.Equal(t, "    ", cfg.Indent)
	assert.Equal(t, 25, cfg.LogPreviewLimit)
	assert.Equal(t, []string{"markdown", "plaintext"}, cfg.ExcludeLanguages)
}

func TestReadEnvFile(t *testing.T) {
	dir := isolate(t)
	envFile := filepath.Join(dir, "emmet.env")
	writeFile(t, envFile, "EMMET_LS_PROFILE_CACHE_SIZE=3\n")
	t.Cleanup(func() { os.Unsetenv("EMMET_LS_PROFILE_CACHE_SIZE") })
	cfg, err := Read(Options{EnvFile: envFile})
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.ProfileCacheSize)
}

func TestReadErrors(t *testing.T) {
	dir := isolate(t)
	_, err := Read(Options{ConfigFile: filepath.Join(dir, "missing.json")})
	assert.Error(t, err)

	bad := filepath.Join(dir, "bad.json")
	writeFile(t, bad, "{not json")
	_, err = Read(Options{ConfigFile: bad})
	assert.Error(t, err)

	_, err = Read(Options{EnvFile: filepath.Join(dir, "missing.env")})
	assert.Error(t, err)
}

func TestLoadFallsBackToDefaults(t *testing.T) {
	dir := isolate(t)
	var buf bytes.Buffer
	cfg := Load(log.New(&buf, "", 0), Options{ConfigFile: filepath.Join(dir, "missing.json")})
	assert.Equal(t, newDefaultConfig(), cfg)
	assert.Contains(t, buf.String(), "config:")
}

func TestNormalize(t *testing.T) {
	a := App{LogPreviewLimit: -4, StylesheetLanguages: []string{" ", ""}}
	a.normalize()
	d := newDefaultConfig()
	assert.Equal(t, 0, a.LogPreviewLimit)
	assert.Equal(t, d.StylesheetLanguages, a.StylesheetLanguages)
	assert.Equal(t, d.JSXLanguages, a.JSXLanguages)
	assert.Equal(t, "\t", a.Indent)
	assert.Equal(t, 64, a.ProfileCacheSize)
}

func TestBindEnvCoversEveryDefault(t *testing.T) {
	v := viper.New()
	setDefaults(v)
	require.NoError(t, bindEnv(v))
	assert.ElementsMatch(t, v.AllKeys(), configKeys)
}
