// Summary: Tests for the emmet-ls runner using a fake server factory.
package emmetls

import (
	"bytes"
	"errors"
	"io"
	"log"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emmetls/internal/appconfig"
	"emmetls/internal/emmet"
	"emmetls/internal/logging"
	"emmetls/internal/lsp"
)

// fake server capturing options and recording run calls
type fakeServer struct {
	ran bool
	err error
}

func (f *fakeServer) Run() error { f.ran = true; return f.err }

func TestRunWithFactory_PassesOptions(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cfg, err := appconfig.Read(appconfig.Options{})
	require.NoError(t, err)
	cfg.TriggerCharacters = []string{">"}
	cfg.ExcludeLanguages = []string{"markdown"}
	cfg.StylesheetLanguages = []string{"less"}

	var got lsp.ServerOptions
	fake := &fakeServer{}
	factory := func(r io.Reader, w io.Writer, logger *log.Logger, opts lsp.ServerOptions) ServerRunner {
		got = opts
		return fake
	}
	logger := log.New(io.Discard, "", 0)
	require.NoError(t, RunWithFactory(bytes.NewBuffer(nil), io.Discard, logger, cfg, factory))
	assert.True(t, fake.ran)
	assert.Equal(t, []string{">"}, got.TriggerCharacters)
	assert.Equal(t, []string{"markdown"}, got.ExcludeLanguages)
	require.NotNil(t, got.Resolver)
	assert.Equal(t, emmet.Stylesheet, got.Resolver.Resolve("less").Family)
	assert.Equal(t, emmet.Markup, got.Resolver.Resolve("css").Family)
}

func TestRunWithFactory_SetsPreviewLimit(t *testing.T) {
	t.Cleanup(func() { logging.SetLogPreviewLimit(0) })
	cfg := appconfig.App{LogPreviewLimit: 3}
	factory := func(io.Reader, io.Writer, *log.Logger, lsp.ServerOptions) ServerRunner { return &fakeServer{} }
	require.NoError(t, RunWithFactory(bytes.NewBuffer(nil), io.Discard, log.New(io.Discard, "", 0), cfg, factory))
	assert.Equal(t, "abc…", logging.PreviewForLog("abcdef"))
}

func TestRunWithFactory_ServerError(t *testing.T) {
	boom := errors.New("boom")
	factory := func(io.Reader, io.Writer, *log.Logger, lsp.ServerOptions) ServerRunner { return &fakeServer{err: boom} }
	err := RunWithFactory(bytes.NewBuffer(nil), io.Discard, log.New(io.Discard, "", 0), appconfig.App{}, factory)
	assert.ErrorIs(t, err, boom)
}

func TestRun_RespectsLogPath(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Cleanup(func() { logging.Bind(nil) })
	logFile := filepath.Join(t.TempDir(), "emmet-ls.log")
	// empty stdin: the real server sees EOF and stops cleanly
	require.NoError(t, Run(logFile, appconfig.Options{}, bytes.NewBuffer(nil), io.Discard, io.Discard))
	_, err := os.Stat(logFile)
	assert.NoError(t, err)
}

func TestRun_BadLogPath(t *testing.T) {
	err := Run(filepath.Join(t.TempDir(), "missing", "x.log"), appconfig.Options{}, bytes.NewBuffer(nil), io.Discard, io.Discard)
	assert.Error(t, err)
}
