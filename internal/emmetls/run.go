// Summary: emmet-ls runner; configures logging, loads config, builds the
// profile resolver and constructs/runs the LSP server (with injectable factory for tests).
package emmetls

import (
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"emmetls/internal/abbrev"
	"emmetls/internal/appconfig"
	"emmetls/internal/logging"
	"emmetls/internal/lsp"
)

// ServerRunner is the minimal interface satisfied by lsp.Server.
type ServerRunner interface{ Run() error }

// ServerFactory creates a ServerRunner. Default uses lsp.NewServer.
type ServerFactory func(r io.Reader, w io.Writer, logger *log.Logger, opts lsp.ServerOptions) ServerRunner

// Run configures logging, loads config and runs the LSP server until exit.
// It is thin and delegates to RunWithFactory for testability.
func Run(logPath string, configOpts appconfig.Options, stdin io.Reader, stdout io.Writer, stderr io.Writer) error {
	logger := log.New(stderr, "emmet-ls ", log.LstdFlags|log.Lmsgprefix)
	if strings.TrimSpace(logPath) != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		logger.SetOutput(f)
	}
	logging.Bind(logger)
	cfg := appconfig.Load(logger, configOpts)
	return RunWithFactory(stdin, stdout, logger, cfg, nil)
}

// RunWithFactory is the testable entrypoint. When factory is nil,
// lsp.NewServer is used.
func RunWithFactory(stdin io.Reader, stdout io.Writer, logger *log.Logger, cfg appconfig.App, factory ServerFactory) error {
	if cfg.LogPreviewLimit >= 0 {
		logging.SetLogPreviewLimit(cfg.LogPreviewLimit)
	}
	factory = ensureFactory(factory)
	opts, err := makeServerOptions(cfg)
	if err != nil {
		return err
	}
	server := factory(stdin, stdout, logger, opts)
	if err := server.Run(); err != nil {
		return fmt.Errorf("server: %w", err)
	}
	return nil
}

// --- helpers to keep RunWithFactory small ---

func ensureFactory(factory ServerFactory) ServerFactory {
	if factory != nil {
		return factory
	}
	return func(r io.Reader, w io.Writer, logger *log.Logger, opts lsp.ServerOptions) ServerRunner {
		return lsp.NewServer(r, w, logger, opts)
	}
}

func makeServerOptions(cfg appconfig.App) (lsp.ServerOptions, error) {
	resolver, err := abbrev.NewResolver(abbrev.Options{
		StylesheetLanguages: cfg.StylesheetLanguages,
		JSXLanguages:        cfg.JSXLanguages,
		Indent:              cfg.Indent,
		CacheSize:           cfg.ProfileCacheSize,
	})
	if err != nil {
		return lsp.ServerOptions{}, fmt.Errorf("profile resolver: %w", err)
	}
	logging.Logf("lsp ", "stylesheet=%v jsx=%v exclude=%v", cfg.StylesheetLanguages, cfg.JSXLanguages, cfg.ExcludeLanguages)
	return lsp.ServerOptions{
		Resolver:          resolver,
		TriggerCharacters: cfg.TriggerCharacters,
		ExcludeLanguages:  cfg.ExcludeLanguages,
	}, nil
}
