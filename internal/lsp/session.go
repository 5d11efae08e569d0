// Summary: Per-connection session state; client capability flags and the
// per-document settings cache, created on initialize and dropped on shutdown.
package lsp

import (
	"encoding/json"

	lru "github.com/hashicorp/golang-lru/v2"

	"emmetls/internal/logging"
)

// settingsSection is the client configuration section the server reads.
const settingsSection = "emmet"

// Settings are the client-side options for the server.
type Settings struct {
	ExcludeLanguages []string `json:"excludeLanguages"`
	ShowSuggestions  bool     `json:"showSuggestions"`
}

func defaultSettings() Settings {
	return Settings{ShowSuggestions: true}
}

// parseSettings decodes raw over the defaults. Missing keys keep their
// default value.
func parseSettings(raw json.RawMessage) (Settings, error) {
	st := defaultSettings()
	if len(raw) == 0 || string(raw) == "null" {
		return st, nil
	}
	if err := json.Unmarshal(raw, &st); err != nil {
		return defaultSettings(), err
	}
	return st, nil
}

func (st Settings) excludes(languageID string) bool {
	for _, id := range st.ExcludeLanguages {
		if id == languageID {
			return true
		}
	}
	return false
}

type session struct {
	hasConfiguration         bool
	hasWorkspaceFolders      bool
	hasDiagnosticRelatedInfo bool
	global                   Settings
	documentSettings         *lru.Cache[string, Settings]
}

func newSession(caps ClientCapabilities, cacheSize int) *session {
	sess := &session{global: defaultSettings()}
	if caps.Workspace != nil {
		sess.hasConfiguration = caps.Workspace.Configuration
		sess.hasWorkspaceFolders = caps.Workspace.WorkspaceFolders
	}
	if caps.TextDocument != nil && caps.TextDocument.PublishDiagnostics != nil {
		sess.hasDiagnosticRelatedInfo = caps.TextDocument.PublishDiagnostics.RelatedInformation
	}
	cache, err := lru.New[string, Settings](cacheSize)
	if err != nil {
		logging.Logf("lsp ", "settings cache disabled: %v", err)
	}
	sess.documentSettings = cache
	return sess
}

func (s *Server) session() *session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sess
}

func (sess *session) cached(uri string) (Settings, bool) {
	if sess.documentSettings == nil {
		return Settings{}, false
	}
	return sess.documentSettings.Get(uri)
}

func (sess *session) remember(uri string, st Settings) {
	if sess.documentSettings != nil {
		sess.documentSettings.Add(uri, st)
	}
}

func (sess *session) forget(uri string) {
	if sess.documentSettings != nil {
		sess.documentSettings.Remove(uri)
	}
}

func (sess *session) forgetAll() {
	if sess.documentSettings != nil {
		sess.documentSettings.Purge()
	}
}

// documentSettings returns the settings that apply to uri. With client
// configuration support they are fetched once per document and cached;
// otherwise the global settings from didChangeConfiguration apply.
func (s *Server) documentSettings(uri string) Settings {
	sess := s.session()
	if sess == nil {
		return defaultSettings()
	}
	if !sess.hasConfiguration {
		s.mu.RLock()
		defer s.mu.RUnlock()
		return sess.global
	}
	if st, ok := sess.cached(uri); ok {
		return st
	}
	st, err := s.fetchSettings(uri)
	if err != nil {
		logging.Logf("lsp ", "workspace/configuration for %s: %v", uri, err)
		return defaultSettings()
	}
	sess.remember(uri, st)
	return st
}
