package lsp

import (
	"encoding/json"

	"github.com/tidwall/gjson"

	"emmetls/internal/logging"
)

func (s *Server) handleDidChangeConfiguration(req Request) {
	sess := s.session()
	if sess == nil {
		return
	}
	if sess.hasConfiguration {
		// settings are pulled again per document on the next request
		sess.forgetAll()
		return
	}
	var p DidChangeConfigurationParams
	if err := json.Unmarshal(req.Params, &p); err != nil {
		logging.Logf("lsp ", "didChangeConfiguration: %v", err)
		return
	}
	var section json.RawMessage
	if res := gjson.GetBytes(p.Settings, settingsSection); res.Exists() {
		section = json.RawMessage(res.Raw)
	}
	st, err := parseSettings(section)
	if err != nil {
		logging.Logf("lsp ", "didChangeConfiguration %s: %v", settingsSection, err)
	}
	s.mu.Lock()
	sess.global = st
	s.mu.Unlock()
}

func (s *Server) handleDidChangeWorkspaceFolders(req Request) {
	var p DidChangeWorkspaceFoldersParams
	if err := json.Unmarshal(req.Params, &p); err != nil {
		logging.Logf("lsp ", "didChangeWorkspaceFolders: %v", err)
		return
	}
	logging.Logf("lsp ", "workspace folders changed: +%d -%d", len(p.Event.Added), len(p.Event.Removed))
}
