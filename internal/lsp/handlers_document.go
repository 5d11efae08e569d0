// Summary: Document open/change/close handlers split out of handlers.go.
package lsp

import (
	"encoding/json"

	"emmetls/internal/logging"
)

func (s *Server) handleDidOpen(req Request) {
	var p DidOpenTextDocumentParams
	if err := json.Unmarshal(req.Params, &p); err != nil {
		logging.Logf("lsp ", "didOpen: %v", err)
		return
	}
	s.setDocument(p.TextDocument)
}

func (s *Server) handleDidChange(req Request) {
	var p DidChangeTextDocumentParams
	if err := json.Unmarshal(req.Params, &p); err != nil {
		logging.Logf("lsp ", "didChange: %v", err)
		return
	}
	if err := s.applyChanges(p.TextDocument.URI, p.TextDocument.Version, p.ContentChanges); err != nil {
		logging.Logf("lsp ", "didChange: %v", err)
	}
}

func (s *Server) handleDidClose(req Request) {
	var p DidCloseTextDocumentParams
	if err := json.Unmarshal(req.Params, &p); err != nil {
		logging.Logf("lsp ", "didClose: %v", err)
		return
	}
	s.deleteDocument(p.TextDocument.URI)
	if sess := s.session(); sess != nil {
		sess.forget(p.TextDocument.URI)
	}
}
