// Summary: Initialization and lifecycle handlers split from handlers.go.
package lsp

import (
	"encoding/json"

	"emmetls/internal"
	"emmetls/internal/logging"
)

// codeActionKindRewrite is the only code action kind the server offers.
const codeActionKindRewrite = "refactor.rewrite"

func (s *Server) handleInitialize(req Request) {
	var p InitializeParams
	if len(req.Params) > 0 {
		if err := json.Unmarshal(req.Params, &p); err != nil {
			s.reply(req.ID, nil, &RespError{Code: codeInvalidParams, Message: "invalid initialize params: " + err.Error()})
			return
		}
	}
	sess := newSession(p.Capabilities, s.cacheSize)
	s.mu.Lock()
	s.sess = sess
	s.mu.Unlock()

	res := InitializeResult{
		Capabilities: ServerCapabilities{
			TextDocumentSync: TextDocumentSyncOptions{OpenClose: true, Change: SyncIncremental},
			CompletionProvider: &CompletionOptions{
				ResolveProvider:   true,
				TriggerCharacters: s.triggerChars,
			},
			CodeActionProvider: CodeActionOptions{
				ResolveProvider: true,
				CodeActionKinds: []string{codeActionKindRewrite},
			},
		},
		ServerInfo: &ServerInfo{Name: "emmet-ls", Version: internal.Version},
	}
	if sess.hasWorkspaceFolders {
		res.Capabilities.Workspace = &WorkspaceServerCapabilities{
			WorkspaceFolders: &WorkspaceFoldersServerCapabilities{Supported: true, ChangeNotifications: true},
		}
	}
	logging.Logf("lsp ", "initialize: configuration=%t workspaceFolders=%t relatedInformation=%t",
		sess.hasConfiguration, sess.hasWorkspaceFolders, sess.hasDiagnosticRelatedInfo)
	s.reply(req.ID, res, nil)
}

func (s *Server) handleInitialized(Request) {
	sess := s.session()
	if sess == nil {
		logging.Logf("lsp ", "initialized before initialize")
		return
	}
	if sess.hasConfiguration {
		// The response arrives on the read loop, so the call cannot block it.
		s.inflight.Add(1)
		go func() {
			defer s.inflight.Done()
			s.registerDidChangeConfiguration()
		}()
	}
	if sess.hasWorkspaceFolders {
		logging.Logf("lsp ", "workspace folder change notifications enabled")
	}
	logging.Logf("lsp ", "client initialized")
}

func (s *Server) handleShutdown(req Request) {
	s.mu.Lock()
	s.sess = nil
	s.docs = make(map[string]*document)
	s.shutdown = true
	s.mu.Unlock()
	logging.Logf("lsp ", "shutdown")
	s.reply(req.ID, nil, nil)
}

func (s *Server) handleExit(Request) {
	s.mu.RLock()
	clean := s.shutdown
	s.mu.RUnlock()
	s.exited = true
	if !clean {
		s.exitErr = ErrExitWithoutShutdown
	}
}
