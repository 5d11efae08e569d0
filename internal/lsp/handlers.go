// Summary: LSP JSON-RPC method table and reply helpers.
package lsp

import (
	"encoding/json"
	"fmt"
	"runtime/debug"

	"emmetls/internal/logging"
)

func (s *Server) registerHandlers() {
	s.handlers = map[string]func(Request){
		"initialize":                          s.handleInitialize,
		"initialized":                         s.handleInitialized,
		"shutdown":                            s.handleShutdown,
		"exit":                                s.handleExit,
		"textDocument/didOpen":                s.handleDidOpen,
		"textDocument/didChange":              s.handleDidChange,
		"textDocument/didClose":               s.handleDidClose,
		"textDocument/completion":             s.handleCompletion,
		"completionItem/resolve":              s.handleCompletionResolve,
		"textDocument/codeAction":             s.handleCodeAction,
		"codeAction/resolve":                  s.handleCodeActionResolve,
		"workspace/didChangeConfiguration":    s.handleDidChangeConfiguration,
		"workspace/didChangeWorkspaceFolders": s.handleDidChangeWorkspaceFolders,
	}
}

func (s *Server) handle(req Request) {
	defer func() {
		if r := recover(); r != nil {
			logging.Logf("lsp ", "panic in %s: %v", req.Method, r)
			if s.logger != nil {
				s.logger.Printf("%s", debug.Stack())
			}
			if len(req.ID) != 0 {
				s.reply(req.ID, nil, &RespError{Code: codeInvalidRequest, Message: fmt.Sprintf("internal error in %s", req.Method)})
			}
		}
	}()
	if h, ok := s.handlers[req.Method]; ok {
		h(req)
		return
	}
	if len(req.ID) != 0 {
		s.reply(req.ID, nil, &RespError{Code: codeMethodNotFound, Message: fmt.Sprintf("method not found: %s", req.Method)})
	}
}

type errorResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id"`
	Error   *RespError      `json:"error"`
}

func (s *Server) reply(id json.RawMessage, result any, err *RespError) {
	if err != nil {
		s.writeMessage(errorResponse{JSONRPC: "2.0", ID: id, Error: err})
		return
	}
	s.writeMessage(Response{JSONRPC: "2.0", ID: id, Result: result})
}
