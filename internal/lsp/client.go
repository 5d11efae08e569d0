// Summary: Server-to-client messages; outgoing requests with response routing,
// configuration fetches, dynamic registration and log forwarding.
package lsp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"emmetls/internal/logging"
)

var errServerStopped = errors.New("server stopped")

// call sends a request to the client and waits for its response. It must not
// be called from the read loop, which is what delivers the response.
func (s *Server) call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	id := s.nextID.Add(1)
	key := strconv.FormatInt(id, 10)
	ch := make(chan clientResponse, 1)
	s.pendingMu.Lock()
	s.pending[key] = ch
	s.pendingMu.Unlock()
	defer func() {
		s.pendingMu.Lock()
		delete(s.pending, key)
		s.pendingMu.Unlock()
	}()

	s.writeMessage(outgoingRequest{JSONRPC: "2.0", ID: id, Method: method, Params: params})
	select {
	case resp := <-ch:
		if resp.Error != nil {
			return nil, fmt.Errorf("%s: %w", method, resp.Error)
		}
		return resp.Result, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", method, ctx.Err())
	case <-s.done:
		return nil, fmt.Errorf("%s: %w", method, errServerStopped)
	}
}

// deliverResponse hands a client response to the waiting call.
func (s *Server) deliverResponse(body []byte) {
	var resp clientResponse
	if err := json.Unmarshal(body, &resp); err != nil || len(resp.ID) == 0 {
		logging.Logf("lsp ", "dropping message without method")
		return
	}
	key := string(resp.ID)
	if unquoted, err := strconv.Unquote(key); err == nil {
		key = unquoted
	}
	s.pendingMu.Lock()
	ch, ok := s.pending[key]
	s.pendingMu.Unlock()
	if !ok {
		logging.Logf("lsp ", "response for unknown request %s", key)
		return
	}
	ch <- resp
}

func (s *Server) notify(method string, params any) {
	s.writeMessage(Notification{JSONRPC: "2.0", Method: method, Params: params})
}

// logToClient mirrors a log line into the client's output channel.
func (s *Server) logToClient(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	logging.Logf("lsp ", "%s", msg)
	s.notify("window/logMessage", LogMessageParams{Type: MessageLog, Message: msg})
}

func (s *Server) fetchSettings(uri string) (Settings, error) {
	ctx, cancel := context.WithTimeout(context.Background(), s.configTimeout)
	defer cancel()
	raw, err := s.call(ctx, "workspace/configuration", ConfigurationParams{
		Items: []ConfigurationItem{{ScopeURI: uri, Section: settingsSection}},
	})
	if err != nil {
		return Settings{}, err
	}
	var results []json.RawMessage
	if err := json.Unmarshal(raw, &results); err != nil {
		return Settings{}, fmt.Errorf("decode configuration: %w", err)
	}
	if len(results) == 0 {
		return defaultSettings(), nil
	}
	return parseSettings(results[0])
}

func (s *Server) registerDidChangeConfiguration() {
	ctx, cancel := context.WithTimeout(context.Background(), s.configTimeout)
	defer cancel()
	_, err := s.call(ctx, "client/registerCapability", RegistrationParams{
		Registrations: []Registration{{
			ID:     uuid.NewString(),
			Method: "workspace/didChangeConfiguration",
		}},
	})
	if err != nil {
		logging.Logf("lsp ", "register didChangeConfiguration: %v", err)
	}
}
