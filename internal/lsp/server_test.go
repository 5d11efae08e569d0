// Summary: End-to-end tests driving the server over in-memory pipes.
package lsp

import (
	"bufio"
	"encoding/json"
	"io"
	"log"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pipeClient struct {
	t        *testing.T
	w        io.WriteCloser
	r        *bufio.Reader
	settings any
	seen     []string
}

func startServer(t *testing.T, settings any) (*pipeClient, <-chan error) {
	t.Helper()
	serverIn, clientOut := io.Pipe()
	clientIn, serverOut := io.Pipe()
	s := NewServer(serverIn, serverOut, log.New(io.Discard, "", 0), ServerOptions{ConfigTimeout: 2 * time.Second})
	errc := make(chan error, 1)
	go func() {
		err := s.Run()
		serverOut.Close()
		errc <- err
	}()
	t.Cleanup(func() {
		clientOut.Close()
	})
	return &pipeClient{t: t, w: clientOut, r: bufio.NewReader(clientIn), settings: settings}, errc
}

func (c *pipeClient) send(v any) {
	c.t.Helper()
	_, err := c.w.Write(frame(c.t, v))
	require.NoError(c.t, err)
}

func (c *pipeClient) request(id int, method string, params any) {
	c.send(map[string]any{"jsonrpc": "2.0", "id": id, "method": method, "params": params})
}

func (c *pipeClient) notify(method string, params any) {
	c.send(map[string]any{"jsonrpc": "2.0", "method": method, "params": params})
}

// await reads until the response for id arrives, answering server requests
// on the way the way an editor would.
func (c *pipeClient) await(id int) wireMessage {
	c.t.Helper()
	for {
		m, err := readFrame(c.r)
		require.NoError(c.t, err)
		if m.Method != "" {
			c.seen = append(c.seen, m.Method)
		}
		switch m.Method {
		case "":
			if string(m.ID) == strconv.Itoa(id) {
				return m
			}
		case "workspace/configuration":
			c.send(map[string]any{"jsonrpc": "2.0", "id": json.RawMessage(m.ID), "result": []any{c.settings}})
		case "client/registerCapability":
			c.send(map[string]any{"jsonrpc": "2.0", "id": json.RawMessage(m.ID), "result": nil})
		}
	}
}

func TestServerEndToEnd(t *testing.T) {
	c, errc := startServer(t, map[string]any{"showSuggestions": true})

	c.request(1, "initialize", map[string]any{
		"processId": nil,
		"capabilities": map[string]any{
			"workspace": map[string]any{"configuration": true, "workspaceFolders": true},
		},
	})
	init := c.await(1)
	var res InitializeResult
	require.NoError(t, json.Unmarshal(init.Result, &res))
	assert.Equal(t, "emmet-ls", res.ServerInfo.Name)
	require.NotNil(t, res.Capabilities.CompletionProvider)
	assert.True(t, res.Capabilities.CompletionProvider.ResolveProvider)
	require.NotNil(t, res.Capabilities.Workspace)

	c.notify("initialized", map[string]any{})
	c.notify("textDocument/didOpen", map[string]any{
		"textDocument": map[string]any{"uri": "file:///a.html", "languageId": "html", "version": 1, "text": "div"},
	})
	c.notify("textDocument/didChange", map[string]any{
		"textDocument": map[string]any{"uri": "file:///a.html", "version": 2},
		"contentChanges": []any{map[string]any{
			"range": map[string]any{"start": map[string]any{"line": 0, "character": 3}, "end": map[string]any{"line": 0, "character": 3}},
			"text":  ".foo",
		}},
	})
	c.request(2, "textDocument/completion", map[string]any{
		"textDocument": map[string]any{"uri": "file:///a.html"},
		"position":     map[string]any{"line": 0, "character": 7},
	})
	resp := c.await(2)
	var list CompletionList
	require.NoError(t, json.Unmarshal(resp.Result, &list))
	require.Len(t, list.Items, 1)
	item := list.Items[0]
	assert.Equal(t, `<div class="foo">${1}</div>`, item.TextEdit.NewText)
	assert.Equal(t, Range{Start: Position{0, 0}, End: Position{0, 7}}, item.TextEdit.Range)
	assert.Contains(t, c.seen, "workspace/configuration")

	c.request(3, "completionItem/resolve", item)
	var resolved CompletionItem
	require.NoError(t, json.Unmarshal(c.await(3).Result, &resolved))
	assert.Equal(t, item, resolved)

	c.request(4, "shutdown", nil)
	shut := c.await(4)
	assert.Nil(t, shut.Error)
	c.notify("exit", nil)

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not exit")
	}
	assert.Contains(t, c.seen, "client/registerCapability")
}

func TestServerExcludedBySettings(t *testing.T) {
	c, errc := startServer(t, map[string]any{"excludeLanguages": []string{"html"}})
	c.request(1, "initialize", map[string]any{
		"capabilities": map[string]any{"workspace": map[string]any{"configuration": true}},
	})
	c.await(1)
	c.notify("textDocument/didOpen", map[string]any{
		"textDocument": map[string]any{"uri": "file:///a.html", "languageId": "html", "version": 1, "text": "div"},
	})
	c.request(2, "textDocument/completion", map[string]any{
		"textDocument": map[string]any{"uri": "file:///a.html"},
		"position":     map[string]any{"line": 0, "character": 3},
	})
	var list CompletionList
	require.NoError(t, json.Unmarshal(c.await(2).Result, &list))
	assert.Empty(t, list.Items)

	c.notify("exit", nil)
	select {
	case err := <-errc:
		assert.ErrorIs(t, err, ErrExitWithoutShutdown)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not exit")
	}
}

func TestServerStopsOnEOF(t *testing.T) {
	c, errc := startServer(t, nil)
	require.NoError(t, c.w.Close())
	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
