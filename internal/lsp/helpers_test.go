package lsp

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/textproto"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestServer() (*Server, *bytes.Buffer) {
	out := &bytes.Buffer{}
	s := NewServer(strings.NewReader(""), out, log.New(io.Discard, "", 0), ServerOptions{})
	return s, out
}

// wireMessage is any JSON-RPC message as seen by a client.
type wireMessage struct {
	ID     json.RawMessage `json:"id,omitempty"`
	Method string          `json:"method,omitempty"`
	Params json.RawMessage `json:"params,omitempty"`
	Result json.RawMessage `json:"result,omitempty"`
	Error  *RespError      `json:"error,omitempty"`
}

func frame(t *testing.T, v any) []byte {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return []byte(fmt.Sprintf("Content-Length: %d\r\n\r\n%s", len(data), data))
}

func readFrame(r *bufio.Reader) (wireMessage, error) {
	tp := textproto.NewReader(r)
	n := 0
	for {
		line, err := tp.ReadLine()
		if err != nil {
			return wireMessage{}, err
		}
		if line == "" {
			break
		}
		if v, ok := strings.CutPrefix(line, "Content-Length: "); ok {
			n, _ = strconv.Atoi(v)
		}
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return wireMessage{}, err
	}
	var m wireMessage
	err := json.Unmarshal(buf, &m)
	return m, err
}

// decodeOutput parses every framed message the server wrote to out.
func decodeOutput(t *testing.T, out *bytes.Buffer) []wireMessage {
	t.Helper()
	r := bufio.NewReader(bytes.NewReader(out.Bytes()))
	var msgs []wireMessage
	for {
		m, err := readFrame(r)
		if err == io.EOF {
			return msgs
		}
		require.NoError(t, err)
		msgs = append(msgs, m)
	}
}

func request(t *testing.T, id int, method string, params any) Request {
	t.Helper()
	raw, err := json.Marshal(params)
	require.NoError(t, err)
	return Request{JSONRPC: "2.0", ID: json.RawMessage(strconv.Itoa(id)), Method: method, Params: raw}
}

func notification(t *testing.T, method string, params any) Request {
	t.Helper()
	raw, err := json.Marshal(params)
	require.NoError(t, err)
	return Request{JSONRPC: "2.0", Method: method, Params: raw}
}

func openDoc(s *Server, uri, languageID, text string) {
	s.setDocument(TextDocumentItem{URI: uri, LanguageID: languageID, Version: 1, Text: text})
}
