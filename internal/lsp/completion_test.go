package lsp

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"emmetls/internal/abbrev"
	"emmetls/internal/emmet"
)

func completionParams(uri string, line, char int) CompletionParams {
	return CompletionParams{TextDocument: TextDocumentIdentifier{URI: uri}, Position: Position{Line: line, Character: char}}
}

func TestCompleteMarkup(t *testing.T) {
	s, _ := newTestServer()
	openDoc(s, "file:///a.html", "html", "div.foo")
	item, err := s.complete(completionParams("file:///a.html", 0, 7))
	require.NoError(t, err)
	assert.Equal(t, "div.foo", item.Label)
	assert.Equal(t, `<div class="foo">${1}</div>`, item.Detail)
	assert.Equal(t, `<div class="foo">${1}</div>`, item.Documentation)
	assert.Equal(t, InsertTextFormatSnippet, item.InsertTextFormat)
	assert.Equal(t, CompletionItemKindSnippet, item.Kind)
	require.NotNil(t, item.TextEdit)
	want := Range{Start: Position{0, 0}, End: Position{0, 7}}
	assert.Equal(t, want, item.TextEdit.Range)
	assert.Equal(t, item.Documentation, item.TextEdit.NewText)
	require.NotNil(t, item.Data)
	assert.Equal(t, want, item.Data.Range)
	assert.Equal(t, item.Documentation, item.Data.TextResult)
}

func TestCompleteStylesheet(t *testing.T) {
	s, _ := newTestServer()
	openDoc(s, "file:///a.css", "css", "a {\n  m10\n}")
	item, err := s.complete(completionParams("file:///a.css", 1, 5))
	require.NoError(t, err)
	assert.Equal(t, "margin: ${1:10px};", item.TextEdit.NewText)
	assert.Equal(t, Range{Start: Position{1, 2}, End: Position{1, 5}}, item.TextEdit.Range)
}

func TestCompleteJSX(t *testing.T) {
	s, _ := newTestServer()
	openDoc(s, "file:///a.tsx", "typescriptreact", "return div.foo")
	item, err := s.complete(completionParams("file:///a.tsx", 0, 14))
	require.NoError(t, err)
	assert.Equal(t, `<div className="foo">${1}</div>`, item.TextEdit.NewText)
	assert.Equal(t, 7, item.TextEdit.Range.Start.Character)
}

func TestCompleteFailures(t *testing.T) {
	s, _ := newTestServer()
	openDoc(s, "file:///a.css", "css", "color: red")
	openDoc(s, "file:///a.html", "html", "div(\nul>")

	_, err := s.complete(completionParams("file:///missing", 0, 1))
	assert.ErrorIs(t, err, ErrDocumentNotFound)

	_, err = s.complete(completionParams("file:///a.css", 0, 10))
	assert.ErrorIs(t, err, abbrev.ErrNoAbbreviation)

	_, err = s.complete(completionParams("file:///a.html", 0, 4))
	assert.ErrorIs(t, err, abbrev.ErrNoAbbreviation)

	_, err = s.complete(completionParams("file:///a.html", 5, 0))
	assert.ErrorIs(t, err, abbrev.ErrNoAbbreviation)
}

func TestCompleteParseFailure(t *testing.T) {
	s, _ := newTestServer()
	openDoc(s, "file:///a.css", "css", "qqq")
	_, err := s.complete(completionParams("file:///a.css", 0, 3))
	assert.ErrorIs(t, err, emmet.ErrSyntax)
}

type panickingEngine struct{}

func (panickingEngine) Parse(string, emmet.Config) (*emmet.Abbreviation, error) {
	panic("engine exploded")
}

func (panickingEngine) Stringify(*emmet.Abbreviation, emmet.Config) (string, error) {
	return "", errors.New("unreachable")
}

func TestHandleCompletionAbsorbsFailures(t *testing.T) {
	cases := []struct {
		name string
		uri  string
		text string
		lang string
		char int
	}{
		{"color value", "file:///a.css", "color: red", "css", 10},
		{"open paren", "file:///a.html", "div(", "html", 4},
		{"unknown property", "file:///b.css", "qqq", "css", 3},
		{"missing document", "file:///nope", "", "", 0},
	}
	for i, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s, out := newTestServer()
			if tc.lang != "" {
				openDoc(s, tc.uri, tc.lang, tc.text)
			}
			s.handle(request(t, i+1, "textDocument/completion", completionParams(tc.uri, 0, tc.char)))
			msgs := decodeOutput(t, out)
			resp := msgs[len(msgs)-1]
			require.Nil(t, resp.Error)
			var list CompletionList
			require.NoError(t, json.Unmarshal(resp.Result, &list))
			assert.Empty(t, list.Items)
		})
	}
}

func TestHandleCompletionRecoversPanics(t *testing.T) {
	s, out := newTestServer()
	s.engine = panickingEngine{}
	openDoc(s, "file:///a.html", "html", "div")
	s.handle(request(t, 1, "textDocument/completion", completionParams("file:///a.html", 0, 3)))
	msgs := decodeOutput(t, out)
	require.Len(t, msgs, 2)
	assert.Equal(t, "window/logMessage", msgs[0].Method)
	var list CompletionList
	require.NoError(t, json.Unmarshal(msgs[1].Result, &list))
	assert.Empty(t, list.Items)
}

func TestHandleCompletionParseFailureIsLoggedToClient(t *testing.T) {
	s, out := newTestServer()
	openDoc(s, "file:///a.css", "css", "qqq")
	s.handle(request(t, 1, "textDocument/completion", completionParams("file:///a.css", 0, 3)))
	msgs := decodeOutput(t, out)
	require.Len(t, msgs, 2)
	var lm LogMessageParams
	require.NoError(t, json.Unmarshal(msgs[0].Params, &lm))
	assert.Equal(t, MessageLog, lm.Type)
	assert.Contains(t, lm.Message, "qqq")
}

func TestHandleCompletionInvalidParams(t *testing.T) {
	s, out := newTestServer()
	s.handle(Request{JSONRPC: "2.0", ID: json.RawMessage("1"), Method: "textDocument/completion", Params: json.RawMessage(`"bad"`)})
	msgs := decodeOutput(t, out)
	require.Len(t, msgs, 1)
	assert.Nil(t, msgs[0].Error)
	assert.JSONEq(t, `{"isIncomplete":false,"items":[]}`, string(msgs[0].Result))
}

func TestCompletionExcludedLanguages(t *testing.T) {
	s, _ := newTestServer()
	s.excludeLanguages["markdown"] = true
	openDoc(s, "file:///a.md", "markdown", "div")
	_, err := s.complete(completionParams("file:///a.md", 0, 3))
	assert.ErrorIs(t, err, abbrev.ErrNoAbbreviation)

	// client settings without workspace/configuration support
	s.handle(request(t, 1, "initialize", InitializeParams{}))
	s.handle(notification(t, "workspace/didChangeConfiguration", map[string]any{
		"settings": map[string]any{"emmet": map[string]any{"excludeLanguages": []string{"html"}}},
	}))
	openDoc(s, "file:///a.html", "html", "div")
	_, err = s.complete(completionParams("file:///a.html", 0, 3))
	assert.ErrorIs(t, err, abbrev.ErrNoAbbreviation)

	s.handle(notification(t, "workspace/didChangeConfiguration", map[string]any{
		"settings": map[string]any{"emmet": map[string]any{"showSuggestions": false}},
	}))
	openDoc(s, "file:///b.html", "xml", "div")
	_, err = s.complete(completionParams("file:///b.html", 0, 3))
	assert.ErrorIs(t, err, abbrev.ErrNoAbbreviation)

	s.handle(notification(t, "workspace/didChangeConfiguration", map[string]any{"settings": map[string]any{}}))
	_, err = s.complete(completionParams("file:///a.html", 0, 3))
	assert.NoError(t, err)
}

func TestCompletionResolveIsIdempotent(t *testing.T) {
	s, _ := newTestServer()
	openDoc(s, "file:///a.html", "html", "ul>li")
	item, err := s.complete(completionParams("file:///a.html", 0, 5))
	require.NoError(t, err)
	item.InsertTextFormat = 0
	once := resolveCompletion(item)
	twice := resolveCompletion(once)
	assert.Equal(t, once, twice)
	assert.Equal(t, InsertTextFormatSnippet, once.InsertTextFormat)
	assert.Equal(t, item.TextEdit, once.TextEdit)
	assert.Equal(t, item.Data, once.Data)
}

func TestHandleCompletionResolve(t *testing.T) {
	s, out := newTestServer()
	s.handle(request(t, 7, "completionItem/resolve", CompletionItem{Label: "a", Data: &CompletionData{TextResult: "<a></a>"}}))
	msgs := decodeOutput(t, out)
	require.Len(t, msgs, 1)
	var item CompletionItem
	require.NoError(t, json.Unmarshal(msgs[0].Result, &item))
	assert.Equal(t, InsertTextFormatSnippet, item.InsertTextFormat)
	assert.Equal(t, "<a></a>", item.Data.TextResult)

	s.handle(Request{JSONRPC: "2.0", ID: json.RawMessage("8"), Method: "completionItem/resolve", Params: json.RawMessage(`[]`)})
	msgs = decodeOutput(t, out)
	require.NotNil(t, msgs[len(msgs)-1].Error)
	assert.Equal(t, codeInvalidParams, msgs[len(msgs)-1].Error.Code)
}

func TestUnknownMethod(t *testing.T) {
	s, out := newTestServer()
	s.handle(request(t, 3, "textDocument/hover", map[string]any{}))
	s.handle(notification(t, "$/cancelRequest", map[string]any{"id": 1}))
	msgs := decodeOutput(t, out)
	require.Len(t, msgs, 1)
	require.NotNil(t, msgs[0].Error)
	assert.Equal(t, codeMethodNotFound, msgs[0].Error.Code)
}
