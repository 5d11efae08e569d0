package lsp

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildExpandCodeAction_LazyAndResolves(t *testing.T) {
	s, _ := newTestServer()
	openDoc(s, "file:///a.html", "html", "<body>\n\tul>li*2\n</body>")
	p := CodeActionParams{
		TextDocument: TextDocumentIdentifier{URI: "file:///a.html"},
		Range:        Range{Start: Position{1, 8}, End: Position{1, 8}},
	}
	ca := s.buildExpandCodeAction(p)
	require.NotNil(t, ca)
	assert.Equal(t, expandActionTitle, ca.Title)
	assert.Equal(t, codeActionKindRewrite, ca.Kind)
	assert.Nil(t, ca.Edit, "edit is computed on resolve")
	require.NotEmpty(t, ca.Data)
	var data expandActionData
	require.NoError(t, json.Unmarshal(ca.Data, &data))
	assert.Equal(t, expandActionData{
		Type:         "expand",
		URI:          "file:///a.html",
		LanguageID:   "html",
		Range:        Range{Start: Position{1, 1}, End: Position{1, 8}},
		Abbreviation: "ul>li*2",
		Indent:       "\t",
	}, data)

	resolved, err := s.resolveCodeAction(*ca)
	require.NoError(t, err)
	require.NotNil(t, resolved.Edit)
	edits := resolved.Edit.Changes["file:///a.html"]
	require.Len(t, edits, 1)
	assert.Equal(t, Range{Start: Position{1, 1}, End: Position{1, 8}}, edits[0].Range)
	assert.Equal(t, "<ul>\n\t\t<li></li>\n\t\t<li></li>\n\t</ul>", edits[0].NewText)
}

func TestBuildExpandCodeAction_NoAbbreviation(t *testing.T) {
	s, _ := newTestServer()
	openDoc(s, "file:///a.css", "css", "color: red")
	p := CodeActionParams{
		TextDocument: TextDocumentIdentifier{URI: "file:///a.css"},
		Range:        Range{Start: Position{0, 10}, End: Position{0, 10}},
	}
	assert.Nil(t, s.buildExpandCodeAction(p))
	p.TextDocument.URI = "file:///missing"
	assert.Nil(t, s.buildExpandCodeAction(p))
}

func TestResolveCodeAction_BadData(t *testing.T) {
	s, _ := newTestServer()
	_, err := s.resolveCodeAction(CodeAction{Title: "x", Data: json.RawMessage(`{"type":"other"}`)})
	assert.Error(t, err)
	_, err = s.resolveCodeAction(CodeAction{Title: "x", Data: json.RawMessage(`{"type":"expand","abbreviation":"div("}`)})
	assert.Error(t, err)
}

func TestHandleCodeActionRoundTrip(t *testing.T) {
	s, out := newTestServer()
	openDoc(s, "file:///a.css", "css", "m10")
	s.handle(request(t, 1, "textDocument/codeAction", CodeActionParams{
		TextDocument: TextDocumentIdentifier{URI: "file:///a.css"},
		Range:        Range{Start: Position{0, 3}, End: Position{0, 3}},
	}))
	msgs := decodeOutput(t, out)
	require.Len(t, msgs, 1)
	var actions []CodeAction
	require.NoError(t, json.Unmarshal(msgs[0].Result, &actions))
	require.Len(t, actions, 1)

	out.Reset()
	s.handle(request(t, 2, "codeAction/resolve", actions[0]))
	msgs = decodeOutput(t, out)
	require.Len(t, msgs, 1)
	var resolved CodeAction
	require.NoError(t, json.Unmarshal(msgs[0].Result, &resolved))
	require.NotNil(t, resolved.Edit)
	assert.Equal(t, "margin: 10px;", resolved.Edit.Changes["file:///a.css"][0].NewText)
}

func TestApplyIndent(t *testing.T) {
	assert.Equal(t, "a\n  b\n\n  c", applyIndent("  ", "a\nb\n\nc"))
	assert.Equal(t, "a\nb", applyIndent("", "a\nb"))
	assert.Equal(t, "\t", leadingIndent("\tx"))
	assert.Equal(t, "", leadingIndent("x"))
}
