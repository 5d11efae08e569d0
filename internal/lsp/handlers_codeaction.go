// Summary: Code Action handlers; offers a lazily resolved "expand abbreviation"
// rewrite that inserts plain text instead of a snippet.
package lsp

import (
	"encoding/json"
	"fmt"

	"emmetls/internal/abbrev"
	"emmetls/internal/logging"
)

const expandActionTitle = "Emmet: expand abbreviation"

type expandActionData struct {
	Type         string `json:"type"`
	URI          string `json:"uri"`
	LanguageID   string `json:"languageId"`
	Range        Range  `json:"range"`
	Abbreviation string `json:"abbreviation"`
	Indent       string `json:"indent,omitempty"`
}

func (s *Server) handleCodeAction(req Request) {
	var p CodeActionParams
	if err := json.Unmarshal(req.Params, &p); err != nil {
		s.reply(req.ID, []CodeAction{}, nil)
		return
	}
	actions := []CodeAction{}
	if a := s.buildExpandCodeAction(p); a != nil {
		actions = append(actions, *a)
	}
	s.reply(req.ID, actions, nil)
}

// buildExpandCodeAction looks for an abbreviation ending at the end of the
// requested range. The edit itself is computed on resolve.
func (s *Server) buildExpandCodeAction(p CodeActionParams) *CodeAction {
	d := s.getDocument(p.TextDocument.URI)
	if d == nil || !s.completionEnabled(d) {
		return nil
	}
	pos := p.Range.End
	line, ok := d.line(pos.Line)
	if !ok {
		return nil
	}
	profile := s.resolver.Resolve(d.languageID)
	ext, ok := abbrev.Extract(line, pos.Character, profile.Family)
	if !ok {
		return nil
	}
	payload := expandActionData{
		Type:       "expand",
		URI:        d.uri,
		LanguageID: d.languageID,
		Range: Range{
			Start: Position{Line: pos.Line, Character: ext.Start},
			End:   Position{Line: pos.Line, Character: ext.End},
		},
		Abbreviation: ext.Abbreviation,
		Indent:       leadingIndent(line),
	}
	raw, err := json.Marshal(payload)
	if err != nil {
		logging.Logf("lsp ", "codeAction data: %v", err)
		return nil
	}
	return &CodeAction{Title: expandActionTitle, Kind: codeActionKindRewrite, Data: raw}
}

func (s *Server) resolveCodeAction(ca CodeAction) (CodeAction, error) {
	var payload expandActionData
	if err := json.Unmarshal(ca.Data, &payload); err != nil {
		return ca, fmt.Errorf("code action data: %w", err)
	}
	if payload.Type != "expand" {
		return ca, fmt.Errorf("unknown code action type %q", payload.Type)
	}
	profile := s.resolver.Resolve(payload.LanguageID)
	text, err := abbrev.ExpandPlain(s.engine, payload.Abbreviation, profile)
	if err != nil {
		return ca, err
	}
	ca.Edit = &WorkspaceEdit{Changes: map[string][]TextEdit{
		payload.URI: {{Range: payload.Range, NewText: applyIndent(payload.Indent, text)}},
	}}
	return ca, nil
}

func (s *Server) handleCodeActionResolve(req Request) {
	var ca CodeAction
	if err := json.Unmarshal(req.Params, &ca); err != nil {
		s.reply(req.ID, nil, &RespError{Code: codeInvalidParams, Message: "invalid code action: " + err.Error()})
		return
	}
	resolved, err := s.resolveCodeAction(ca)
	if err != nil {
		logging.Logf("lsp ", "codeAction/resolve: %v", err)
	}
	s.reply(req.ID, resolved, nil)
}
