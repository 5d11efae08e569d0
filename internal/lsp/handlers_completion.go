// Summary: Completion handlers; locate the abbreviation at the cursor, expand it
// and assemble a single snippet completion item.
package lsp

import (
	"encoding/json"
	"errors"
	"fmt"

	"emmetls/internal/abbrev"
	"emmetls/internal/emmet"
	"emmetls/internal/logging"
)

func (s *Server) handleCompletion(req Request) {
	var p CompletionParams
	if err := json.Unmarshal(req.Params, &p); err != nil {
		logging.Logf("lsp ", "completion params: %v", err)
		s.reply(req.ID, CompletionList{Items: []CompletionItem{}}, nil)
		return
	}
	items := []CompletionItem{}
	item, err := s.safeComplete(p)
	switch {
	case err == nil:
		items = append(items, item)
	case errors.Is(err, ErrDocumentNotFound), errors.Is(err, abbrev.ErrNoAbbreviation):
		logging.Logf("lsp ", "completion skipped: %v", err)
	case errors.Is(err, emmet.ErrSyntax):
		s.logToClient("emmet: could not expand abbreviation: %v", err)
	default:
		s.logToClient("emmet: unexpected completion failure: %v", err)
	}
	s.reply(req.ID, CompletionList{IsIncomplete: false, Items: items}, nil)
}

// safeComplete turns a panic anywhere in the pipeline into an error.
func (s *Server) safeComplete(p CompletionParams) (item CompletionItem, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return s.complete(p)
}

func (s *Server) complete(p CompletionParams) (CompletionItem, error) {
	uri := p.TextDocument.URI
	d := s.getDocument(uri)
	if d == nil {
		return CompletionItem{}, fmt.Errorf("%s: %w", uri, ErrDocumentNotFound)
	}
	if !s.completionEnabled(d) {
		return CompletionItem{}, fmt.Errorf("completion disabled for %s: %w", d.languageID, abbrev.ErrNoAbbreviation)
	}
	line, ok := d.line(p.Position.Line)
	if !ok {
		return CompletionItem{}, fmt.Errorf("line %d out of range: %w", p.Position.Line, abbrev.ErrNoAbbreviation)
	}
	profile := s.resolver.Resolve(d.languageID)
	ext, ok := abbrev.Extract(line, p.Position.Character, profile.Family)
	if !ok {
		return CompletionItem{}, abbrev.ErrNoAbbreviation
	}
	text, err := abbrev.Expand(s.engine, ext.Abbreviation, profile)
	if err != nil {
		return CompletionItem{}, err
	}
	return assembleCompletion(ext, text, p.Position.Line), nil
}

func (s *Server) completionEnabled(d *document) bool {
	if s.excludeLanguages[d.languageID] {
		return false
	}
	st := s.documentSettings(d.uri)
	return st.ShowSuggestions && !st.excludes(d.languageID)
}

// assembleCompletion packages an expansion as a snippet item replacing
// exactly the extracted span. The label shows the abbreviation and the detail
// its expansion.
func assembleCompletion(ext abbrev.Extraction, text string, line int) CompletionItem {
	rng := Range{
		Start: Position{Line: line, Character: ext.Start},
		End:   Position{Line: line, Character: ext.End},
	}
	return CompletionItem{
		Label:            ext.Abbreviation,
		Detail:           text,
		Documentation:    text,
		Kind:             CompletionItemKindSnippet,
		InsertTextFormat: InsertTextFormatSnippet,
		TextEdit:         &TextEdit{Range: rng, NewText: text},
		Data:             &CompletionData{Range: rng, TextResult: text},
	}
}

func (s *Server) handleCompletionResolve(req Request) {
	var item CompletionItem
	if err := json.Unmarshal(req.Params, &item); err != nil {
		s.reply(req.ID, nil, &RespError{Code: codeInvalidParams, Message: "invalid completion item: " + err.Error()})
		return
	}
	s.reply(req.ID, resolveCompletion(item), nil)
}

func resolveCompletion(item CompletionItem) CompletionItem {
	item.InsertTextFormat = InsertTextFormatSnippet
	return item
}
