// Summary: In-memory document model for the LSP; tracks text, lines, and applies edits.
package lsp

import (
	"errors"
	"fmt"
	"strings"
)

// ErrDocumentNotFound is returned for requests on documents that were never
// opened or were already closed.
var ErrDocumentNotFound = errors.New("document not found")

type document struct {
	uri        string
	languageID string
	version    int
	text       string
	lines      []string
}

func newDocument(uri, languageID string, version int, text string) *document {
	return &document{uri: uri, languageID: languageID, version: version, text: text, lines: splitLines(text)}
}

// line returns the text of line idx without its terminator.
func (d *document) line(idx int) (string, bool) {
	if idx < 0 || idx >= len(d.lines) {
		return "", false
	}
	return d.lines[idx], true
}

func (s *Server) setDocument(item TextDocumentItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs[item.URI] = newDocument(item.URI, item.LanguageID, item.Version, item.Text)
}

// applyChanges applies content changes in order. Documents are replaced, not
// mutated, so readers holding the previous snapshot stay consistent.
func (s *Server) applyChanges(uri string, version int, changes []TextDocumentContentChangeEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.docs[uri]
	if !ok {
		return fmt.Errorf("%s: %w", uri, ErrDocumentNotFound)
	}
	text := d.text
	for _, ch := range changes {
		text = applyChange(text, ch)
	}
	s.docs[uri] = newDocument(uri, d.languageID, version, text)
	return nil
}

func applyChange(text string, ch TextDocumentContentChangeEvent) string {
	if ch.Range == nil {
		return ch.Text
	}
	start := byteOffset(text, ch.Range.Start)
	end := byteOffset(text, ch.Range.End)
	if end < start {
		start, end = end, start
	}
	return text[:start] + ch.Text + text[end:]
}

func (s *Server) deleteDocument(uri string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.docs, uri)
}

func (s *Server) getDocument(uri string) *document {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.docs[uri]
}

func splitLines(sx string) []string {
	sx = strings.ReplaceAll(sx, "\r\n", "\n")
	return strings.Split(sx, "\n")
}
