// Summary: Language profile resolution; maps a document language id to the
// expansion family, JSX flag and snippet placeholder formatting.
package abbrev

import (
	"fmt"
	"strings"

	lru "github.com/hashicorp/golang-lru/v2"

	"emmetls/internal/emmet"
)

// DefaultStylesheetLanguages are the language ids expanded as stylesheets.
var DefaultStylesheetLanguages = []string{"css", "scss"}

// DefaultJSXLanguages are the language ids expanded as JSX markup.
var DefaultJSXLanguages = []string{"typescriptreact", "javascriptreact", "typescript.tsx", "typescript.jsx"}

const defaultCacheSize = 64

// Profile is the expansion configuration selected for a document language.
type Profile struct {
	Family emmet.Type
	JSX    bool
	Syntax string
	Indent string
}

var snippetEscaper = strings.NewReplacer(`\`, `\\`, `$`, `\$`, `}`, `\}`)

// Placeholder renders an LSP snippet tab stop: ${N} or ${N:text}.
func Placeholder(index int, text string) string {
	if text == "" {
		return fmt.Sprintf("${%d}", index)
	}
	return fmt.Sprintf("${%d:%s}", index, snippetEscaper.Replace(text))
}

// EscapeText escapes literal snippet text so the client does not read it as
// tab stops or variables.
func EscapeText(s string) string { return snippetEscaper.Replace(s) }

// Config returns the engine configuration that renders LSP snippets.
func (p Profile) Config() emmet.Config {
	return emmet.Config{
		Type:   p.Family,
		Syntax: p.Syntax,
		JSX:    p.JSX,
		Field:  Placeholder,
		Text:   EscapeText,
		Indent: p.Indent,
	}
}

// PlainConfig renders tab stops as their default text, for edits that are
// applied verbatim instead of as snippets.
func (p Profile) PlainConfig() emmet.Config {
	return emmet.Config{
		Type:   p.Family,
		Syntax: p.Syntax,
		JSX:    p.JSX,
		Indent: p.Indent,
	}
}

// Options tune a Resolver. Empty lists fall back to the defaults.
type Options struct {
	StylesheetLanguages []string
	JSXLanguages        []string
	Indent              string
	CacheSize           int
}

// Resolver maps language ids to profiles. Results are memoized in an LRU
// since the lookup runs on every completion request.
type Resolver struct {
	stylesheet map[string]bool
	jsx        map[string]bool
	indent     string
	cache      *lru.Cache[string, Profile]
}

// NewResolver builds a resolver from opts.
func NewResolver(opts Options) (*Resolver, error) {
	sheets := opts.StylesheetLanguages
	if len(sheets) == 0 {
		sheets = DefaultStylesheetLanguages
	}
	jsx := opts.JSXLanguages
	if len(jsx) == 0 {
		jsx = DefaultJSXLanguages
	}
	size := opts.CacheSize
	if size <= 0 {
		size = defaultCacheSize
	}
	cache, err := lru.New[string, Profile](size)
	if err != nil {
		return nil, fmt.Errorf("profile cache: %w", err)
	}
	return &Resolver{
		stylesheet: toSet(sheets),
		jsx:        toSet(jsx),
		indent:     opts.Indent,
		cache:      cache,
	}, nil
}

func toSet(ids []string) map[string]bool {
	m := make(map[string]bool, len(ids))
	for _, id := range ids {
		m[strings.TrimSpace(id)] = true
	}
	return m
}

// Resolve is total: unknown ids get the plain markup profile.
func (r *Resolver) Resolve(languageID string) Profile {
	if p, ok := r.cache.Get(languageID); ok {
		return p
	}
	p := Profile{Family: emmet.Markup, Syntax: "html", Indent: r.indent}
	switch {
	case r.stylesheet[languageID]:
		p.Family = emmet.Stylesheet
		p.Syntax = languageID
	case r.jsx[languageID]:
		p.JSX = true
		p.Syntax = "jsx"
	}
	r.cache.Add(languageID, p)
	return p
}

var defaultResolver, _ = NewResolver(Options{})

// Resolve maps languageID with the default language tables.
func Resolve(languageID string) Profile { return defaultResolver.Resolve(languageID) }
