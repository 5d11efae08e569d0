// Summary: Abbreviation expansion engine; parses markup or stylesheet shorthand
// into a tree and renders it to text with pluggable tab-stop output.
package emmet

import "strings"

// maxNodes bounds the size of an unrolled markup tree.
const maxNodes = 5000

// Abbreviation is a parsed abbreviation ready for rendering.
type Abbreviation struct {
	Type       Type
	Source     string
	Nodes      []*Node
	Properties []*Property
}

// Engine parses and renders abbreviations. The zero value is ready to use.
type Engine struct{}

// Parse builds the tree for abbr using the grammar selected by cfg.Type.
// Markup trees come back fully transformed: snippets resolved, repeats
// unrolled, numbering applied and implicit tag names filled in.
func (Engine) Parse(abbr string, cfg Config) (*Abbreviation, error) {
	cfg = ResolveConfig(cfg)
	src := strings.TrimSpace(abbr)
	if src == "" {
		return nil, &ParseError{Abbreviation: abbr, Msg: "empty abbreviation"}
	}
	if cfg.Type == Stylesheet {
		props, err := parseStylesheet(src)
		if err != nil {
			return nil, err
		}
		return &Abbreviation{Type: Stylesheet, Source: src, Properties: props}, nil
	}
	nodes, err := parseMarkup(src)
	if err != nil {
		return nil, err
	}
	nodes, err = expandSnippets(nodes, map[string]bool{})
	if err != nil {
		return nil, err
	}
	budget := maxNodes
	nodes, err = unroll(nodes, repeatCtx{count: 1}, &budget)
	if err != nil {
		return nil, &ParseError{Abbreviation: src, Pos: len(src), Msg: err.Error()}
	}
	resolveImplicitNames(nodes, "")
	return &Abbreviation{Type: Markup, Source: src, Nodes: nodes}, nil
}

// Stringify renders a parsed abbreviation.
func (Engine) Stringify(a *Abbreviation, cfg Config) (string, error) {
	cfg = ResolveConfig(cfg)
	if a == nil {
		return "", &ParseError{Msg: "nil abbreviation"}
	}
	if a.Type == Stylesheet {
		return stringifyStylesheet(a.Properties, cfg), nil
	}
	return stringifyMarkup(a.Nodes, cfg), nil
}

// Expand parses and renders abbr in one step.
func Expand(abbr string, cfg Config) (string, error) {
	var e Engine
	a, err := e.Parse(abbr, cfg)
	if err != nil {
		return "", err
	}
	return e.Stringify(a, cfg)
}
