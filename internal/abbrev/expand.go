package abbrev

import (
	"errors"
	"fmt"

	"emmetls/internal/emmet"
)

// ErrNoAbbreviation means nothing left of the cursor looks like an
// abbreviation.
var ErrNoAbbreviation = errors.New("no abbreviation at cursor")

// Engine is the expansion engine: parse, then render.
type Engine interface {
	Parse(abbr string, cfg emmet.Config) (*emmet.Abbreviation, error)
	Stringify(a *emmet.Abbreviation, cfg emmet.Config) (string, error)
}

// Expand renders abbr as an LSP snippet for profile p.
func Expand(engine Engine, abbr string, p Profile) (string, error) {
	return expandWith(engine, abbr, p.Config())
}

// ExpandPlain renders abbr with tab stops replaced by their default text.
func ExpandPlain(engine Engine, abbr string, p Profile) (string, error) {
	return expandWith(engine, abbr, p.PlainConfig())
}

func expandWith(engine Engine, abbr string, cfg emmet.Config) (string, error) {
	tree, err := engine.Parse(abbr, cfg)
	if err != nil {
		return "", fmt.Errorf("parse %q: %w", abbr, err)
	}
	out, err := engine.Stringify(tree, cfg)
	if err != nil {
		return "", fmt.Errorf("render %q: %w", abbr, err)
	}
	return out, nil
}
