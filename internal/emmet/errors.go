package emmet

import (
	"errors"
	"fmt"
)

// ErrSyntax is matched by every parse failure.
var ErrSyntax = errors.New("emmet: invalid abbreviation")

// ParseError reports where an abbreviation stopped making sense.
type ParseError struct {
	Abbreviation string
	Pos          int
	Msg          string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("emmet: %s at %d in %q", e.Msg, e.Pos, e.Abbreviation)
}

func (e *ParseError) Unwrap() error { return ErrSyntax }
