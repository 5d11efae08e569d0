package abbrev

import (
	"strings"
	"unicode"
	"unicode/utf16"

	"emmetls/internal/emmet"
)

// Extraction is the abbreviation found left of the cursor. Start and End are
// columns in UTF-16 code units.
type Extraction struct {
	Start        int
	End          int
	Abbreviation string
}

const (
	markupSpecials     = "#.*:$-_!@%^+>/"
	stylesheetSpecials = "#.:-_!@%+"
	leadingOperators   = "*+>^"
)

// Extract finds the abbreviation ending at column on line. Closing quotes and
// brackets right of the cursor that the editor auto-inserted are taken in as
// long as they balance the span; otherwise the span ends at the cursor.
func Extract(line string, column int, family emmet.Type) (Extraction, bool) {
	runes := []rune(line)
	cursor, ok := runeIndex(runes, column)
	if !ok || cursor == 0 {
		return Extraction{}, false
	}
	if end := lookahead(runes, cursor, family); end > cursor {
		if ext, ok := extractSpan(runes, end, family); ok && ext.Start < column {
			return ext, true
		}
	}
	return extractSpan(runes, cursor, family)
}

func extractSpan(runes []rune, end int, family emmet.Type) (Extraction, bool) {
	if end < len(runes) && isWordRune(runes[end]) {
		return Extraction{}, false
	}
	var stack []rune
	i := end - 1
scan:
	for ; i >= 0; i-- {
		ch := runes[i]
		if open, ok := closerOf(ch, family); ok {
			stack = append(stack, open)
			continue
		}
		if isOpener(ch, family) {
			if len(stack) == 0 || stack[len(stack)-1] != ch {
				break scan
			}
			stack = stack[:len(stack)-1]
			continue
		}
		if len(stack) > 0 {
			continue
		}
		switch {
		case ch == '>' && family == emmet.Markup && isAtHTMLTag(runes, i):
			break scan
		case isAbbreviationRune(ch, family):
		default:
			break scan
		}
	}
	if len(stack) > 0 {
		return Extraction{}, false
	}
	start := i + 1
	for start < end && strings.ContainsRune(leadingOperators, runes[start]) {
		start++
	}
	if start >= end {
		return Extraction{}, false
	}
	abbr := string(runes[start:end])
	if !validSpan(runes, start, abbr, family) {
		return Extraction{}, false
	}
	return Extraction{
		Start:        utf16Len(runes[:start]),
		End:          utf16Len(runes[:end]),
		Abbreviation: abbr,
	}, true
}

func validSpan(runes []rune, start int, abbr string, family emmet.Type) bool {
	last := abbr[len(abbr)-1]
	if family == emmet.Stylesheet {
		if last == ':' {
			return false
		}
		// a value in a declaration ("color: red") is not an abbreviation
		for k := start - 1; k >= 0; k-- {
			if unicode.IsSpace(runes[k]) {
				continue
			}
			return runes[k] == '{' || runes[k] == ';' || runes[k] == '}'
		}
		return true
	}
	return last != '>' && last != '^'
}

// lookahead returns the index after an auto-closed quote and any closing
// brackets directly right of the cursor.
func lookahead(runes []rune, cursor int, family emmet.Type) int {
	i := cursor
	if i < len(runes) && (runes[i] == '"' || runes[i] == '\'') {
		i++
	}
	for i < len(runes) {
		if _, ok := closerOf(runes[i], family); !ok {
			break
		}
		i++
	}
	return i
}

// isAtHTMLTag reports whether the '>' at i closes a tag such as <div> that
// is already in the text, in which case the abbreviation starts after it.
func isAtHTMLTag(runes []rune, i int) bool {
	for k := i - 1; k >= 0; k-- {
		switch runes[k] {
		case '>':
			return false
		case '<':
			if k+1 < i {
				next := runes[k+1]
				return next == '/' || next == '!' || unicode.IsLetter(next)
			}
			return false
		}
	}
	return false
}

func closerOf(ch rune, family emmet.Type) (rune, bool) {
	switch ch {
	case ')':
		return '(', true
	case ']':
		return '[', family == emmet.Markup
	case '}':
		return '{', family == emmet.Markup
	}
	return 0, false
}

func isOpener(ch rune, family emmet.Type) bool {
	switch ch {
	case '(':
		return true
	case '[', '{':
		return family == emmet.Markup
	}
	return false
}

func isAbbreviationRune(ch rune, family emmet.Type) bool {
	if isWordRune(ch) {
		return true
	}
	if family == emmet.Stylesheet {
		return strings.ContainsRune(stylesheetSpecials, ch)
	}
	return strings.ContainsRune(markupSpecials, ch)
}

func isWordRune(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch)
}

// runeIndex converts a UTF-16 column to a rune index. Columns past the end of
// the line or inside a surrogate pair are rejected.
func runeIndex(runes []rune, column int) (int, bool) {
	if column < 0 {
		return 0, false
	}
	units := 0
	for i, r := range runes {
		if units == column {
			return i, true
		}
		if units > column {
			return 0, false
		}
		units += RuneUnits(r)
	}
	if units == column {
		return len(runes), true
	}
	return 0, false
}

func utf16Len(runes []rune) int {
	n := 0
	for _, r := range runes {
		n += RuneUnits(r)
	}
	return n
}

// RuneUnits reports how many UTF-16 code units r occupies.
func RuneUnits(r rune) int {
	if r1, _ := utf16.EncodeRune(r); r1 != unicode.ReplacementChar {
		return 2
	}
	return 1
}
