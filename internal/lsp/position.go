package lsp

import (
	"unicode/utf8"

	"emmetls/internal/abbrev"
)

// byteOffset converts an LSP position (UTF-16 character offset) into a byte
// offset in text. Positions past the end of a line clamp to the line end and
// lines past the end clamp to the end of the text.
func byteOffset(text string, pos Position) int {
	if pos.Line < 0 {
		return 0
	}
	offset := 0
	for line := 0; line < pos.Line; line++ {
		i := indexNewline(text[offset:])
		if i < 0 {
			return len(text)
		}
		offset += i + 1
	}
	units := 0
	for offset < len(text) && units < pos.Character {
		r, size := utf8.DecodeRuneInString(text[offset:])
		if r == '\n' || r == '\r' {
			break
		}
		units += abbrev.RuneUnits(r)
		if units > pos.Character {
			break
		}
		offset += size
	}
	return offset
}

func indexNewline(s string) int {
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			return i
		}
	}
	return -1
}
