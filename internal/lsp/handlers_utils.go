// Summary: Text helpers shared across handlers.
package lsp

import "strings"

func leadingIndent(line string) string {
	i := 0
	for i < len(line) {
		if line[i] == ' ' || line[i] == '\t' {
			i++
			continue
		}
		break
	}
	if i == 0 {
		return ""
	}
	return line[:i]
}

// applyIndent prefixes every line after the first with indent. The first line
// continues at the position of the replaced abbreviation.
func applyIndent(indent, text string) string {
	if indent == "" || text == "" {
		return text
	}
	lines := splitLines(text)
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		lines[i] = indent + lines[i]
	}
	return strings.Join(lines, "\n")
}
