package emmet

import "strconv"

// splitFields walks s and reports literal runs and ${N} / ${N:placeholder}
// tab stops in order. Malformed fields are reported as literal text.
func splitFields(s string, lit func(string), field func(index int, placeholder string)) {
	from := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\\' {
			i++
			continue
		}
		if s[i] != '$' || i+1 >= len(s) || s[i+1] != '{' {
			continue
		}
		end := matchingBrace(s, i+1)
		if end < 0 {
			break
		}
		body := s[i+2 : end]
		j := 0
		for j < len(body) && isDigit(body[j]) {
			j++
		}
		if j == 0 || (j < len(body) && body[j] != ':') {
			continue
		}
		index, err := strconv.Atoi(body[:j])
		if err != nil {
			continue
		}
		placeholder := ""
		if j < len(body) {
			placeholder = body[j+1:]
		}
		if from < i {
			lit(s[from:i])
		}
		field(index, placeholder)
		from = end + 1
		i = end
	}
	if from < len(s) {
		lit(s[from:])
	}
}

// matchingBrace returns the index of the brace closing the one at open, or
// -1 when it is unbalanced.
func matchingBrace(s string, open int) int {
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
