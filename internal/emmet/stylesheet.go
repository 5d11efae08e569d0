package emmet

import (
	"fmt"
	"sort"
	"strings"
)

// Property is one stylesheet declaration or at-rule.
type Property struct {
	Name      string
	Values    []string
	Important bool
	// Template holds a prebuilt declaration with its own tab stops.
	Template string
	AtRule   bool
}

var cssFullNames = func() []string {
	seen := map[string]bool{}
	for _, full := range cssProperties {
		seen[full] = true
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) < len(names[j])
		}
		return names[i] < names[j]
	})
	return names
}()

type stylesheetParser struct {
	abbr string
}

func parseStylesheet(abbr string) ([]*Property, error) {
	p := stylesheetParser{abbr: abbr}
	for i, r := range abbr {
		if !isStylesheetRune(r) {
			return nil, p.errorf(i, "unexpected %q", r)
		}
	}
	var props []*Property
	offset := 0
	for _, tok := range splitDeclarations(abbr) {
		prop, err := p.parseProperty(tok, offset)
		if err != nil {
			return nil, err
		}
		props = append(props, prop)
		offset += len(tok) + 1
	}
	return props, nil
}

func isStylesheetRune(r rune) bool {
	switch r {
	case '#', '.', ':', '-', '_', '!', '@', '%', '+':
		return true
	}
	return isASCIILetter(r) || (r >= '0' && r <= '9')
}

// splitDeclarations splits on '+'. A plus at the end of a token ("bd+")
// belongs to it.
func splitDeclarations(s string) []string {
	var out []string
	var cur strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '+' {
			cur.WriteByte(s[i])
			continue
		}
		if i+1 == len(s) || s[i+1] == '+' {
			cur.WriteByte('+')
			continue
		}
		out = append(out, cur.String())
		cur.Reset()
	}
	return append(out, cur.String())
}

func (p stylesheetParser) errorf(pos int, format string, args ...any) error {
	return &ParseError{Abbreviation: p.abbr, Pos: pos, Msg: fmt.Sprintf(format, args...)}
}

func (p stylesheetParser) parseProperty(tok string, offset int) (*Property, error) {
	if tok == "" {
		return nil, p.errorf(offset, "empty declaration")
	}
	important := false
	if strings.HasSuffix(tok, "!") {
		important = true
		tok = strings.TrimSuffix(tok, "!")
	}
	if strings.HasPrefix(tok, "@") {
		tpl, ok := atRules[tok]
		if !ok {
			return nil, p.errorf(offset, "unknown at-rule %q", tok)
		}
		return &Property{Name: tok, Template: tpl, AtRule: true}, nil
	}
	if tpl, ok := cssSnippets[tok]; ok {
		return &Property{Name: tok, Template: tpl, Important: important}, nil
	}
	n := 0
	for n < len(tok) && (isASCIILetter(rune(tok[n])) || (tok[n] == '-' && n > 0 && n+1 < len(tok) && isASCIILetter(rune(tok[n+1])))) {
		n++
	}
	if n == 0 {
		return nil, p.errorf(offset, "expected property name")
	}
	name, keyword, ok := resolveProperty(tok[:n])
	if !ok {
		return nil, p.errorf(offset, "unknown property %q", tok[:n])
	}
	prop := &Property{Name: name, Important: important}
	if keyword != "" {
		prop.Values = append(prop.Values, keyword)
	}
	values, err := p.parseValues(name, tok[n:], offset+n)
	if err != nil {
		return nil, err
	}
	prop.Values = append(prop.Values, values...)
	return prop, nil
}

// resolveProperty finds the full property name for abbr. Abbreviations that
// glue a keyword onto a property ("dn", "posa") come back with the keyword.
func resolveProperty(abbr string) (name, keyword string, ok bool) {
	if full, ok := cssProperties[abbr]; ok {
		return full, "", true
	}
	for k := len(abbr) - 1; k > 0; k-- {
		full, ok := cssProperties[abbr[:k]]
		if !ok {
			continue
		}
		if kw, ok := cssKeywords[full][abbr[k:]]; ok {
			return full, kw, true
		}
	}
	for _, full := range cssFullNames {
		if full == abbr {
			return full, "", true
		}
	}
	for _, full := range cssFullNames {
		if strings.HasPrefix(full, abbr) {
			return full, "", true
		}
	}
	return "", "", false
}

func (p stylesheetParser) parseValues(prop, s string, offset int) ([]string, error) {
	if strings.HasSuffix(s, ":") {
		return nil, p.errorf(offset+len(s), "missing value")
	}
	s = strings.TrimPrefix(s, ":")
	var values []string
	afterSep := true
	for i := 0; i < len(s); {
		ch := s[i]
		switch {
		case ch == '-' && afterSep && i+1 < len(s) && (isDigit(s[i+1]) || s[i+1] == '.'):
			v, n := readNumber(prop, s[i:])
			values = append(values, v)
			i += n
			afterSep = false
		case ch == '-':
			i++
			afterSep = true
		case isDigit(ch) || ch == '.':
			v, n := readNumber(prop, s[i:])
			values = append(values, v)
			i += n
			afterSep = false
		case ch == '#':
			j := i + 1
			for j < len(s) && isHexDigit(s[j]) {
				j++
			}
			if j == i+1 {
				return nil, p.errorf(offset+i, "empty color")
			}
			values = append(values, "#"+expandColor(s[i+1:j]))
			i = j
			afterSep = false
		case isASCIILetter(rune(ch)):
			j := i
			for j < len(s) && isASCIILetter(rune(s[j])) {
				j++
			}
			values = append(values, expandKeyword(prop, s[i:j]))
			i = j
			afterSep = false
		default:
			return nil, p.errorf(offset+i, "unexpected %q", ch)
		}
	}
	return values, nil
}

// readNumber reads a number with an optional unit and returns the rendered
// value with the number of bytes consumed.
func readNumber(prop, s string) (string, int) {
	i := 0
	if i < len(s) && s[i] == '-' {
		i++
	}
	float := false
	for i < len(s) && (isDigit(s[i]) || (s[i] == '.' && !float)) {
		if s[i] == '.' {
			float = true
		}
		i++
	}
	num := s[:i]
	j := i
	for j < len(s) && (isASCIILetter(rune(s[j])) || s[j] == '%') {
		j++
	}
	unit := s[i:j]
	if alias, ok := unitAliases[unit]; ok {
		unit = alias
	}
	if strings.HasPrefix(num, ".") {
		num = "0" + num
	} else if strings.HasPrefix(num, "-.") {
		num = "-0" + num[1:]
	}
	if unit == "" && !isZero(num) && !unitless[prop] {
		if float {
			unit = "em"
		} else {
			unit = "px"
		}
	}
	return num + unit, j
}

func isZero(num string) bool {
	return strings.Trim(num, "-0.") == ""
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// expandColor widens short hex colors: "f" -> "fff", "fc" -> "fcfcfc".
func expandColor(hex string) string {
	switch len(hex) {
	case 1, 2:
		return strings.Repeat(hex, 3)
	}
	return hex
}

func expandKeyword(prop, kw string) string {
	if full, ok := cssKeywords[prop][kw]; ok {
		return full
	}
	if full, ok := cssGlobalKeywords[kw]; ok {
		return full
	}
	return kw
}

func stringifyStylesheet(props []*Property, cfg Config) string {
	field := 0
	lines := make([]string, 0, len(props))
	for _, prop := range props {
		var b strings.Builder
		if prop.Template != "" {
			renumber := map[int]int{}
			splitFields(prop.Template, func(lit string) {
				b.WriteString(cfg.Text(strings.ReplaceAll(lit, "\t", cfg.Indent)))
			}, func(index int, placeholder string) {
				n, ok := renumber[index]
				if !ok {
					field++
					n = field
					renumber[index] = n
				}
				b.WriteString(cfg.Field(n, placeholder))
			})
		} else {
			b.WriteString(prop.Name + ": ")
			if len(prop.Values) == 0 {
				field++
				b.WriteString(cfg.Field(field, ""))
			}
			for i, v := range prop.Values {
				if i > 0 {
					b.WriteByte(' ')
				}
				field++
				b.WriteString(cfg.Field(field, v))
			}
		}
		if !prop.AtRule {
			if prop.Important {
				b.WriteString(" !important")
			}
			b.WriteByte(';')
		}
		lines = append(lines, b.String())
	}
	return strings.Join(lines, "\n")
}
