package emmet

import (
	"fmt"
	"strconv"
	"unicode"
)

const maxRepeat = 1000

// Node is an element, a text run or a group inside a markup abbreviation.
type Node struct {
	Name       string
	Attributes []Attribute
	Text       string
	HasText    bool
	Repeat     int // 0 means not repeated
	Group      bool
	SelfClose  bool
	Children   []*Node
}

// Attribute is a single element attribute. Expr marks values written as {expr}.
type Attribute struct {
	Name  string
	Value string
	Expr  bool
}

func (n *Node) isText() bool {
	return !n.Group && n.Name == "" && len(n.Attributes) == 0 && n.HasText
}

func (n *Node) attribute(name string) *Attribute {
	for i := range n.Attributes {
		if n.Attributes[i].Name == name {
			return &n.Attributes[i]
		}
	}
	return nil
}

func (n *Node) setAttribute(name, value string, expr bool) {
	if name == "class" && !expr {
		n.addClass(value)
		return
	}
	if a := n.attribute(name); a != nil {
		a.Value = value
		a.Expr = expr
		return
	}
	n.Attributes = append(n.Attributes, Attribute{Name: name, Value: value, Expr: expr})
}

func (n *Node) addClass(cls string) {
	a := n.attribute("class")
	if a == nil {
		n.Attributes = append(n.Attributes, Attribute{Name: "class", Value: cls})
		return
	}
	switch {
	case cls == "":
	case a.Value == "":
		a.Value = cls
	default:
		a.Value += " " + cls
	}
}

type markupParser struct {
	abbr string
	src  []rune
	pos  int
}

func parseMarkup(abbr string) ([]*Node, error) {
	p := &markupParser{abbr: abbr, src: []rune(abbr)}
	nodes, err := p.parseSequence(false)
	if err != nil {
		return nil, err
	}
	if p.pos < len(p.src) {
		return nil, p.errorf("unexpected %q", p.src[p.pos])
	}
	return nodes, nil
}

func (p *markupParser) errorf(format string, args ...any) error {
	return &ParseError{Abbreviation: p.abbr, Pos: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *markupParser) peek() rune {
	if p.pos < len(p.src) {
		return p.src[p.pos]
	}
	return 0
}

func (p *markupParser) consumeWhile(ok func(rune) bool) string {
	start := p.pos
	for p.pos < len(p.src) && ok(p.src[p.pos]) {
		p.pos++
	}
	return string(p.src[start:p.pos])
}

// parseSequence reads elements joined by >, + and ^ operators. Inside a group
// it stops in front of the closing parenthesis.
func (p *markupParser) parseSequence(inGroup bool) ([]*Node, error) {
	root := &Node{Group: true}
	stack := []*Node{root}
	var last *Node
	expectOperand := true
	climbing := false
	for p.pos < len(p.src) {
		ch := p.src[p.pos]
		switch ch {
		case ')':
			if !inGroup {
				return nil, p.errorf("unexpected )")
			}
			if expectOperand {
				return nil, p.errorf("missing element before )")
			}
			return root.Children, nil
		case '>':
			if expectOperand {
				return nil, p.errorf("unexpected >")
			}
			p.pos++
			stack = append(stack, insertionPoint(last))
			last, expectOperand, climbing = nil, true, false
		case '+':
			if expectOperand {
				return nil, p.errorf("unexpected +")
			}
			p.pos++
			if isSnippetSuffix(last, p.peek()) {
				// "ul+" style snippet names end with a plus.
				last.Name += "+"
				continue
			}
			last, expectOperand, climbing = nil, true, false
		case '^':
			if expectOperand && !climbing {
				return nil, p.errorf("unexpected ^")
			}
			p.pos++
			if len(stack) > 1 {
				stack = stack[:len(stack)-1]
			}
			last, expectOperand, climbing = nil, true, true
		default:
			if !expectOperand {
				return nil, p.errorf("unexpected %q", ch)
			}
			node, err := p.parseItem()
			if err != nil {
				return nil, err
			}
			parent := stack[len(stack)-1]
			parent.Children = append(parent.Children, node)
			last, expectOperand, climbing = node, false, false
		}
	}
	if inGroup {
		return nil, p.errorf("unclosed group")
	}
	if expectOperand {
		return nil, p.errorf("unexpected end of abbreviation")
	}
	return root.Children, nil
}

func isSnippetSuffix(last *Node, next rune) bool {
	if last == nil || last.Group || last.Name == "" || len(last.Children) > 0 {
		return false
	}
	if _, ok := htmlSnippets[last.Name+"+"]; !ok {
		return false
	}
	switch next {
	case 0, '>', '^', ')', '+':
		return true
	}
	return false
}

// insertionPoint returns the node that receives children after a '>'
// operator. For groups that is the last element inside the group.
func insertionPoint(n *Node) *Node {
	for n.Group && len(n.Children) > 0 {
		n = n.Children[len(n.Children)-1]
	}
	return n
}

func (p *markupParser) parseItem() (*Node, error) {
	if p.peek() != '(' {
		return p.parseElement()
	}
	p.pos++
	children, err := p.parseSequence(true)
	if err != nil {
		return nil, err
	}
	p.pos++ // ')'
	g := &Node{Group: true, Children: children}
	if err := p.parseRepeat(g); err != nil {
		return nil, err
	}
	return g, nil
}

func (p *markupParser) parseElement() (*Node, error) {
	start := p.pos
	n := &Node{Name: p.consumeWhile(isNameRune)}
	for done := false; !done && p.pos < len(p.src); {
		switch p.src[p.pos] {
		case '#':
			p.pos++
			id := p.consumeWhile(isAttrNameRune)
			if id == "" {
				return nil, p.errorf("empty id")
			}
			n.setAttribute("id", id, false)
		case '.':
			p.pos++
			cls := p.consumeWhile(isAttrNameRune)
			if cls == "" {
				return nil, p.errorf("empty class name")
			}
			n.addClass(cls)
		case '[':
			if err := p.parseAttributes(n); err != nil {
				return nil, err
			}
		case '{':
			text, err := p.parseText()
			if err != nil {
				return nil, err
			}
			n.Text += text
			n.HasText = true
		case '*':
			if err := p.parseRepeat(n); err != nil {
				return nil, err
			}
		case '/':
			p.pos++
			n.SelfClose = true
		default:
			done = true
		}
	}
	if p.pos == start {
		return nil, p.errorf("expected element, got %q", p.peek())
	}
	return n, nil
}

func (p *markupParser) parseRepeat(n *Node) error {
	if p.peek() != '*' {
		return nil
	}
	p.pos++
	digits := p.consumeWhile(unicode.IsDigit)
	if digits == "" {
		n.Repeat = 1
		return nil
	}
	count, err := strconv.Atoi(digits)
	if err != nil || count <= 0 || count > maxRepeat {
		return p.errorf("invalid repeat count %q", digits)
	}
	n.Repeat = count
	return nil
}

func (p *markupParser) parseAttributes(n *Node) error {
	open := p.pos
	p.pos++ // '['
	for {
		p.consumeWhile(unicode.IsSpace)
		if p.pos >= len(p.src) {
			p.pos = open
			return p.errorf("unclosed attribute set")
		}
		if p.src[p.pos] == ']' {
			p.pos++
			return nil
		}
		name := p.consumeWhile(func(r rune) bool {
			return !unicode.IsSpace(r) && r != '=' && r != ']' && r != '"' && r != '\''
		})
		if name == "" {
			return p.errorf("expected attribute name")
		}
		var value string
		expr := false
		if p.peek() == '=' {
			p.pos++
			switch q := p.peek(); q {
			case 0:
				p.pos = open
				return p.errorf("unclosed attribute set")
			case '"', '\'':
				v, err := p.parseQuoted(q)
				if err != nil {
					return err
				}
				value = v
			case '{':
				v, err := p.parseText()
				if err != nil {
					return err
				}
				value, expr = v, true
			default:
				value = p.consumeWhile(func(r rune) bool { return !unicode.IsSpace(r) && r != ']' })
			}
		}
		n.setAttribute(name, value, expr)
	}
}

func (p *markupParser) parseQuoted(quote rune) (string, error) {
	start := p.pos
	p.pos++
	from := p.pos
	for p.pos < len(p.src) {
		switch p.src[p.pos] {
		case '\\':
			p.pos += 2
			continue
		case quote:
			v := string(p.src[from:p.pos])
			p.pos++
			return v, nil
		}
		p.pos++
	}
	p.pos = start
	return "", p.errorf("unclosed quote")
}

// parseText reads a {text} block. Nested braces are kept so that fields like
// ${1:name} survive; a backslash escapes the next character.
func (p *markupParser) parseText() (string, error) {
	start := p.pos
	p.pos++
	depth := 1
	var out []rune
	for p.pos < len(p.src) {
		ch := p.src[p.pos]
		switch ch {
		case '\\':
			if p.pos+1 < len(p.src) {
				out = append(out, p.src[p.pos+1])
				p.pos += 2
				continue
			}
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				p.pos++
				return string(out), nil
			}
		}
		out = append(out, ch)
		p.pos++
	}
	p.pos = start
	return "", p.errorf("unclosed text")
}

func isNameRune(r rune) bool {
	switch r {
	case ':', '-', '_', '!', '$', '@':
		return true
	}
	return isASCIILetter(r) || (r >= '0' && r <= '9')
}

func isAttrNameRune(r rune) bool {
	switch r {
	case ':', '-', '_', '$', '@':
		return true
	}
	return isASCIILetter(r) || (r >= '0' && r <= '9')
}

func isASCIILetter(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
}
