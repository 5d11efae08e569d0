package emmet

import (
	"strings"
)

// inlineBreak is the number of inline sibling elements that forces one
// element per line.
const inlineBreak = 3

type markupWriter struct {
	cfg   Config
	b     strings.Builder
	field int
}

func stringifyMarkup(nodes []*Node, cfg Config) string {
	w := &markupWriter{cfg: cfg, field: maxExplicitField(nodes)}
	w.writeNodes(nodes, 0)
	return w.b.String()
}

func (w *markupWriter) writeNodes(nodes []*Node, depth int) {
	block := needsBlockLayout(nodes)
	for i, n := range nodes {
		if block && i > 0 {
			w.newline(depth)
		}
		w.writeNode(n, depth)
	}
}

func (w *markupWriter) writeNode(n *Node, depth int) {
	if n.isText() {
		w.writeText(n.Text)
		return
	}
	w.b.WriteString("<" + n.Name)
	for _, a := range n.Attributes {
		w.writeAttribute(a)
	}
	empty := len(n.Children) == 0 && !n.HasText
	if n.SelfClose || (empty && voidElements[strings.ToLower(n.Name)]) {
		if w.cfg.JSX {
			w.b.WriteString(" />")
		} else {
			w.b.WriteString(">")
		}
		return
	}
	w.b.WriteString(">")
	switch {
	case empty:
		w.writeField("")
	case len(n.Children) == 0:
		w.writeText(n.Text)
	default:
		kids := n.Children
		if n.HasText {
			kids = append([]*Node{{Text: n.Text, HasText: true}}, kids...)
		}
		if needsBlockLayout(kids) {
			w.newline(depth + 1)
			w.writeNodes(kids, depth+1)
			w.newline(depth)
		} else {
			w.writeNodes(kids, depth+1)
		}
	}
	w.b.WriteString("</" + n.Name + ">")
}

func (w *markupWriter) writeAttribute(a Attribute) {
	name := a.Name
	if w.cfg.JSX {
		switch name {
		case "class":
			name = "className"
		case "for":
			name = "htmlFor"
		}
	}
	w.b.WriteString(" " + name + "=")
	open, close := `"`, `"`
	if a.Expr && w.cfg.JSX {
		open, close = "{", "}"
	}
	w.b.WriteString(open)
	if a.Value == "" {
		w.writeField("")
	} else {
		w.writeText(a.Value)
	}
	w.b.WriteString(close)
}

func (w *markupWriter) writeText(s string) {
	splitFields(s, func(lit string) {
		w.b.WriteString(w.cfg.Text(lit))
	}, func(index int, placeholder string) {
		w.b.WriteString(w.cfg.Field(index, placeholder))
	})
}

// writeField emits an automatically numbered tab stop.
func (w *markupWriter) writeField(placeholder string) {
	w.field++
	w.b.WriteString(w.cfg.Field(w.field, placeholder))
}

func (w *markupWriter) newline(depth int) {
	w.b.WriteByte('\n')
	w.b.WriteString(strings.Repeat(w.cfg.Indent, depth))
}

func isInlineLevel(n *Node) bool {
	if n.isText() {
		return !strings.Contains(n.Text, "\n")
	}
	if !inlineElements[strings.ToLower(n.Name)] {
		return false
	}
	for _, c := range n.Children {
		if !isInlineLevel(c) {
			return false
		}
	}
	return true
}

func needsBlockLayout(nodes []*Node) bool {
	elems := 0
	for _, n := range nodes {
		if !isInlineLevel(n) {
			return true
		}
		if !n.isText() {
			elems++
		}
	}
	return elems >= inlineBreak
}

func maxExplicitField(nodes []*Node) int {
	max := 0
	note := func(s string) {
		splitFields(s, func(string) {}, func(index int, _ string) {
			if index > max {
				max = index
			}
		})
	}
	var walk func([]*Node)
	walk = func(ns []*Node) {
		for _, n := range ns {
			note(n.Text)
			for _, a := range n.Attributes {
				note(a.Value)
			}
			walk(n.Children)
		}
	}
	walk(nodes)
	return max
}
