package emmet

import (
	"errors"
	"strconv"
	"strings"
)

var errTooManyNodes = errors.New("abbreviation expands to too many elements")

// repeatCtx is the nearest enclosing repeater, used for $ numbering.
type repeatCtx struct {
	index int
	count int
}

// unroll copies the tree, replicating repeated nodes, flattening groups and
// applying $ numbering against the nearest repeater.
func unroll(nodes []*Node, rc repeatCtx, budget *int) ([]*Node, error) {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		count := 1
		if n.Repeat > 0 {
			count = n.Repeat
		}
		for i := 0; i < count; i++ {
			ctx := rc
			if n.Repeat > 0 {
				ctx = repeatCtx{index: i, count: count}
			}
			if n.Group {
				kids, err := unroll(n.Children, ctx, budget)
				if err != nil {
					return nil, err
				}
				out = append(out, kids...)
				continue
			}
			*budget--
			if *budget < 0 {
				return nil, errTooManyNodes
			}
			c := &Node{
				Name:      applyNumbering(n.Name, ctx),
				Text:      applyNumbering(n.Text, ctx),
				HasText:   n.HasText,
				SelfClose: n.SelfClose,
			}
			for _, a := range n.Attributes {
				c.Attributes = append(c.Attributes, Attribute{
					Name:  applyNumbering(a.Name, ctx),
					Value: applyNumbering(a.Value, ctx),
					Expr:  a.Expr,
				})
			}
			kids, err := unroll(n.Children, ctx, budget)
			if err != nil {
				return nil, err
			}
			c.Children = kids
			out = append(out, c)
		}
	}
	return out, nil
}

// applyNumbering replaces runs of $ with the repeat index. "$$$" pads to
// three digits, "$@-" counts down and "$@3" starts counting at 3. Fields
// (${...}) and escaped \$ are left alone.
func applyNumbering(s string, rc repeatCtx) string {
	if !strings.Contains(s, "$") {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); {
		ch := s[i]
		if ch == '\\' && i+1 < len(s) && s[i+1] == '$' {
			b.WriteByte('$')
			i += 2
			continue
		}
		if ch != '$' {
			b.WriteByte(ch)
			i++
			continue
		}
		if i+1 < len(s) && s[i+1] == '{' {
			end := matchingBrace(s, i+1)
			if end < 0 {
				b.WriteString(s[i:])
				break
			}
			b.WriteString(s[i : end+1])
			i = end + 1
			continue
		}
		j := i
		for j < len(s) && s[j] == '$' {
			j++
		}
		width := j - i
		value := rc.index + 1
		if j < len(s) && s[j] == '@' {
			k := j + 1
			reverse := false
			if k < len(s) && s[k] == '-' {
				reverse = true
				k++
			}
			m := k
			for m < len(s) && isDigit(s[m]) {
				m++
			}
			base := 1
			if m > k {
				base, _ = strconv.Atoi(s[k:m])
			}
			if reverse {
				value = rc.count - rc.index - 1 + base
			} else {
				value = rc.index + base
			}
			j = m
		}
		num := strconv.Itoa(value)
		for len(num) < width {
			num = "0" + num
		}
		b.WriteString(num)
		i = j
	}
	return b.String()
}

func resolveImplicitNames(nodes []*Node, parent string) {
	for _, n := range nodes {
		if n.Name == "" && !n.isText() {
			n.Name = implicitTag(parent)
		}
		next := n.Name
		if next == "" {
			next = parent
		}
		resolveImplicitNames(n.Children, next)
	}
}

func implicitTag(parent string) string {
	p := strings.ToLower(parent)
	switch p {
	case "ul", "ol":
		return "li"
	case "table", "tbody", "thead", "tfoot":
		return "tr"
	case "tr":
		return "td"
	case "select", "optgroup", "datalist":
		return "option"
	case "audio", "video", "picture":
		return "source"
	case "colgroup":
		return "col"
	case "map":
		return "area"
	}
	if inlineElements[p] {
		return "span"
	}
	return "div"
}

func isDigit(b byte) bool { return b >= '0' && b <= '9' }
