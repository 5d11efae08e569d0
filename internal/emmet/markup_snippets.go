package emmet

// htmlSnippets maps element aliases to the abbreviation they stand for.
var htmlSnippets = map[string]string{
	"!":    "!!!+doc",
	"!!!":  "{<!DOCTYPE html>}",
	"doc":  "html[lang=en]>(head>meta[charset=UTF-8]+meta:vp+title{${1:Document}})+body",
	"c":    "{<!-- ${1} -->}",
	"a":    "a[href]",
	"a:blank": "a[href='http://${1}' target=_blank rel='noopener noreferrer']",
	"a:link":  "a[href='http://${1}']",
	"a:mail":  "a[href='mailto:${1}']",
	"a:tel":   "a[href='tel:+${1}']",
	"abbr":    "abbr[title]",
	"base":    "base[href]/",
	"br":      "br/",
	"hr":      "hr/",
	"link":    "link[rel=stylesheet href]/",
	"link:css": "link[rel=stylesheet href=${1:style}.css]/",
	"link:favicon": "link[rel='shortcut icon' type=image/x-icon href=${1:favicon.ico}]/",
	"meta:utf": "meta[http-equiv=Content-Type content='text/html;charset=UTF-8']/",
	"meta:vp":  "meta[name=viewport content='width=device-width, initial-scale=1.0']/",
	"script:src": "script[src]",
	"img":      "img[src alt]/",
	"iframe":   "iframe[src frameborder=0]",
	"embed":    "embed[src type]/",
	"object":   "object[data type]",
	"form":     "form[action]",
	"form:get": "form[action method=get]",
	"form:post": "form[action method=post]",
	"label":    "label[for]",
	"input":    "input[type=${1:text}]/",
	"inp":      "input[name=${1} id=${1}]/",
	"input:hidden": "input[type=hidden name]/",
	"input:h":  "input[type=hidden name]/",
	"input:text": "input[type=text name id]/",
	"input:t":  "input[type=text name id]/",
	"input:search": "input[type=search name id]/",
	"input:email": "input[type=email name id]/",
	"input:url": "input[type=url name id]/",
	"input:password": "input[type=password name id]/",
	"input:p":  "input[type=password name id]/",
	"input:checkbox": "input[type=checkbox name id]/",
	"input:c":  "input[type=checkbox name id]/",
	"input:radio": "input[type=radio name id]/",
	"input:r":  "input[type=radio name id]/",
	"input:file": "input[type=file name id]/",
	"input:f":  "input[type=file name id]/",
	"input:submit": "input[type=submit value]/",
	"input:s":  "input[type=submit value]/",
	"input:button": "input[type=button value]/",
	"input:b":  "input[type=button value]/",
	"select":   "select[name id]",
	"option":   "option[value]",
	"textarea": "textarea[name id cols=30 rows=10]",
	"video":    "video[src]",
	"audio":    "audio[src]",
	"source":   "source[src type]/",
	"btn":      "button",
	"btn:s":    "button[type=submit]",
	"btn:r":    "button[type=reset]",
	"btn:d":    "button[disabled]",
	"bq":       "blockquote",
	"fst":      "fieldset",
	"fig":      "figure",
	"figc":     "figcaption",
	"pic":      "picture",
	"ftr":      "footer",
	"hdr":      "header",
	"sect":     "section",
	"art":      "article",
	"str":      "strong",
	"emb":      "embed[src type]/",
	"out":      "output",
	"det":      "details",
	"cap":      "caption",
	"colg":     "colgroup",
	"opt":      "option[value]",
	"optg":     "optgroup",
	"tarea":    "textarea[name id cols=30 rows=10]",
	"leg":      "legend",
	"prog":     "progress",
	"ol+":      "ol>li",
	"ul+":      "ul>li",
	"dl+":      "dl>dt+dd",
	"map+":     "map>area",
	"table+":   "table>tr>td",
	"tr+":      "tr>td",
	"select+":  "select>option",
	"optg+":    "optgroup>option",
	"pic+":     "picture>source:srcset+img",
	"source:srcset": "source[srcset media]/",
}

// inlineElements are laid out on the same line as their siblings.
var inlineElements = setOf(
	"a", "abbr", "acronym", "applet", "b", "basefont", "bdo", "big", "br", "button",
	"cite", "code", "del", "dfn", "em", "font", "i", "iframe", "img", "input", "ins",
	"kbd", "label", "map", "object", "q", "s", "samp", "select", "small", "span",
	"strike", "strong", "sub", "sup", "textarea", "tt", "u", "var",
)

// voidElements never have a closing tag.
var voidElements = setOf(
	"area", "base", "br", "col", "command", "embed", "hr", "img", "input", "keygen",
	"link", "meta", "param", "source", "track", "wbr",
)

func setOf(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, it := range items {
		m[it] = true
	}
	return m
}

// expandSnippets replaces alias elements with the tree of their snippet.
// active holds the aliases currently being expanded so that a snippet like
// "a" -> "a[href]" does not recurse into itself.
func expandSnippets(nodes []*Node, active map[string]bool) ([]*Node, error) {
	out := make([]*Node, 0, len(nodes))
	for _, n := range nodes {
		kids, err := expandSnippets(n.Children, active)
		if err != nil {
			return nil, err
		}
		n.Children = kids
		src, ok := htmlSnippets[n.Name]
		if n.Group || !ok || active[n.Name] {
			out = append(out, n)
			continue
		}
		tree, err := parseMarkup(src)
		if err != nil {
			return nil, err
		}
		active[n.Name] = true
		tree, err = expandSnippets(tree, active)
		delete(active, n.Name)
		if err != nil {
			return nil, err
		}
		out = append(out, mergeSnippet(n, tree)...)
	}
	return out, nil
}

// mergeSnippet carries what the user typed on the alias element over to the
// snippet tree: attributes go to the first element, text and children to the
// innermost last element, and a repeat wraps the whole snippet.
func mergeSnippet(user *Node, tree []*Node) []*Node {
	if target := firstElement(tree); target != nil {
		for _, a := range user.Attributes {
			if a.Name == "class" && !a.Expr {
				target.addClass(a.Value)
				continue
			}
			target.setAttribute(a.Name, a.Value, a.Expr)
		}
		if user.SelfClose {
			target.SelfClose = true
		}
	}
	if deepest := deepestLastElement(tree); deepest != nil {
		if user.HasText {
			deepest.Text += user.Text
			deepest.HasText = true
			deepest.SelfClose = false
		}
		if len(user.Children) > 0 {
			deepest.Children = append(deepest.Children, user.Children...)
			deepest.SelfClose = false
		}
	}
	if user.Repeat > 0 {
		return []*Node{{Group: true, Repeat: user.Repeat, Children: tree}}
	}
	return tree
}

func firstElement(nodes []*Node) *Node {
	for _, n := range nodes {
		if n.Group {
			if e := firstElement(n.Children); e != nil {
				return e
			}
			continue
		}
		if !n.isText() {
			return n
		}
	}
	return nil
}

func deepestLastElement(nodes []*Node) *Node {
	for i := len(nodes) - 1; i >= 0; i-- {
		n := nodes[i]
		if n.isText() {
			continue
		}
		if d := deepestLastElement(n.Children); d != nil {
			return d
		}
		if !n.Group {
			return n
		}
	}
	return nil
}
