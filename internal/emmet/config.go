// Summary: Expansion configuration shared by the markup and stylesheet pipelines.
package emmet

// Type selects the abbreviation grammar used by Parse.
type Type int

const (
	// Markup expands element trees (HTML, JSX, XML-like output).
	Markup Type = iota
	// Stylesheet expands property declarations (CSS, SCSS).
	Stylesheet
)

func (t Type) String() string {
	if t == Stylesheet {
		return "stylesheet"
	}
	return "markup"
}

// FieldOutput renders a tab stop with an optional placeholder text.
type FieldOutput func(index int, placeholder string) string

// TextOutput transforms literal output text, e.g. to escape snippet syntax.
type TextOutput func(text string) string

// Config controls both parsing and rendering.
type Config struct {
	Type   Type
	Syntax string // html, jsx, css, scss
	JSX    bool
	Field  FieldOutput
	Text   TextOutput
	Indent string
}

// ResolveConfig fills unset fields with defaults.
func ResolveConfig(c Config) Config {
	if c.Syntax == "" {
		switch {
		case c.Type == Stylesheet:
			c.Syntax = "css"
		case c.JSX:
			c.Syntax = "jsx"
		default:
			c.Syntax = "html"
		}
	}
	if c.Field == nil {
		c.Field = plainField
	}
	if c.Text == nil {
		c.Text = plainText
	}
	if c.Indent == "" {
		c.Indent = "\t"
	}
	return c
}

func plainField(_ int, placeholder string) string { return placeholder }

func plainText(s string) string { return s }
