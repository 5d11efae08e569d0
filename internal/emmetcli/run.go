// Summary: emmet CLI runner; reads abbreviations from args or stdin, expands
// them for the selected language profile and prints a short summary to stderr.
package emmetcli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"emmetls/internal/abbrev"
	"emmetls/internal/appconfig"
	"emmetls/internal/emmet"
)

var (
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

// Options control a CLI invocation. Flags are parsed by the caller.
type Options struct {
	// Language is the document language id used to pick the profile.
	Language string
	// Snippet keeps LSP tab stops in the output instead of plain text.
	Snippet bool
	Config  appconfig.Options
}

// Run expands every abbreviation given on the command line or stdin.
func Run(args []string, opts Options, stdin io.Reader, stdout, stderr io.Writer) error {
	cfg := appconfig.Load(nil, opts.Config)
	resolver, err := abbrev.NewResolver(abbrev.Options{
		StylesheetLanguages: cfg.StylesheetLanguages,
		JSXLanguages:        cfg.JSXLanguages,
		Indent:              cfg.Indent,
		CacheSize:           cfg.ProfileCacheSize,
	})
	if err != nil {
		fmt.Fprintln(stderr, errorStyle.Render(err.Error()))
		return err
	}
	return RunWithResolver(args, opts, resolver, stdin, stdout, stderr)
}

// RunWithResolver executes the CLI flow with an already-built resolver.
// Useful for testing and embedding.
func RunWithResolver(args []string, opts Options, resolver *abbrev.Resolver, stdin io.Reader, stdout, stderr io.Writer) error {
	inputs, err := readInput(stdin, args)
	if err != nil {
		fmt.Fprintln(stderr, errorStyle.Render(err.Error()))
		return err
	}
	lang := strings.TrimSpace(opts.Language)
	if lang == "" {
		lang = "html"
	}
	profile := resolver.Resolve(lang)
	printProfileInfo(stderr, lang, profile)

	expand := abbrev.ExpandPlain
	if opts.Snippet {
		expand = abbrev.Expand
	}
	var engine emmet.Engine
	for i, in := range inputs {
		out, err := expand(engine, in, profile)
		if err != nil {
			fmt.Fprintln(stderr, errorStyle.Render("emmet: "+err.Error()))
			return err
		}
		if i > 0 {
			fmt.Fprintln(stdout)
		}
		fmt.Fprintln(stdout, out)
	}
	return nil
}

// readInput collects abbreviations: each argument, then each non-empty line
// of stdin when stdin is not a terminal.
func readInput(stdin io.Reader, args []string) ([]string, error) {
	var inputs []string
	for _, a := range args {
		if a = strings.TrimSpace(a); a != "" {
			inputs = append(inputs, a)
		}
	}
	if fi, err := os.Stdin.Stat(); err == nil && (fi.Mode()&os.ModeCharDevice) == 0 {
		sc := bufio.NewScanner(stdin)
		for sc.Scan() {
			if line := strings.TrimSpace(sc.Text()); line != "" {
				inputs = append(inputs, line)
			}
		}
		if err := sc.Err(); err != nil {
			return nil, fmt.Errorf("emmet: read stdin: %w", err)
		}
	}
	if len(inputs) == 0 {
		return nil, fmt.Errorf("emmet: no input provided; pass an abbreviation as an argument or via stdin")
	}
	return inputs, nil
}

// printProfileInfo writes the language/profile line to stderr.
func printProfileInfo(errw io.Writer, lang string, p abbrev.Profile) {
	family := "markup"
	if p.Family == emmet.Stylesheet {
		family = "stylesheet"
	}
	fmt.Fprintln(errw, infoStyle.Render(fmt.Sprintf("lang=%s family=%s jsx=%t", lang, family, p.JSX)))
}
