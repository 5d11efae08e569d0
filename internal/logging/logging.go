// Summary: ANSI-styled logging for emmet-ls with a bound standard logger and
// configurable preview truncation. Safe for use from concurrent request handlers.
package logging

import (
	"fmt"
	"log"
	"sync/atomic"
	"unicode/utf8"
)

// ANSI color utilities shared across the server and CLI.
const (
	AnsiBgBlack = "\x1b[40m"
	AnsiGrey    = "\x1b[90m"
	AnsiCyan    = "\x1b[36m"
	AnsiGreen   = "\x1b[32m"
	AnsiRed     = "\x1b[31m"
	AnsiReset   = "\x1b[0m"
)

// AnsiBase is the default style: black background + grey foreground.
const AnsiBase = AnsiBgBlack + AnsiGrey

// std is swapped by Bind while requests may be logging.
var std atomic.Pointer[log.Logger]

// Bind sets the underlying standard logger to use for Logf. nil disables logging.
func Bind(l *log.Logger) { std.Store(l) }

// Logf prints a formatted message with a module prefix and base ANSI style.
func Logf(prefix, format string, args ...any) {
	l := std.Load()
	if l == nil {
		return
	}
	msg := fmt.Sprintf(format, args...)
	l.Print(AnsiBase + prefix + msg + AnsiReset)
}

var logPreviewLimit atomic.Int64 // 0 means unlimited

// SetLogPreviewLimit sets the maximum number of bytes logged for message
// previews. Set to 0 for unlimited.
func SetLogPreviewLimit(n int) {
	if n < 0 {
		n = 0
	}
	logPreviewLimit.Store(int64(n))
}

// PreviewForLog returns s truncated to the configured preview limit. The cut
// never splits a UTF-8 sequence, so documents with non-ASCII text stay
// readable in the log.
func PreviewForLog(s string) string {
	limit := int(logPreviewLimit.Load())
	if limit <= 0 || len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "…"
}
