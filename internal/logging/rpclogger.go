package logging

// RPCLogger logs JSON-RPC traffic in both directions with truncated previews.
type RPCLogger struct {
	Prefix string
}

// NewRPCLogger creates an RPCLogger whose lines start with prefix.
func NewRPCLogger(prefix string) *RPCLogger {
	return &RPCLogger{Prefix: prefix}
}

// Incoming logs a message read from the client.
func (l *RPCLogger) Incoming(body []byte) {
	Logf(l.Prefix, "<- size=%d %s%s%s", len(body), AnsiCyan, PreviewForLog(string(body)), AnsiBase)
}

// Outgoing logs a message written to the client.
func (l *RPCLogger) Outgoing(body []byte) {
	Logf(l.Prefix, "-> size=%d %s%s%s", len(body), AnsiGreen, PreviewForLog(string(body)), AnsiBase)
}
