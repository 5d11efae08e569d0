package lsp

import (
	"bufio"
	"encoding/json"
	"errors"
	"io"
	"log"
	"sync"
	"sync/atomic"
	"time"

	"emmetls/internal/abbrev"
	"emmetls/internal/emmet"
	"emmetls/internal/logging"
)

// ErrExitWithoutShutdown is returned by Run when the client sent exit
// before shutdown.
var ErrExitWithoutShutdown = errors.New("exit received before shutdown")

const (
	defaultConfigTimeout     = 2 * time.Second
	defaultSettingsCacheSize = 256
)

// ServerOptions configures a Server. Zero values select defaults.
type ServerOptions struct {
	Resolver          *abbrev.Resolver
	Engine            abbrev.Engine
	TriggerCharacters []string
	// ExcludeLanguages disables completion for these language ids in
	// addition to what the client settings exclude.
	ExcludeLanguages  []string
	SettingsCacheSize int
	ConfigTimeout     time.Duration
}

// Server implements a minimal LSP over stdio.
type Server struct {
	in     *bufio.Reader
	out    io.Writer
	outMu  sync.Mutex
	logger *log.Logger
	rpc    *logging.RPCLogger

	mu       sync.RWMutex
	docs     map[string]*document
	sess     *session
	shutdown bool

	resolver         *abbrev.Resolver
	engine           abbrev.Engine
	triggerChars     []string
	excludeLanguages map[string]bool
	cacheSize        int
	configTimeout    time.Duration

	handlers map[string]func(Request)

	nextID    atomic.Int64
	pendingMu sync.Mutex
	pending   map[string]chan clientResponse

	inflight sync.WaitGroup
	done     chan struct{}
	exited   bool
	exitErr  error
}

// NewServer wires a server reading requests from r and writing to w.
func NewServer(r io.Reader, w io.Writer, logger *log.Logger, opts ServerOptions) *Server {
	s := &Server{
		in:            bufio.NewReader(r),
		out:           w,
		logger:        logger,
		rpc:           logging.NewRPCLogger("lsp "),
		docs:          make(map[string]*document),
		resolver:      opts.Resolver,
		engine:        opts.Engine,
		triggerChars:  opts.TriggerCharacters,
		cacheSize:     opts.SettingsCacheSize,
		configTimeout: opts.ConfigTimeout,
		pending:       make(map[string]chan clientResponse),
		done:          make(chan struct{}),
	}
	if s.resolver == nil {
		res, err := abbrev.NewResolver(abbrev.Options{})
		if err != nil {
			logging.Logf("lsp ", "profile resolver: %v", err)
		}
		s.resolver = res
	}
	if s.engine == nil {
		s.engine = emmet.Engine{}
	}
	if s.cacheSize <= 0 {
		s.cacheSize = defaultSettingsCacheSize
	}
	if s.configTimeout <= 0 {
		s.configTimeout = defaultConfigTimeout
	}
	s.excludeLanguages = make(map[string]bool, len(opts.ExcludeLanguages))
	for _, id := range opts.ExcludeLanguages {
		s.excludeLanguages[id] = true
	}
	s.registerHandlers()
	return s
}

// Run serves until the input closes or the client sends exit.
// Notifications are handled in order on the read loop so that document
// edits apply sequentially; requests run concurrently.
func (s *Server) Run() error {
	defer func() {
		close(s.done)
		s.inflight.Wait()
	}()
	for {
		body, err := s.readMessage()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return err
		}
		s.rpc.Incoming(body)
		var req Request
		if err := json.Unmarshal(body, &req); err != nil {
			logging.Logf("lsp ", "invalid JSON: %v", err)
			continue
		}
		if req.Method == "" {
			s.deliverResponse(body)
			continue
		}
		if len(req.ID) == 0 {
			s.handle(req)
			if s.exited {
				return s.exitErr
			}
			continue
		}
		s.inflight.Add(1)
		go func() {
			defer s.inflight.Done()
			s.handle(req)
		}()
	}
}
