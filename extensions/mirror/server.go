package mirror

import (
	"net"
	"net/http"
	"os"
	"sync"

	"github.com/asfaload/mirror-fileserver/extensions/log"
	"github.com/sagernet/sing/common"
	E "github.com/sagernet/sing/common/exceptions"
	M "github.com/sagernet/sing/common/metadata"
	"github.com/sirupsen/logrus"
)

const DefaultHost = "127.0.0.1"

// Server serves a mirror tree over HTTP on the loopback interface.
type Server struct {
	addr       M.Socksaddr
	root       string
	translator Translator
	logger     logrus.FieldLogger
	handler    http.Handler

	listener   net.Listener
	httpServer *http.Server
}

// NewServer creates a server for port. Unless WithRoot is given, the working
// directory at the time of the call is served.
func NewServer(port uint16, options ...Option) (*Server, error) {
	s := &Server{
		addr: M.ParseSocksaddrHostPort(DefaultHost, port),
	}
	for _, option := range options {
		option(s)
	}
	if s.root == "" {
		root, err := os.Getwd()
		if err != nil {
			return nil, E.Cause(err, "get working directory")
		}
		s.root = root
	}
	if s.translator == nil {
		s.translator = RootTranslator(s.root)
	}
	if s.logger == nil {
		s.logger = log.NewLogger("mirror")
	}
	s.handler = &accessLogHandler{
		logger:     s.logger,
		translator: s.translator,
		upstream:   http.FileServer(NewFileSystem(s.translator)),
	}
	return s, nil
}

func (s *Server) Root() string {
	return s.root
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// Addr returns the bound address, or nil before Start.
func (s *Server) Addr() net.Addr {
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Start binds the listener and serves in the background.
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.addr.String())
	if err != nil {
		return E.Cause(err, "listen ", s.addr)
	}
	s.listener = &closeOnceListener{Listener: listener}
	s.httpServer = &http.Server{
		Handler:  s.handler,
		ErrorLog: log.NewStdLogger(s.logger),
	}
	s.logger.Info("serving ", s.root, " at http://", listener.Addr())
	go s.loopIn()
	return nil
}

func (s *Server) loopIn() {
	err := s.httpServer.Serve(s.listener)
	if err == nil || err == http.ErrServerClosed || E.IsClosed(err) {
		return
	}
	s.logger.Warn(E.Cause(err, "serve"))
}

// Close stops accepting connections and releases the listening socket.
func (s *Server) Close() error {
	if s.httpServer == nil {
		return nil
	}
	return common.Close(s.httpServer, s.listener)
}

// closeOnceListener lets Close release the socket even if Serve has not
// started tracking the listener yet.
type closeOnceListener struct {
	net.Listener
	once sync.Once
	err  error
}

func (l *closeOnceListener) Close() error {
	l.once.Do(func() {
		l.err = l.Listener.Close()
	})
	return l.err
}

type accessLogHandler struct {
	logger     logrus.FieldLogger
	translator Translator
	upstream   http.Handler
}

func (h *accessLogHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	recorder := &statusRecorder{ResponseWriter: w}
	h.upstream.ServeHTTP(recorder, r)
	h.logger.WithFields(logrus.Fields{
		"remote": r.RemoteAddr,
		"file":   h.translator(r.URL.Path),
		"status": recorder.Status(),
		"bytes":  recorder.written,
	}).Info(r.Method, " ", r.URL.Path)
}

type statusRecorder struct {
	http.ResponseWriter
	status  int
	written int64
}

func (r *statusRecorder) WriteHeader(status int) {
	if r.status == 0 {
		r.status = status
	}
	r.ResponseWriter.WriteHeader(status)
}

func (r *statusRecorder) Write(p []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(p)
	r.written += int64(n)
	return n, err
}

func (r *statusRecorder) Status() int {
	if r.status == 0 {
		return http.StatusOK
	}
	return r.status
}
