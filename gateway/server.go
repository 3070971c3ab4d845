// Package gateway exposes an octocore.State's runtime surface over HTTP,
// grounded in the health-check-plus-router style of the ecosystem's chi
// servers. It is a thin demonstration of driving a State from a separate
// process, not a durable transport or persistence layer: state lives only
// in memory for the life of the server.
package gateway

import (
	"encoding/json"
	"net/http"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/drpcorg/octocore"
	"github.com/drpcorg/octocore/rdx"
)

// NewDomain builds a fresh domain payload and the command registry that
// drives it. Each call must return an independent payload instance;
// gateway sessions never share a payload.
type NewDomain func() (payload any, registry *octocore.CommandRegistry)

// Server is an in-memory registry of sessions, each an independent
// octocore.State, addressed by an opaque UUID token.
type Server struct {
	router    chi.Router
	newDomain NewDomain

	mu       sync.Mutex
	sessions map[string]*octocore.State
	nextSess uint32
}

// NewServer constructs a Server whose sessions are built by newDomain.
func NewServer(newDomain NewDomain) *Server {
	s := &Server{
		router:    chi.NewRouter(),
		newDomain: newDomain,
		sessions:  make(map[string]*octocore.State),
	}
	s.routes()
	return s
}

// ServeHTTP satisfies http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	s.router.Post("/sessions", s.handleCreateSession)
	s.router.Post("/commands", s.handleRunCommand)
	s.router.Post("/undo", s.handleUndo)
	s.router.Post("/redo", s.handleRedo)
	s.router.Get("/history", s.handleHistory)
}

// mintSession allocates the next 14-bit session id for a fresh State.
// Fails once the gateway has handed out more sessions than fit the
// session-id space (spec.md §3).
func (s *Server) mintSession() (rdx.SessionId, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := rdx.SessionId(s.nextSess)
	if !id.Valid() {
		return 0, octocore.ErrStateError("gateway has exhausted the 14-bit session id space")
	}
	s.nextSess++
	return id, nil
}

func (s *Server) lookupState(token string) (*octocore.State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.sessions[token]
	return st, ok
}

func (s *Server) storeState(token string, st *octocore.State) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[token] = st
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func newToken() string {
	return uuid.NewString()
}
