package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/drpcorg/octocore"
	"github.com/drpcorg/octocore/rdx"
)

type errorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

func writeError(w http.ResponseWriter, status int, err error) {
	resp := errorResponse{Error: err.Error()}
	var cmdErr *octocore.CommandError
	if errors.As(err, &cmdErr) {
		resp.Kind = cmdErr.Kind.String()
	}
	writeJSON(w, status, resp)
}

type createSessionResponse struct {
	Token     string `json:"token"`
	SessionId uint16 `json:"session_id"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sessionId, err := s.mintSession()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err)
		return
	}

	payload, registry := s.newDomain()
	state, err := octocore.NewState(sessionId, registry, payload, nil)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	token := newToken()
	s.storeState(token, state)
	writeJSON(w, http.StatusCreated, createSessionResponse{
		Token:     token,
		SessionId: uint16(sessionId),
	})
}

type runCommandRequest struct {
	Token     string         `json:"token"`
	CommandId int32          `json:"command_id"`
	Args      map[string]any `json:"args"`
}

type runCommandResponse struct {
	Ok bool `json:"ok"`
}

func (s *Server) handleRunCommand(w http.ResponseWriter, r *http.Request) {
	var req runCommandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	state, ok := s.lookupState(req.Token)
	if !ok {
		writeError(w, http.StatusNotFound, octocore.ErrStateError("unknown session token"))
		return
	}

	args := rdx.NewArgMap()
	for name, raw := range req.Args {
		args.Set(rdx.FieldHash(name), jsonToValue(raw))
	}
	cmd := octocore.FromArgs(octocore.CommandId(req.CommandId), args)

	if _, err := state.Run(cmd, true); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, runCommandResponse{Ok: true})
}

type tokenRequest struct {
	Token string `json:"token"`
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	state, ok := s.lookupState(req.Token)
	if !ok {
		writeError(w, http.StatusNotFound, octocore.ErrStateError("unknown session token"))
		return
	}
	if err := state.Undo(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, runCommandResponse{Ok: true})
}

func (s *Server) handleRedo(w http.ResponseWriter, r *http.Request) {
	var req tokenRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	state, ok := s.lookupState(req.Token)
	if !ok {
		writeError(w, http.StatusNotFound, octocore.ErrStateError("unknown session token"))
		return
	}
	if err := state.Redo(); err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, runCommandResponse{Ok: true})
}

type historyEntry struct {
	CommandId int32 `json:"command_id"`
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	state, ok := s.lookupState(token)
	if !ok {
		writeError(w, http.StatusNotFound, octocore.ErrStateError("unknown session token"))
		return
	}
	records := state.History()
	entries := make([]historyEntry, len(records))
	for i, rec := range records {
		entries[i] = historyEntry{CommandId: int32(rec.Id)}
	}
	writeJSON(w, http.StatusOK, entries)
}

// jsonToValue maps a decoded JSON scalar to the GenericValue kind that
// best matches it: JSON has no distinct integer type, so a float64 with
// no fractional part is treated as an i64 field, matching how a human
// hand-typing command arguments over HTTP would expect them to round
// trip.
func jsonToValue(raw any) rdx.GenericValue {
	switch v := raw.(type) {
	case string:
		return rdx.WrapString(v)
	case bool:
		return rdx.WrapBool(v)
	case float64:
		if v == float64(int64(v)) {
			return rdx.WrapI64(int64(v))
		}
		return rdx.WrapF64(v)
	default:
		return rdx.Unset()
	}
}
