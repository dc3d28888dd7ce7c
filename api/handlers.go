package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/streamvm/streamvm/vm"
)

func (s *Server) handleSession(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodPost:
		s.handleCreateSession(w, r)
	case http.MethodGet:
		s.handleListSessions(w, r)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	sess, err := s.sessions.CreateSession()
	if err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, SessionCreateResponse{SessionID: sess.ID, CreatedAt: sess.CreatedAt})
}

func (s *Server) handleListSessions(w http.ResponseWriter, r *http.Request) {
	ids := s.sessions.ListSessions()
	writeJSON(w, http.StatusOK, map[string]any{"sessions": ids, "count": len(ids)})
}

// handleSessionRoute dispatches /api/v1/session/{id}[/action].
func (s *Server) handleSessionRoute(w http.ResponseWriter, r *http.Request) {
	path := strings.TrimPrefix(r.URL.Path, "/api/v1/session/")
	parts := strings.SplitN(path, "/", 2)
	if parts[0] == "" {
		writeError(w, http.StatusBadRequest, "session ID required")
		return
	}
	sessionID := parts[0]

	if len(parts) == 1 {
		switch r.Method {
		case http.MethodGet:
			s.handleGetState(w, r, sessionID)
		case http.MethodDelete:
			s.handleDestroySession(w, r, sessionID)
		default:
			http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		}
		return
	}

	switch parts[1] {
	case "load":
		s.handleLoadProgram(w, r, sessionID)
	case "step":
		s.handleStep(w, r, sessionID)
	case "run":
		s.handleRun(w, r, sessionID)
	case "reset":
		s.handleReset(w, r, sessionID)
	case "output":
		s.handleGetOutput(w, r, sessionID)
	case "events":
		s.handleEvents(w, r, sessionID)
	default:
		writeError(w, http.StatusNotFound, "unknown action: "+parts[1])
	}
}

func (s *Server) handleDestroySession(w http.ResponseWriter, r *http.Request, id string) {
	if err := s.sessions.DestroySession(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleGetState(w http.ResponseWriter, r *http.Request, id string) {
	sess, err := s.sessions.GetSession(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, toStateResponse(sess.Service.State()))
}

func (s *Server) handleLoadProgram(w http.ResponseWriter, r *http.Request, id string) {
	sess, err := s.sessions.GetSession(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	var req LoadProgramRequest
	if err := readJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := sess.Service.LoadProgram(req.Source); err != nil {
		writeJSON(w, http.StatusOK, LoadProgramResponse{Success: false, Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, LoadProgramResponse{Success: true})
}

func (s *Server) handleStep(w http.ResponseWriter, r *http.Request, id string) {
	sess, err := s.sessions.GetSession(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	runErr := sess.Service.Step()
	writeRunResponse(w, sess, runErr)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request, id string) {
	sess, err := s.sessions.GetSession(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	var req RunRequest
	_ = readJSON(r, &req) // a body is optional for /run
	runErr := sess.Service.Run(req.MaxSteps)
	writeRunResponse(w, sess, runErr)
}

func (s *Server) handleReset(w http.ResponseWriter, r *http.Request, id string) {
	sess, err := s.sessions.GetSession(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	sess.Service.Reset()
	writeJSON(w, http.StatusOK, toStateResponse(sess.Service.State()))
}

func (s *Server) handleGetOutput(w http.ResponseWriter, r *http.Request, id string) {
	sess, err := s.sessions.GetSession(id)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, OutputResponse{Lines: sess.Service.Output()})
}

// handleEvents streams output lines for a session as Server-Sent Events.
func (s *Server) handleEvents(w http.ResponseWriter, r *http.Request, id string) {
	if _, err := s.sessions.GetSession(id); err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	flusher, ok := w.(http.Flusher)
	if !ok {
		writeError(w, http.StatusInternalServerError, "streaming unsupported")
		return
	}

	ch := s.broadcaster.Subscribe(id)
	defer s.broadcaster.Unsubscribe(ch)

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")
	w.WriteHeader(http.StatusOK)
	flusher.Flush()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", event.Line)
			flusher.Flush()
		}
	}
}

func writeRunResponse(w http.ResponseWriter, sess *Session, runErr error) {
	resp := RunResponse{State: toStateResponse(sess.Service.State())}
	if runErr != nil {
		resp.Error = runErr.Error()
	}
	writeJSON(w, http.StatusOK, resp)
}

func toStateResponse(snap vm.Snapshot) StateResponse {
	return StateResponse{
		Registers: snap.Registers,
		Sensors:   snap.Sensors,
		Stack:     snap.Stack,
		PC:        snap.PC,
		Halted:    snap.Halted,
		Steps:     snap.Steps,
		Video:     snap.Video,
	}
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: http.StatusText(status), Message: message, Code: status})
}

func readJSON(r *http.Request, v any) error {
	decoder := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20))
	return decoder.Decode(v)
}
