package api

import "time"

// SessionCreateResponse is returned by POST /api/v1/session.
type SessionCreateResponse struct {
	SessionID string    `json:"sessionId"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoadProgramRequest is the body of POST /api/v1/session/{id}/load.
type LoadProgramRequest struct {
	Source string `json:"source"`
}

// LoadProgramResponse reports whether assembly succeeded.
type LoadProgramResponse struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// RunRequest is the optional body of POST /api/v1/session/{id}/run.
type RunRequest struct {
	MaxSteps int `json:"maxSteps,omitempty"`
}

// StateResponse mirrors vm.Snapshot over the wire.
type StateResponse struct {
	Registers map[string]int64 `json:"registers"`
	Sensors   map[string]int64 `json:"sensors"`
	Stack     []int64          `json:"stack"`
	PC        int              `json:"pc"`
	Halted    bool             `json:"halted"`
	Steps     int              `json:"steps"`
	Video     *string          `json:"video"`
}

// RunResponse is returned by step/run endpoints.
type RunResponse struct {
	State StateResponse `json:"state"`
	Error string        `json:"error,omitempty"`
}

// OutputResponse is returned by GET /api/v1/session/{id}/output.
type OutputResponse struct {
	Lines []string `json:"lines"`
}

// ErrorResponse is the JSON body of every error response written by
// writeError. "Method not allowed" (405) responses are plain text.
type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
