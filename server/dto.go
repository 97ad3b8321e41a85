package server

import (
	"github.com/katalvlaran/lvmaze/maze"
	"github.com/katalvlaran/lvmaze/template"
)

// SolveRequest is the body of POST /solve and POST /render. Zero dimensions
// fall back to the configured defaults and a missing template to
// template.Default.
type SolveRequest struct {
	Rows     int                `json:"rows"`
	Cols     int                `json:"cols"`
	Strategy string             `json:"strategy"`
	Prune    *bool              `json:"prune"`
	Template *template.Template `json:"template"`
}

// SolveResponse is the body returned by POST /solve.
type SolveResponse struct {
	RunID     string       `json:"runId"`
	Found     bool         `json:"found"`
	Path      []maze.Coord `json:"path"`
	Searched  int          `json:"searched"`
	Before    string       `json:"before"`
	After     string       `json:"after"`
	ElapsedMs float64      `json:"elapsedMs"`
	Cached    bool         `json:"cached"`
}

// RenderResponse is the body returned by POST /render.
type RenderResponse struct {
	Rendered string `json:"rendered"`
}

// HealthResponse is the body returned by GET /health.
type HealthResponse struct {
	Status string `json:"status"`
	Cache  string `json:"cache,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}
