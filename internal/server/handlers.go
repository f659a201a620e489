package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/leapstack-labs/reposql/internal/engine"
	"github.com/leapstack-labs/reposql/internal/state"
	"github.com/leapstack-labs/reposql/pkg/ddl"
)

const defaultRunsLimit = 50

// parseRequest is the JSON form of a parse or score request. Plain-text
// bodies are taken as the document itself.
type parseRequest struct {
	SQL     string `json:"sql"`
	Dialect string `json:"dialect,omitempty"`
	Source  string `json:"source,omitempty"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type scoreResponse struct {
	Scores []ddl.Score `json:"scores"`
	Best   string      `json:"best,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleDialects(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"dialects": s.engine.Dialects()})
}

func (s *Server) handleParse(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readRequest(w, r)
	if !ok {
		return
	}

	res, err := s.engine.Parse(r.Context(), engine.Request{
		Source:  req.Source,
		Text:    req.SQL,
		Dialect: req.Dialect,
	})
	if errors.Is(err, engine.ErrUnknownDialect) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if err != nil {
		s.logger.Error("parse failed", slog.String("error", err.Error()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}

	status := http.StatusOK
	if errors.Is(res.Err, ddl.ErrNoApplicableDialect) {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, res)
}

func (s *Server) handleScore(w http.ResponseWriter, r *http.Request) {
	req, ok := s.readRequest(w, r)
	if !ok {
		return
	}

	resp := scoreResponse{Scores: s.engine.Score(req.SQL)}
	best := 0
	for _, sc := range resp.Scores {
		if sc.Keywords > best {
			best = sc.Keywords
			resp.Best = sc.ParserID
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultRunsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	runs, err := s.engine.History(r.Context(), limit)
	if err != nil {
		writeHistoryError(w, err)
		return
	}
	if runs == nil {
		runs = []*state.ParseRun{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": runs})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	run, err := s.engine.Run(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeHistoryError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, run)
}

// readRequest decodes a parse request from either a JSON body or a raw
// document body, with ?dialect= and ?source= overriding.
func (s *Server) readRequest(w http.ResponseWriter, r *http.Request) (parseRequest, bool) {
	defer func() { _ = r.Body.Close() }()
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "document too large"})
			return parseRequest{}, false
		}
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "failed to read request body"})
		return parseRequest{}, false
	}

	var req parseRequest
	if mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type")); mt == "application/json" {
		if err := json.Unmarshal(body, &req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request payload"})
			return parseRequest{}, false
		}
	} else {
		req.SQL = string(body)
	}

	q := r.URL.Query()
	if v := q.Get("dialect"); v != "" {
		req.Dialect = v
	}
	if v := q.Get("source"); v != "" {
		req.Source = v
	}
	if req.Source == "" {
		req.Source = "api"
	}

	if strings.TrimSpace(req.SQL) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "document is required"})
		return parseRequest{}, false
	}
	return req, true
}

func writeHistoryError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrHistoryDisabled), errors.Is(err, state.ErrRunNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: err.Error()})
	default:
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
