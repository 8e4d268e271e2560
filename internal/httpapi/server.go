// Package httpapi exposes the guided task list to a browser page.
//
// The page renders the list and the walkthrough overlay from the View
// returned by every endpoint, and posts the overlay's callbacks back.
package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/rs/cors"

	"todotour/internal/export"
	"todotour/internal/guide"
	"todotour/internal/service"
	"todotour/internal/tasklist"
	"todotour/internal/tour"
)

// Options configures a Server.
type Options struct {
	// AllowedOrigins lists the page origins allowed by CORS.
	// Empty allows any origin.
	AllowedOrigins []string

	// Exporter handles POST /api/export. Nil disables the route.
	Exporter *export.Exporter

	// ExportList is the backend list name used by export.
	ExportList string

	// Logger receives request records. Nil discards.
	Logger *slog.Logger
}

// Server serves one Controller.
type Server struct {
	ctrl *guide.Controller
	opts Options
	log  *slog.Logger
}

// New creates a Server.
func New(ctrl *guide.Controller, opts Options) *Server {
	log := opts.Logger
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	if opts.ExportList == "" {
		opts.ExportList = export.DefaultListName
	}
	return &Server{ctrl: ctrl, opts: opts, log: log}
}

// Handler returns the routes wrapped in CORS handling.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	mux.HandleFunc("GET /api/state", s.handleState)
	mux.HandleFunc("POST /api/input", s.handleInput)
	mux.HandleFunc("POST /api/tasks", s.handleAdd)
	mux.HandleFunc("POST /api/tasks/{index}/toggle", s.withIndex(s.ctrl.ToggleTask))
	mux.HandleFunc("POST /api/tasks/{index}/edit", s.withIndex(s.ctrl.BeginEdit))
	mux.HandleFunc("DELETE /api/tasks/{index}", s.handleDelete)
	mux.HandleFunc("POST /api/draft", s.handleDraft)
	mux.HandleFunc("POST /api/save", func(w http.ResponseWriter, r *http.Request) {
		writeView(w, s.ctrl.SaveEdit())
	})
	mux.HandleFunc("POST /api/cancel", func(w http.ResponseWriter, r *http.Request) {
		writeView(w, s.ctrl.CancelEdit())
	})
	mux.HandleFunc("POST /api/tour/callback", s.handleCallback)
	if s.opts.Exporter != nil {
		mux.HandleFunc("POST /api/export", s.handleExport)
	}

	origins := s.opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type"},
	})
	return c.Handler(mux)
}

type textBody struct {
	Text *string `json:"text"`
}

func (s *Server) handleState(w http.ResponseWriter, r *http.Request) {
	writeView(w, s.ctrl.View())
}

func (s *Server) handleInput(w http.ResponseWriter, r *http.Request) {
	text, ok := decodeText(w, r, true)
	if !ok {
		return
	}
	writeView(w, s.ctrl.TypeInput(text))
}

// handleAdd adds the current input, or the body's text when given.
func (s *Server) handleAdd(w http.ResponseWriter, r *http.Request) {
	text, ok := decodeText(w, r, false)
	if !ok {
		return
	}
	if text != "" {
		s.ctrl.TypeInput(text)
	}
	writeView(w, s.ctrl.AddTask())
}

func (s *Server) handleDraft(w http.ResponseWriter, r *http.Request) {
	text, ok := decodeText(w, r, true)
	if !ok {
		return
	}
	writeView(w, s.ctrl.TypeDraft(text))
}

// handleDelete takes the page's answer to the confirmation prompt from
// the confirm query parameter.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	index, ok := pathIndex(w, r)
	if !ok {
		return
	}
	confirmed, err := strconv.ParseBool(r.URL.Query().Get("confirm"))
	if err != nil {
		http.Error(w, "confirm must be true or false", http.StatusBadRequest)
		return
	}
	writeView(w, s.ctrl.DeleteTask(index, tasklist.Answer(confirmed)))
}

func (s *Server) handleCallback(w http.ResponseWriter, r *http.Request) {
	var cb tour.Callback
	if err := json.NewDecoder(r.Body).Decode(&cb); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}
	writeView(w, s.ctrl.Callback(cb))
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	res, err := s.opts.Exporter.Export(r.Context(), s.opts.ExportList, s.ctrl.Tasks())
	if err != nil {
		s.log.Error("export failed", "list", s.opts.ExportList, "error", err)
		status := http.StatusBadGateway
		if errors.Is(err, service.ErrNotLoggedIn) || errors.Is(err, service.ErrNoOAuthClient) || errors.Is(err, service.ErrTokenRevoked) {
			status = http.StatusUnauthorized
		}
		http.Error(w, "export failed: "+err.Error(), status)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(res)
}

func (s *Server) withIndex(fn func(int) guide.View) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, ok := pathIndex(w, r)
		if !ok {
			return
		}
		writeView(w, fn(index))
	}
}

func pathIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		http.Error(w, "invalid task index", http.StatusBadRequest)
		return 0, false
	}
	return index, true
}

// decodeText reads {"text": "..."}. An empty body is accepted unless
// required is set.
func decodeText(w http.ResponseWriter, r *http.Request, required bool) (string, bool) {
	var body textBody
	// Chunked bodies report an unknown length; io.EOF means they were empty.
	if r.ContentLength != 0 {
		err := json.NewDecoder(r.Body).Decode(&body)
		if err != nil && !errors.Is(err, io.EOF) {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return "", false
		}
	}
	if body.Text == nil {
		if required {
			http.Error(w, "text is required", http.StatusBadRequest)
			return "", false
		}
		return "", true
	}
	return *body.Text, true
}

func writeView(w http.ResponseWriter, v guide.View) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, "encode error", http.StatusInternalServerError)
	}
}
