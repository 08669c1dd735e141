package board

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/pathclip/pkg/errors"
	"github.com/matzehuels/pathclip/pkg/transfer"
)

// MaxPayloadSize bounds the body of a PUT request.
const MaxPayloadSize = 8 << 20

// Server exposes a Board over HTTP:
//
//	PUT    /boards/{name}       store a JSON payload (?ttl=10m)
//	GET    /boards/{name}       the entry as JSON
//	GET    /boards/{name}/text  the text flavor only
//	DELETE /boards/{name}       clear the board
//	GET    /healthz
type Server struct {
	board  Board
	logger *log.Logger
}

// NewServer serves b. A nil logger logs to log.Default.
func NewServer(b Board, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{board: b, logger: logger}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = io.WriteString(w, "ok\n")
	})
	r.Route("/boards/{name}", func(r chi.Router) {
		r.Put("/", s.put)
		r.Get("/", s.get)
		r.Get("/text", s.text)
		r.Delete("/", s.delete)
	})
	return r
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()
	s.logger.Info("board server listening", "addr", addr)

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start))
	})
}

func (s *Server) name(w http.ResponseWriter, r *http.Request) (string, bool) {
	name := chi.URLParam(r, "name")
	if err := errors.ValidateBoardName(name); err != nil {
		http.Error(w, errors.UserMessage(err), http.StatusBadRequest)
		return "", false
	}
	return name, true
}

func (s *Server) put(w http.ResponseWriter, r *http.Request) {
	name, ok := s.name(w, r)
	if !ok {
		return
	}
	var ttl time.Duration
	if raw := r.URL.Query().Get("ttl"); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d < 0 {
			http.Error(w, "invalid ttl", http.StatusBadRequest)
			return
		}
		ttl = d
	}

	var p transfer.Payload
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, MaxPayloadSize)).Decode(&p); err != nil {
		http.Error(w, "invalid payload", http.StatusBadRequest)
		return
	}
	if err := s.board.Put(r.Context(), name, p, ttl); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusCreated)
}

func (s *Server) get(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookup(w, r)
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(e)
}

func (s *Server) text(w http.ResponseWriter, r *http.Request) {
	e, ok := s.lookup(w, r)
	if !ok {
		return
	}
	text, ok := transfer.ExtractText(e.Payload)
	if !ok {
		http.Error(w, "board holds no text", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = io.WriteString(w, text)
}

func (s *Server) delete(w http.ResponseWriter, r *http.Request) {
	name, ok := s.name(w, r)
	if !ok {
		return
	}
	if err := s.board.Delete(r.Context(), name); err != nil {
		s.fail(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) lookup(w http.ResponseWriter, r *http.Request) (Entry, bool) {
	name, ok := s.name(w, r)
	if !ok {
		return Entry{}, false
	}
	e, found, err := s.board.Get(r.Context(), name)
	if err != nil {
		s.fail(w, err)
		return Entry{}, false
	}
	if !found {
		http.Error(w, "board is empty", http.StatusNotFound)
		return Entry{}, false
	}
	return e, true
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidBoard, errors.ErrCodeInvalidInput:
		status = http.StatusBadRequest
	}
	if status >= 500 {
		s.logger.Error("board request failed", "err", err)
	}
	http.Error(w, errors.UserMessage(err), status)
}
