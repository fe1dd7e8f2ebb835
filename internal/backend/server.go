// Package backend serves the /chat endpoint the portfolio talks to.
package backend

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/san-kum/termfolio/internal/storage"
	"go.uber.org/zap"
)

const maxBodyBytes = 64 << 10

// Store is the persistence the server needs.
type Store interface {
	SaveMessage(ctx context.Context, role, content string) (int64, error)
	Messages(ctx context.Context, limit int) ([]storage.Message, error)
	CachedReply(ctx context.Context, message string) (string, error)
	SaveCache(ctx context.Context, message, reply string) error
}

type Server struct {
	store     Store
	responder Responder
	log       *zap.Logger
}

func NewServer(store Store, responder Responder, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{store: store, responder: responder, log: log}
}

type chatRequest struct {
	Message string `json:"message"`
}

type chatResponse struct {
	Reply string `json:"reply"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// Handler returns the routed, CORS-wrapped handler.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /chat", s.handleChat)
	mux.HandleFunc("GET /messages", s.handleMessages)
	return s.logRequests(cors(mux))
}

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	var req chatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "message is required"})
		return
	}

	ctx := r.Context()
	if _, err := s.store.SaveMessage(ctx, "user", req.Message); err != nil {
		s.log.Error("save user message", zap.Error(err))
	}

	reply := s.reply(ctx, req.Message)

	if _, err := s.store.SaveMessage(ctx, "assistant", reply); err != nil {
		s.log.Error("save assistant message", zap.Error(err))
	}
	writeJSON(w, http.StatusOK, chatResponse{Reply: reply})
}

// reply serves from the cache when possible. Only model answers are cached.
func (s *Server) reply(ctx context.Context, message string) string {
	cached, err := s.store.CachedReply(ctx, message)
	switch {
	case err == nil:
		s.log.Debug("cache hit", zap.Int("len", len(message)))
		return cached
	case !errors.Is(err, storage.ErrNotFound):
		s.log.Warn("cache lookup failed", zap.Error(err))
	}

	answer, err := s.responder.Respond(ctx, message)
	if err != nil {
		s.log.Warn("responder failed", zap.Error(err))
		return Unavailable
	}
	if err := s.store.SaveCache(ctx, message, answer); err != nil {
		s.log.Warn("cache write failed", zap.Error(err))
	}
	return answer
}

func (s *Server) handleMessages(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "limit must be a non-negative integer"})
			return
		}
		limit = n
	}
	msgs, err := s.store.Messages(r.Context(), limit)
	if err != nil {
		s.log.Error("list messages", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "could not load messages"})
		return
	}
	writeJSON(w, http.StatusOK, msgs)
}

// cors allows any origin, method and header, and answers preflight
// requests itself.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		origin := r.Header.Get("Origin")
		if origin == "" {
			h.Set("Access-Control-Allow-Origin", "*")
		} else {
			// credentials are allowed, which forbids a literal "*"
			h.Set("Access-Control-Allow-Origin", origin)
			h.Set("Access-Control-Allow-Credentials", "true")
			h.Add("Vary", "Origin")
		}
		if r.Method == http.MethodOptions {
			methods := r.Header.Get("Access-Control-Request-Method")
			if methods == "" {
				methods = "GET, POST, OPTIONS"
			}
			headers := r.Header.Get("Access-Control-Request-Headers")
			if headers == "" {
				headers = "*"
			}
			h.Set("Access-Control-Allow-Methods", methods)
			h.Set("Access-Control-Allow-Headers", headers)
			h.Set("Access-Control-Max-Age", "600")
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)),
			zap.String("request_id", r.Header.Get("X-Request-ID")),
		)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen %s: %w", addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	errc := make(chan error, 1)
	go func() { errc <- srv.Serve(ln) }()
	s.log.Info("backend listening", zap.String("addr", ln.Addr().String()))

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		<-errc
		return nil
	}
}
