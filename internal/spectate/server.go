package spectate

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"nhooyr.io/websocket"

	"github.com/plus3/blockfall/internal/loop"
)

const pingInterval = 15 * time.Second

// StatsFunc returns the current frame loop statistics.
type StatsFunc func() *loop.SchedulerStats

type Handler struct {
	hub     *Hub
	stats   StatsFunc
	origins []string
	logger  zerolog.Logger
}

type HandlerOption func(*Handler)

// WithStats enables the /stats endpoint.
func WithStats(fn StatsFunc) HandlerOption {
	return func(h *Handler) {
		h.stats = fn
	}
}

// WithOrigins lists host patterns allowed to open cross-origin websockets.
func WithOrigins(patterns ...string) HandlerOption {
	return func(h *Handler) {
		h.origins = append(h.origins, patterns...)
	}
}

func NewHandler(hub *Hub, logger zerolog.Logger, opts ...HandlerOption) *Handler {
	h := &Handler{hub: hub, logger: logger}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Group(func(r chi.Router) {
		r.Use(middleware.Timeout(15 * time.Second))
		r.Get("/health", h.health)
		r.Get("/state", h.state)
		r.Get("/stats", h.schedulerStats)
	})
	r.Get("/ws", h.stream)
}

// NewRouter returns a router serving h with request logging and panic
// recovery.
func NewRouter(h *Handler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(h.logger))
	r.Use(middleware.Recoverer)
	h.RegisterRoutes(r)
	return r
}

func requestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Debug().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", ww.Status()).
				Dur("took", time.Since(start)).
				Str("request_id", middleware.GetReqID(r.Context())).
				Msg("request")
		})
	}
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":      "ok",
		"subscribers": h.hub.Subscribers(),
	})
}

func (h *Handler) state(w http.ResponseWriter, r *http.Request) {
	data, ok := h.hub.Latest()
	if !ok {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "no game yet"})
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (h *Handler) schedulerStats(w http.ResponseWriter, r *http.Request) {
	if h.stats == nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "stats disabled"})
		return
	}
	writeJSON(w, http.StatusOK, h.stats())
}

// stream pushes every published snapshot to the client as a text frame.
// Messages from the client are discarded.
func (h *Handler) stream(w http.ResponseWriter, r *http.Request) {
	c, err := websocket.Accept(w, r, &websocket.AcceptOptions{OriginPatterns: h.origins})
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket accept")
		return
	}
	defer c.Close(websocket.StatusNormalClosure, "bye")

	ctx := c.CloseRead(r.Context())
	ch, latest := h.hub.Subscribe()
	defer h.hub.Unsubscribe(ch)

	h.logger.Info().Str("remote", r.RemoteAddr).Msg("spectator connected")
	defer h.logger.Info().Str("remote", r.RemoteAddr).Msg("spectator disconnected")

	if latest != nil {
		if err := c.Write(ctx, websocket.MessageText, latest); err != nil {
			return
		}
	}

	ping := time.NewTicker(pingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-ch:
			if !ok {
				return
			}
			if err := c.Write(ctx, websocket.MessageText, msg); err != nil {
				return
			}
		case <-ping.C:
			if err := c.Ping(ctx); err != nil {
				return
			}
		}
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Server runs the spectator endpoints on addr until its context ends.
type Server struct {
	srv    *http.Server
	logger zerolog.Logger
}

func NewServer(addr string, h *Handler) *Server {
	return &Server{
		srv: &http.Server{
			Addr:              addr,
			Handler:           NewRouter(h),
			ReadHeaderTimeout: 5 * time.Second,
		},
		logger: h.logger,
	}
}

// Run listens until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errc := make(chan error, 1)
	go func() {
		s.logger.Info().Str("addr", s.srv.Addr).Msg("spectator server listening")
		errc <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Serve starts a spectator server for hub on addr in the background. It stops
// when ctx is cancelled; failures are logged.
func Serve(ctx context.Context, addr string, hub *Hub, logger zerolog.Logger, opts ...HandlerOption) *Server {
	srv := NewServer(addr, NewHandler(hub, logger, opts...))
	go func() {
		if err := srv.Run(ctx); err != nil {
			logger.Error().Err(err).Str("addr", addr).Msg("spectator server failed")
		}
	}()
	return srv
}
