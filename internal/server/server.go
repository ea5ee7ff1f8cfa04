package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/muhammadidrees/raseed/internal/logger"
	"github.com/muhammadidrees/raseed/internal/render"
	"github.com/muhammadidrees/raseed/internal/service"
	"github.com/rs/zerolog"
)

// Server serves a live preview of the current invoice draft
type Server struct {
	svc    service.InvoiceService
	router *mux.Router
	log    zerolog.Logger
}

// New creates a preview server backed by the invoice service
func New(svc service.InvoiceService) *Server {
	s := &Server{
		svc:    svc,
		router: mux.NewRouter(),
		log:    logger.WithComponent("server"),
	}

	s.router.HandleFunc("/", s.handleDocument("html")).Methods(http.MethodGet)
	s.router.HandleFunc("/invoice.{format:pdf|html|txt}", s.handleFormat).Methods(http.MethodGet)
	s.router.HandleFunc("/api/invoice", s.handleDerived).Methods(http.MethodGet)
	s.router.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	s.router.Use(s.logRequests)

	return s
}

// Handler exposes the router
func (s *Server) Handler() http.Handler {
	return s.router
}

// ListenAndServe serves on addr until ctx is cancelled
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.ListenAndServe()
	}()

	s.log.Info().Str("addr", addr).Msg("preview server listening")

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Dur("took", time.Since(start)).
			Msg("request")
	})
}

func (s *Server) handleFormat(w http.ResponseWriter, r *http.Request) {
	s.handleDocument(mux.Vars(r)["format"])(w, r)
}

func (s *Server) handleDocument(format string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		renderer, err := render.ForFormat(format)
		if err != nil {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}

		// render into a buffer so errors can still change the status code
		var buf bytes.Buffer
		if err := s.svc.Render(r.Context(), &buf, format); err != nil {
			s.writeError(w, err)
			return
		}

		w.Header().Set("Content-Type", renderer.ContentType())
		_, _ = w.Write(buf.Bytes())
	}
}

func (s *Server) handleDerived(w http.ResponseWriter, r *http.Request) {
	doc, err := s.svc.Preview(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, doc.Invoice)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

type errorResponse struct {
	Error      string            `json:"error"`
	Violations map[string]string `json:"violations,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	var incomplete *service.IncompleteError
	if errors.As(err, &incomplete) {
		writeJSON(w, http.StatusConflict, errorResponse{
			Error:      service.ErrIncompleteRecord.Error(),
			Violations: incomplete.Violations,
		})
		return
	}

	s.log.Error().Err(err).Msg("failed to render invoice")
	writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
