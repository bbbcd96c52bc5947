package cli

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/listviz/listviz/pkg/errors"
	"github.com/listviz/listviz/pkg/hashtable"
	"github.com/listviz/listviz/pkg/observability"
	"github.com/listviz/listviz/pkg/render"
)

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr    string
		noCache bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve graphs over HTTP",
		Long: `Start an HTTP server that stores DOT graphs and renders them on demand.

Endpoints:
  GET  /healthz              liveness probe
  POST /graphs               store a DOT document, returns {"id": "..."}
  GET  /graphs/{id}          fetch the stored DOT source
  GET  /graphs/{id}/render   render to ?format= (svg, png, dot)`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Serve.Addr
			}
			return c.runServe(cmd, addr, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", DefaultConfig().Serve.Addr, "listen address")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "render without the artifact cache")

	return cmd
}

func (c *CLI) runServe(cmd *cobra.Command, addr string, noCache bool) error {
	ctx := cmd.Context()

	renderer, closeCache := c.newRenderer(ctx, noCache)
	defer func() { _ = closeCache() }()

	store, err := newGraphStore()
	if err != nil {
		return err
	}

	srv := &server{
		logger:   c.Logger,
		store:    store,
		renderer: renderer,
		maxBody:  c.Config.Serve.MaxBody,
	}

	httpSrv := &http.Server{
		Addr:              addr,
		Handler:           srv.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- httpSrv.ListenAndServe()
	}()

	printInfo("Listening on %s", StyleHighlight.Render(addr))

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			c.Logger.Warn("Shutdown incomplete", "err", err)
		}
		return ctx.Err()
	case err := <-errCh:
		if err != nil && err != http.ErrServerClosed {
			return errors.Wrap(errors.ErrCodeInternal, err, "serve on %s", addr)
		}
		return nil
	}
}

// ============================================================================
// Graph store
// ============================================================================

// graphStore holds uploaded DOT documents keyed by id.
type graphStore struct {
	mu     sync.Mutex
	graphs *hashtable.Table[string, string]
}

func newGraphStore() (*graphStore, error) {
	t, err := hashtable.New[string, string](hashtable.Strings())
	if err != nil {
		return nil, err
	}
	return &graphStore{graphs: t}, nil
}

// Put stores dot under a fresh id and returns the id.
func (s *graphStore) Put(dot string) (string, error) {
	id := uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, err := s.graphs.Insert(id, dot); err != nil {
		return "", err
	}
	return id, nil
}

// Get returns the DOT source stored under id.
func (s *graphStore) Get(id string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.graphs.Lookup(id)
}

// ============================================================================
// HTTP server
// ============================================================================

type server struct {
	logger   *log.Logger
	store    *graphStore
	renderer render.Renderer
	maxBody  int64
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Post("/graphs", s.handleCreateGraph)
	r.Get("/graphs/{id}", s.handleGetGraph)
	r.Get("/graphs/{id}/render", s.handleRenderGraph)

	return r
}

// requestLogger logs each request and reports it to the HTTP hooks.
func (s *server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimw.NewWrapResponseWriter(w, r.ProtoMajor)

		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)
		next.ServeHTTP(ww, r.WithContext(withLogger(r.Context(), s.logger)))

		duration := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), duration)
		s.logger.Debug("Request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", duration.Round(time.Millisecond),
		)
	})
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleCreateGraph(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, s.maxBody))
	if err != nil {
		writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		return
	}

	if err := render.Validate(string(body)); err != nil {
		writeError(w, http.StatusBadRequest, errors.UserMessage(err))
		return
	}

	id, err := s.store.Put(string(body))
	if err != nil {
		writeError(w, http.StatusInternalServerError, errors.UserMessage(err))
		return
	}

	loggerFromContext(r.Context()).Debug("Stored graph", "id", id, "bytes", len(body))
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *server) handleGetGraph(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	dot, ok := s.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "graph not found")
		return
	}

	w.Header().Set("Content-Type", render.DOT.MIME())
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, dot)
}

func (s *server) handleRenderGraph(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	dot, ok := s.store.Get(id)
	if !ok {
		writeError(w, http.StatusNotFound, "graph not found")
		return
	}

	format := render.SVG
	if q := r.URL.Query().Get("format"); q != "" {
		var err error
		if format, err = render.ParseFormat(q); err != nil {
			writeError(w, http.StatusBadRequest, errors.UserMessage(err))
			return
		}
	}

	data, err := s.renderer.Render(r.Context(), dot, format)
	if err != nil {
		loggerFromContext(r.Context()).Debug("Render failed",
			"id", id, "chain", errors.Chain(err))
		writeError(w, http.StatusInternalServerError, errors.UserMessage(err))
		return
	}

	w.Header().Set("Content-Type", format.MIME())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
