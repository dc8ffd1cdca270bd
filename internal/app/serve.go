package app

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/specialistvlad/skilltree/internal/catalog"
	"github.com/specialistvlad/skilltree/internal/ctxlog"
	"github.com/specialistvlad/skilltree/internal/render"
	"github.com/specialistvlad/skilltree/internal/skillid"
)

const shutdownTimeout = 5 * time.Second

// Handler returns the HTTP API of serve mode. Every request recomputes the
// levels from the catalog source.
func (a *App) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", a.healthHandler)
	mux.HandleFunc("GET /levels", a.levelsHandler)
	mux.HandleFunc("GET /document", a.documentHandler)
	mux.HandleFunc("GET /skills/{id}", a.skillHandler)
	return mux
}

func (a *App) healthHandler(w http.ResponseWriter, r *http.Request) {
	a.logger.Debug("Health check endpoint hit.", "remote_addr", r.RemoteAddr, "path", r.URL.Path)
	w.WriteHeader(http.StatusOK)
	fmt.Fprintln(w, "OK")
}

func (a *App) levelsHandler(w http.ResponseWriter, r *http.Request) {
	ctx := ctxlog.WithLogger(r.Context(), a.logger)
	_, tree, err := a.build(ctx)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	body, err := json.Marshal(newLevelsResponse(a.skillSetID, tree))
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func (a *App) documentHandler(w http.ResponseWriter, r *http.Request) {
	ctx := ctxlog.WithLogger(r.Context(), a.logger)
	p, tree, err := a.build(ctx)
	if err != nil {
		a.writeError(w, r, err)
		return
	}

	var doc bytes.Buffer
	if err := render.Markdown(&doc, p, tree); err != nil {
		a.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", render.MarkdownContentType)
	_, _ = w.Write(doc.Bytes())
}

type skillResponse struct {
	ID         skillid.ID   `json:"id"`
	Title      string       `json:"title"`
	Level      *int         `json:"level"`
	Requires   []skillid.ID `json:"requires"`
	RequiredBy []skillid.ID `json:"required_by"`
}

// skillHandler reports where a single skill was placed. The id may be given
// in its anchor form, so links from the document resolve directly.
func (a *App) skillHandler(w http.ResponseWriter, r *http.Request) {
	id, err := skillid.Parse(r.PathValue("id"))
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	ctx := ctxlog.WithLogger(r.Context(), a.logger)
	p, tree, err := a.build(ctx)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	s, ok := p.Lookup(id)
	if !ok {
		a.writeError(w, r, fmt.Errorf("skill %d is not part of skill set %d: %w", id, a.skillSetID, catalog.ErrNotFound))
		return
	}

	resp := skillResponse{
		ID:         s.ID,
		Title:      s.Title,
		Requires:   p.Dependencies.RequiredSkills(id),
		RequiredBy: p.Dependencies.RequiringSkills(id),
	}
	if level, placed := tree.LevelOf(id); placed {
		resp.Level = &level
	}

	body, err := json.Marshal(resp)
	if err != nil {
		a.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(body)
}

func (a *App) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	if errors.Is(err, catalog.ErrNotFound) {
		status = http.StatusNotFound
	}
	a.logger.Error("Request failed.", "path", r.URL.Path, "status", status, "error", err)
	http.Error(w, err.Error(), status)
}

// Serve runs the HTTP server on the configured port until ctx is cancelled,
// then shuts it down gracefully.
func (a *App) Serve(ctx context.Context) error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", a.config.Port))
	if err != nil {
		return fmt.Errorf("failed to listen on port %d: %w", a.config.Port, err)
	}
	return a.serve(ctx, ln)
}

func (a *App) serve(ctx context.Context, ln net.Listener) error {
	logger := ctxlog.FromContext(ctx)
	srv := &http.Server{
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server starting.", "address", ln.Addr().String(), "skill_set", a.skillSetID)
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	logger.Info("Shutting down server...")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Debug("Server shut down gracefully.")
	return nil
}
