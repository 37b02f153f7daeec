package server

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"path/filepath"

	"github.com/go-chi/chi/v5"

	"github.com/ConsultoriaImpulso/ZBE/internal/config"
	"github.com/ConsultoriaImpulso/ZBE/internal/export"
)

type Handler struct {
	logger  *slog.Logger
	exports *export.Service
	sources []config.Source
	outDir  string
}

func NewHandler(l *slog.Logger) *Handler {
	return &Handler{
		logger: l,
	}
}

func (h *Handler) NewLogWriter(w http.ResponseWriter, r *http.Request) *LogWriter {
	return NewLogWriter(h.logger, w, r)
}

func (h *Handler) HandleHealth() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		type res struct {
			Message string `json:"message"`
		}

		h.NewLogWriter(w, r).Write(Response{
			Status: http.StatusOK,
			Body:   res{Message: "ok"},
		})
	}
}

// HandleExport runs the full pipeline for every configured source and
// reports what was written.
func (h *Handler) HandleExport() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writer := h.NewLogWriter(w, r)

		result, err := h.exports.Run(r.Context(), h.sources)
		if err != nil {
			h.logger.Error("HandleExport: export run failed", "err", err)
			writer.WriteError(err)
			return
		}

		writer.Write(Response{
			Status: http.StatusOK,
			Body:   result,
		})
	}
}

// HandleListCollections reports the configured cities and whether their
// collection file has been generated yet.
func (h *Handler) HandleListCollections() http.HandlerFunc {
	type collection struct {
		City      string `json:"city"`
		Path      string `json:"path"`
		Generated bool   `json:"generated"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var collections []collection
		for _, src := range h.sources {
			path := filepath.Join(h.outDir, src.City+".geojson")
			_, err := os.Stat(path)
			collections = append(collections, collection{
				City:      src.City,
				Path:      path,
				Generated: err == nil,
			})
		}

		h.NewLogWriter(w, r).Write(Response{
			Status: http.StatusOK,
			Body:   collections,
		})
	}
}

// HandleGetCollection serves a generated per-city file. The city path
// parameter must match a configured source; the aggregate is reachable as
// the city "all".
func (h *Handler) HandleGetCollection() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		city := chi.URLParam(r, "city")
		writer := h.NewLogWriter(w, r)

		filename, ok := h.collectionFile(city)
		if !ok {
			writer.WriteError(&NotFoundError{
				error: fmt.Errorf("city %q is not configured", city),
				msg:   fmt.Sprintf("No collection for %s", city),
			})
			return
		}

		path := filepath.Join(h.outDir, filename)
		if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
			writer.WriteError(&NotFoundError{
				error: fmt.Errorf("collection file %s not generated yet", path),
				msg:   fmt.Sprintf("Collection for %s not generated yet", city),
			})
			return
		}

		w.Header().Set("Content-Type", "application/geo+json")
		http.ServeFile(w, r, path)
	}
}

func (h *Handler) collectionFile(city string) (string, bool) {
	if city == "all" {
		return export.AggregateFile, len(h.sources) > 1
	}

	for _, src := range h.sources {
		if src.City == city {
			return src.City + ".geojson", true
		}
	}

	return "", false
}

type NotFoundError struct {
	error
	msg string
}

func (e *NotFoundError) ServerErrorResponse() (int, string) {
	return http.StatusNotFound, e.msg
}
