package loadlog

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/civicradar/issueradar/internal/corpus"
)

// RegisterRoutes mounts load-history endpoints under /api/loads.
func RegisterRoutes(r chi.Router, store *Store) {
	r.Route("/api/loads", func(r chi.Router) {
		r.Get("/", handleListCycles(store))
		r.Get("/{id}", handleGetCycle(store))
		r.Get("/{id}/rejections", handleRejections(store))
	})
}

func handleListCycles(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit := 0
		if v := r.URL.Query().Get("limit"); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				limit = n
			}
		}

		cycles, err := store.ListCycles(r.Context(), limit)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if cycles == nil {
			cycles = []Cycle{}
		}

		writeJSON(w, http.StatusOK, cycles)
	}
}

func handleGetCycle(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cycle, err := store.GetCycle(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, cycle)
	}
}

func handleRejections(store *Store) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if _, err := store.GetCycle(r.Context(), id); err != nil {
			http.Error(w, "not found", http.StatusNotFound)
			return
		}

		rejections, err := store.Rejections(r.Context(), id)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if rejections == nil {
			rejections = []corpus.Rejection{}
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"cycleId":    id,
			"rejections": rejections,
		})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
