package server

import (
	"encoding/json"
	"net/http"

	"github.com/civicradar/issueradar/internal/issue"
	"github.com/civicradar/issueradar/internal/matcher"
)

const noCandidatesMessage = "No similar issues found in same category and pincode."

// handleFindSimilar runs a duplicate search against the live snapshot.
func (s *Server) handleFindSimilar(w http.ResponseWriter, r *http.Request) {
	var query issue.Query
	if err := json.NewDecoder(r.Body).Decode(&query); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	snap := s.manager.Current()
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, "corpus not loaded yet")
		return
	}

	result, err := s.matcher.FindSimilar(r.Context(), snap, query)
	if err != nil {
		if matcher.IsClientError(err) {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if result.NoCandidates {
		writeJSON(w, http.StatusOK, map[string]any{
			"message":        noCandidatesMessage,
			"similar_issues": []issue.Match{},
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"similar_issues": result.Matches,
	})
}

// handleReload rebuilds the corpus from the issue store and returns the
// resulting load report.
func (s *Server) handleReload(w http.ResponseWriter, r *http.Request) {
	report, err := s.manager.Reload(r.Context())
	if err != nil {
		writeError(w, http.StatusBadGateway, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, report)
}

// handleCorpusStats describes the live snapshot.
func (s *Server) handleCorpusStats(w http.ResponseWriter, r *http.Request) {
	snap := s.manager.Current()
	if snap == nil {
		writeError(w, http.StatusServiceUnavailable, "corpus not loaded yet")
		return
	}

	stats := map[string]any{
		"issues":     snap.Len(),
		"model":      snap.Model,
		"dimensions": snap.Dimensions(),
		"loadedAt":   snap.LoadedAt,
	}
	if report := s.manager.LastReport(); report != nil {
		stats["cycleId"] = report.CycleID
		stats["rejected"] = report.Rejected()
	}

	writeJSON(w, http.StatusOK, stats)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
