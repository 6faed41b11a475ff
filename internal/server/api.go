package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/scansec/scansec/internal/history"
	"github.com/scansec/scansec/internal/report"
)

// buildHandler wires all routes onto a new ServeMux, using method-prefixed
// patterns.
func buildHandler(s *Server) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/v1/health", s.handleHealth)
	mux.HandleFunc("POST /api/v1/scan", s.handleScan)
	mux.HandleFunc("GET /api/v1/scans", s.handleListScans)
	mux.HandleFunc("GET /api/v1/scans/{id}", s.handleGetScan)
	mux.HandleFunc("GET /api/v1/scans/{id}/export", s.handleExportScan)
	mux.HandleFunc("DELETE /api/v1/scans/{id}", s.handleDeleteScan)

	return mux
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

type healthResponse struct {
	Status   string `json:"status"`
	Scanning bool   `json:"scanning"`
	Uptime   string `json:"uptime"`
	Database string `json:"database"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status: "ok",
		Uptime: time.Since(s.startedAt).Round(time.Second).String(),
	}
	s.mu.Lock()
	resp.Scanning = s.scanning
	s.mu.Unlock()

	if s.store != nil {
		resp.Database = s.store.Driver()
		if err := s.store.Ping(r.Context()); err != nil {
			resp.Status = "degraded"
			resp.Database = "unreachable"
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type scanRequest struct {
	RepoURL string `json:"repo_url"`
}

// handleScan runs a scan synchronously and returns the full ScanResult.
// An ingestion failure is reported as a well-formed result with
// status=failed, not as an HTTP error.
func (s *Server) handleScan(w http.ResponseWriter, r *http.Request) {
	var req scanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	req.RepoURL = strings.TrimSpace(req.RepoURL)
	if req.RepoURL == "" {
		writeError(w, http.StatusBadRequest, "repo_url is required")
		return
	}

	res := s.runScan(r.Context(), req.RepoURL)
	writeJSON(w, http.StatusOK, res)
}

func (s *Server) handleListScans(w http.ResponseWriter, r *http.Request) {
	limit := 50
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}

	entries, err := s.store.List(r.Context(), limit)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if entries == nil {
		entries = []history.Entry{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"scans": entries})
}

func (s *Server) handleGetScan(w http.ResponseWriter, r *http.Request) {
	res, err := s.store.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			writeError(w, http.StatusNotFound, "scan not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

// handleExportScan streams a stored result as a JSON or CSV download.
func (s *Server) handleExportScan(w http.ResponseWriter, r *http.Request) {
	format, err := report.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	scanID := r.PathValue("id")
	res, err := s.store.Get(r.Context(), scanID)
	if err != nil {
		if errors.Is(err, history.ErrNotFound) {
			writeError(w, http.StatusNotFound, "scan not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	data, err := report.Export(res, format)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%s.%s", scanID, format))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) handleDeleteScan(w http.ResponseWriter, r *http.Request) {
	scanID := r.PathValue("id")
	if err := s.store.Delete(r.Context(), scanID); err != nil {
		if errors.Is(err, history.ErrNotFound) {
			writeError(w, http.StatusNotFound, "scan not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"deleted": scanID})
}
