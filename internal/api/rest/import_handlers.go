package rest

import (
	"encoding/json"
	"net/http"

	"github.com/courtsight/courtside/internal/importer"
)

// ImportHandler proxies API calls to the import service.
type ImportHandler struct {
	service *importer.Service
}

// NewImportHandler wires the REST layer to the import service.
func NewImportHandler(service *importer.Service) *ImportHandler {
	return &ImportHandler{service: service}
}

// HandleImportRequest handles POST /api/v1/imports.
func (h *ImportHandler) HandleImportRequest(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		respondError(w, http.StatusServiceUnavailable, "Imports are not configured", nil)
		return
	}

	var req importer.Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	job, err := h.service.Enqueue(req)
	if err != nil {
		respondError(w, http.StatusBadRequest, "Failed to enqueue import job", err)
		return
	}

	respondJSON(w, http.StatusAccepted, map[string]interface{}{
		"job": job,
	})
}

// HandleImportStatus handles GET /api/v1/imports/status.
func (h *ImportHandler) HandleImportStatus(w http.ResponseWriter, r *http.Request) {
	if h.service == nil {
		respondError(w, http.StatusServiceUnavailable, "Imports are not configured", nil)
		return
	}

	summary := h.service.GetStatus()

	response := map[string]interface{}{
		"status":  "idle",
		"history": summary.History,
	}
	if len(summary.Queued) > 0 {
		response["status"] = "queued"
		response["queued_jobs"] = summary.Queued
	}
	if summary.ActiveJob != nil {
		response["status"] = summary.ActiveJob.Status
		response["active_job"] = summary.ActiveJob
	}
	if response["history"] == nil {
		response["history"] = []*importer.Job{}
	}

	respondJSON(w, http.StatusOK, response)
}
