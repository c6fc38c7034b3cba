// Package handlers contains the HTTP surface of catalog-engine.
package handlers

import (
	"encoding/json"
	"net/http"

	"go.uber.org/zap"

	"github.com/voltbridge/catalog-engine/pkg/services"
)

// ScanRequest is the payload of a barcode scan.
type ScanRequest struct {
	Barcode string `json:"barcode"`
}

// ScanHandler exposes the barcode scan pipeline.
type ScanHandler struct {
	scans  services.ScanService
	logger *zap.Logger
}

// NewScanHandler creates a new ScanHandler.
func NewScanHandler(scans services.ScanService, logger *zap.Logger) *ScanHandler {
	return &ScanHandler{scans: scans, logger: logger.Named("scan-handler")}
}

// RegisterRoutes registers the scan handler's routes on the given mux.
func (h *ScanHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/barcode/scan", h.Scan)
}

// Scan handles POST /api/barcode/scan requests.
func (h *ScanHandler) Scan(w http.ResponseWriter, r *http.Request) {
	var req ScanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "body must be JSON with a barcode field")
		return
	}
	if req.Barcode == "" {
		_ = ErrorResponse(w, http.StatusBadRequest, "invalid_request", "barcode must not be empty")
		return
	}

	result, err := h.scans.Scan(r.Context(), req.Barcode)
	if err != nil {
		h.logger.Error("Scan failed",
			zap.String("barcode", req.Barcode),
			zap.Error(err))
		_ = ErrorResponse(w, http.StatusInternalServerError, "scan_failed", "scan could not be completed")
		return
	}
	if result == nil {
		_ = ErrorResponse(w, http.StatusNotFound, "no_match", "barcode matched no product")
		return
	}

	if err := WriteJSON(w, http.StatusOK, map[string]any{result.Kind: result}); err != nil {
		h.logger.Error("Failed to encode scan response", zap.Error(err))
	}
}
