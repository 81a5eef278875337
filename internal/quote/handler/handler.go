package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"fxpulse/internal/domain"
	"fxpulse/internal/quote"
)

type SnapshotReader interface {
	Load(ctx context.Context) (domain.Snapshot, error)
}

type UpdateRunner interface {
	Run(ctx context.Context) (quote.Result, error)
}

type Handler struct {
	snapshots SnapshotReader
	runner    UpdateRunner
}

func NewHandler(snapshots SnapshotReader, runner UpdateRunner) *Handler {
	return &Handler{snapshots: snapshots, runner: runner}
}

type errorResponse struct {
	Error string `json:"error"`
}

func writeError(w http.ResponseWriter, statusCode int, errorMsg string) {
	writeJSON(w, statusCode, errorResponse{Error: errorMsg})
}

func writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(body)
}
