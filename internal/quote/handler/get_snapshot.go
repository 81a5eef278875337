package handler

import (
	"net/http"

	"github.com/sirupsen/logrus"
)

type GetSnapshotResponse struct {
	Values map[string]float64 `json:"values"`
}

func (h *Handler) GetSnapshot(w http.ResponseWriter, r *http.Request) {
	snap, err := h.snapshots.Load(r.Context())
	if err != nil {
		msg := "couldn't read snapshot"
		logrus.WithError(err).WithField("handler", "GetSnapshot").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}
	writeJSON(w, http.StatusOK, GetSnapshotResponse{Values: snap})
}
