package handler

import (
	"errors"
	"net/http"
	"time"

	"fxpulse/internal/domain"

	"github.com/sirupsen/logrus"
)

type TriggerRunResponse struct {
	Primary   float64   `json:"primary"`
	Secondary float64   `json:"secondary"`
	FetchedAt time.Time `json:"fetched_at"`
	Delivered int       `json:"delivered"`
	Failed    int       `json:"failed"`
}

// TriggerRun performs one update outside the schedule and waits for it.
func (h *Handler) TriggerRun(w http.ResponseWriter, r *http.Request) {
	res, err := h.runner.Run(r.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoData) {
			writeError(w, http.StatusBadGateway, "could not fetch market data")
			return
		}
		msg := "market update failed"
		logrus.WithError(err).WithField("handler", "TriggerRun").Error(msg)
		writeError(w, http.StatusInternalServerError, msg)
		return
	}

	writeJSON(w, http.StatusOK, TriggerRunResponse{
		Primary:   res.Quotes.Primary,
		Secondary: res.Quotes.Secondary,
		FetchedAt: res.Quotes.FetchedAt,
		Delivered: res.Report.Delivered(),
		Failed:    res.Report.Failed(),
	})
}
