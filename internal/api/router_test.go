package api

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"fxpulse/internal/domain"
	"fxpulse/internal/platform/metrics"
	"fxpulse/internal/quote"
	"fxpulse/internal/quote/handler"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"
)

type staticSnapshots struct{ snap domain.Snapshot }

func (s staticSnapshots) Load(context.Context) (domain.Snapshot, error) { return s.snap, nil }

type noopRunner struct{}

func (noopRunner) Run(context.Context) (quote.Result, error) { return quote.Result{}, nil }

func TestRouter_Routes(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	m.ObserveRun(metrics.OutcomeSuccess)

	h := handler.NewHandler(staticSnapshots{snap: domain.Snapshot{"primary": 1}}, noopRunner{})
	srv := httptest.NewServer(NewRouter(h, reg))
	t.Cleanup(srv.Close)

	cases := []struct {
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{method: http.MethodGet, path: "/healthz", wantStatus: http.StatusOK},
		{method: http.MethodGet, path: "/metrics", wantStatus: http.StatusOK, wantBody: `fxpulse_runs_total{outcome="success"} 1`},
		{method: http.MethodGet, path: "/api/v1/snapshot", wantStatus: http.StatusOK, wantBody: `"primary":1`},
		{method: http.MethodPost, path: "/api/v1/runs", wantStatus: http.StatusOK},
		{method: http.MethodGet, path: "/api/v1/runs", wantStatus: http.StatusMethodNotAllowed},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			req, err := http.NewRequest(tc.method, srv.URL+tc.path, nil)
			require.NoError(t, err)
			resp, err := srv.Client().Do(req)
			require.NoError(t, err)
			defer resp.Body.Close()

			require.Equal(t, tc.wantStatus, resp.StatusCode)
			if tc.wantBody != "" {
				body, err := io.ReadAll(resp.Body)
				require.NoError(t, err)
				require.Contains(t, string(body), tc.wantBody)
			}
		})
	}
}
