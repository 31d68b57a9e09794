package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	perr "storewatch/internal/platform/errors"
	phttp "storewatch/internal/platform/net/http"
	"storewatch/internal/services/reports/domain"
)

type fakeSvc struct {
	reports map[string]domain.Report
}

func (f *fakeSvc) Trigger(_ context.Context, storeID string) (domain.TriggerResult, error) {
	if storeID == "missing" {
		return domain.TriggerResult{}, perr.NotFoundf("store %s not found", storeID)
	}
	return domain.TriggerResult{ReportID: "rep-1"}, nil
}

func (f *fakeSvc) Get(_ context.Context, reportID string) (domain.Report, error) {
	rep, ok := f.reports[reportID]
	if !ok {
		return domain.Report{}, perr.NotFoundf("report %s not found", reportID)
	}
	return rep, nil
}

func (f *fakeSvc) Run(context.Context) error { return nil }

func newTestRouter(f *fakeSvc) http.Handler {
	m := chi.NewRouter()
	Register(phttp.AdaptChi(m), f)
	return m
}

func TestTrigger_Accepted(t *testing.T) {
	h := newTestRouter(&fakeSvc{})

	req := httptest.NewRequest(http.MethodPost, "/trigger/store-1", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusAccepted {
		t.Fatalf("status = %d, want 202; body=%s", rr.Code, rr.Body.String())
	}
	var env phttp.Envelope
	if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad envelope: %v", err)
	}
	data, _ := env.Data.(map[string]any)
	if data["report_id"] != "rep-1" {
		t.Fatalf("data = %v", env.Data)
	}
}

func TestTrigger_UnknownStore(t *testing.T) {
	h := newTestRouter(&fakeSvc{})

	req := httptest.NewRequest(http.MethodPost, "/trigger/missing", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestDownload_States(t *testing.T) {
	now := time.Now()
	f := &fakeSvc{reports: map[string]domain.Report{
		"run": {ID: "run", State: domain.StateRunning, RequestedAt: now},
		"bad": {ID: "bad", State: domain.StateFailed, Error: "boom", RequestedAt: now},
		"ok": {
			ID: "ok", State: domain.StateComplete, RequestedAt: now,
			CSV: "store_id,uptime_last_hour\nstore-1,45\n",
		},
	}}
	h := newTestRouter(f)

	cases := []struct {
		name       string
		id         string
		wantStatus int
	}{
		{"running is 202", "run", http.StatusAccepted},
		{"failed is 410", "bad", http.StatusGone},
		{"complete is 200", "ok", http.StatusOK},
		{"unknown is 404", "nope", http.StatusNotFound},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/"+tc.id, nil)
			rr := httptest.NewRecorder()
			h.ServeHTTP(rr, req)
			if rr.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d; body=%s", rr.Code, tc.wantStatus, rr.Body.String())
			}
		})
	}
}

func TestDownload_CSVBody(t *testing.T) {
	f := &fakeSvc{reports: map[string]domain.Report{
		"ok": {ID: "ok", State: domain.StateComplete, CSV: "store_id,uptime_last_hour\nstore-1,45\n"},
	}}
	h := newTestRouter(f)

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)

	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Fatalf("content type = %q", ct)
	}
	if !strings.Contains(rr.Header().Get("Content-Disposition"), "report_ok.csv") {
		t.Fatalf("content disposition = %q", rr.Header().Get("Content-Disposition"))
	}
	if !strings.HasPrefix(rr.Body.String(), "store_id,") {
		t.Fatalf("body = %q", rr.Body.String())
	}
}
