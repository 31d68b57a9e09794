// Package http provides http transport for reports
package http

import (
	"io"
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"storewatch/internal/modkit/httpkit"
	perr "storewatch/internal/platform/errors"
	lumnet "storewatch/internal/platform/net"
	phttp "storewatch/internal/platform/net/http"
	"storewatch/internal/services/reports/domain"
	svc "storewatch/internal/services/reports/service"
)

// Register mounts reports endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Post(r, "/trigger/{store_id}", h.trigger)
	r.Get("/{report_id}", h.download)
}

type handlers struct{ svc svc.Service }

// swagger:route POST /reports/trigger/{store_id} Reports reportsTrigger
// @Summary Queue an uptime report for a store
// @Tags Reports
// @Produce json
// @Param store_id path string true "Store UUID"
// @Success 202 {object} domain.TriggerResult "accepted"
// @Failure 404 "unknown store"
// @Failure 503 "no polls ingested yet"
// @Router /reports/trigger/{store_id} [post]
func (h *handlers) trigger(r *stdhttp.Request) (any, error) {
	res, err := h.svc.Trigger(r.Context(), chi.URLParam(r, "store_id"))
	if err != nil {
		return nil, err
	}
	return httpkit.Response{Status: stdhttp.StatusAccepted, Body: res}, nil
}

// swagger:route GET /reports/{report_id} Reports reportsDownload
// @Summary Poll a report and download its CSV when complete
// @Tags Reports
// @Produce text/csv
// @Param report_id path string true "Report UUID"
// @Success 200 "CSV artifact"
// @Success 202 "still running"
// @Failure 404 "unknown report"
// @Failure 410 "report failed"
// @Router /reports/{report_id} [get]
func (h *handlers) download(w stdhttp.ResponseWriter, r *stdhttp.Request) {
	rep, err := h.svc.Get(r.Context(), chi.URLParam(r, "report_id"))
	if err != nil {
		phttp.RespondError(w, r, err)
		return
	}

	switch rep.State {
	case domain.StateComplete:
		w.Header().Set("Content-Type", "text/csv; charset=utf-8")
		w.Header().Set("Content-Disposition", `attachment; filename="report_`+rep.ID+`.csv"`)
		w.WriteHeader(stdhttp.StatusOK)
		_, _ = io.WriteString(w, rep.CSV)
	case domain.StateFailed:
		phttp.RespondError(w, r, perr.Gonef("report %s failed: %s", rep.ID, rep.Error))
	default:
		// pending or running
		phttp.JSON(w, stdhttp.StatusAccepted, phttp.Envelope{
			StatusCode: stdhttp.StatusAccepted,
			Status:     stdhttp.StatusText(stdhttp.StatusAccepted),
			RequestID:  lumnet.RequestID(r.Context()),
			Data:       map[string]string{"status": "Running"},
		})
	}
}
