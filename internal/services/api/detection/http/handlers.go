// Package http provides http transport for detection jobs
package http

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"

	"geotwin/internal/modkit/httpkit"
	"geotwin/internal/services/api/detection/domain"
	svc "geotwin/internal/services/api/detection/service"
)

// Register mounts detection endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.RunInput](r, "/run", h.run)
	httpkit.Get(r, "/status/{job_id}", h.status)
	httpkit.PostJSON[domain.CallbackInput](r, "/callback", h.callback)
}

type handlers struct{ svc svc.Service }

// @Summary Submit a detection job
// @Tags Detection
// @Accept json
// @Produce json
// @Param payload body domain.RunInput true "Job request"
// @Success 200 {object} domain.RunResult "ok"
// @Router /detection/run [post]
func (h *handlers) run(r *stdhttp.Request, in domain.RunInput) (any, error) {
	return h.svc.Run(r.Context(), in)
}

// @Summary Fetch a detection job
// @Tags Detection
// @Produce json
// @Param job_id path string true "Job id"
// @Success 200 {object} domain.Job "ok"
// @Router /detection/status/{job_id} [get]
func (h *handlers) status(r *stdhttp.Request) (any, error) {
	return h.svc.Status(r.Context(), chi.URLParam(r, "job_id"))
}

// @Summary Apply a completion report from the detection service
// @Tags Detection
// @Accept json
// @Produce json
// @Param payload body domain.CallbackInput true "Completion report"
// @Success 200 {object} domain.CallbackResult "ok"
// @Router /detection/callback [post]
func (h *handlers) callback(r *stdhttp.Request, in domain.CallbackInput) (any, error) {
	return h.svc.Callback(r.Context(), in)
}
