// Package http provides http transport for analytics
package http

import (
	stdhttp "net/http"
	"strconv"

	"geotwin/internal/modkit/httpkit"
	perr "geotwin/internal/platform/errors"
	"geotwin/internal/services/api/analytics/domain"
	svc "geotwin/internal/services/api/analytics/service"
)

// Register mounts analytics endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.Get(r, "/coverage", h.coverage)
	httpkit.Get(r, "/crashes", h.crashes)
}

type handlers struct{ svc svc.Service }

// @Summary Surveyed mileage per project
// @Tags Analytics
// @Produce json
// @Success 200 {array} domain.CoverageRow "ok"
// @Router /analytics/coverage [get]
func (h *handlers) coverage(r *stdhttp.Request) (any, error) {
	rows, err := h.svc.Coverage(r.Context())
	if err != nil {
		return nil, err
	}
	return httpkit.Collection(rows, len(rows)), nil
}

// @Summary Monthly crash trend from the external feed
// @Tags Analytics
// @Produce json
// @Param months query int false "Trailing window in months, default 6"
// @Success 200 {array} domain.CrashBucket "ok"
// @Router /analytics/crashes [get]
func (h *handlers) crashes(r *stdhttp.Request) (any, error) {
	var in domain.CrashInput
	if raw := r.URL.Query().Get("months"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, perr.Newf(perr.ErrorCodeValidation, "months must be an integer")
		}
		in.Months = n
	}
	rows, err := h.svc.Crashes(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Collection(rows, len(rows)), nil
}
