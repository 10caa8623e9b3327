// Package http provides http transport for assets
package http

import (
	stdhttp "net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"geotwin/internal/modkit/httpkit"
	perr "geotwin/internal/platform/errors"
	analyticsdom "geotwin/internal/services/api/analytics/domain"
	"geotwin/internal/services/api/assets/domain"
	svc "geotwin/internal/services/api/assets/service"
)

// Register mounts asset endpoints on the given router
// the summary endpoint is backed by the analytics module through its port
func Register(r httpkit.Router, s svc.Service, summary analyticsdom.SummaryPort) {
	h := &handlers{svc: s, summary: summary}
	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/spatial", h.spatial)
	httpkit.Get(r, "/summary", h.typeSummary)
	httpkit.PostJSON[domain.CreateInput](r, "/", h.create)
	httpkit.PatchJSON[domain.UpdateInput](r, "/{id}", h.update)
	httpkit.Delete(r, "/{id}", h.remove)
}

type handlers struct {
	svc     svc.Service
	summary analyticsdom.SummaryPort
}

// @Summary List detected assets
// @Tags Assets
// @Produce json
// @Param type query string false "Asset type filter"
// @Param project_id query string false "Project filter"
// @Param verified query bool false "Verification filter"
// @Param limit query int false "Max rows"
// @Param offset query int false "Rows to skip"
// @Success 200 {array} domain.Asset "ok"
// @Router /assets [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()
	in := domain.ListInput{
		Type:      q.Get("type"),
		ProjectID: q.Get("project_id"),
	}
	if raw := q.Get("verified"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, perr.Newf(perr.ErrorCodeValidation, "verified must be a boolean")
		}
		in.Verified = &v
	}
	var err error
	if in.Limit, err = intParam(q.Get("limit")); err != nil {
		return nil, perr.Newf(perr.ErrorCodeValidation, "limit must be an integer")
	}
	if in.Offset, err = intParam(q.Get("offset")); err != nil {
		return nil, perr.Newf(perr.ErrorCodeValidation, "offset must be an integer")
	}

	assets, err := h.svc.List(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Collection(assets, len(assets)), nil
}

// @Summary Assets inside a bounding box
// @Tags Assets
// @Produce json
// @Param bbox query string true "minx,miny,maxx,maxy in WGS84"
// @Param type query string false "Asset type filter"
// @Success 200 {array} domain.Asset "ok"
// @Router /assets/spatial [get]
func (h *handlers) spatial(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()
	in, err := parseBBox(q.Get("bbox"))
	if err != nil {
		return nil, err
	}
	in.Type = q.Get("type")

	assets, err := h.svc.Spatial(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Collection(assets, len(assets)), nil
}

// @Summary Detection summary per asset type
// @Tags Assets
// @Produce json
// @Success 200 {array} analyticsdom.TypeSummary "ok"
// @Router /assets/summary [get]
func (h *handlers) typeSummary(r *stdhttp.Request) (any, error) {
	rows, err := h.summary.Summary(r.Context())
	if err != nil {
		return nil, err
	}
	return httpkit.Collection(rows, len(rows)), nil
}

// @Summary Create an asset
// @Tags Assets
// @Accept json
// @Produce json
// @Param payload body domain.CreateInput true "Asset"
// @Success 201 {object} domain.Asset "created"
// @Router /assets [post]
func (h *handlers) create(r *stdhttp.Request, in domain.CreateInput) (any, error) {
	a, err := h.svc.Create(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(a), nil
}

// @Summary Update verification state or metadata
// @Tags Assets
// @Accept json
// @Produce json
// @Param id path string true "Asset id"
// @Param payload body domain.UpdateInput true "Fields to change"
// @Success 200 {object} domain.Asset "ok"
// @Router /assets/{id} [patch]
func (h *handlers) update(r *stdhttp.Request, in domain.UpdateInput) (any, error) {
	return h.svc.Update(r.Context(), chi.URLParam(r, "id"), in)
}

// @Summary Delete an asset
// @Tags Assets
// @Produce json
// @Param id path string true "Asset id"
// @Success 200 {object} domain.DeleteResult "ok"
// @Router /assets/{id} [delete]
func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	return h.svc.Delete(r.Context(), chi.URLParam(r, "id"))
}

func intParam(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}
	return strconv.Atoi(raw)
}

func parseBBox(raw string) (domain.SpatialInput, error) {
	var in domain.SpatialInput
	if raw == "" {
		return in, perr.Newf(perr.ErrorCodeValidation, "bbox is required")
	}
	parts := strings.Split(raw, ",")
	if len(parts) != 4 {
		return in, perr.Newf(perr.ErrorCodeValidation, "bbox wants minx,miny,maxx,maxy")
	}
	vals := make([]float64, 4)
	for i, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return in, perr.Newf(perr.ErrorCodeValidation, "bbox coordinate %q is not a number", p)
		}
		vals[i] = v
	}
	in.MinX, in.MinY, in.MaxX, in.MaxY = vals[0], vals[1], vals[2], vals[3]
	return in, nil
}
