// Package http provides http transport for the lidar registry
package http

import (
	stdhttp "net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"geotwin/internal/modkit/httpkit"
	perr "geotwin/internal/platform/errors"
	"geotwin/internal/services/api/lidar/domain"
	svc "geotwin/internal/services/api/lidar/service"
)

// Register mounts lidar registry endpoints on the given router
func Register(r httpkit.Router, s svc.Service) {
	h := &handlers{svc: s}
	httpkit.PostJSON[domain.RegisterInput](r, "/", h.register)
	httpkit.Get(r, "/", h.list)
	httpkit.Get(r, "/{id}", h.get)
	httpkit.Delete(r, "/{id}", h.remove)
}

type handlers struct{ svc svc.Service }

// @Summary Register a landed lidar file
// @Tags Lidar
// @Accept json
// @Produce json
// @Param payload body domain.RegisterInput true "File record"
// @Success 201 {object} domain.File "created"
// @Router /lidar [post]
func (h *handlers) register(r *stdhttp.Request, in domain.RegisterInput) (any, error) {
	f, err := h.svc.Register(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Created(f), nil
}

// @Summary List registered lidar files
// @Tags Lidar
// @Produce json
// @Param project_id query string false "Project filter"
// @Param status query string false "Status filter"
// @Param limit query int false "Max rows"
// @Success 200 {array} domain.File "ok"
// @Router /lidar [get]
func (h *handlers) list(r *stdhttp.Request) (any, error) {
	q := r.URL.Query()
	in := domain.ListInput{
		ProjectID: q.Get("project_id"),
		Status:    q.Get("status"),
	}
	if raw := q.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return nil, perr.Newf(perr.ErrorCodeValidation, "limit must be an integer")
		}
		in.Limit = n
	}
	files, err := h.svc.List(r.Context(), in)
	if err != nil {
		return nil, err
	}
	return httpkit.Collection(files, len(files)), nil
}

// @Summary Fetch one registered lidar file
// @Tags Lidar
// @Produce json
// @Param id path string true "File id"
// @Success 200 {object} domain.File "ok"
// @Router /lidar/{id} [get]
func (h *handlers) get(r *stdhttp.Request) (any, error) {
	return h.svc.Get(r.Context(), chi.URLParam(r, "id"))
}

// @Summary Delete a registered lidar file
// @Tags Lidar
// @Produce json
// @Param id path string true "File id"
// @Success 200 {object} domain.DeleteResult "ok"
// @Router /lidar/{id} [delete]
func (h *handlers) remove(r *stdhttp.Request) (any, error) {
	return h.svc.Delete(r.Context(), chi.URLParam(r, "id"))
}
