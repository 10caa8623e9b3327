// Package service contains lidar registry workflows
package service

import (
	"context"
	"path"
	"strings"

	"geotwin/internal/modkit/repokit"
	perr "geotwin/internal/platform/errors"
	"geotwin/internal/platform/logger"
	"geotwin/internal/services/api/lidar/domain"
	"geotwin/internal/services/api/lidar/repo"

	"github.com/google/uuid"
)

const (
	defaultLimit = 100
	maxLimit     = 500
)

// allowedExtensions mirrors what the capture pipeline can land
var allowedExtensions = map[string]bool{
	".las": true,
	".laz": true,
	".e57": true,
}

// Service defines the service contract for the lidar registry
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	log    logger.Logger
}

// New creates a new lidar registry service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("lidar.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("lidar.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, log: *logger.Named("lidar")}
}

// Register records a landed lidar file in the registry
func (s *Svc) Register(ctx context.Context, in domain.RegisterInput) (domain.File, error) {
	ext := strings.ToLower(path.Ext(in.Filename))
	if !allowedExtensions[ext] {
		return domain.File{}, perr.Newf(perr.ErrorCodeValidation, "unsupported file extension %q", ext)
	}

	row, err := s.Repo.Insert(ctx, in.Filename, in.ProjectID, in.Size, in.FilePath)
	if err != nil {
		return domain.File{}, perr.FromPostgres(err, "register lidar file")
	}
	return toFile(row), nil
}

// List returns registry entries newest first
func (s *Svc) List(ctx context.Context, in domain.ListInput) ([]domain.File, error) {
	if in.Status != "" && !validStatus(in.Status) {
		return nil, perr.Newf(perr.ErrorCodeValidation, "unknown status %q", in.Status)
	}
	limit := in.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}

	rows, err := s.Repo.List(ctx, in.ProjectID, in.Status, limit)
	if err != nil {
		return nil, perr.FromPostgres(err, "list lidar files")
	}
	out := make([]domain.File, 0, len(rows))
	for _, r := range rows {
		out = append(out, toFile(r))
	}
	return out, nil
}

// Get fetches a single registry entry
func (s *Svc) Get(ctx context.Context, id string) (domain.File, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.File{}, perr.Newf(perr.ErrorCodeValidation, "invalid lidar file id %q", id)
	}
	row, found, err := s.Repo.Get(ctx, id)
	if err != nil {
		return domain.File{}, perr.FromPostgres(err, "get lidar file")
	}
	if !found {
		return domain.File{}, perr.NotFoundf("lidar file %s not found", id)
	}
	return toFile(row), nil
}

// Delete removes a registry entry unless jobs or assets still reference it
func (s *Svc) Delete(ctx context.Context, id string) (domain.DeleteResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.DeleteResult{}, perr.Newf(perr.ErrorCodeValidation, "invalid lidar file id %q", id)
	}

	var res domain.DeleteResult
	err := s.db.Tx(ctx, func(q repokit.Queryer) error {
		r := s.binder.Bind(q)
		jobs, assets, err := r.RefCounts(ctx, id)
		if err != nil {
			return perr.FromPostgres(err, "count lidar references")
		}
		if jobs > 0 || assets > 0 {
			return perr.Conflictf("lidar file %s is referenced by %d jobs and %d assets", id, jobs, assets)
		}
		n, err := r.Delete(ctx, id)
		if err != nil {
			return perr.FromPostgres(err, "delete lidar file")
		}
		if n == 0 {
			return perr.NotFoundf("lidar file %s not found", id)
		}
		res.Deleted = true
		return nil
	})
	if err != nil {
		return domain.DeleteResult{}, err
	}
	return res, nil
}

// Advance moves a file forward through its lifecycle
// rows affected zero means the id is unknown, which callers treat as a bug upstream
func (s *Svc) Advance(ctx context.Context, id, status string) error {
	if !validStatus(status) {
		return perr.InvalidArgf("unknown status %q", status)
	}
	n, err := s.Repo.SetStatus(ctx, id, status)
	if err != nil {
		return perr.FromPostgres(err, "advance lidar status")
	}
	if n == 0 {
		s.log.Warn().Str("lidar_file_id", id).Str("status", status).Msg("status advance matched no rows")
	}
	return nil
}

func validStatus(s string) bool {
	switch s {
	case domain.StatusUploaded, domain.StatusProcessing, domain.StatusCompleted, domain.StatusFailed:
		return true
	}
	return false
}

func toFile(r repo.RowFile) domain.File {
	return domain.File{
		ID:        r.ID,
		Filename:  r.Filename,
		ProjectID: r.ProjectID,
		Size:      r.Size,
		FilePath:  r.FilePath,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}
