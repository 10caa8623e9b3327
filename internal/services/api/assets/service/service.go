// Package service contains asset workflows
package service

import (
	"context"
	"math"

	"geotwin/internal/modkit/repokit"
	perr "geotwin/internal/platform/errors"
	"geotwin/internal/platform/logger"
	"geotwin/internal/services/api/assets/domain"
	"geotwin/internal/services/api/assets/repo"

	"github.com/google/uuid"
)

const (
	defaultLimit = 1000
	maxLimit     = 5000
)

// Service defines the service contract for assets
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo   repo.Repo
	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	log    logger.Logger
}

// New creates a new assets service
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo]) *Svc {
	if db == nil {
		panic("assets.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("assets.Service requires a non nil Repo binder")
	}
	return &Svc{Repo: binder.Bind(db), binder: binder, db: db, log: *logger.Named("assets")}
}

// Create persists a detected asset
// duplicates are allowed, dedup is a consumer concern
func (s *Svc) Create(ctx context.Context, in domain.CreateInput) (domain.Asset, error) {
	if err := checkPoint(in.Longitude, in.Latitude); err != nil {
		return domain.Asset{}, err
	}
	if math.IsNaN(in.Confidence) || in.Confidence < 0 || in.Confidence > 1 {
		return domain.Asset{}, perr.Newf(perr.ErrorCodeValidation, "confidence must be within [0, 1]")
	}
	if in.Type == "" || in.ProjectID == "" {
		return domain.Asset{}, perr.Newf(perr.ErrorCodeValidation, "type and project_id are required")
	}

	row, err := s.Repo.Insert(ctx, repo.InsertRow{
		Type:        in.Type,
		ProjectID:   in.ProjectID,
		LidarFileID: in.LidarFileID,
		Confidence:  in.Confidence,
		Longitude:   in.Longitude,
		Latitude:    in.Latitude,
		Elevation:   in.Elevation,
		Metadata:    []byte(in.Metadata),
	})
	if err != nil {
		return domain.Asset{}, perr.FromPostgres(err, "create asset")
	}
	return toAsset(row), nil
}

// List returns assets newest first with optional filters
func (s *Svc) List(ctx context.Context, in domain.ListInput) ([]domain.Asset, error) {
	limit := in.Limit
	if limit <= 0 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	offset := in.Offset
	if offset < 0 {
		offset = 0
	}

	rows, err := s.Repo.List(ctx, in.Type, in.ProjectID, in.Verified, limit, offset)
	if err != nil {
		return nil, perr.FromPostgres(err, "list assets")
	}
	return toAssets(rows), nil
}

// Spatial returns every asset covered by the bounding box, boundary included
func (s *Svc) Spatial(ctx context.Context, in domain.SpatialInput) ([]domain.Asset, error) {
	for _, v := range []float64{in.MinX, in.MinY, in.MaxX, in.MaxY} {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, perr.Newf(perr.ErrorCodeValidation, "bbox coordinates must be finite")
		}
	}
	if in.MinX >= in.MaxX || in.MinY >= in.MaxY {
		return nil, perr.Newf(perr.ErrorCodeValidation, "bbox min must be strictly below max on both axes")
	}

	rows, err := s.Repo.Spatial(ctx, in.MinX, in.MinY, in.MaxX, in.MaxY, in.Type)
	if err != nil {
		return nil, perr.FromPostgres(err, "spatial asset query")
	}
	return toAssets(rows), nil
}

// Update applies a partial update of verification state or metadata
func (s *Svc) Update(ctx context.Context, id string, in domain.UpdateInput) (domain.Asset, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.Asset{}, perr.Newf(perr.ErrorCodeValidation, "invalid asset id %q", id)
	}
	if in.Verified == nil && in.Metadata == nil {
		return domain.Asset{}, perr.Newf(perr.ErrorCodeValidation, "nothing to update")
	}

	row, found, err := s.Repo.Update(ctx, id, in.Verified, []byte(in.Metadata))
	if err != nil {
		return domain.Asset{}, perr.FromPostgres(err, "update asset")
	}
	if !found {
		return domain.Asset{}, perr.NotFoundf("asset %s not found", id)
	}
	return toAsset(row), nil
}

// Delete removes an asset, repeat deletes succeed quietly
func (s *Svc) Delete(ctx context.Context, id string) (domain.DeleteResult, error) {
	if _, err := uuid.Parse(id); err != nil {
		return domain.DeleteResult{}, perr.Newf(perr.ErrorCodeValidation, "invalid asset id %q", id)
	}
	n, err := s.Repo.Delete(ctx, id)
	if err != nil {
		return domain.DeleteResult{}, perr.FromPostgres(err, "delete asset")
	}
	if n == 0 {
		s.log.Debug().Str("asset_id", id).Msg("delete matched no rows")
	}
	return domain.DeleteResult{Success: true}, nil
}

func checkPoint(lon, lat float64) error {
	if math.IsNaN(lon) || math.IsInf(lon, 0) || math.IsNaN(lat) || math.IsInf(lat, 0) {
		return perr.Newf(perr.ErrorCodeValidation, "coordinates must be finite")
	}
	if lon < -180 || lon > 180 {
		return perr.Newf(perr.ErrorCodeValidation, "longitude must be within [-180, 180]")
	}
	if lat < -90 || lat > 90 {
		return perr.Newf(perr.ErrorCodeValidation, "latitude must be within [-90, 90]")
	}
	return nil
}

func toAssets(rows []repo.RowAsset) []domain.Asset {
	out := make([]domain.Asset, 0, len(rows))
	for _, r := range rows {
		out = append(out, toAsset(r))
	}
	return out
}

func toAsset(r repo.RowAsset) domain.Asset {
	meta := r.Metadata
	if len(meta) == 0 {
		meta = []byte(`{}`)
	}
	return domain.Asset{
		ID:          r.ID,
		Type:        r.Type,
		ProjectID:   r.ProjectID,
		LidarFileID: r.LidarFileID,
		Confidence:  r.Confidence,
		Longitude:   r.Longitude,
		Latitude:    r.Latitude,
		Elevation:   r.Elevation,
		Verified:    r.Verified,
		Metadata:    meta,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}
