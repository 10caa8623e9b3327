// Package repo provides postgres access for detection jobs
package repo

import (
	"context"
	"fmt"

	"geotwin/internal/modkit/repokit"
)

// Repo is the persistence surface for detection jobs
type Repo interface {
	Insert(ctx context.Context, lidarFileID string, models []byte, externalJobID string) (RowJob, error)
	Get(ctx context.Context, id string) (RowJob, bool, error)
	GetByExternal(ctx context.Context, externalJobID string) (RowJob, bool, error)
	FinishGuarded(ctx context.Context, externalJobID, status string) (int64, error)
}

// RowJob represents a detection job row
type RowJob struct {
	ID              string
	LidarFileID     string
	RequestedModels []byte
	Status          string
	ExternalJobID   string
	CreatedAt       string
	UpdatedAt       string
}

type (
	// PG implements the Repo interface using Postgres
	PG struct{}

	// queries holds the database query methods
	queries struct{ q repokit.Queryer }
)

// NewPG creates a new Postgres repository binder
func NewPG() repokit.Binder[Repo] { return PG{} }

// Bind binds a Postgres queryer to the Repo implementation
func (PG) Bind(q repokit.Queryer) Repo { return &queries{q: q} }

const jobColumns = `id::text, lidar_file_id::text, requested_models, status,
external_job_id, created_at::text, updated_at::text`

func (r *queries) Insert(ctx context.Context, lidarFileID string, models []byte, externalJobID string) (RowJob, error) {
	sql := `
insert into detection_jobs (lidar_file_id, requested_models, external_job_id)
values ($1, $2::jsonb, $3)
returning ` + jobColumns
	rows, err := r.q.Query(ctx, sql, lidarFileID, models, externalJobID)
	if err != nil {
		return RowJob{}, err
	}
	defer rows.Close()
	return scanOne(rows)
}

func (r *queries) Get(ctx context.Context, id string) (RowJob, bool, error) {
	return r.getWhere(ctx, `id = $1`, id)
}

func (r *queries) GetByExternal(ctx context.Context, externalJobID string) (RowJob, bool, error) {
	return r.getWhere(ctx, `external_job_id = $1`, externalJobID)
}

// FinishGuarded only advances jobs still in processing, so terminal states
// never change and callback replays affect zero rows
func (r *queries) FinishGuarded(ctx context.Context, externalJobID, status string) (int64, error) {
	const sql = `
update detection_jobs
set status = $2, updated_at = now()
where external_job_id = $1 and status = 'processing'
`
	tag, err := r.q.Exec(ctx, sql, externalJobID, status)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *queries) getWhere(ctx context.Context, where string, arg any) (RowJob, bool, error) {
	sql := `select ` + jobColumns + ` from detection_jobs where ` + where
	rows, err := r.q.Query(ctx, sql, arg)
	if err != nil {
		return RowJob{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return RowJob{}, false, rows.Err()
	}
	var rr RowJob
	if err := scanJob(rows, &rr); err != nil {
		return RowJob{}, false, err
	}
	return rr, true, rows.Err()
}

func scanOne(rows repokit.Rows) (RowJob, error) {
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return RowJob{}, err
		}
		return RowJob{}, fmt.Errorf("insert returned no row")
	}
	var rr RowJob
	if err := scanJob(rows, &rr); err != nil {
		return RowJob{}, err
	}
	return rr, rows.Err()
}

func scanJob(rows repokit.Rows, rr *RowJob) error {
	return rows.Scan(
		&rr.ID, &rr.LidarFileID, &rr.RequestedModels, &rr.Status,
		&rr.ExternalJobID, &rr.CreatedAt, &rr.UpdatedAt,
	)
}
