// Package repo provides postgres and clickhouse access for analytics
package repo

import (
	"context"

	"geotwin/internal/modkit/repokit"
)

// Repo is the postgres aggregation surface
type Repo interface {
	TypeCounts(ctx context.Context) ([]RowTypeCount, error)
	Coverage(ctx context.Context) ([]RowCoverage, error)
}

// RowTypeCount carries raw per type aggregates, rounding happens in the service
type RowTypeCount struct {
	Type          string
	Detected      int64
	Verified      int64
	AvgConfidence float64
}

// RowCoverage carries surveyed length in meters per project
type RowCoverage struct {
	ProjectName string
	Meters      float64
	FileCount   int64
	AssetCount  int64
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

func (r *queries) TypeCounts(ctx context.Context) ([]RowTypeCount, error) {
	const sql = `
select type,
count(1) as detected,
count(1) filter (where verified) as verified,
avg(confidence) as avg_confidence
from assets
group by type
order by detected desc, type asc
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RowTypeCount
	for rows.Next() {
		var rr RowTypeCount
		if err := rows.Scan(&rr.Type, &rr.Detected, &rr.Verified, &rr.AvgConfidence); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

func (r *queries) Coverage(ctx context.Context) ([]RowCoverage, error) {
	// geography cast makes ST_Length return meters
	const sql = `
select project_name,
coalesce(ST_Length(ST_Union(geom)::geography), 0) as meters,
count(distinct lidar_file_id) as file_count,
count(distinct asset_id) as asset_count
from coverage_areas
group by project_name
order by project_name asc
`
	rows, err := r.q.Query(ctx, sql)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RowCoverage
	for rows.Next() {
		var rr RowCoverage
		if err := rows.Scan(&rr.ProjectName, &rr.Meters, &rr.FileCount, &rr.AssetCount); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}
