// Package repo provides postgres access for assets
package repo

import (
	"context"
	"fmt"
	"strings"

	"geotwin/internal/modkit/repokit"
)

// Repo is the persistence surface for assets
type Repo interface {
	Insert(ctx context.Context, in InsertRow) (RowAsset, error)
	List(ctx context.Context, typ, projectID string, verified *bool, limit, offset int) ([]RowAsset, error)
	Spatial(ctx context.Context, minX, minY, maxX, maxY float64, typ string) ([]RowAsset, error)
	Update(ctx context.Context, id string, verified *bool, metadata []byte) (RowAsset, bool, error)
	Delete(ctx context.Context, id string) (int64, error)
}

// InsertRow carries a new asset into the store
type InsertRow struct {
	Type        string
	ProjectID   string
	LidarFileID string
	Confidence  float64
	Longitude   float64
	Latitude    float64
	Elevation   *float64
	Metadata    []byte
}

// RowAsset represents an asset row with the point unpacked to lon lat
type RowAsset struct {
	ID          string
	Type        string
	ProjectID   string
	LidarFileID string
	Confidence  float64
	Longitude   float64
	Latitude    float64
	Elevation   *float64
	Verified    bool
	Metadata    []byte
	CreatedAt   string
	UpdatedAt   string
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

const assetColumns = `id::text, type, project_id, coalesce(lidar_file_id::text, ''),
confidence, ST_X(geom), ST_Y(geom), elevation, verified, metadata, created_at::text, updated_at::text`

func (r *queries) Insert(ctx context.Context, in InsertRow) (RowAsset, error) {
	sql := `
insert into assets (type, project_id, lidar_file_id, confidence, geom, elevation, metadata)
values ($1, $2, nullif($3, '')::uuid, $4, ST_SetSRID(ST_MakePoint($5, $6), 4326), $7,
coalesce($8::jsonb, '{}'::jsonb))
returning ` + assetColumns
	rows, err := r.q.Query(ctx, sql,
		in.Type, in.ProjectID, in.LidarFileID, in.Confidence,
		in.Longitude, in.Latitude, in.Elevation, in.Metadata,
	)
	if err != nil {
		return RowAsset{}, err
	}
	defer rows.Close()
	return scanOne(rows)
}

func (r *queries) List(
	ctx context.Context,
	typ, projectID string,
	verified *bool,
	limit, offset int,
) ([]RowAsset, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString(`select ` + assetColumns + ` from assets where 1=1`)
	if typ != "" {
		sb.WriteString(" and type = " + arg(typ))
	}
	if projectID != "" {
		sb.WriteString(" and project_id = " + arg(projectID))
	}
	if verified != nil {
		sb.WriteString(" and verified = " + arg(*verified))
	}
	sb.WriteString(" order by created_at desc, id desc")
	sb.WriteString(" limit " + arg(limit) + " offset " + arg(offset))

	return r.queryAssets(ctx, sb.String(), args...)
}

func (r *queries) Spatial(ctx context.Context, minX, minY, maxX, maxY float64, typ string) ([]RowAsset, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	// ST_Covers keeps points that sit exactly on the envelope boundary
	sb.WriteString(`select ` + assetColumns + ` from assets
where ST_Covers(ST_MakeEnvelope(` +
		arg(minX) + `, ` + arg(minY) + `, ` + arg(maxX) + `, ` + arg(maxY) + `, 4326), geom)`)
	if typ != "" {
		sb.WriteString(" and type = " + arg(typ))
	}
	sb.WriteString(" order by created_at desc, id desc")

	return r.queryAssets(ctx, sb.String(), args...)
}

func (r *queries) Update(ctx context.Context, id string, verified *bool, metadata []byte) (RowAsset, bool, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString(`update assets set updated_at = now()`)
	if verified != nil {
		sb.WriteString(", verified = " + arg(*verified))
	}
	if metadata != nil {
		sb.WriteString(", metadata = " + arg(metadata) + "::jsonb")
	}
	sb.WriteString(" where id = " + arg(id) + " returning " + assetColumns)

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return RowAsset{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return RowAsset{}, false, rows.Err()
	}
	var rr RowAsset
	if err := scanAsset(rows, &rr); err != nil {
		return RowAsset{}, false, err
	}
	return rr, true, rows.Err()
}

func (r *queries) Delete(ctx context.Context, id string) (int64, error) {
	tag, err := r.q.Exec(ctx, `delete from assets where id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *queries) queryAssets(ctx context.Context, sql string, args ...any) ([]RowAsset, error) {
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RowAsset
	for rows.Next() {
		var rr RowAsset
		if err := scanAsset(rows, &rr); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

func scanOne(rows repokit.Rows) (RowAsset, error) {
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return RowAsset{}, err
		}
		return RowAsset{}, fmt.Errorf("insert returned no row")
	}
	var rr RowAsset
	if err := scanAsset(rows, &rr); err != nil {
		return RowAsset{}, err
	}
	return rr, rows.Err()
}

func scanAsset(rows repokit.Rows, rr *RowAsset) error {
	return rows.Scan(
		&rr.ID, &rr.Type, &rr.ProjectID, &rr.LidarFileID,
		&rr.Confidence, &rr.Longitude, &rr.Latitude, &rr.Elevation,
		&rr.Verified, &rr.Metadata, &rr.CreatedAt, &rr.UpdatedAt,
	)
}
