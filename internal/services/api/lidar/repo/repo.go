// Package repo provides postgres access for the lidar registry
package repo

import (
	"context"
	"fmt"
	"strings"

	"geotwin/internal/modkit/repokit"
)

// Repo is the persistence surface for lidar files
type Repo interface {
	Insert(ctx context.Context, filename, projectID string, size int64, filePath string) (RowFile, error)
	List(ctx context.Context, projectID, status string, limit int) ([]RowFile, error)
	Get(ctx context.Context, id string) (RowFile, bool, error)
	Delete(ctx context.Context, id string) (int64, error)
	RefCounts(ctx context.Context, id string) (jobs, assets int64, err error)
	SetStatus(ctx context.Context, id, status string) (int64, error)
}

// RowFile represents a lidar file row
type RowFile struct {
	ID        string
	Filename  string
	ProjectID string
	Size      int64
	FilePath  string
	Status    string
	CreatedAt string
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

const fileColumns = `id::text, filename, project_id, size, file_path, status, created_at::text`

func (r *queries) Insert(ctx context.Context, filename, projectID string, size int64, filePath string) (RowFile, error) {
	sql := `
insert into lidar_files (filename, project_id, size, file_path)
values ($1, $2, $3, $4)
returning ` + fileColumns
	rows, err := r.q.Query(ctx, sql, filename, projectID, size, filePath)
	if err != nil {
		return RowFile{}, err
	}
	defer rows.Close()
	return scanOne(rows)
}

func (r *queries) List(ctx context.Context, projectID, status string, limit int) ([]RowFile, error) {
	var sb strings.Builder
	var args []any
	arg := func(v any) string { args = append(args, v); return fmt.Sprintf("$%d", len(args)) }

	sb.WriteString(`select ` + fileColumns + ` from lidar_files where 1=1`)
	if projectID != "" {
		sb.WriteString(" and project_id = " + arg(projectID))
	}
	if status != "" {
		sb.WriteString(" and status = " + arg(status))
	}
	sb.WriteString(" order by created_at desc, id desc limit " + arg(limit))

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []RowFile
	for rows.Next() {
		var rr RowFile
		if err := scanFile(rows, &rr); err != nil {
			return nil, err
		}
		out = append(out, rr)
	}
	return out, rows.Err()
}

func (r *queries) Get(ctx context.Context, id string) (RowFile, bool, error) {
	sql := `select ` + fileColumns + ` from lidar_files where id = $1`
	rows, err := r.q.Query(ctx, sql, id)
	if err != nil {
		return RowFile{}, false, err
	}
	defer rows.Close()
	if !rows.Next() {
		return RowFile{}, false, rows.Err()
	}
	var rr RowFile
	if err := scanFile(rows, &rr); err != nil {
		return RowFile{}, false, err
	}
	return rr, true, rows.Err()
}

func (r *queries) Delete(ctx context.Context, id string) (int64, error) {
	tag, err := r.q.Exec(ctx, `delete from lidar_files where id = $1`, id)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func (r *queries) RefCounts(ctx context.Context, id string) (int64, int64, error) {
	const sql = `
select
(select count(1) from detection_jobs where lidar_file_id = $1),
(select count(1) from assets where lidar_file_id = $1)
`
	var jobs, assets int64
	if err := r.q.QueryRow(ctx, sql, id).Scan(&jobs, &assets); err != nil {
		return 0, 0, err
	}
	return jobs, assets, nil
}

func (r *queries) SetStatus(ctx context.Context, id, status string) (int64, error) {
	tag, err := r.q.Exec(ctx, `update lidar_files set status = $2 where id = $1`, id, status)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

func scanOne(rows repokit.Rows) (RowFile, error) {
	if !rows.Next() {
		if err := rows.Err(); err != nil {
			return RowFile{}, err
		}
		return RowFile{}, fmt.Errorf("insert returned no row")
	}
	var rr RowFile
	if err := scanFile(rows, &rr); err != nil {
		return RowFile{}, err
	}
	return rr, rows.Err()
}

func scanFile(rows repokit.Rows, rr *RowFile) error {
	return rows.Scan(&rr.ID, &rr.Filename, &rr.ProjectID, &rr.Size, &rr.FilePath, &rr.Status, &rr.CreatedAt)
}
