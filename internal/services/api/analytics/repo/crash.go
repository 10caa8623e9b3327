package repo

import (
	"context"
	"time"

	"geotwin/internal/platform/store"
)

// CrashRepo reads the external crash feed out of clickhouse
type CrashRepo interface {
	MonthlyCrashes(ctx context.Context, since time.Time) ([]RowCrashMonth, error)
}

// RowCrashMonth is one calendar month of crash events
type RowCrashMonth struct {
	Month       time.Time
	Crashes     int64
	AvgSeverity float64
}

// crashQueries implements CrashRepo over the clickhouse seam
type crashQueries struct{ db store.Clickhouse }

// NewCH wires the crash repo to a clickhouse connection
func NewCH(db store.Clickhouse) CrashRepo { return &crashQueries{db: db} }

func (r *crashQueries) MonthlyCrashes(ctx context.Context, since time.Time) ([]RowCrashMonth, error) {
	const sql = `
select toStartOfMonth(crash_date) as month,
count() as crashes,
avg(severity) as avg_severity
from crash_events
where crash_date >= ?
group by month
order by month asc
`
	rows, err := r.db.Query(ctx, sql, since)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RowCrashMonth
	for rows.Next() {
		var (
			month   time.Time
			crashes uint64
			avg     float64
		)
		if err := rows.Scan(&month, &crashes, &avg); err != nil {
			return nil, err
		}
		out = append(out, RowCrashMonth{Month: month, Crashes: int64(crashes), AvgSeverity: avg})
	}
	return out, rows.Err()
}
