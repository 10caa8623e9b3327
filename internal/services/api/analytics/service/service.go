// Package service contains analytics workflows
package service

import (
	"context"
	"math"
	"time"

	"geotwin/internal/modkit/repokit"
	perr "geotwin/internal/platform/errors"
	"geotwin/internal/services/api/analytics/domain"
	"geotwin/internal/services/api/analytics/repo"
)

const (
	// metersPerMile converts geography lengths for the coverage report
	metersPerMile = 1609.34

	defaultCrashMonths = 6
	maxCrashMonths     = 60
)

// Service defines the service contract for analytics
type Service interface{ domain.ServicePort }

// Svc implements the Service interface
type Svc struct {
	Repo  repo.Repo
	Crash repo.CrashRepo

	binder repokit.Binder[repo.Repo]
	db     repokit.TxRunner
	now    func() time.Time
}

// New creates a new analytics service
// crashes may be nil when clickhouse is disabled, the trend endpoint then
// reports unavailable
func New(db repokit.TxRunner, binder repokit.Binder[repo.Repo], crashes repo.CrashRepo) *Svc {
	if db == nil {
		panic("analytics.Service requires a non nil TxRunner")
	}
	if binder == nil {
		panic("analytics.Service requires a non nil Repo binder")
	}
	return &Svc{
		Repo:    binder.Bind(db),
		Crash:   crashes,
		binder:  binder,
		db:      db,
		now:     time.Now,
	}
}

// Summary aggregates detections per asset type
// accuracy is round half up of avg confidence times 100, always within [0, 100]
func (s *Svc) Summary(ctx context.Context) ([]domain.TypeSummary, error) {
	rows, err := s.Repo.TypeCounts(ctx)
	if err != nil {
		return nil, perr.FromPostgres(err, "asset type summary")
	}
	out := make([]domain.TypeSummary, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.TypeSummary{
			Type:     r.Type,
			Detected: r.Detected,
			Verified: r.Verified,
			Accuracy: accuracyPercent(r.AvgConfidence),
		})
	}
	return out, nil
}

// Coverage reports surveyed mileage per project
func (s *Svc) Coverage(ctx context.Context) ([]domain.CoverageRow, error) {
	rows, err := s.Repo.Coverage(ctx)
	if err != nil {
		return nil, perr.FromPostgres(err, "coverage report")
	}
	out := make([]domain.CoverageRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.CoverageRow{
			ProjectName: r.ProjectName,
			Miles:       r.Meters / metersPerMile,
			FileCount:   r.FileCount,
			AssetCount:  r.AssetCount,
		})
	}
	return out, nil
}

// Crashes returns the monthly crash trend over the trailing window
func (s *Svc) Crashes(ctx context.Context, in domain.CrashInput) ([]domain.CrashBucket, error) {
	if s.Crash == nil {
		return nil, perr.Unavailablef("crash feed is not configured")
	}
	months := in.Months
	if months == 0 {
		months = defaultCrashMonths
	}
	if months < 1 || months > maxCrashMonths {
		return nil, perr.Newf(perr.ErrorCodeValidation, "months must be within [1, %d]", maxCrashMonths)
	}

	since := s.now().UTC().AddDate(0, -months, 0)
	rows, err := s.Crash.MonthlyCrashes(ctx, since)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeDB, "crash trend query")
	}
	out := make([]domain.CrashBucket, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.CrashBucket{
			Month:       r.Month.UTC().Format("2006-01-02"),
			Crashes:     r.Crashes,
			AvgSeverity: r.AvgSeverity,
		})
	}
	return out, nil
}

// accuracyPercent rounds half up so 0.94666 lands on 95, clamped for safety
// against float drift at the edges
func accuracyPercent(avg float64) int {
	p := int(math.Floor(avg*100 + 0.5))
	if p < 0 {
		return 0
	}
	if p > 100 {
		return 100
	}
	return p
}
