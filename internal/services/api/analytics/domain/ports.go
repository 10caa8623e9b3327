package domain

import "context"

// ServicePort defines the service contract for analytics
type ServicePort interface {
	Summary(ctx context.Context) ([]TypeSummary, error)
	Coverage(ctx context.Context) ([]CoverageRow, error)
	Crashes(ctx context.Context, in CrashInput) ([]CrashBucket, error)
}

// SummaryPort is the cross module surface the assets module mounts
// under its own prefix
type SummaryPort interface {
	Summary(ctx context.Context) ([]TypeSummary, error)
}
