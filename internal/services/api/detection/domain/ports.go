package domain

import "context"

// ServicePort defines the service contract for detection jobs
type ServicePort interface {
	Run(ctx context.Context, in RunInput) (RunResult, error)
	Status(ctx context.Context, jobID string) (Job, error)
	Callback(ctx context.Context, in CallbackInput) (CallbackResult, error)
}
