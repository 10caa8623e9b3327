package domain

import "context"

// ServicePort defines the service contract for the lidar registry
type ServicePort interface {
	Register(ctx context.Context, in RegisterInput) (File, error)
	List(ctx context.Context, in ListInput) ([]File, error)
	Get(ctx context.Context, id string) (File, error)
	Delete(ctx context.Context, id string) (DeleteResult, error)
}

// ReaderPort is the cross module read surface other modules depend on
type ReaderPort interface {
	Get(ctx context.Context, id string) (File, error)
}

// StatusPort lets the orchestrator advance a file through its lifecycle
type StatusPort interface {
	Advance(ctx context.Context, id, status string) error
}
