package domain

import "context"

// ServicePort defines the service contract for assets
type ServicePort interface {
	Create(ctx context.Context, in CreateInput) (Asset, error)
	List(ctx context.Context, in ListInput) ([]Asset, error)
	Spatial(ctx context.Context, in SpatialInput) ([]Asset, error)
	Update(ctx context.Context, id string, in UpdateInput) (Asset, error)
	Delete(ctx context.Context, id string) (DeleteResult, error)
}

// WriterPort is the cross module write surface the orchestrator uses to
// persist callback results
type WriterPort interface {
	Create(ctx context.Context, in CreateInput) (Asset, error)
}
