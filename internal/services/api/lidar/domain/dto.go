// Package domain holds DTOs for lidar registry http and service contracts
package domain

// File statuses move forward only: uploaded -> processing -> completed or failed
const (
	StatusUploaded   = "uploaded"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// RegisterInput records a lidar file that already landed on storage
// byte transport happens elsewhere, this is bookkeeping only
type RegisterInput struct {
	Filename  string `json:"filename" validate:"required,min=1,max=255" example:"scan-2026-03.las"`
	ProjectID string `json:"project_id" validate:"required,min=1,max=100" example:"downtown-corridor"`
	Size      int64  `json:"size" validate:"required,gt=0" example:"104857600"`
	FilePath  string `json:"file_path" validate:"required,min=1" example:"/mnt/lidar/scan-2026-03.las"`
}

// ListInput filters the registry listing
type ListInput struct {
	ProjectID string
	Status    string
	Limit     int
}

// File is a registered lidar capture
type File struct {
	ID        string `json:"id"`
	Filename  string `json:"filename"`
	ProjectID string `json:"project_id"`
	Size      int64  `json:"size"`
	FilePath  string `json:"file_path"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
}

// DeleteResult reports the outcome of a registry delete
type DeleteResult struct {
	Deleted bool `json:"deleted"`
}
