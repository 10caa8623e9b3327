// Package domain holds DTOs for detection http and service contracts
package domain

import (
	assetsdom "geotwin/internal/services/api/assets/domain"
)

// Job statuses, transitions are monotonic: processing -> completed or failed
const (
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
)

// RunInput asks for detection models to run over a registered lidar file
type RunInput struct {
	LidarID string   `json:"lidar_id" validate:"required,uuid" example:"8b6f6f0e-93a5-4b0a-9a3e-2f4f62d9f001"`
	Models  []string `json:"models" validate:"required,min=1,dive,min=1" example:"yolov8"`
}

// RunResult is the job handle returned to the caller
type RunResult struct {
	JobID string `json:"job_id"`
}

// Job is a detection job record
type Job struct {
	ID              string   `json:"id"`
	LidarFileID     string   `json:"lidar_file_id"`
	RequestedModels []string `json:"requested_models"`
	Status          string   `json:"status"`
	ExternalJobID   string   `json:"external_job_id"`
	CreatedAt       string   `json:"created_at"`
	UpdatedAt       string   `json:"updated_at"`
}

// CallbackInput is how the detection service reports a finished job
// assets are persisted individually, one bad asset does not sink the rest
type CallbackInput struct {
	ExternalJobID string                  `json:"external_job_id" validate:"required"`
	Status        string                  `json:"status" validate:"required,oneof=completed failed"`
	Assets        []assetsdom.CreateInput `json:"assets" validate:"omitempty,dive"`
}

// CallbackResult reports what the callback changed
// applied false means the job had already left processing, a replay no-op
type CallbackResult struct {
	Applied        bool   `json:"applied"`
	JobStatus      string `json:"job_status"`
	AssetsInserted int    `json:"assets_inserted"`
	AssetsFailed   int    `json:"assets_failed"`
}
