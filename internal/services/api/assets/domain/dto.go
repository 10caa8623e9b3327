// Package domain holds DTOs for asset http and service contracts
package domain

import "encoding/json"

// CreateInput describes a detected asset to persist
// coordinates are WGS84 lon lat, confidence is the raw model score
type CreateInput struct {
	Type        string          `json:"type" validate:"required,min=1,max=100" example:"fire_hydrant"`
	ProjectID   string          `json:"project_id" validate:"required,min=1,max=100" example:"downtown-corridor"`
	LidarFileID string          `json:"lidar_file_id,omitempty" validate:"omitempty,uuid" example:"8b6f6f0e-93a5-4b0a-9a3e-2f4f62d9f001"`
	Confidence  float64         `json:"confidence" validate:"gte=0,lte=1" example:"0.95"`
	Longitude   float64         `json:"longitude" validate:"gte=-180,lte=180" example:"-104.99"`
	Latitude    float64         `json:"latitude" validate:"gte=-90,lte=90" example:"39.74"`
	Elevation   *float64        `json:"elevation,omitempty" example:"1608.5"`
	Metadata    json.RawMessage `json:"metadata,omitempty" swaggertype:"object"`
}

// UpdateInput is the partial update surface, only verification state and
// operator annotations can change after detection
type UpdateInput struct {
	Verified *bool           `json:"verified,omitempty"`
	Metadata json.RawMessage `json:"metadata,omitempty" swaggertype:"object"`
}

// ListInput filters the asset listing
type ListInput struct {
	Type      string
	ProjectID string
	Verified  *bool
	Limit     int
	Offset    int
}

// SpatialInput is a bounding box query, coordinates in WGS84
type SpatialInput struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
	Type string
}

// Asset is a detected point asset
type Asset struct {
	ID          string          `json:"id"`
	Type        string          `json:"type"`
	ProjectID   string          `json:"project_id"`
	LidarFileID string          `json:"lidar_file_id,omitempty"`
	Confidence  float64         `json:"confidence"`
	Longitude   float64         `json:"longitude"`
	Latitude    float64         `json:"latitude"`
	Elevation   *float64        `json:"elevation,omitempty"`
	Verified    bool            `json:"verified"`
	Metadata    json.RawMessage `json:"metadata" swaggertype:"object"`
	CreatedAt   string          `json:"created_at"`
	UpdatedAt   string          `json:"updated_at"`
}

// DeleteResult reports an asset delete, deletes are idempotent
type DeleteResult struct {
	Success bool `json:"success"`
}
