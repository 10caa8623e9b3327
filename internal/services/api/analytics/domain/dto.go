// Package domain holds DTOs for analytics http and service contracts
package domain

// TypeSummary aggregates detections for one asset type
// accuracy is the mean confidence expressed as a whole percent
type TypeSummary struct {
	Type     string `json:"type"`
	Detected int64  `json:"detected"`
	Verified int64  `json:"verified"`
	Accuracy int    `json:"accuracy"`
}

// CoverageRow aggregates surveyed mileage per project
type CoverageRow struct {
	ProjectName string  `json:"project_name"`
	Miles       float64 `json:"miles"`
	FileCount   int64   `json:"file_count"`
	AssetCount  int64   `json:"asset_count"`
}

// CrashBucket is one calendar month of crash events
// months with zero crashes simply do not appear
type CrashBucket struct {
	Month       string  `json:"month"`
	Crashes     int64   `json:"crashes"`
	AvgSeverity float64 `json:"avg_severity"`
}

// CrashInput bounds the crash trend window
type CrashInput struct {
	Months int
}
