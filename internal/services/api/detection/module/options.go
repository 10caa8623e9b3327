package module

import (
	"time"

	"geotwin/internal/platform/config"
)

// Options controls orchestrator behavior and detection client settings
type Options struct {
	// Detection service client
	BaseURL   string
	UserAgent string
	Timeout   time.Duration

	// KnownModels is the closed set of model names accepted by POST /detection/run
	KnownModels []string
}

// FromConfig reads DETECT_* values from process config/env
func FromConfig(cfg config.Conf) Options {
	dc := cfg.Prefix("DETECT_")
	return Options{
		BaseURL:     dc.MayString("URL", "http://localhost:8000"),
		UserAgent:   dc.MayString("UA", "geotwin-api"),
		Timeout:     dc.MayDuration("TIMEOUT", 15*time.Second),
		KnownModels: dc.MayCSV("MODELS", []string{"yolov8"}),
	}
}
