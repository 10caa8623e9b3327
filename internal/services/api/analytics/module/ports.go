package module

import (
	analyticsdom "geotwin/internal/services/api/analytics/domain"
)

// Ports exposes the summary surface the assets module mounts
type Ports struct {
	Summary analyticsdom.SummaryPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
