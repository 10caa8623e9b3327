package module

import (
	analyticsdom "geotwin/internal/services/api/analytics/domain"
	assetsdom "geotwin/internal/services/api/assets/domain"
)

// Ports carries the injected analytics summary surface in and exposes the
// asset writer the orchestrator persists callback results through
type Ports struct {
	Summary analyticsdom.SummaryPort
	Writer  assetsdom.WriterPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
