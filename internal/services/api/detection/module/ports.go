package module

import (
	assetsdom "geotwin/internal/services/api/assets/domain"
	detectionsvc "geotwin/internal/services/api/detection/service"
	lidardom "geotwin/internal/services/api/lidar/domain"
)

// Ports declares the injected collaborators for the orchestrator
// Runner is optional, when nil the module builds a client from config
type Ports struct {
	Runner      detectionsvc.Runner
	Lidar       lidardom.ReaderPort
	LidarStatus lidardom.StatusPort
	Assets      assetsdom.WriterPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
