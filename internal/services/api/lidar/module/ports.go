package module

import (
	lidardom "geotwin/internal/services/api/lidar/domain"
)

// Ports exposes the registry surfaces other modules may depend on
type Ports struct {
	Reader lidardom.ReaderPort
	Status lidardom.StatusPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
