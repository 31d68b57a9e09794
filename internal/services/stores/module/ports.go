package module

import (
	storesdom "storewatch/internal/services/stores/domain"
)

// Ports are the cross module ports exposed by the stores module
type Ports struct {
	Reader storesdom.ReaderPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
