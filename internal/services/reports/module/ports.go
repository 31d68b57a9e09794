package module

import (
	reportsdom "storewatch/internal/services/reports/domain"
)

// Ports are the cross module ports exposed by the reports module
type Ports struct {
	Service reportsdom.ServicePort
	Runner  reportsdom.RunnerPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
