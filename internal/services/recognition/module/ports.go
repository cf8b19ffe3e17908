package module

import "producescan/internal/services/recognition/domain"

// Ports is what the scan pipeline and meta consume from recognition
type Ports struct {
	Classifier domain.Classifier
	Assessor   domain.Assessor
	Lifecycle  domain.LifecyclePort
	Status     domain.StatusPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
