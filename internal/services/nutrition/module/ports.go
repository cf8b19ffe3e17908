package module

import "producescan/internal/services/nutrition/domain"

// Ports is what other modules may consume from nutrition
type Ports struct {
	Reader domain.ReaderPort
	Writer domain.WriterPort
}

// Ports returns the module ports
func (m *Module) Ports() any { return m.ports }
