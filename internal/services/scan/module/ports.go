package module

import (
	"producescan/internal/core/shelflife"
	"producescan/internal/platform/net/middleware"
	auditdom "producescan/internal/services/audit/domain"
	ndom "producescan/internal/services/nutrition/domain"
	rdom "producescan/internal/services/recognition/domain"
	"producescan/internal/services/scan/domain"
)

// Ports is what scan exposes to other modules and binaries
type Ports struct {
	Pipeline domain.Pipeline
}

// Requires are the ports scan needs injected through modkit.WithPorts
// Auth, Assets and ShelfLife are optional
type Requires struct {
	Lifecycle  rdom.LifecyclePort
	Classifier rdom.Classifier
	Assessor   rdom.Assessor
	Nutrition  ndom.ReaderPort
	Sink       auditdom.Sink

	Auth      middleware.AuthPort
	Assets    domain.AssetStore
	ShelfLife shelflife.Table
}
