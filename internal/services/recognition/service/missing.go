package service

import (
	"context"

	"producescan/internal/core/imageprep"
	perr "producescan/internal/platform/errors"
	"producescan/internal/services/recognition/domain"
)

// missingModel stands in for a model with no configured endpoint
// it never becomes ready, so the lifecycle stays Unavailable
type missingModel struct{ role string }

// Missing returns a model placeholder for role
func Missing(role string) domain.Model { return missingModel{role: role} }

func (m missingModel) Name() string { return "" }

func (m missingModel) Probe(context.Context) (string, error) {
	return "", perr.Unavailablef("%s model not configured", m.role)
}

func (m missingModel) Predict(context.Context, imageprep.Tensor) ([]float32, error) {
	return nil, perr.Unavailablef("%s model not configured", m.role)
}
