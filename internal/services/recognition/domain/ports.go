package domain

import (
	"context"

	"producescan/internal/core/imageprep"
)

// Classifier names the produce in an image
// implementations never return errors or panic: failures come back as a Reason
type Classifier interface {
	Classify(ctx context.Context, img []byte) Classification
}

// Assessor grades the ripeness of an already identified item
// implementations never return errors or panic: failures come back as a Reason
type Assessor interface {
	Assess(ctx context.Context, img []byte) Assessment
}

// Predictor is a loaded model treated as a black box
// Predict returns one score per output class
type Predictor interface {
	Predict(ctx context.Context, in imageprep.Tensor) ([]float32, error)
}

// Prober reports whether a model is loaded and servable
type Prober interface {
	Probe(ctx context.Context) (detail string, err error)
}

// Model is a named predictor that can be probed at startup
type Model interface {
	Predictor
	Prober
	Name() string
}

// LifecyclePort is the cheap per call availability query the scan pipeline uses
type LifecyclePort interface {
	State() State
}

// StatusPort exposes per model probe results
type StatusPort interface {
	Report() StatusReport
}
