package service

import (
	"context"

	"producescan/internal/core/imageprep"
	"producescan/internal/core/produce"
	"producescan/internal/platform/logger"
	"producescan/internal/services/recognition/domain"
)

// AssessorSize is the square input edge of the ripeness model
const AssessorSize = 128

// AssessorOptions tune an Assessor
type AssessorOptions struct {
	Size      int
	MaxPixels int
}

// Assessor grades ripeness, the top class always stands (no confidence gate)
type Assessor struct {
	model domain.Predictor
	prep  *imageprep.Preparer
	log   logger.Logger
}

var _ domain.Assessor = (*Assessor)(nil)

// NewAssessor wraps a predictor, a nil predictor is a wiring bug
func NewAssessor(model domain.Predictor, o AssessorOptions) *Assessor {
	if model == nil {
		panic("recognition.Assessor requires a non nil Predictor")
	}
	if o.Size <= 0 {
		o.Size = AssessorSize
	}
	return &Assessor{
		model: model,
		prep:  imageprep.New(imageprep.Options{Size: o.Size, MaxPixels: o.MaxPixels}),
		log:   *logger.Named("ripeness"),
	}
}

// Assess runs the ripeness model over img
func (a *Assessor) Assess(ctx context.Context, img []byte) (out domain.Assessment) {
	defer func() {
		if r := recover(); r != nil {
			a.log.Error().Interface("panic", r).Msg("ripeness panicked")
			out = domain.Assessment{State: produce.Unknown, Reason: domain.ReasonInferenceFailure}
		}
	}()

	t, err := a.prep.Prepare(img)
	if err != nil {
		a.log.Debug().Err(err).Msg("ripeness decode failed")
		return domain.Assessment{State: produce.Unknown, Reason: domain.ReasonDecodeFailure}
	}
	scores, err := a.model.Predict(ctx, t)
	if err != nil {
		a.log.Warn().Err(err).Msg("ripeness inference failed")
		return domain.Assessment{State: produce.Unknown, Reason: domain.ReasonInferenceFailure}
	}
	if len(scores) != produce.NumRipenessClasses {
		a.log.Warn().Int("scores", len(scores)).Msg("ripeness output width mismatch")
	}

	idx, _, ok := argmax(scores)
	state := produce.RipenessAt(idx)
	if !ok || state == produce.Unknown {
		return domain.Assessment{State: produce.Unknown, Reason: domain.ReasonInferenceFailure}
	}
	return domain.Assessment{State: state, Reason: domain.ReasonOK}
}
