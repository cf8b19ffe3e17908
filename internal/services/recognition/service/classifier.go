// Package service implements the recognition adapters over raw model predictors
package service

import (
	"context"

	"producescan/internal/core/imageprep"
	"producescan/internal/core/produce"
	"producescan/internal/platform/logger"
	"producescan/internal/services/recognition/domain"
)

const (
	// ClassifierSize is the square input edge of the produce classifier
	ClassifierSize = 224
	// DefaultThreshold is the minimum top score trusted as an identification
	DefaultThreshold = 0.15
)

// ClassifierOptions tune a Classifier
type ClassifierOptions struct {
	Size      int
	Threshold float64
	MaxPixels int
}

// Classifier identifies produce with a confidence gate
type Classifier struct {
	model     domain.Predictor
	prep      *imageprep.Preparer
	threshold float64
	log       logger.Logger
}

var _ domain.Classifier = (*Classifier)(nil)

// NewClassifier wraps a predictor, a nil predictor is a wiring bug
func NewClassifier(model domain.Predictor, o ClassifierOptions) *Classifier {
	if model == nil {
		panic("recognition.Classifier requires a non nil Predictor")
	}
	if o.Size <= 0 {
		o.Size = ClassifierSize
	}
	if o.Threshold <= 0 {
		o.Threshold = DefaultThreshold
	}
	return &Classifier{
		model:     model,
		prep:      imageprep.New(imageprep.Options{Size: o.Size, MaxPixels: o.MaxPixels}),
		threshold: o.Threshold,
		log:       *logger.Named("classifier"),
	}
}

// Threshold returns the confidence gate in use
func (c *Classifier) Threshold() float64 { return c.threshold }

// Classify runs the classifier over img
// scores under the threshold yield Unidentified even when a class won the argmax
func (c *Classifier) Classify(ctx context.Context, img []byte) (out domain.Classification) {
	defer func() {
		if r := recover(); r != nil {
			c.log.Error().Interface("panic", r).Msg("classifier panicked")
			out = failed(domain.ReasonInferenceFailure)
		}
	}()

	t, err := c.prep.Prepare(img)
	if err != nil {
		c.log.Debug().Err(err).Int("bytes", len(img)).Msg("classifier decode failed")
		return failed(domain.ReasonDecodeFailure)
	}

	scores, err := c.model.Predict(ctx, t)
	if err != nil {
		c.log.Warn().Err(err).Msg("classifier inference failed")
		return failed(domain.ReasonInferenceFailure)
	}
	if len(scores) != produce.NumClasses {
		c.log.Warn().Int("scores", len(scores)).Int("classes", produce.NumClasses).Msg("classifier output width mismatch")
	}

	idx, top, ok := argmax(scores)
	if !ok {
		c.log.Warn().Int("scores", len(scores)).Msg("classifier returned no usable score")
		return failed(domain.ReasonInferenceFailure)
	}
	label := produce.LabelAt(idx)
	if !label.Identified() {
		c.log.Warn().Int("index", idx).Msg("classifier index outside label table")
		return failed(domain.ReasonInferenceFailure)
	}

	conf := unit(top)
	if conf < c.threshold {
		c.log.Debug().Str("top", label.String()).Float64("confidence", conf).Msg("classifier below threshold")
		return domain.Classification{Label: produce.Unidentified, Confidence: conf, Reason: domain.ReasonLowConfidence}
	}
	return domain.Classification{Label: label, Confidence: conf, Reason: domain.ReasonOK}
}

func failed(r domain.Reason) domain.Classification {
	return domain.Classification{Label: produce.Unidentified, Confidence: 0, Reason: r}
}
