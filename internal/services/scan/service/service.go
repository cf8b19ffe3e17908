// Package service implements the produce scan decision pipeline
package service

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"producescan/internal/core/assetname"
	"producescan/internal/core/produce"
	"producescan/internal/core/shelflife"
	"producescan/internal/platform/logger"
	auditdom "producescan/internal/services/audit/domain"
	ndom "producescan/internal/services/nutrition/domain"
	rdom "producescan/internal/services/recognition/domain"
	"producescan/internal/services/scan/domain"
)

// Deps are the pipeline collaborators
// Assets and ShelfLife are optional
type Deps struct {
	Lifecycle  rdom.LifecyclePort
	Classifier rdom.Classifier
	Assessor   rdom.Assessor
	Nutrition  ndom.ReaderPort
	ShelfLife  shelflife.Table
	Sink       auditdom.Sink
	Assets     domain.AssetStore
}

// Svc implements domain.Pipeline
type Svc struct {
	d     Deps
	log   logger.Logger
	now   func() time.Time
	newID func() uuid.UUID
}

var _ domain.Pipeline = (*Svc)(nil)

// New creates the pipeline, missing required collaborators are a wiring bug
func New(d Deps) *Svc {
	switch {
	case d.Lifecycle == nil:
		panic("scan.Service requires a model lifecycle")
	case d.Classifier == nil:
		panic("scan.Service requires a Classifier")
	case d.Assessor == nil:
		panic("scan.Service requires an Assessor")
	case d.Nutrition == nil:
		panic("scan.Service requires a nutrition reader")
	case d.Sink == nil:
		panic("scan.Service requires an audit sink")
	}
	if d.ShelfLife == nil {
		d.ShelfLife = shelflife.Empty()
	}
	return &Svc{
		d:     d,
		log:   *logger.Named("scan"),
		now:   time.Now,
		newID: uuid.New,
	}
}

// Capture records the camera intake line then scans the frame
func (s *Svc) Capture(ctx context.Context, in domain.Input) domain.Outcome {
	in.Source = domain.SourceCamera
	if in.Asset == "" {
		in.Asset = assetname.ForCamera(s.now())
	}
	s.record(ctx, "Captured image from camera: "+in.Asset, in.Actor)
	return s.Scan(ctx, in)
}

// Scan runs one image through the pipeline and emits exactly one audit event
func (s *Svc) Scan(ctx context.Context, in domain.Input) (out domain.Outcome) {
	r := run{svc: s, in: in, log: logger.C(ctx).With().Str("component", "scan").Logger()}
	defer func() {
		if p := recover(); p != nil {
			r.log.Error().Interface("panic", p).Str("asset", r.asset).Msg("scan pipeline panicked, degrading")
			out = r.unidentified(rdom.ReasonInferenceFailure)
		}
		if !r.emitted {
			r.emit(ctx, out)
		}
	}()

	r.id = s.newID()
	r.asset = s.assetName(in)
	r.location = s.store(ctx, r.asset, in.Image)

	if st := s.d.Lifecycle.State(); st != rdom.StateReady {
		r.log.Warn().Str("state", st.String()).Str("asset", r.asset).Msg("models not ready, scan skipped")
		out = r.base()
		out.Label = produce.Unidentified
		out.Ripeness = produce.Unknown
		out.Reason = rdom.ReasonModelsUnavailable
		out.Degraded = true
		return out
	}

	cls := s.d.Classifier.Classify(ctx, in.Image)
	if !cls.Label.Identified() {
		r.log.Debug().Str("reason", cls.Reason.String()).Float64("confidence", cls.Confidence).Msg("item not identified")
		return r.unidentified(cls.Reason)
	}

	ass := s.assess(ctx, r.log, in.Image)
	if ass.Reason != rdom.ReasonOK {
		r.log.Debug().Str("reason", ass.Reason.String()).Msg("ripeness unknown")
	}

	out = r.base()
	out.Label = cls.Label
	out.Confidence = cls.Confidence
	out.Reason = cls.Reason
	out.Ripeness = ass.State
	out.Nutrition, out.ShelfLife = s.join(ctx, r.log, cls.Label, ass.State)

	if ass.State == produce.Rotten {
		out.Advisory = domain.RottenAdvisory
		out.Mode = domain.ModeFaded
	}
	return out
}

// assess runs the ripeness stage, a panic there keeps the label and degrades ripeness to Unknown
func (s *Svc) assess(ctx context.Context, log logger.Logger, img []byte) (out rdom.Assessment) {
	defer func() {
		if p := recover(); p != nil {
			log.Error().Interface("panic", p).Msg("ripeness assessment panicked")
			out = rdom.Assessment{State: produce.Unknown, Reason: rdom.ReasonInferenceFailure}
		}
	}()
	return s.d.Assessor.Assess(ctx, img)
}

// join resolves nutrition and shelf life concurrently
func (s *Svc) join(ctx context.Context, log logger.Logger, label produce.Label, rip produce.Ripeness) (*domain.Nutrition, string) {
	var (
		wg    sync.WaitGroup
		nut   *domain.Nutrition
		shelf string
	)
	wg.Go(func() {
		defer func() {
			if p := recover(); p != nil {
				log.Error().Interface("panic", p).Msg("nutrition lookup panicked")
				nut = nil
			}
		}()
		rec, ok, err := s.d.Nutrition.FindActiveByName(ctx, label.String())
		if err != nil {
			log.Warn().Err(err).Str("label", label.String()).Msg("nutrition lookup failed")
			return
		}
		if !ok {
			log.Debug().Str("label", label.String()).Msg("no nutrition record")
			return
		}
		nut = &domain.Nutrition{
			Calories: rec.Calories,
			Protein:  rec.Protein,
			Carbs:    rec.Carbs,
			Fat:      rec.Fat,
			Fiber:    rec.Fiber,
		}
	})
	wg.Go(func() {
		defer func() {
			if p := recover(); p != nil {
				log.Error().Interface("panic", p).Msg("shelf life lookup panicked")
				shelf = ""
			}
		}()
		shelf = s.d.ShelfLife.Lookup(label, rip)
	})
	wg.Wait()
	return nut, shelf
}

func (s *Svc) assetName(in domain.Input) string {
	if in.Asset != "" {
		return in.Asset
	}
	if in.Source == domain.SourceCamera {
		return assetname.ForCamera(s.now())
	}
	return assetname.ForUpload(s.now(), in.Filename)
}

// store keeps a copy of the image, failures never affect the outcome
func (s *Svc) store(ctx context.Context, asset string, img []byte) (location string) {
	if s.d.Assets == nil || len(img) == 0 {
		return ""
	}
	defer func() {
		if p := recover(); p != nil {
			s.log.Error().Interface("panic", p).Str("asset", asset).Msg("asset store panicked")
			location = ""
		}
	}()
	loc, err := s.d.Assets.Put(ctx, asset, img, http.DetectContentType(img))
	if err != nil {
		s.log.Warn().Err(err).Str("asset", asset).Msg("asset not stored")
		return ""
	}
	return loc
}

// record forwards to the sink, a panicking sink is contained
func (s *Svc) record(ctx context.Context, action, actor string) {
	defer func() {
		if p := recover(); p != nil {
			s.log.Error().Interface("panic", p).Str("action", action).Msg("audit sink panicked")
		}
	}()
	s.d.Sink.Record(ctx, action, actor)
}

// run carries per call state so the deferred recovery can finish the outcome
type run struct {
	svc      *Svc
	in       domain.Input
	log      logger.Logger
	id       uuid.UUID
	asset    string
	location string
	emitted  bool
}

func (r *run) base() domain.Outcome {
	return domain.Outcome{
		ID:       r.id,
		Mode:     domain.ModeNormal,
		Asset:    r.asset,
		Location: r.location,
	}
}

// unidentified drops everything the classifier said, confidence included
func (r *run) unidentified(reason rdom.Reason) domain.Outcome {
	out := r.base()
	out.Label = produce.Unidentified
	out.Ripeness = produce.Unknown
	out.Reason = reason
	return out
}

func (r *run) emit(ctx context.Context, out domain.Outcome) {
	r.emitted = true
	r.svc.record(ctx, Action(r.in.Source, out), r.in.Actor)
}

// Action renders the audit line for a finished scan
func Action(src domain.Source, out domain.Outcome) string {
	if out.Degraded {
		return "Attempted scan but models missing: " + out.Asset
	}
	v := out.View()
	if src == domain.SourceCamera {
		return "Camera scan -> " + v.Label + " -> " + v.Ripeness
	}
	return "Scanned " + v.Label + " -> " + v.Ripeness
}
