package module

import (
	"context"
	"strings"

	"producescan/internal/adapters/inference/tfserving"
	"producescan/internal/platform/logger"
	"producescan/internal/services/recognition/domain"
	"producescan/internal/services/recognition/service"
)

// Runtime is the probed model set with its two adapters
type Runtime struct {
	Models     *service.Models
	Classifier *service.Classifier
	Assessor   *service.Assessor
}

// Open builds both model clients and probes them once
// a model that cannot be built or probed leaves the runtime Unavailable rather than failing
func Open(ctx context.Context, o Options) Runtime {
	log := logger.Named("recognition")

	cls := model(o, o.Classifier, "classifier", log)
	rip := model(o, o.Ripeness, "ripeness", log)

	models := service.NewModels(cls, rip)

	pctx := ctx
	if o.ProbeTimeout > 0 {
		var cancel context.CancelFunc
		pctx, cancel = context.WithTimeout(ctx, o.ProbeTimeout)
		defer cancel()
	}
	models.Init(pctx)

	return Runtime{
		Models: models,
		Classifier: service.NewClassifier(cls, service.ClassifierOptions{
			Threshold: o.Threshold,
			MaxPixels: o.MaxPixels,
		}),
		Assessor: service.NewAssessor(rip, service.AssessorOptions{MaxPixels: o.MaxPixels}),
	}
}

func model(o Options, ep Endpoint, role string, log *logger.Logger) domain.Model {
	if strings.TrimSpace(ep.URL) == "" {
		return service.Missing(role)
	}
	c, err := tfserving.New(tfserving.Options{
		BaseURL:    ep.URL,
		Model:      ep.Model,
		Version:    ep.Version,
		UserAgent:  o.UserAgent,
		Timeout:    o.Timeout,
		MaxRetries: o.MaxRetries,
		RetryBase:  o.RetryBase,
	})
	if err != nil {
		log.Warn().Err(err).Str("role", role).Msg("model client config rejected")
		return service.Missing(role)
	}
	return c
}
