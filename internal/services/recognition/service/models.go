package service

import (
	"context"
	"sync"
	"sync/atomic"

	"producescan/internal/platform/logger"
	"producescan/internal/services/recognition/domain"
)

// Models owns the lifecycle of the classifier and ripeness models
// probed once at startup, read lock free thereafter
type Models struct {
	classifier domain.Model
	ripeness   domain.Model

	once    sync.Once
	state   atomic.Uint32
	mu      sync.RWMutex
	reports []domain.ModelStatus
	log     logger.Logger
}

var _ domain.LifecyclePort = (*Models)(nil)

// NewModels tracks the two models, either may be nil when not configured
func NewModels(classifier, ripeness domain.Model) *Models {
	return &Models{
		classifier: classifier,
		ripeness:   ripeness,
		log:        *logger.Named("models"),
	}
}

// Init probes both models once and fixes the lifecycle state
// later calls return the state decided by the first
func (m *Models) Init(ctx context.Context) domain.State {
	m.once.Do(func() {
		reports := []domain.ModelStatus{
			m.probe(ctx, "classifier", m.classifier),
			m.probe(ctx, "ripeness", m.ripeness),
		}
		state := domain.StateReady
		for _, r := range reports {
			if r.State != domain.StateReady.String() {
				state = domain.StateUnavailable
			}
		}

		m.mu.Lock()
		m.reports = reports
		m.mu.Unlock()
		m.state.Store(uint32(state))

		if state == domain.StateUnavailable {
			m.log.Warn().Interface("models", reports).Msg("prediction models unavailable, scans will degrade")
		} else {
			m.log.Info().Interface("models", reports).Msg("prediction models ready")
		}
	})
	return m.State()
}

func (m *Models) probe(ctx context.Context, role string, model domain.Model) domain.ModelStatus {
	if model == nil {
		return domain.ModelStatus{Role: role, State: domain.StateUnavailable.String(), Detail: "not configured"}
	}
	st := domain.ModelStatus{Name: model.Name(), Role: role}
	detail, err := model.Probe(ctx)
	if err != nil {
		st.State = domain.StateUnavailable.String()
		st.Detail = err.Error()
		return st
	}
	st.State = domain.StateReady.String()
	st.Detail = detail
	return st
}

// State is the cheap lifecycle query, safe for concurrent use
func (m *Models) State() domain.State { return domain.State(m.state.Load()) }

// Classifier returns the classifier model (may be nil)
func (m *Models) Classifier() domain.Model { return m.classifier }

// Ripeness returns the ripeness model (may be nil)
func (m *Models) Ripeness() domain.Model { return m.ripeness }

// Report summarizes the lifecycle for meta endpoints
func (m *Models) Report() domain.StatusReport {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([]domain.ModelStatus, len(m.reports))
	copy(out, m.reports)
	return domain.StatusReport{State: m.State().String(), Models: out}
}
