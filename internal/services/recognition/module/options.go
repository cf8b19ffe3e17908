package module

import (
	"time"

	"producescan/internal/platform/config"
)

// Endpoint locates one served model
type Endpoint struct {
	URL     string
	Model   string
	Version int
}

// Options controls model endpoints and gating
type Options struct {
	Classifier Endpoint
	Ripeness   Endpoint

	// Threshold is the classifier confidence gate
	Threshold float64
	// MaxPixels bounds decoded image area
	MaxPixels int

	UserAgent    string
	Timeout      time.Duration
	MaxRetries   int
	RetryBase    time.Duration
	ProbeTimeout time.Duration
}

// FromConfig reads CORE_RECOGNITION_* values from process config/env
// the ripeness endpoint defaults to the classifier server
func FromConfig(cfg config.Conf) Options {
	rc := cfg.Prefix("CORE_RECOGNITION_")
	clsURL := rc.MayString("CLASSIFIER_URL", "")
	return Options{
		Classifier: Endpoint{
			URL:     clsURL,
			Model:   rc.MayString("CLASSIFIER_MODEL", "produce_classifier"),
			Version: rc.MayInt("CLASSIFIER_VERSION", 0),
		},
		Ripeness: Endpoint{
			URL:     rc.MayString("RIPENESS_URL", clsURL),
			Model:   rc.MayString("RIPENESS_MODEL", "ripeness"),
			Version: rc.MayInt("RIPENESS_VERSION", 0),
		},
		Threshold:    rc.MayFloat64("THRESHOLD", 0.15),
		MaxPixels:    rc.MayInt("MAX_PIXELS", 40_000_000),
		UserAgent:    rc.MayString("USER_AGENT", "producescan"),
		Timeout:      rc.MayDuration("TIMEOUT", 10*time.Second),
		MaxRetries:   rc.MayInt("MAX_RETRIES", 2),
		RetryBase:    rc.MayDuration("RETRY_BASE", 200*time.Millisecond),
		ProbeTimeout: rc.MayDuration("PROBE_TIMEOUT", 5*time.Second),
	}
}
