// Package domain defines the recognition contracts: the two model adapters,
// the raw predictor seam under them and the process wide model lifecycle
package domain

import "producescan/internal/core/produce"

// Reason explains how an adapter arrived at its result
// the scan pipeline interprets these instead of catching errors
type Reason uint8

const (
	// ReasonOK means inference ran and the result stands
	ReasonOK Reason = iota
	// ReasonLowConfidence means the classifier ran but its top score fell under the trust threshold
	ReasonLowConfidence
	// ReasonDecodeFailure means the bytes were not a usable image
	ReasonDecodeFailure
	// ReasonInferenceFailure means the model call or its output was unusable
	ReasonInferenceFailure
	// ReasonModelsUnavailable means the models never became ready
	ReasonModelsUnavailable
)

var reasonNames = [...]string{
	ReasonOK:                "ok",
	ReasonLowConfidence:     "low_confidence",
	ReasonDecodeFailure:     "decode_failure",
	ReasonInferenceFailure:  "inference_failure",
	ReasonModelsUnavailable: "models_unavailable",
}

func (r Reason) String() string {
	if int(r) < len(reasonNames) {
		return reasonNames[r]
	}
	return "unknown"
}

// Degraded reports whether the result is a fallback rather than a model answer
func (r Reason) Degraded() bool { return r != ReasonOK }

// Classification is the classifier adapter result
// Label is Unidentified and Confidence 0 on every failure reason
type Classification struct {
	Label      produce.Label
	Confidence float64
	Reason     Reason
}

// Assessment is the ripeness adapter result
// State is Unknown on every failure reason
type Assessment struct {
	State  produce.Ripeness
	Reason Reason
}

// State is the lifecycle of the loaded models
type State uint8

const (
	// StateUninitialized is before startup probing finished
	StateUninitialized State = iota
	// StateReady means every model answered its readiness probe
	StateReady
	// StateUnavailable means at least one model failed to load
	StateUnavailable
)

func (s State) String() string {
	switch s {
	case StateReady:
		return "ready"
	case StateUnavailable:
		return "unavailable"
	default:
		return "uninitialized"
	}
}

// ModelStatus is one model's probe result
type ModelStatus struct {
	Name   string `json:"name"   example:"produce_classifier"`
	Role   string `json:"role"   example:"classifier"`
	State  string `json:"state"  example:"ready"`
	Detail string `json:"detail,omitempty" example:"model version 3 AVAILABLE"`
}

// StatusReport summarizes the lifecycle for meta endpoints
type StatusReport struct {
	State  string        `json:"state" example:"ready"`
	Models []ModelStatus `json:"models"`
}
