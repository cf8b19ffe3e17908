// Package domain holds the scan pipeline types: its input, the outcome and the outward view
package domain

import (
	"github.com/google/uuid"

	"producescan/internal/core/produce"
	rdom "producescan/internal/services/recognition/domain"
)

// Source is where the image came from
type Source uint8

const (
	// SourceUpload is a user supplied file
	SourceUpload Source = iota
	// SourceCamera is a single captured frame
	SourceCamera
)

func (s Source) String() string {
	if s == SourceCamera {
		return "camera"
	}
	return "upload"
}

// Input is one scan request
type Input struct {
	Image []byte
	// Filename is the client supplied name hint, uploads only
	Filename string
	Source   Source
	// Actor is recorded on the audit event, empty means anonymous
	Actor string
	// Asset overrides the generated stored asset name
	Asset string
}

// Mode drives how a client presents the result
type Mode string

const (
	// ModeNormal is the default presentation
	ModeNormal Mode = "normal"
	// ModeFaded marks results for an item that appears rotten
	ModeFaded Mode = "faded"
)

// Outward sentinels that stand in for a label
const (
	ViewInvalidImage = "Invalid Image"
	ViewModelMissing = "Model missing"
)

// RottenAdvisory is attached to every Rotten result
const RottenAdvisory = "The item detected appears to be rotten. Nutritional values may vary or be inaccurate."

// Nutrition is the per 100 g profile joined onto an identified item
// each value is nil when the record does not carry it
type Nutrition struct {
	Calories *float64 `json:"calories" example:"89"`
	Protein  *float64 `json:"protein"  example:"1.1"`
	Carbs    *float64 `json:"carbs"    example:"22.8"`
	Fat      *float64 `json:"fat"      example:"0.3"`
	Fiber    *float64 `json:"fiber"    example:"2.6"`
}

// Outcome is the internal result of one scan
// when Label is Unidentified every derived field is empty
type Outcome struct {
	ID         uuid.UUID
	Label      produce.Label
	Confidence float64
	Ripeness   produce.Ripeness
	Nutrition  *Nutrition
	ShelfLife  string
	Advisory   string
	Mode       Mode

	// Reason is why classification fell short, ReasonOK otherwise
	Reason rdom.Reason
	// Degraded is set when the models were unavailable and nothing ran
	Degraded bool

	Asset    string
	Location string
}

// Identified reports whether a real class was named
func (o Outcome) Identified() bool { return !o.Degraded && o.Label.Identified() }

// View is the outward result record
type View struct {
	ID         string     `json:"id"         example:"0b8f5a1e-6a47-4f38-9d55-1e2f4b6a7c80"`
	Label      string     `json:"label"      example:"banana"`
	Confidence float64    `json:"confidence" example:"0.93"`
	Ripeness   string     `json:"ripeness"   example:"Ripe"`
	Nutrition  *Nutrition `json:"nutrition"`
	ShelfLife  string     `json:"shelf_life" example:"2-5 days at room temperature"`
	Advisory   *string    `json:"advisory"`
	Mode       Mode       `json:"mode"       example:"normal"`
	Image      string     `json:"image,omitempty" example:"uploads/1759300000_banana.jpg"`
}

// View renders o for clients
func (o Outcome) View() View {
	v := View{
		ID:         o.ID.String(),
		Confidence: o.Confidence,
		Mode:       o.Mode,
		Image:      o.Location,
	}
	if v.Mode == "" {
		v.Mode = ModeNormal
	}
	switch {
	case o.Degraded:
		v.Label = ViewModelMissing
	case !o.Label.Identified():
		v.Label = ViewInvalidImage
	default:
		v.Label = o.Label.String()
		if o.Ripeness != produce.Unknown {
			v.Ripeness = o.Ripeness.String()
		}
		v.Nutrition = o.Nutrition
		v.ShelfLife = o.ShelfLife
		if o.Advisory != "" {
			a := o.Advisory
			v.Advisory = &a
		}
	}
	return v
}
