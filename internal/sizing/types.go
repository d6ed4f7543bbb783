package sizing

import (
	"github.com/go-playground/validator/v10"
	pkgerrors "github.com/lyvest/lyvest-backend/pkg/errors"
)

// Size is a garment size band, smallest to largest.
type Size string

const (
	SizePP Size = "PP"
	SizeP  Size = "P"
	SizeM  Size = "M"
	SizeG  Size = "G"
	SizeGG Size = "GG"
)

// sizeOrder fixes the band adjacency used for alternatives and fit maps.
var sizeOrder = []Size{SizePP, SizeP, SizeM, SizeG, SizeGG}

// FitStatus is the qualitative fit outcome for one size.
type FitStatus string

const (
	FitTight   FitStatus = "tight"
	FitPerfect FitStatus = "perfect"
	FitLoose   FitStatus = "loose"
)

const (
	BustSmall  = "small"
	BustMedium = "medium"
	BustLarge  = "large"

	HipNarrow = "narrow"
	HipMedium = "medium"
	HipWide   = "wide"

	FitSnug        = "snug"
	FitComfortable = "comfortable"
)

// Measurements is the body profile the engine scores.
type Measurements struct {
	HeightCm      float64 `json:"heightCm" validate:"required,gte=140,lte=200"`
	WeightKg      float64 `json:"weightKg" validate:"required,gte=40,lte=120"`
	BustType      string  `json:"bustType" validate:"required,oneof=small medium large"`
	HipType       string  `json:"hipType" validate:"required,oneof=narrow medium wide"`
	FitPreference string  `json:"fitPreference" validate:"required,oneof=snug comfortable"`
}

var validate = validator.New()

// Validate checks the measurement ranges and enum values.
func (m Measurements) Validate() error {
	if err := validate.Struct(m); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid measurements")
	}
	return nil
}

// Recommendation is the engine's answer for one measurement profile.
type Recommendation struct {
	Size            Size               `json:"size"`
	Confidence      float64            `json:"confidence"`
	Reason          string             `json:"reason"`
	AlternativeSize *Size              `json:"alternativeSize,omitempty"`
	FitMap          map[Size]FitStatus `json:"fitMap,omitempty"`
}
