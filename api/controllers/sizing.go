package controllers

import (
	"net/http"

	"github.com/lyvest/lyvest-backend/api/responses"
	"github.com/lyvest/lyvest-backend/api/validators"
	sizingsvc "github.com/lyvest/lyvest-backend/internal/sizing"
	pkgerrors "github.com/lyvest/lyvest-backend/pkg/errors"
	"github.com/lyvest/lyvest-backend/pkg/logger"
)

type sizingRequest struct {
	HeightCm      float64 `json:"heightCm" validate:"required,gte=140,lte=200"`
	WeightKg      float64 `json:"weightKg" validate:"required,gte=40,lte=120"`
	BustType      string  `json:"bustType" validate:"required,oneof=small medium large"`
	HipType       string  `json:"hipType" validate:"required,oneof=narrow medium wide"`
	FitPreference string  `json:"fitPreference" validate:"required,oneof=snug comfortable"`
	Category      string  `json:"category,omitempty"`
}

func (p sizingRequest) measurements() sizingsvc.Measurements {
	return sizingsvc.Measurements{
		HeightCm:      p.HeightCm,
		WeightKg:      p.WeightKg,
		BustType:      p.BustType,
		HipType:       p.HipType,
		FitPreference: p.FitPreference,
	}
}

// SizingRecommend returns a size recommendation, advisor-refined when one is
// configured.
func SizingRecommend(advisor *sizingsvc.Advisor, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if advisor == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "sizing service unavailable"))
			return
		}

		var payload sizingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rec, err := advisor.Recommend(r.Context(), payload.measurements(), payload.Category)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, rec)
	}
}

// SizingReferences returns the three closest catalog models.
func SizingReferences(logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload sizingRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		refs, err := sizingsvc.SimilarReferences(payload.measurements())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]any{"references": refs})
	}
}
