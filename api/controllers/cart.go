package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/lyvest/lyvest-backend/api/responses"
	"github.com/lyvest/lyvest-backend/api/validators"
	cartsvc "github.com/lyvest/lyvest-backend/internal/cart"
	pkgerrors "github.com/lyvest/lyvest-backend/pkg/errors"
	"github.com/lyvest/lyvest-backend/pkg/logger"
	"github.com/lyvest/lyvest-backend/pkg/types"
)

type cartAddRequest struct {
	ID            types.ProductID `json:"id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	Quantity      int             `json:"quantity"`
	ImageRef      string          `json:"imageRef,omitempty"`
	CategoryLabel string          `json:"categoryLabel,omitempty"`
}

type cartQuantityRequest struct {
	Quantity int `json:"quantity"`
}

type couponRequest struct {
	Code string `json:"code" validate:"required"`
}

type cartView struct {
	Items  []cartsvc.LineItem `json:"items"`
	Totals cartsvc.Totals     `json:"totals"`
}

func newCartView(svc cartsvc.Service) cartView {
	items := svc.Items()
	if items == nil {
		items = []cartsvc.LineItem{}
	}
	return cartView{Items: items, Totals: svc.Totals()}
}

// CartFetch returns the current cart snapshot.
func CartFetch(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		responses.WriteSuccess(w, newCartView(svc))
	}
}

// CartAddItem adds or aggregates one line item. Invalid candidates are a
// no-op by contract; the response is the resulting snapshot either way.
func CartAddItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload cartAddRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		item := cartsvc.LineItem{
			ID:            payload.ID,
			Name:          payload.Name,
			Price:         payload.Price,
			ImageRef:      payload.ImageRef,
			CategoryLabel: payload.CategoryLabel,
		}
		svc.Add(r.Context(), item, payload.Quantity)

		responses.WriteSuccess(w, newCartView(svc))
	}
}

// CartUpdateQuantity sets a line item's quantity; zero or less removes it.
func CartUpdateQuantity(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload cartQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id := types.ProductID(chi.URLParam(r, "productId"))
		svc.UpdateQuantity(r.Context(), id, payload.Quantity)

		responses.WriteSuccess(w, newCartView(svc))
	}
}

// CartRemoveItem drops a line item.
func CartRemoveItem(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		id := types.ProductID(chi.URLParam(r, "productId"))
		svc.Remove(r.Context(), id)

		responses.WriteSuccess(w, newCartView(svc))
	}
}

// CartClear empties the cart and its coupon state.
func CartClear(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		svc.Clear(r.Context())
		responses.WriteSuccess(w, newCartView(svc))
	}
}

// CouponApply evaluates a coupon code. A rejected code is still a successful
// HTTP exchange: the outcome rides in the result payload.
func CouponApply(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload couponRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result := svc.ApplyCoupon(r.Context(), payload.Code)
		responses.WriteSuccess(w, map[string]any{
			"applied": result.Applied,
			"message": result.Message,
			"totals":  svc.Totals(),
		})
	}
}

// CouponRemove drops the active coupon.
func CouponRemove(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		svc.RemoveCoupon(r.Context())
		responses.WriteSuccess(w, newCartView(svc))
	}
}
