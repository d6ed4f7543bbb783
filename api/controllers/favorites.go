package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/lyvest/lyvest-backend/api/middleware"
	"github.com/lyvest/lyvest-backend/api/responses"
	favoritessvc "github.com/lyvest/lyvest-backend/internal/favorites"
	pkgerrors "github.com/lyvest/lyvest-backend/pkg/errors"
	"github.com/lyvest/lyvest-backend/pkg/logger"
	"github.com/lyvest/lyvest-backend/pkg/types"
)

type favoritesView struct {
	Items []types.ProductID `json:"items"`
	Count int               `json:"count"`
}

func newFavoritesView(svc favoritessvc.Service) favoritesView {
	items := svc.List()
	if items == nil {
		items = []types.ProductID{}
	}
	return favoritesView{Items: items, Count: svc.Count()}
}

// adoptSessionUser hands the request's session identity to the engine so
// mutations can ride the remote push path.
func adoptSessionUser(r *http.Request, svc favoritessvc.Service) {
	if userID := middleware.SessionUserFromContext(r.Context()); userID != "" {
		svc.SetSessionUser(userID)
	}
}

// FavoritesList returns the ordered favorites snapshot.
func FavoritesList(svc favoritessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "favorites service unavailable"))
			return
		}
		responses.WriteSuccess(w, newFavoritesView(svc))
	}
}

// FavoriteToggle flips membership for one product id.
func FavoriteToggle(svc favoritessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "favorites service unavailable"))
			return
		}

		adoptSessionUser(r, svc)
		id := types.ProductID(chi.URLParam(r, "productId"))
		favorited := svc.Toggle(r.Context(), id)

		responses.WriteSuccess(w, map[string]any{
			"id":        id,
			"favorited": favorited,
			"count":     svc.Count(),
		})
	}
}

// FavoritesClear empties the local set; remote wipe depends on configuration.
func FavoritesClear(svc favoritessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "favorites service unavailable"))
			return
		}

		adoptSessionUser(r, svc)
		svc.Clear(r.Context())
		responses.WriteSuccess(w, newFavoritesView(svc))
	}
}

// FavoritesSync reconciles local favorites with the remote store for the
// session user.
func FavoritesSync(svc favoritessvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "favorites service unavailable"))
			return
		}

		userID := middleware.SessionUserFromContext(r.Context())
		if userID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "session user is required"))
			return
		}

		if err := svc.SyncWithSession(r.Context(), userID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newFavoritesView(svc))
	}
}
