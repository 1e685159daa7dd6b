package cart

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	cartdto "github.com/excavacionesmoreno/quote-backend/api/controllers/cart/dto"
	"github.com/excavacionesmoreno/quote-backend/api/middleware"
	"github.com/excavacionesmoreno/quote-backend/api/responses"
	"github.com/excavacionesmoreno/quote-backend/api/validators"
	cartsvc "github.com/excavacionesmoreno/quote-backend/internal/cart"
	"github.com/excavacionesmoreno/quote-backend/internal/quote"
	pkgerrors "github.com/excavacionesmoreno/quote-backend/pkg/errors"
	"github.com/excavacionesmoreno/quote-backend/pkg/logger"
)

// CartFetch returns the lines and derived totals of the session's cart.
func CartFetch(vat quote.VAT, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := storeFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCart(middleware.SessionIDFromContext(r.Context()), store.Snapshot(), vat))
	}
}

// CartAddItem adds a catalog product to the cart. The price always comes from the catalog.
func CartAddItem(svc cartsvc.Service, vat quote.VAT, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		store, err := storeFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartdto.AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		quantity := 1
		if payload.Quantity != nil {
			quantity = *payload.Quantity
		}

		snap, err := svc.AddItem(r.Context(), store, payload.ProductID, quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCart(middleware.SessionIDFromContext(r.Context()), snap, vat))
	}
}

// CartUpdateItem sets the absolute quantity of a line. Unknown lines are left alone.
func CartUpdateItem(svc cartsvc.Service, vat quote.VAT, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		store, err := storeFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload cartdto.UpdateItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := svc.UpdateItem(r.Context(), store, productIDParam(r), *payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCart(middleware.SessionIDFromContext(r.Context()), snap, vat))
	}
}

func CartRemoveItem(svc cartsvc.Service, vat quote.VAT, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		store, err := storeFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := svc.RemoveItem(r.Context(), store, productIDParam(r))
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCart(middleware.SessionIDFromContext(r.Context()), snap, vat))
	}
}

func CartClear(svc cartsvc.Service, vat quote.VAT, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}
		store, err := storeFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		snap, err := svc.Clear(r.Context(), store)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newCart(middleware.SessionIDFromContext(r.Context()), snap, vat))
	}
}

func storeFromRequest(r *http.Request) (*cartsvc.Store, error) {
	store, ok := middleware.CartFromContext(r.Context())
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart session missing")
	}
	return store, nil
}

func productIDParam(r *http.Request) string {
	return strings.TrimSpace(chi.URLParam(r, "productId"))
}
