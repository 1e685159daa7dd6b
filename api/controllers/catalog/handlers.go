package catalog

import (
	"context"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/excavacionesmoreno/quote-backend/api/responses"
	"github.com/excavacionesmoreno/quote-backend/api/validators"
	"github.com/excavacionesmoreno/quote-backend/internal/catalog"
	"github.com/excavacionesmoreno/quote-backend/pkg/enums"
	pkgerrors "github.com/excavacionesmoreno/quote-backend/pkg/errors"
	"github.com/excavacionesmoreno/quote-backend/pkg/logger"
)

const maxQueryLen = 80

// Reader is the read surface of the loaded catalog.
type Reader interface {
	CategorySummaries() []catalog.CategorySummary
	List(filters catalog.ListFilters) []catalog.Product
	Product(ctx context.Context, id string) (catalog.Product, bool)
}

// ListCategories returns every category with its product count.
func ListCategories(reader Reader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reader == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}
		responses.WriteSuccess(w, newCategories(reader.CategorySummaries()))
	}
}

// ListProducts filters the catalog by category, free-text query and popularity.
func ListProducts(reader Reader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reader == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		filters, err := parseListFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newProductList(reader.List(filters)))
	}
}

// GetProduct returns one catalog product.
func GetProduct(reader Reader, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reader == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog unavailable"))
			return
		}

		id := strings.TrimSpace(chi.URLParam(r, "productId"))
		product, ok := reader.Product(r.Context(), id)
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
				WithDetails(map[string]any{"product_id": id}))
			return
		}
		responses.WriteSuccess(w, newProduct(product))
	}
}

func parseListFilters(r *http.Request) (catalog.ListFilters, error) {
	q := r.URL.Query()
	filters := catalog.ListFilters{
		Query: validators.SanitizeString(q.Get("q"), maxQueryLen),
	}

	if raw := strings.ToLower(strings.TrimSpace(q.Get("category"))); raw != "" {
		category, err := enums.ParseProductCategory(raw)
		if err != nil {
			return catalog.ListFilters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category").
				WithDetails(map[string]any{"field": "category", "allowed": enums.ProductCategories()})
		}
		filters.Category = &category
	}

	popular, err := validators.ParseQueryBool(r, "popular", false)
	if err != nil {
		return catalog.ListFilters{}, err
	}
	filters.PopularOnly = popular
	return filters, nil
}
