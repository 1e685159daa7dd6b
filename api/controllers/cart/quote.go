package cart

import (
	"net/http"

	"github.com/excavacionesmoreno/quote-backend/api/responses"
	cartsvc "github.com/excavacionesmoreno/quote-backend/internal/cart"
	"github.com/excavacionesmoreno/quote-backend/internal/quote"
	pkgerrors "github.com/excavacionesmoreno/quote-backend/pkg/errors"
	"github.com/excavacionesmoreno/quote-backend/pkg/logger"
)

const (
	quoteOutcomeRendered = "rendered"
	quoteOutcomeEmpty    = "empty"
	quoteOutcomeHandoff  = "handoff"
)

type quoteRenderer interface {
	Render(snap cartsvc.Snapshot) quote.Quote
}

type quoteRecorder interface {
	IncQuote(outcome string)
}

// QuoteFetch renders the quote message and messaging link for the current cart.
func QuoteFetch(formatter quoteRenderer, recorder quoteRecorder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if formatter == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote formatter unavailable"))
			return
		}
		store, err := storeFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		q := formatter.Render(store.Snapshot())
		outcome := quoteOutcomeRendered
		if q.Empty {
			outcome = quoteOutcomeEmpty
		}
		record(recorder, outcome)
		responses.WriteSuccess(w, newQuote(q))
	}
}

// QuoteHandoff redirects the visitor to the messaging channel with the quote prefilled.
// An empty cart has nothing to hand off.
func QuoteHandoff(formatter quoteRenderer, recorder quoteRecorder, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if formatter == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "quote formatter unavailable"))
			return
		}
		store, err := storeFromRequest(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		q := formatter.Render(store.Snapshot())
		if q.Empty {
			record(recorder, quoteOutcomeEmpty)
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeStateConflict, "cart is empty"))
			return
		}

		record(recorder, quoteOutcomeHandoff)
		if logg != nil {
			ctx := logg.WithFields(r.Context(), map[string]any{
				"item_count": q.Count,
				"total":      q.Total.StringFixed(2),
			})
			logg.Info(ctx, "quote.handoff")
		}
		w.Header().Set("Cache-Control", "no-store")
		http.Redirect(w, r, q.URL, http.StatusFound)
	}
}

func record(recorder quoteRecorder, outcome string) {
	if recorder == nil {
		return
	}
	recorder.IncQuote(outcome)
}
