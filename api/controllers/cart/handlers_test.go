package cart

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"reflect"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	cartdto "github.com/excavacionesmoreno/quote-backend/api/controllers/cart/dto"
	"github.com/excavacionesmoreno/quote-backend/api/middleware"
	cartsvc "github.com/excavacionesmoreno/quote-backend/internal/cart"
	"github.com/excavacionesmoreno/quote-backend/internal/catalog"
	"github.com/excavacionesmoreno/quote-backend/internal/quote"
	"github.com/excavacionesmoreno/quote-backend/internal/sessions"
	pkgerrors "github.com/excavacionesmoreno/quote-backend/pkg/errors"
	"github.com/excavacionesmoreno/quote-backend/pkg/logger"
)

var testVAT = quote.VAT{Rate: decimal.RequireFromString("0.21")}

type countingRecorder struct {
	mu       sync.Mutex
	outcomes map[string]int
}

func (c *countingRecorder) IncQuote(outcome string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.outcomes == nil {
		c.outcomes = map[string]int{}
	}
	c.outcomes[outcome]++
}

type harness struct {
	handler   http.Handler
	recorder  *countingRecorder
	sessionID string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	cat := catalog.Default()
	svc, err := cartsvc.NewService(cat)
	if err != nil {
		t.Fatalf("cart service: %v", err)
	}
	formatter, err := quote.NewFormatter(quote.Options{
		BusinessName: "Excavaciones Moreno",
		MessagingURL: "https://wa.me",
		ContactID:    "34625309277",
		VATRate:      testVAT.Rate,
	}, cat)
	if err != nil {
		t.Fatalf("formatter: %v", err)
	}
	registry, err := sessions.NewRegistry(sessions.Params{Logger: logger.Nop(), IdleTTL: time.Hour})
	if err != nil {
		t.Fatalf("session registry: %v", err)
	}

	rec := &countingRecorder{}
	r := chi.NewRouter()
	r.Use(middleware.Session(registry, middleware.SessionOptions{}, nil))
	r.Get("/cart", CartFetch(testVAT, nil))
	r.Post("/cart/items", CartAddItem(svc, testVAT, nil))
	r.Patch("/cart/items/{productId}", CartUpdateItem(svc, testVAT, nil))
	r.Delete("/cart/items/{productId}", CartRemoveItem(svc, testVAT, nil))
	r.Delete("/cart", CartClear(svc, testVAT, nil))
	r.Get("/cart/quote", QuoteFetch(formatter, rec, nil))
	r.Get("/cart/quote/handoff", QuoteHandoff(formatter, rec, nil))
	return &harness{handler: r, recorder: rec}
}

func (h *harness) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	if h.sessionID != "" {
		req.Header.Set(middleware.SessionHeader, h.sessionID)
	}
	rec := httptest.NewRecorder()
	h.handler.ServeHTTP(rec, req)
	if id := rec.Header().Get(middleware.SessionHeader); id != "" {
		h.sessionID = id
	}
	return rec
}

func decodeCart(t *testing.T, rec *httptest.ResponseRecorder) cartdto.Cart {
	t.Helper()
	var envelope struct {
		Data cartdto.Cart `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode cart: %v", err)
	}
	return envelope.Data
}

func expectTotals(t *testing.T, c cartdto.Cart, count int, total string) {
	t.Helper()
	if c.Count != count || c.Total.Fixed() != total {
		t.Fatalf("expected count %d total %s, got %d / %s", count, total, c.Count, c.Total.Fixed())
	}
}

func TestCartArenaFinaScenario(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodPost, "/cart/items", `{"product_id":"arena-fina","quantity":2}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d: %s", rec.Code, rec.Body.String())
	}
	c := decodeCart(t, rec)
	expectTotals(t, c, 2, "39.00")
	if c.SessionID != h.sessionID || c.SessionID == "" {
		t.Fatalf("expected session id %q in body, got %q", h.sessionID, c.SessionID)
	}

	expectTotals(t, decodeCart(t, h.do(t, http.MethodPost, "/cart/items", `{"product_id":"arena-fina"}`)), 3, "58.50")
	expectTotals(t, decodeCart(t, h.do(t, http.MethodPatch, "/cart/items/arena-fina", `{"quantity":1}`)), 1, "19.50")

	c = decodeCart(t, h.do(t, http.MethodDelete, "/cart/items/arena-fina", ""))
	expectTotals(t, c, 0, "0.00")
	if !c.Empty {
		t.Fatal("expected empty cart")
	}
}

func TestCartReportsVATEstimate(t *testing.T) {
	h := newHarness(t)

	c := decodeCart(t, h.do(t, http.MethodPost, "/cart/items", `{"product_id":"arena-fina","quantity":2}`))
	if c.Total.Fixed() != "39.00" || c.VATEstimate.Fixed() != "8.19" || c.TotalWithVAT.Fixed() != "47.19" {
		t.Fatalf("unexpected totals %s / %s / %s", c.Total.Fixed(), c.VATEstimate.Fixed(), c.TotalWithVAT.Fixed())
	}
	if c.VATRate != "0.21" {
		t.Fatalf("expected vat rate 0.21, got %q", c.VATRate)
	}

	// 3 × 16.50 = 49.50; 10.395 rounds once to 10.40 and 59.895 to 59.90
	h.do(t, http.MethodDelete, "/cart", "")
	c = decodeCart(t, h.do(t, http.MethodPost, "/cart/items", `{"product_id":"jabre","quantity":3}`))
	if c.VATEstimate.Fixed() != "10.40" || c.TotalWithVAT.Fixed() != "59.90" {
		t.Fatalf("unexpected vat figures %s / %s", c.VATEstimate.Fixed(), c.TotalWithVAT.Fixed())
	}

	var envelope struct {
		Data cartdto.Quote `json:"data"`
	}
	rec := h.do(t, http.MethodGet, "/cart/quote", "")
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode quote: %v", err)
	}
	if envelope.Data.VATEstimate.Fixed() != "10.40" || envelope.Data.TotalWithVAT.Fixed() != "59.90" {
		t.Fatalf("unexpected quote vat figures %s / %s", envelope.Data.VATEstimate.Fixed(), envelope.Data.TotalWithVAT.Fixed())
	}

	empty := decodeCart(t, h.do(t, http.MethodDelete, "/cart", ""))
	if empty.VATEstimate.Fixed() != "0.00" || empty.TotalWithVAT.Fixed() != "0.00" {
		t.Fatalf("expected zero vat on empty cart, got %s / %s", empty.VATEstimate.Fixed(), empty.TotalWithVAT.Fixed())
	}
}

func TestCartLinesCarryCatalogData(t *testing.T) {
	h := newHarness(t)
	h.do(t, http.MethodPost, "/cart/items", `{"product_id":"gondola","quantity":1}`)
	h.do(t, http.MethodPost, "/cart/items", `{"product_id":"bolos-30-60","quantity":3}`)

	rec := h.do(t, http.MethodGet, "/cart", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	c := decodeCart(t, rec)
	if len(c.Items) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(c.Items))
	}
	first, second := c.Items[0], c.Items[1]
	if first.ProductID != "gondola" || first.Unit != "ud" || first.Price.Fixed() != "250.00" {
		t.Fatalf("unexpected first line %+v", first)
	}
	if second.ProductID != "bolos-30-60" || second.Subtotal.Fixed() != "43.50" {
		t.Fatalf("unexpected second line %+v", second)
	}
	if c.Total.Fixed() != "293.50" {
		t.Fatalf("expected total 293.50, got %s", c.Total.Fixed())
	}
}

func TestCartAddRejectsBadInput(t *testing.T) {
	cases := []struct {
		name string
		body string
		want int
		code pkgerrors.Code
	}{
		{name: "unknown product", body: `{"product_id":"hormigonera"}`, want: http.StatusNotFound, code: pkgerrors.CodeNotFound},
		{name: "zero quantity", body: `{"product_id":"arena-fina","quantity":0}`, want: http.StatusBadRequest, code: pkgerrors.CodeValidation},
		{name: "negative quantity", body: `{"product_id":"arena-fina","quantity":-3}`, want: http.StatusBadRequest, code: pkgerrors.CodeValidation},
		{name: "client price ignored field", body: `{"product_id":"arena-fina","price":"0.01"}`, want: http.StatusBadRequest, code: pkgerrors.CodeValidation},
		{name: "missing product", body: `{}`, want: http.StatusBadRequest, code: pkgerrors.CodeValidation},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := newHarness(t)
			rec := h.do(t, http.MethodPost, "/cart/items", tc.body)
			if rec.Code != tc.want {
				t.Fatalf("expected %d got %d: %s", tc.want, rec.Code, rec.Body.String())
			}

			var envelope struct {
				Error struct {
					Code string `json:"code"`
				} `json:"error"`
			}
			if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
				t.Fatalf("decode error: %v", err)
			}
			if envelope.Error.Code != string(tc.code) {
				t.Fatalf("expected code %s got %s", tc.code, envelope.Error.Code)
			}

			if c := decodeCart(t, h.do(t, http.MethodGet, "/cart", "")); !c.Empty {
				t.Fatal("expected cart to stay empty")
			}
		})
	}
}

func TestCartUpdateToNonPositiveRemoves(t *testing.T) {
	for _, qty := range []string{"0", "-5"} {
		h := newHarness(t)
		h.do(t, http.MethodPost, "/cart/items", `{"product_id":"jabre","quantity":4}`)
		rec := h.do(t, http.MethodPatch, "/cart/items/jabre", `{"quantity":`+qty+`}`)
		if rec.Code != http.StatusOK {
			t.Fatalf("quantity %s: expected 200 got %d", qty, rec.Code)
		}
		if !decodeCart(t, rec).Empty {
			t.Fatalf("quantity %s: expected the line to be removed", qty)
		}
	}
}

func TestCartUpdateAbsentIsNoop(t *testing.T) {
	h := newHarness(t)
	h.do(t, http.MethodPost, "/cart/items", `{"product_id":"jabre","quantity":1}`)

	rec := h.do(t, http.MethodPatch, "/cart/items/arena-fina", `{"quantity":7}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	c := decodeCart(t, rec)
	if len(c.Items) != 1 || c.Count != 1 {
		t.Fatalf("expected cart untouched, got %+v", c)
	}

	if rec := h.do(t, http.MethodPatch, "/cart/items/jabre", `{}`); rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for missing quantity, got %d", rec.Code)
	}
}

func TestCartClear(t *testing.T) {
	h := newHarness(t)
	h.do(t, http.MethodPost, "/cart/items", `{"product_id":"jabre","quantity":1}`)
	h.do(t, http.MethodPost, "/cart/items", `{"product_id":"gondola","quantity":1}`)

	rec := h.do(t, http.MethodDelete, "/cart", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	if !decodeCart(t, rec).Empty {
		t.Fatal("expected empty cart")
	}
}

func TestSessionsDoNotShareCarts(t *testing.T) {
	h := newHarness(t)
	h.do(t, http.MethodPost, "/cart/items", `{"product_id":"jabre","quantity":1}`)

	other := &harness{handler: h.handler}
	if c := decodeCart(t, other.do(t, http.MethodGet, "/cart", "")); !c.Empty {
		t.Fatal("expected a fresh visitor to see an empty cart")
	}
	if other.sessionID == h.sessionID {
		t.Fatal("expected visitors not to share a session")
	}
}

func TestQuoteFetch(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/cart/quote", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 got %d", rec.Code)
	}
	var envelope struct {
		Data cartdto.Quote `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode quote: %v", err)
	}
	if !envelope.Data.Empty || envelope.Data.Message != "" || envelope.Data.URL != "https://wa.me/34625309277?text=" {
		t.Fatalf("unexpected empty quote %+v", envelope.Data)
	}

	h.do(t, http.MethodPost, "/cart/items", `{"product_id":"arena-fina","quantity":2}`)
	rec = h.do(t, http.MethodGet, "/cart/quote", "")
	if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
		t.Fatalf("decode quote: %v", err)
	}
	if envelope.Data.Empty {
		t.Fatal("expected a non-empty quote")
	}
	for _, want := range []string{"  • Arena Fina: 2 Tn × 19.50€ = 39.00€\n", "💰 *Total estimado: 39.00€* (+ IVA)"} {
		if !strings.Contains(envelope.Data.Message, want) {
			t.Fatalf("expected %q in message %q", want, envelope.Data.Message)
		}
	}
	if envelope.Data.Total.Fixed() != "39.00" {
		t.Fatalf("expected total 39.00, got %s", envelope.Data.Total.Fixed())
	}

	if want := map[string]int{"empty": 1, "rendered": 1}; !reflect.DeepEqual(h.recorder.outcomes, want) {
		t.Fatalf("expected outcomes %v, got %v", want, h.recorder.outcomes)
	}
}

func TestQuoteHandoff(t *testing.T) {
	h := newHarness(t)

	rec := h.do(t, http.MethodGet, "/cart/quote/handoff", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422 got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), string(pkgerrors.CodeStateConflict)) {
		t.Fatalf("expected state conflict, got %s", rec.Body.String())
	}

	h.do(t, http.MethodPost, "/cart/items", `{"product_id":"retro-cat-318","quantity":8}`)
	rec = h.do(t, http.MethodGet, "/cart/quote/handoff", "")
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302 got %d", rec.Code)
	}

	location, err := url.Parse(rec.Header().Get("Location"))
	if err != nil {
		t.Fatalf("parse location: %v", err)
	}
	if location.Host != "wa.me" || location.Path != "/34625309277" {
		t.Fatalf("unexpected location %s", location)
	}
	text := location.Query().Get("text")
	for _, want := range []string{"🚜 *Maquinaria:*", "Retro Cat 318: 8 h × 75.00€ = 600.00€"} {
		if !strings.Contains(text, want) {
			t.Fatalf("expected %q in handoff text %q", want, text)
		}
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Fatalf("expected no-store, got %q", got)
	}

	if want := map[string]int{"empty": 1, "handoff": 1}; !reflect.DeepEqual(h.recorder.outcomes, want) {
		t.Fatalf("expected outcomes %v, got %v", want, h.recorder.outcomes)
	}
}

func TestHandlersRequireSession(t *testing.T) {
	rec := httptest.NewRecorder()
	CartFetch(testVAT, nil)(rec, httptest.NewRequest(http.MethodGet, "/cart", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	CartAddItem(nil, testVAT, nil)(rec, httptest.NewRequest(http.MethodPost, "/cart/items", nil))
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500 got %d", rec.Code)
	}
}
