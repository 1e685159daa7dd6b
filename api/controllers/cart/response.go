package cart

import (
	cartdto "github.com/excavacionesmoreno/quote-backend/api/controllers/cart/dto"
	"github.com/excavacionesmoreno/quote-backend/internal/cart"
	"github.com/excavacionesmoreno/quote-backend/internal/quote"
	"github.com/excavacionesmoreno/quote-backend/pkg/types"
)

func newCart(sessionID string, snap cart.Snapshot, vat quote.VAT) cartdto.Cart {
	lines := snap.Lines()
	items := make([]cartdto.CartLine, 0, len(lines))
	for _, line := range lines {
		items = append(items, cartdto.CartLine{
			ProductID: line.ID,
			Name:      line.Name,
			Category:  string(line.Category),
			Unit:      line.Unit.String(),
			UnitLabel: line.UnitLabel,
			Price:     types.NewMoney(line.Price),
			Quantity:  line.Quantity,
			Subtotal:  types.NewMoney(line.Subtotal()),
		})
	}
	total := snap.Total()
	return cartdto.Cart{
		SessionID:    sessionID,
		Items:        items,
		Count:        snap.Count(),
		Total:        types.NewMoney(total),
		VATRate:      vat.Rate.String(),
		VATEstimate:  types.NewMoney(vat.Estimate(total)),
		TotalWithVAT: types.NewMoney(vat.Gross(total)),
		Empty:        snap.IsEmpty(),
	}
}

func newQuote(q quote.Quote) cartdto.Quote {
	return cartdto.Quote{
		Message:      q.Message,
		URL:          q.URL,
		Empty:        q.Empty,
		Count:        q.Count,
		Total:        types.NewMoney(q.Total),
		VATEstimate:  types.NewMoney(q.VAT),
		TotalWithVAT: types.NewMoney(q.TotalWithVAT),
	}
}
