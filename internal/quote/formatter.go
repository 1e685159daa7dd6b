package quote

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/excavacionesmoreno/quote-backend/internal/cart"
	"github.com/excavacionesmoreno/quote-backend/internal/catalog"
	"github.com/excavacionesmoreno/quote-backend/pkg/enums"
	"github.com/excavacionesmoreno/quote-backend/pkg/types"
)

const (
	fallbackEmoji = "📦"
	blankField    = "___________"
)

// Options configures the handoff target and the message heading.
type Options struct {
	BusinessName   string
	MessagingURL   string
	ContactID      string
	CurrencySymbol string
	VATRate        decimal.Decimal
}

type categoryLookup interface {
	Category(id enums.ProductCategory) (catalog.Category, bool)
}

// Formatter turns cart snapshots into quote request messages and messaging links.
// It holds no state besides its configuration; output depends only on the snapshot.
type Formatter struct {
	opts       Options
	categories categoryLookup
}

// Quote is the rendered handoff for one snapshot.
type Quote struct {
	Message string
	URL     string
	Empty   bool
	Count   int
	Total   decimal.Decimal
	// VAT and TotalWithVAT estimate the tax on Total; the message itself stays pre-tax.
	VAT          decimal.Decimal
	TotalWithVAT decimal.Decimal
}

func NewFormatter(opts Options, categories categoryLookup) (*Formatter, error) {
	if strings.TrimSpace(opts.ContactID) == "" {
		return nil, fmt.Errorf("contact id required")
	}
	if strings.TrimSpace(opts.MessagingURL) == "" {
		return nil, fmt.Errorf("messaging url required")
	}
	if categories == nil {
		return nil, fmt.Errorf("category lookup required")
	}
	if opts.CurrencySymbol == "" {
		opts.CurrencySymbol = "€"
	}
	if opts.VATRate.IsNegative() {
		return nil, fmt.Errorf("vat rate must not be negative")
	}
	return &Formatter{opts: opts, categories: categories}, nil
}

// Render builds both the message and the link.
func (f *Formatter) Render(snap cart.Snapshot) Quote {
	msg := f.Message(snap)
	total := snap.Total()
	vat := f.VAT()
	return Quote{
		Message:      msg,
		URL:          f.linkFor(msg),
		Empty:        snap.IsEmpty(),
		Count:        snap.Count(),
		Total:        total,
		VAT:          vat.Estimate(total),
		TotalWithVAT: vat.Gross(total),
	}
}

// VAT returns the configured tax estimate.
func (f *Formatter) VAT() VAT {
	return VAT{Rate: f.opts.VATRate}
}

// Link returns the messaging URL with the message prefilled. An empty cart yields an empty text.
func (f *Formatter) Link(snap cart.Snapshot) string {
	return f.linkFor(f.Message(snap))
}

func (f *Formatter) linkFor(msg string) string {
	base := strings.TrimRight(strings.TrimSpace(f.opts.MessagingURL), "/")
	return base + "/" + strings.TrimSpace(f.opts.ContactID) + "?text=" + EncodeURIComponent(msg)
}

// Message renders the quote request text, or "" for an empty cart.
func (f *Formatter) Message(snap cart.Snapshot) string {
	if snap.IsEmpty() {
		return ""
	}

	var b strings.Builder
	b.WriteString("🏗️ *Solicitud de Presupuesto*\n")
	if name := strings.TrimSpace(f.opts.BusinessName); name != "" {
		fmt.Fprintf(&b, "*%s*\n", name)
	}
	b.WriteString("\n")

	for _, group := range groupByCategory(snap.Lines()) {
		emoji, name := f.heading(group.category)
		fmt.Fprintf(&b, "%s *%s:*\n", emoji, name)
		for _, line := range group.lines {
			fmt.Fprintf(&b, "  • %s: %d %s × %s = %s\n",
				line.Name,
				line.Quantity,
				line.Unit,
				f.money(line.Price),
				f.money(line.Subtotal()),
			)
		}
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "💰 *Total estimado: %s* (+ IVA)\n\n", f.money(snap.Total()))
	fmt.Fprintf(&b, "📍 Dirección de obra: %s\n", blankField)
	fmt.Fprintf(&b, "📅 Fecha deseada: %s", blankField)

	return b.String()
}

func (f *Formatter) heading(id enums.ProductCategory) (string, string) {
	cat, ok := f.categories.Category(id)
	if !ok {
		return fallbackEmoji, string(id)
	}
	emoji := cat.Emoji
	if emoji == "" {
		emoji = fallbackEmoji
	}
	name := cat.QuoteName
	if name == "" {
		name = cat.Name
	}
	if name == "" {
		name = string(id)
	}
	return emoji, name
}

func (f *Formatter) money(d decimal.Decimal) string {
	return types.NewMoney(d).Fixed() + f.opts.CurrencySymbol
}

type categoryGroup struct {
	category enums.ProductCategory
	lines    []cart.Line
}

// groupByCategory keeps groups in order of first appearance and lines in snapshot order.
func groupByCategory(lines []cart.Line) []categoryGroup {
	index := map[enums.ProductCategory]int{}
	groups := []categoryGroup{}
	for _, line := range lines {
		idx, ok := index[line.Category]
		if !ok {
			idx = len(groups)
			index[line.Category] = idx
			groups = append(groups, categoryGroup{category: line.Category})
		}
		groups[idx].lines = append(groups[idx].lines, line)
	}
	return groups
}
