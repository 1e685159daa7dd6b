package cart

import (
	"context"
	"fmt"
	"strings"

	"github.com/excavacionesmoreno/quote-backend/internal/catalog"
	pkgerrors "github.com/excavacionesmoreno/quote-backend/pkg/errors"
)

type productLoader interface {
	Product(ctx context.Context, id string) (catalog.Product, bool)
}

// Service resolves catalog products and applies cart mutations on behalf of the API.
type Service interface {
	AddItem(ctx context.Context, store *Store, productID string, quantity int) (Snapshot, error)
	UpdateItem(ctx context.Context, store *Store, productID string, quantity int) (Snapshot, error)
	RemoveItem(ctx context.Context, store *Store, productID string) (Snapshot, error)
	Clear(ctx context.Context, store *Store) (Snapshot, error)
}

type service struct {
	products productLoader
}

// NewService builds a cart service backed by the provided catalog.
func NewService(products productLoader) (Service, error) {
	if products == nil {
		return nil, fmt.Errorf("product loader required")
	}
	return &service{products: products}, nil
}

// AddItem copies the catalog product into the cart. Prices always come from the catalog.
func (s *service) AddItem(ctx context.Context, store *Store, productID string, quantity int) (Snapshot, error) {
	if store == nil {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeInternal, "cart store missing")
	}
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	if quantity < 1 {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeValidation, "quantity must be at least 1").
			WithDetails(map[string]any{"quantity": quantity})
	}

	product, ok := s.products.Product(ctx, productID)
	if !ok {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeNotFound, "product not found").
			WithDetails(map[string]any{"product_id": productID})
	}

	store.Add(ItemFromProduct(product), quantity)
	return store.Snapshot(), nil
}

// UpdateItem sets an absolute quantity; zero or less removes the line.
func (s *service) UpdateItem(ctx context.Context, store *Store, productID string, quantity int) (Snapshot, error) {
	if store == nil {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeInternal, "cart store missing")
	}
	store.UpdateQuantity(strings.TrimSpace(productID), quantity)
	return store.Snapshot(), nil
}

func (s *service) RemoveItem(ctx context.Context, store *Store, productID string) (Snapshot, error) {
	if store == nil {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeInternal, "cart store missing")
	}
	store.Remove(strings.TrimSpace(productID))
	return store.Snapshot(), nil
}

func (s *service) Clear(ctx context.Context, store *Store) (Snapshot, error) {
	if store == nil {
		return Snapshot{}, pkgerrors.New(pkgerrors.CodeInternal, "cart store missing")
	}
	store.Clear()
	return store.Snapshot(), nil
}

// ItemFromProduct denormalizes the fields a cart line keeps.
func ItemFromProduct(p catalog.Product) Item {
	return Item{
		ID:        p.ID,
		Name:      p.Name,
		Unit:      p.Unit,
		UnitLabel: p.UnitLabel,
		Price:     p.Price,
		Category:  p.Category,
	}
}
