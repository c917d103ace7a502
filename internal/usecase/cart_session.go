package usecase

import (
	"context"

	"github.com/google/uuid"
	domain "github.com/valebmss/pos-local1/internal/entity"
)

// CartSession exposes the cart mutations to the HTTP layer. Each cart is
// owned by exactly one POS session; the store only bridges requests.
type CartSession struct {
	inv   InventoryStore
	carts CartStore
}

func NewCartSession(inv InventoryStore, carts CartStore) *CartSession {
	return &CartSession{inv: inv, carts: carts}
}

func (uc *CartSession) Create(ctx context.Context) (*domain.Cart, error) {
	cart := domain.NewCart(uuid.NewString())
	if err := uc.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (uc *CartSession) Get(ctx context.Context, cartID string) (*domain.Cart, error) {
	return uc.carts.Get(ctx, cartID)
}

// AddLine resolves the product's current name and sale price from inventory
// and adds it to the cart. Re-adding bumps the quantity; stock is not
// checked until checkout.
func (uc *CartSession) AddLine(ctx context.Context, cartID, productID string) (*domain.Cart, error) {
	cart, err := uc.carts.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	prod, err := uc.inv.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	cart.AddLine(prod.ProductID, prod.Nombre, prod.PrecioVenta)
	if err := uc.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (uc *CartSession) RemoveLine(ctx context.Context, cartID, productID string) (*domain.Cart, error) {
	cart, err := uc.carts.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	cart.RemoveLine(productID)
	if err := uc.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

func (uc *CartSession) SetQuantity(ctx context.Context, cartID, productID string, quantity int) (*domain.Cart, error) {
	cart, err := uc.carts.Get(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if err := cart.SetQuantity(productID, quantity); err != nil {
		return nil, err
	}
	if err := uc.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}
