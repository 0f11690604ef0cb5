package api

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ecommerce-eks/storefront/internal/model"
)

// Inventory reads stock levels from the inventory service.
type Inventory struct {
	c *Client
}

// NewInventory binds an inventory client to its base URL.
func NewInventory(base string, timeout time.Duration, tokens TokenSource, log *zap.Logger) *Inventory {
	return &Inventory{c: NewClient(base, timeout, tokens, log)}
}

// Get reports the stock level for one product.
func (i *Inventory) Get(ctx context.Context, productID string) (model.InventoryItem, error) {
	var out model.InventoryItem
	if err := i.c.do(ctx, http.MethodGet, "/"+productID, nil, &out); err != nil {
		return model.InventoryItem{}, err
	}
	return out, nil
}

// InStock reports whether at least the required quantity is available.
func (i *Inventory) InStock(ctx context.Context, productID string, required int) (bool, error) {
	item, err := i.Get(ctx, productID)
	if err != nil {
		return false, err
	}
	return item.Quantity >= required, nil
}
