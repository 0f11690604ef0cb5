package api

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ecommerce-eks/storefront/internal/model"
)

// Products talks to the products service (catalog reads only; the storefront
// never writes the catalog).
type Products struct {
	c *Client
}

// NewProducts binds a products client to its base URL.
func NewProducts(base string, timeout time.Duration, tokens TokenSource, log *zap.Logger) *Products {
	return &Products{c: NewClient(base, timeout, tokens, log)}
}

// List fetches the whole catalog.
func (p *Products) List(ctx context.Context) ([]model.Product, error) {
	var out []model.Product
	if err := p.c.do(ctx, http.MethodGet, "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Get fetches a single product by id.
func (p *Products) Get(ctx context.Context, id string) (model.Product, error) {
	var out model.Product
	if err := p.c.do(ctx, http.MethodGet, "/"+id, nil, &out); err != nil {
		return model.Product{}, err
	}
	return out, nil
}
