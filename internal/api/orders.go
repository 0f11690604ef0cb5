package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ecommerce-eks/storefront/internal/model"
)

// Orders talks to the orders service.
type Orders struct {
	c *Client
}

// NewOrders binds an orders client to its base URL.
func NewOrders(base string, timeout time.Duration, tokens TokenSource, log *zap.Logger) *Orders {
	return &Orders{c: NewClient(base, timeout, tokens, log)}
}

// Create places a new order (payment embedded).
func (o *Orders) Create(ctx context.Context, req model.CreateOrder) (model.Order, error) {
	var out model.Order
	if err := o.c.do(ctx, http.MethodPost, "", req, &out); err != nil {
		return model.Order{}, err
	}
	return out, nil
}

// Get fetches one order by id.
func (o *Orders) Get(ctx context.Context, id int64) (model.Order, error) {
	var out model.Order
	if err := o.c.do(ctx, http.MethodGet, fmt.Sprintf("/%d", id), nil, &out); err != nil {
		return model.Order{}, err
	}
	return out, nil
}

// ListForUser fetches the order history of one user.
func (o *Orders) ListForUser(ctx context.Context, userID int64) ([]model.Order, error) {
	var out []model.Order
	if err := o.c.do(ctx, http.MethodGet, fmt.Sprintf("/user/%d", userID), nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
