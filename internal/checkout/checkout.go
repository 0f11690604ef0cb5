// Package checkout turns the current cart into an order.
package checkout

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"

	"github.com/ecommerce-eks/storefront/internal/cart"
	"github.com/ecommerce-eks/storefront/internal/errs"
	"github.com/ecommerce-eks/storefront/internal/model"
)

// OrdersClient is the slice of the orders service checkout needs.
type OrdersClient interface {
	Create(ctx context.Context, req model.CreateOrder) (model.Order, error)
}

// Service places orders built from the cart store's contents.
type Service struct {
	orders OrdersClient
	cart   *cart.Store
	log    *zap.Logger
}

// New wires checkout to its collaborators.
func New(orders OrdersClient, c *cart.Store, log *zap.Logger) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	return &Service{orders: orders, cart: c, log: log}
}

// PlaceOrder submits the cart as an order for userID, paying with the given
// card. The payment amount is derived from the cart, not taken from the
// caller. The cart is cleared only after the order is accepted.
func (s *Service) PlaceOrder(ctx context.Context, userID int64, payment model.PaymentDetails) (model.Order, error) {
	lines := s.cart.Lines()
	if len(lines) == 0 {
		return model.Order{}, errs.ErrEmptyCart
	}
	if !ValidCardNumber(payment.CardNumber) {
		return model.Order{}, fmt.Errorf("invalid card number")
	}
	if !ValidCVV(payment.CVV) {
		return model.Order{}, fmt.Errorf("invalid cvv")
	}
	if payment.Currency == "" {
		payment.Currency = "USD"
	}
	payment.Amount = s.cart.TotalPrice()

	items := make([]model.OrderItem, 0, len(lines))
	for _, l := range lines {
		items = append(items, model.OrderItem{ProductID: l.Product.ID, Quantity: l.Quantity})
	}

	order, err := s.orders.Create(ctx, model.CreateOrder{
		UserID:  userID,
		Items:   items,
		Payment: payment,
	})
	if err != nil {
		return model.Order{}, err
	}

	if err := s.cart.Clear(); err != nil {
		s.log.Warn("order placed but cart not cleared", zap.Int64("orderID", order.ID), zap.Error(err))
	}
	s.log.Info("order placed",
		zap.Int64("orderID", order.ID),
		zap.Int("items", len(items)),
		zap.Float64("amount", payment.Amount),
	)
	return order, nil
}

var reDigits = regexp.MustCompile(`^\d{16}$`)
var reCVV = regexp.MustCompile(`^\d{3,4}$`)

// ValidCardNumber accepts a 16-digit PAN (spaces and dashes ignored) that
// passes the Luhn check.
func ValidCardNumber(num string) bool {
	cleaned := strings.NewReplacer(" ", "", "-", "").Replace(num)
	return reDigits.MatchString(cleaned) && luhn(cleaned)
}

// ValidCVV accepts a 3- or 4-digit code.
func ValidCVV(cvv string) bool {
	return reCVV.MatchString(cvv)
}

func luhn(num string) bool {
	sum, alt := 0, false
	for i := len(num) - 1; i >= 0; i-- {
		c := int(num[i] - '0')
		if c < 0 || c > 9 {
			return false
		}
		if alt {
			c *= 2
			if c > 9 {
				c -= 9
			}
		}
		sum += c
		alt = !alt
	}
	return sum%10 == 0
}
