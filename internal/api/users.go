package api

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/ecommerce-eks/storefront/internal/model"
)

// Users talks to the users service: registration, login and profile lookup.
type Users struct {
	c *Client
}

// NewUsers binds a users client to its base URL.
func NewUsers(base string, timeout time.Duration, tokens TokenSource, log *zap.Logger) *Users {
	return &Users{c: NewClient(base, timeout, tokens, log)}
}

// Login exchanges email/password for a user id and bearer token.
func (u *Users) Login(ctx context.Context, email, password string) (model.LoginResult, error) {
	req := struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}{Email: email, Password: password}

	var res model.LoginResult
	if err := u.c.do(ctx, http.MethodPost, "/login", req, &res); err != nil {
		return model.LoginResult{}, err
	}
	return res, nil
}

// Register creates a new account and returns the created user.
func (u *Users) Register(ctx context.Context, reg model.Registration) (model.User, error) {
	var user model.User
	if err := u.c.do(ctx, http.MethodPost, "/register", reg, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}

// Get fetches a user record by id.
func (u *Users) Get(ctx context.Context, id int64) (model.User, error) {
	var user model.User
	if err := u.c.do(ctx, http.MethodGet, fmt.Sprintf("/%d", id), nil, &user); err != nil {
		return model.User{}, err
	}
	return user, nil
}
