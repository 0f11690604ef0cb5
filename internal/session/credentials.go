package session

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/ecommerce-eks/storefront/internal/errs"
	"github.com/ecommerce-eks/storefront/internal/model"
	"github.com/ecommerce-eks/storefront/internal/storage"
)

// Credentials persists the login credential (bearer token + user id) in
// durable local storage. It doubles as the token source the API clients
// attach bearer auth from.
type Credentials struct {
	storage storage.Store
}

// NewCredentials wraps a storage backend.
func NewCredentials(st storage.Store) *Credentials {
	return &Credentials{storage: st}
}

// Save persists both halves of the credential.
func (c *Credentials) Save(cred model.Credential) error {
	if err := c.storage.Set(storage.KeyAuthToken, []byte(cred.Token)); err != nil {
		return fmt.Errorf("persist token: %w", err)
	}
	uid := strconv.FormatInt(cred.UserID, 10)
	if err := c.storage.Set(storage.KeyUserID, []byte(uid)); err != nil {
		return fmt.Errorf("persist user id: %w", err)
	}
	return nil
}

// Load reads the persisted credential. errs.ErrNoCredential means none is
// stored (or it is unreadable, which amounts to the same thing).
func (c *Credentials) Load() (model.Credential, error) {
	tok, err := c.storage.Get(storage.KeyAuthToken)
	if err != nil || len(tok) == 0 {
		return model.Credential{}, errs.ErrNoCredential
	}
	raw, err := c.storage.Get(storage.KeyUserID)
	if err != nil {
		return model.Credential{}, errs.ErrNoCredential
	}
	uid, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return model.Credential{}, errs.ErrNoCredential
	}
	return model.Credential{Token: string(tok), UserID: uid}, nil
}

// Clear erases the credential. Clearing an absent credential is a no-op.
func (c *Credentials) Clear() error {
	err1 := c.storage.Delete(storage.KeyAuthToken)
	err2 := c.storage.Delete(storage.KeyUserID)
	return errors.Join(err1, err2)
}

// Token satisfies the API clients' token source.
func (c *Credentials) Token() (string, bool) {
	cred, err := c.Load()
	if err != nil {
		return "", false
	}
	return cred.Token, true
}
