// services/identity.go - identity provider capability set
package services

import (
	"context"
	"errors"

	"superadmin/models"
)

// IdentityProvider is the set of admin operations this service needs from
// the external identity provider.
type IdentityProvider interface {
	ListUsers(ctx context.Context, page, perPage int) ([]models.User, error)
	UpdateUserByID(ctx context.Context, id string, attrs models.UserAttributes) (*models.User, error)
}

const (
	MsgProviderUnavailable = "identity provider unavailable"
	MsgInvalidResponse     = "invalid identity provider response"
	MsgRequestFailed       = "identity provider request failed"
)

// ProviderError is a failure reported by the identity provider. Message is
// what callers see: the provider's own text, or a fixed message when the
// failure happened before the provider could answer. Cause holds the
// internal error and is only logged.
type ProviderError struct {
	Status  int
	Code    string
	Message string
	Cause   error
}

func (e *ProviderError) Error() string {
	if e.Cause != nil {
		return e.Message + ": " + e.Cause.Error()
	}
	return e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Cause
}

// ProviderMessage returns the caller-facing text for err.
func ProviderMessage(err error) string {
	var perr *ProviderError
	if errors.As(err, &perr) {
		return perr.Message
	}
	return MsgRequestFailed
}
