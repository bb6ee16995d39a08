// services/admin_service.go - admin user operations delegated to the identity provider
package services

import (
	"context"
	"errors"

	"superadmin/models"
)

const (
	// UsersPerPage is the fixed page size for every provider list call.
	UsersPerPage = 100

	// MaxLookupPages bounds the email scan when a provider keeps returning
	// full pages.
	MaxLookupPages = 100
)

// ErrUserNotFound is returned when no provider user has the requested email.
var ErrUserNotFound = errors.New("user not found")

// AdminService holds no state of its own; every call goes to the provider.
type AdminService struct {
	provider IdentityProvider
}

func NewAdminService(provider IdentityProvider) *AdminService {
	return &AdminService{provider: provider}
}

// ListUsers returns one page of users, never nil.
func (s *AdminService) ListUsers(ctx context.Context, page int) ([]models.User, error) {
	users, err := s.provider.ListUsers(ctx, page, UsersPerPage)
	if err != nil {
		return nil, err
	}
	if users == nil {
		users = []models.User{}
	}
	return users, nil
}

// ResetPassword sets a new password for the user with the given id.
func (s *AdminService) ResetPassword(ctx context.Context, userID, newPassword string) (*models.User, error) {
	return s.provider.UpdateUserByID(ctx, userID, models.UserAttributes{Password: newPassword})
}

// FindUserByEmail walks the provider's user pages in order and returns the
// first user whose email equals email exactly (case-sensitive). The walk
// stops at the first short page.
func (s *AdminService) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for page := 1; page <= MaxLookupPages; page++ {
		users, err := s.provider.ListUsers(ctx, page, UsersPerPage)
		if err != nil {
			return nil, err
		}

		for i := range users {
			if users[i].Email == email {
				user := users[i]
				return &user, nil
			}
		}

		if len(users) < UsersPerPage {
			break
		}
	}
	return nil, ErrUserNotFound
}

// ResetPasswordByEmail looks the user up by email, then updates its password.
func (s *AdminService) ResetPasswordByEmail(ctx context.Context, email, newPassword string) (*models.User, error) {
	user, err := s.FindUserByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	return s.ResetPassword(ctx, user.ID, newPassword)
}
