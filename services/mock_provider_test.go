package services

import (
	"context"

	"github.com/stretchr/testify/mock"

	"superadmin/models"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) ListUsers(ctx context.Context, page, perPage int) ([]models.User, error) {
	args := m.Called(ctx, page, perPage)
	users, _ := args.Get(0).([]models.User)
	return users, args.Error(1)
}

func (m *mockProvider) UpdateUserByID(ctx context.Context, id string, attrs models.UserAttributes) (*models.User, error) {
	args := m.Called(ctx, id, attrs)
	user, _ := args.Get(0).(*models.User)
	return user, args.Error(1)
}

func fullPage(prefix string) []models.User {
	users := make([]models.User, 0, UsersPerPage)
	for i := 0; i < UsersPerPage; i++ {
		id := prefix + "-" + string(rune('a'+i%26)) + string(rune('a'+i/26))
		users = append(users, models.NewUser(id, id+"@example.com"))
	}
	return users
}
