package backend

import (
	"context"
	"net/http"
	"strconv"

	"library-client/models"
)

// UserService maps each user action onto one backend call.
type UserService struct {
	client *Client
}

func NewUserService(client *Client) *UserService {
	return &UserService{client: client}
}

func (service *UserService) GetUser(ctx context.Context, id int64) *Pending[models.User] {
	return start(ctx, func(ctx context.Context) (models.User, error) {
		var user models.User
		err := service.client.do(ctx, http.MethodGet, "/user_id/"+strconv.FormatInt(id, 10), nil, &user)
		return user, err
	})
}

func (service *UserService) AddUser(ctx context.Context, user models.NewUser) *Pending[struct{}] {
	return start(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, service.client.do(ctx, http.MethodPost, "/users", user, nil)
	})
}

func (service *UserService) DeleteUser(ctx context.Context, id int64) *Pending[struct{}] {
	return start(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, service.client.do(ctx, http.MethodDelete, "/delete/user/"+strconv.FormatInt(id, 10), nil, nil)
	})
}

func (service *UserService) UpdateUser(ctx context.Context, id int64, update models.UserUpdate) *Pending[struct{}] {
	return start(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, service.client.do(ctx, http.MethodPatch, "/user_id/"+strconv.FormatInt(id, 10), update, nil)
	})
}

func (service *UserService) GetAllUsers(ctx context.Context) *Pending[[]models.User] {
	return start(ctx, func(ctx context.Context) ([]models.User, error) {
		var users []models.User
		err := service.client.do(ctx, http.MethodGet, "/users", nil, &users)
		return users, err
	})
}
