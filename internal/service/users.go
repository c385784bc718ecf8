package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rryowa/sagra_admin/internal/models"
)

// UserService manages backend staff accounts and lists their roles.
type UserService struct {
	api Requester
}

func NewUserService(api Requester) *UserService {
	return &UserService{api: api}
}

func (s *UserService) List(ctx context.Context) ([]models.User, error) {
	var out []models.User
	if err := s.api.Do(ctx, models.EndpointUsers, RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *UserService) Get(ctx context.Context, id string) (*models.User, error) {
	var out models.User
	if err := s.api.Do(ctx, userPath(id), RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UserService) Create(ctx context.Context, req models.UserRequest) (*models.User, error) {
	var out models.User
	if err := s.api.Do(ctx, models.EndpointUsers, RequestOptions{Method: http.MethodPost, Body: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UserService) Update(ctx context.Context, id string, req models.UserRequest) (*models.User, error) {
	var out models.User
	if err := s.api.Do(ctx, userPath(id), RequestOptions{Method: http.MethodPut, Body: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.api.Do(ctx, userPath(id), RequestOptions{Method: http.MethodDelete}, nil)
}

func (s *UserService) Roles(ctx context.Context) ([]models.Role, error) {
	var out []models.Role
	if err := s.api.Do(ctx, models.EndpointRoles, RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func userPath(id string) string {
	return models.EndpointUsers + "/" + url.PathEscape(id)
}
