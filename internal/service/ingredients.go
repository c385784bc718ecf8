package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rryowa/sagra_admin/internal/models"
)

type IngredientService struct {
	api Requester
}

func NewIngredientService(api Requester) *IngredientService {
	return &IngredientService{api: api}
}

func (s *IngredientService) List(ctx context.Context) ([]models.Ingredient, error) {
	var out []models.Ingredient
	if err := s.api.Do(ctx, models.EndpointIngredients, RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *IngredientService) Get(ctx context.Context, id string) (*models.Ingredient, error) {
	var out models.Ingredient
	if err := s.api.Do(ctx, ingredientPath(id), RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *IngredientService) Create(ctx context.Context, req models.IngredientRequest) (*models.Ingredient, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: ingredient name is required", ErrInvalidInput)
	}
	var out models.Ingredient
	if err := s.api.Do(ctx, models.EndpointIngredients, RequestOptions{Method: http.MethodPost, Body: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *IngredientService) Update(ctx context.Context, id string, req models.IngredientRequest) (*models.Ingredient, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: ingredient name is required", ErrInvalidInput)
	}
	var out models.Ingredient
	if err := s.api.Do(ctx, ingredientPath(id), RequestOptions{Method: http.MethodPut, Body: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *IngredientService) Delete(ctx context.Context, id string) error {
	return s.api.Do(ctx, ingredientPath(id), RequestOptions{Method: http.MethodDelete}, nil)
}

func ingredientPath(id string) string {
	return models.EndpointIngredients + "/" + url.PathEscape(id)
}
