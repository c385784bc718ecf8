package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rryowa/sagra_admin/internal/models"
)

type FoodService struct {
	api Requester
}

func NewFoodService(api Requester) *FoodService {
	return &FoodService{api: api}
}

func (s *FoodService) List(ctx context.Context, query models.FoodQuery) ([]models.Food, error) {
	var out []models.Food
	if err := s.api.Do(ctx, models.EndpointFoods, RequestOptions{Query: query.Values()}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *FoodService) Get(ctx context.Context, id, include string) (*models.Food, error) {
	opts := RequestOptions{}
	if include != "" {
		opts.Query = url.Values{"include": []string{include}}
	}
	var out models.Food
	if err := s.api.Do(ctx, foodPath(id), opts, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *FoodService) Create(ctx context.Context, req models.FoodRequest) (*models.Food, error) {
	var out models.Food
	if err := s.api.Do(ctx, models.EndpointFoods, RequestOptions{Method: http.MethodPost, Body: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *FoodService) Update(ctx context.Context, id string, req models.FoodRequest) (*models.Food, error) {
	var out models.Food
	if err := s.api.Do(ctx, foodPath(id), RequestOptions{Method: http.MethodPut, Body: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *FoodService) SetAvailability(ctx context.Context, id string, available bool) (*models.Food, error) {
	var out models.Food
	opts := RequestOptions{Method: http.MethodPatch, Body: models.AvailabilityPatch{Available: available}}
	if err := s.api.Do(ctx, foodPath(id), opts, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *FoodService) Delete(ctx context.Context, id string) error {
	return s.api.Do(ctx, foodPath(id), RequestOptions{Method: http.MethodDelete}, nil)
}

func foodPath(id string) string {
	return models.EndpointFoods + "/" + url.PathEscape(id)
}
