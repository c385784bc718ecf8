package service

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/rryowa/sagra_admin/internal/models"
)

type CategoryService struct {
	api Requester
}

func NewCategoryService(api Requester) *CategoryService {
	return &CategoryService{api: api}
}

func (s *CategoryService) List(ctx context.Context) ([]models.Category, error) {
	var out []models.Category
	if err := s.api.Do(ctx, models.EndpointCategories, RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CategoryService) Get(ctx context.Context, id string) (*models.Category, error) {
	var out models.Category
	if err := s.api.Do(ctx, categoryPath(id), RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CategoryService) Create(ctx context.Context, req models.CategoryRequest) (*models.Category, error) {
	if req.Name == "" {
		return nil, fmt.Errorf("%w: category name is required", ErrInvalidInput)
	}
	var out models.Category
	if err := s.api.Do(ctx, models.EndpointCategories, RequestOptions{Method: http.MethodPost, Body: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Update reads the stored category and PUTs it back with the given fields
// replaced, since the backend only accepts full documents on PUT.
func (s *CategoryService) Update(ctx context.Context, id string, update models.CategoryUpdate) (*models.Category, error) {
	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	payload := map[string]interface{}{
		"name":      current.Name,
		"available": current.Available,
		"position":  current.Position,
	}
	if update.Name != nil {
		payload["name"] = *update.Name
	}
	if update.Available != nil {
		payload["available"] = *update.Available
	}
	if update.Position != nil {
		payload["position"] = *update.Position
	}
	switch {
	case update.PrinterID.Set:
		payload["printerId"] = update.PrinterID.Value
	case current.PrinterID != nil && *current.PrinterID != "":
		payload["printerId"] = *current.PrinterID
	}

	var out models.Category
	if err := s.api.Do(ctx, categoryPath(id), RequestOptions{Method: http.MethodPut, Body: payload}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Reorder patches positions one by one, in the given order, and stops at
// the first failure.
func (s *CategoryService) Reorder(ctx context.Context, positions []models.CategoryPosition) ([]models.Category, error) {
	results := make([]models.Category, 0, len(positions))
	for _, p := range positions {
		var out models.Category
		opts := RequestOptions{Method: http.MethodPatch, Body: models.PositionPatch{Position: p.Position}}
		if err := s.api.Do(ctx, categoryPath(p.ID), opts, &out); err != nil {
			return results, err
		}
		results = append(results, out)
	}
	return results, nil
}

func (s *CategoryService) SetAvailability(ctx context.Context, id string, available bool) (*models.Category, error) {
	var out models.Category
	opts := RequestOptions{Method: http.MethodPatch, Body: models.AvailabilityPatch{Available: available}}
	if err := s.api.Do(ctx, categoryPath(id), opts, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CategoryService) Delete(ctx context.Context, id string) error {
	return s.api.Do(ctx, categoryPath(id), RequestOptions{Method: http.MethodDelete}, nil)
}

// UploadImage forwards a multipart body untouched; contentType must carry
// the multipart boundary.
func (s *CategoryService) UploadImage(ctx context.Context, id string, body io.Reader, contentType string) error {
	opts := RequestOptions{
		Method:  http.MethodPatch,
		Body:    body,
		Headers: http.Header{"Content-Type": []string{contentType}},
	}
	return s.api.Do(ctx, categoryPath(id)+"/image", opts, nil)
}

func categoryPath(id string) string {
	return models.EndpointCategories + "/" + url.PathEscape(id)
}
