package service

import (
	"context"
	"net/http"
	"net/url"

	"github.com/rryowa/sagra_admin/internal/models"
)

type CashRegisterService struct {
	api Requester
}

func NewCashRegisterService(api Requester) *CashRegisterService {
	return &CashRegisterService{api: api}
}

func (s *CashRegisterService) List(ctx context.Context, include string) ([]models.CashRegister, error) {
	opts := RequestOptions{}
	if include != "" {
		opts.Query = url.Values{"include": []string{include}}
	}
	var out []models.CashRegister
	if err := s.api.Do(ctx, models.EndpointCashRegisters, opts, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *CashRegisterService) Get(ctx context.Context, id string) (*models.CashRegister, error) {
	var out models.CashRegister
	if err := s.api.Do(ctx, cashRegisterPath(id), RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CashRegisterService) Create(ctx context.Context, req models.CashRegisterRequest) (*models.CashRegister, error) {
	var out models.CashRegister
	if err := s.api.Do(ctx, models.EndpointCashRegisters, RequestOptions{Method: http.MethodPost, Body: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CashRegisterService) Update(ctx context.Context, id string, req models.CashRegisterRequest) (*models.CashRegister, error) {
	var out models.CashRegister
	if err := s.api.Do(ctx, cashRegisterPath(id), RequestOptions{Method: http.MethodPut, Body: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CashRegisterService) SetEnabled(ctx context.Context, id string, enabled bool) (*models.CashRegister, error) {
	var out models.CashRegister
	opts := RequestOptions{Method: http.MethodPatch, Body: models.EnabledPatch{Enabled: enabled}}
	if err := s.api.Do(ctx, cashRegisterPath(id), opts, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *CashRegisterService) Delete(ctx context.Context, id string) error {
	return s.api.Do(ctx, cashRegisterPath(id), RequestOptions{Method: http.MethodDelete}, nil)
}

func cashRegisterPath(id string) string {
	return models.EndpointCashRegisters + "/" + url.PathEscape(id)
}
