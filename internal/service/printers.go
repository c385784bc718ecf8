package service

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/rryowa/sagra_admin/internal/models"
)

type PrinterService struct {
	api Requester
}

func NewPrinterService(api Requester) *PrinterService {
	return &PrinterService{api: api}
}

func (s *PrinterService) List(ctx context.Context) ([]models.Printer, error) {
	var out []models.Printer
	if err := s.api.Do(ctx, models.EndpointPrinters, RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *PrinterService) Get(ctx context.Context, id string) (*models.Printer, error) {
	var out models.Printer
	if err := s.api.Do(ctx, printerPath(id), RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PrinterService) Create(ctx context.Context, req models.PrinterRequest) (*models.Printer, error) {
	if req.Status != "" && !req.Status.Valid() {
		return nil, fmt.Errorf("%w: printer status %q", ErrInvalidInput, req.Status)
	}
	var out models.Printer
	if err := s.api.Do(ctx, models.EndpointPrinters, RequestOptions{Method: http.MethodPost, Body: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PrinterService) Update(ctx context.Context, id string, req models.PrinterRequest) (*models.Printer, error) {
	if req.Status != "" && !req.Status.Valid() {
		return nil, fmt.Errorf("%w: printer status %q", ErrInvalidInput, req.Status)
	}
	var out models.Printer
	if err := s.api.Do(ctx, printerPath(id), RequestOptions{Method: http.MethodPut, Body: req}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PrinterService) SetStatus(ctx context.Context, id string, status models.PrinterStatus) (*models.Printer, error) {
	if !status.Valid() {
		return nil, fmt.Errorf("%w: printer status %q", ErrInvalidInput, status)
	}
	var out models.Printer
	opts := RequestOptions{Method: http.MethodPatch, Body: models.PrinterStatusPatch{Status: status}}
	if err := s.api.Do(ctx, printerPath(id), opts, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *PrinterService) Delete(ctx context.Context, id string) error {
	return s.api.Do(ctx, printerPath(id), RequestOptions{Method: http.MethodDelete}, nil)
}

func printerPath(id string) string {
	return models.EndpointPrinters + "/" + url.PathEscape(id)
}
