package service

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/rryowa/sagra_admin/internal/models"
)

type OrderService struct {
	api Requester
}

func NewOrderService(api Requester) *OrderService {
	return &OrderService{api: api}
}

func (s *OrderService) List(ctx context.Context, query models.OrderQuery) (*models.OrderPage, error) {
	for _, st := range query.Status {
		if !st.Valid() {
			return nil, fmt.Errorf("%w: order status %q", ErrInvalidInput, st)
		}
	}
	var out models.OrderPage
	if err := s.api.Do(ctx, models.EndpointOrders, RequestOptions{Query: query.Values()}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *OrderService) Get(ctx context.Context, id int64) (*models.OrderDetail, error) {
	var out models.OrderDetail
	if err := s.api.Do(ctx, orderPath(id), RequestOptions{}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *OrderService) SetStatus(ctx context.Context, id int64, status models.OrderStatus) error {
	if !status.Valid() {
		return fmt.Errorf("%w: order status %q", ErrInvalidInput, status)
	}
	opts := RequestOptions{Method: http.MethodPatch, Body: models.OrderStatusPatch{Status: status}}
	return s.api.Do(ctx, orderPath(id), opts, nil)
}

func (s *OrderService) Confirm(ctx context.Context, id int64) (*models.OrderDetail, error) {
	var out models.OrderDetail
	if err := s.api.Do(ctx, orderPath(id)+"/confirm", RequestOptions{Method: http.MethodPost}, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *OrderService) Delete(ctx context.Context, id int64) error {
	return s.api.Do(ctx, orderPath(id), RequestOptions{Method: http.MethodDelete}, nil)
}

func orderPath(id int64) string {
	return models.EndpointOrders + "/" + strconv.FormatInt(id, 10)
}
