package models

import (
	"encoding/json"
	"net/url"
	"strconv"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "PENDING"
	OrderConfirmed OrderStatus = "CONFIRMED"
	OrderCompleted OrderStatus = "COMPLETED"
	OrderPickedUp  OrderStatus = "PICKED_UP"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderConfirmed, OrderCompleted, OrderPickedUp:
		return true
	}
	return false
}

type PaymentMethod string

const (
	PaymentCash PaymentMethod = "CASH"
	PaymentCard PaymentMethod = "CARD"
)

type OrderSummary struct {
	ID          FlexString  `json:"id"`
	DisplayCode string      `json:"displayCode"`
	Table       string      `json:"table"`
	Customer    string      `json:"customer"`
	SubTotal    string      `json:"subTotal"`
	Status      OrderStatus `json:"status"`
	CreatedAt   string      `json:"createdAt"`
	UpdatedAt   string      `json:"updatedAt"`
}

type OrderDetail struct {
	ID               int64              `json:"id"`
	DisplayCode      string             `json:"displayCode"`
	Table            string             `json:"table"`
	Customer         string             `json:"customer"`
	SubTotal         string             `json:"subTotal"`
	Total            string             `json:"total,omitempty"`
	Status           OrderStatus        `json:"status"`
	PaymentMethod    *PaymentMethod     `json:"paymentMethod,omitempty"`
	Discount         float64            `json:"discount,omitempty"`
	Surcharge        float64            `json:"surcharge,omitempty"`
	TicketNumber     *int64             `json:"ticketNumber,omitempty"`
	ConfirmedAt      *string            `json:"confirmedAt,omitempty"`
	CreatedAt        string             `json:"createdAt"`
	UpdatedAt        string             `json:"updatedAt,omitempty"`
	CategorizedItems []CategorizedItems `json:"categorizedItems"`
}

type CategorizedItems struct {
	Category struct {
		ID   int64  `json:"id"`
		Name string `json:"name"`
	} `json:"category"`
	Items []OrderItem `json:"items"`
}

type OrderItem struct {
	ID            FlexString      `json:"id"`
	Quantity      int             `json:"quantity"`
	Notes         string          `json:"notes,omitempty"`
	UnitPrice     float64         `json:"unitPrice"`
	UnitSurcharge float64         `json:"unitSurcharge"`
	Total         float64         `json:"total"`
	Food          FoodIngredients `json:"food"`
}

type FoodIngredients struct {
	ID          string       `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description,omitempty"`
	Price       string       `json:"price"`
	Available   bool         `json:"available"`
	Ingredients []Ingredient `json:"ingredients,omitempty"`
}

type OrderStatusPatch struct {
	Status OrderStatus `json:"status"`
}

// Pagination is the normalized paging block of an order listing.
type Pagination struct {
	CurrentPage  int  `json:"currentPage"`
	TotalPages   int  `json:"totalPages"`
	TotalItems   int  `json:"totalItems"`
	ItemsPerPage int  `json:"itemsPerPage,omitempty"`
	HasNextPage  bool `json:"hasNextPage"`
	HasPrevPage  bool `json:"hasPrevPage"`
	NextPage     *int `json:"nextPage,omitempty"`
	PrevPage     *int `json:"prevPage,omitempty"`
}

// OrderPage accepts both listing shapes the backend has shipped:
// {data, pagination{totalPages,totalItems}} and
// {orders, pagination{totalOrdersPages,totalOrdersItems,...}}.
type OrderPage struct {
	Data       []OrderSummary `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

func (p *OrderPage) UnmarshalJSON(data []byte) error {
	var raw struct {
		Data       []OrderSummary `json:"data"`
		Orders     []OrderSummary `json:"orders"`
		Pagination struct {
			CurrentPage      int   `json:"currentPage"`
			TotalPages       *int  `json:"totalPages"`
			TotalItems       *int  `json:"totalItems"`
			TotalOrdersPages *int  `json:"totalOrdersPages"`
			TotalOrdersItems *int  `json:"totalOrdersItems"`
			ItemsPerPage     int   `json:"itemsPerPage"`
			HasNextPage      *bool `json:"hasNextPage"`
			HasPrevPage      *bool `json:"hasPrevPage"`
			NextPage         *int  `json:"nextPage"`
			PrevPage         *int  `json:"prevPage"`
		} `json:"pagination"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	p.Data = raw.Data
	if p.Data == nil {
		p.Data = raw.Orders
	}
	if p.Data == nil {
		p.Data = []OrderSummary{}
	}

	pg := raw.Pagination
	p.Pagination = Pagination{
		CurrentPage:  pg.CurrentPage,
		TotalPages:   firstInt(pg.TotalPages, pg.TotalOrdersPages),
		TotalItems:   firstInt(pg.TotalItems, pg.TotalOrdersItems),
		ItemsPerPage: pg.ItemsPerPage,
		NextPage:     pg.NextPage,
		PrevPage:     pg.PrevPage,
	}
	if pg.HasNextPage != nil {
		p.Pagination.HasNextPage = *pg.HasNextPage
	} else {
		p.Pagination.HasNextPage = p.Pagination.CurrentPage < p.Pagination.TotalPages
	}
	if pg.HasPrevPage != nil {
		p.Pagination.HasPrevPage = *pg.HasPrevPage
	} else {
		p.Pagination.HasPrevPage = p.Pagination.CurrentPage > 1
	}
	return nil
}

func firstInt(vals ...*int) int {
	for _, v := range vals {
		if v != nil {
			return *v
		}
	}
	return 0
}

type OrderQuery struct {
	Search      string
	DisplayCode string
	Page        int
	Limit       int
	Status      []OrderStatus
	DateFrom    string
	DateTo      string
}

func (q OrderQuery) Values() url.Values {
	v := url.Values{}
	if q.Search != "" {
		v.Set("search", q.Search)
	}
	if q.DisplayCode != "" {
		v.Set("displayCode", q.DisplayCode)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	for _, s := range q.Status {
		v.Add("status", string(s))
	}
	if q.DateFrom != "" {
		v.Set("dateFrom", q.DateFrom)
	}
	if q.DateTo != "" {
		v.Set("dateTo", q.DateTo)
	}
	return v
}
