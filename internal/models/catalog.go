package models

import (
	"bytes"
	"encoding/json"
	"net/url"
	"strconv"
)

type Category struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Available bool    `json:"available"`
	Position  int     `json:"position"`
	PrinterID *string `json:"printerId,omitempty"`
}

type CategoryWithFoods struct {
	Category
	Foods []Food `json:"foods"`
}

type CategoryRequest struct {
	Name      string  `json:"name"`
	Available bool    `json:"available"`
	Position  *int    `json:"position,omitempty"`
	PrinterID *string `json:"printerId,omitempty"`
}

// CategoryUpdate is a partial update: absent fields keep the stored value.
type CategoryUpdate struct {
	Name      *string        `json:"name,omitempty"`
	Available *bool          `json:"available,omitempty"`
	Position  *int           `json:"position,omitempty"`
	PrinterID OptionalString `json:"printerId"`
}

type CategoryPosition struct {
	ID       string `json:"id"`
	Position int    `json:"position"`
}

// OptionalString tells apart an absent key, an explicit null and a value.
type OptionalString struct {
	Set   bool
	Value *string
}

func (o *OptionalString) UnmarshalJSON(data []byte) error {
	o.Set = true
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		o.Value = nil
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	o.Value = &s
	return nil
}

func (o OptionalString) MarshalJSON() ([]byte, error) {
	if !o.Set || o.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(*o.Value)
}

type Food struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Price       float64       `json:"price"`
	CategoryID  string        `json:"categoryId"`
	PrinterID   *string       `json:"printerId,omitempty"`
	Available   bool          `json:"available"`
	Category    *FoodCategory `json:"category,omitempty"`
	Ingredients []Ingredient  `json:"ingredients,omitempty"`
}

type FoodCategory struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Available bool   `json:"available"`
	Position  int    `json:"position"`
}

type FoodRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description,omitempty"`
	Price       float64 `json:"price"`
	CategoryID  string  `json:"categoryId"`
	PrinterID   *string `json:"printerId,omitempty"`
	Available   bool    `json:"available"`
	Ingredients []IDRef `json:"ingredients,omitempty"`
}

type IDRef struct {
	ID string `json:"id"`
}

type FoodQuery struct {
	Include   string
	Available *bool
	Category  []string
}

func (q FoodQuery) Values() url.Values {
	v := url.Values{}
	if q.Include != "" {
		v.Set("include", q.Include)
	}
	if q.Available != nil {
		v.Set("available", strconv.FormatBool(*q.Available))
	}
	for _, c := range q.Category {
		v.Add("category", c)
	}
	return v
}

type Ingredient struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type IngredientRequest struct {
	Name string `json:"name"`
}

type PrinterStatus string

const (
	PrinterOnline  PrinterStatus = "ONLINE"
	PrinterOffline PrinterStatus = "OFFLINE"
	PrinterError   PrinterStatus = "ERROR"
)

func (s PrinterStatus) Valid() bool {
	switch s {
	case PrinterOnline, PrinterOffline, PrinterError:
		return true
	}
	return false
}

type Printer struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	IP          string        `json:"ip"`
	Port        int           `json:"port"`
	Description string        `json:"description,omitempty"`
	Status      PrinterStatus `json:"status"`
}

type PrinterRequest struct {
	Name        string        `json:"name"`
	IP          string        `json:"ip"`
	Port        int           `json:"port"`
	Description string        `json:"description,omitempty"`
	Status      PrinterStatus `json:"status,omitempty"`
}

type CashRegister struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Enabled          bool     `json:"enabled"`
	DefaultPrinterID string   `json:"defaultPrinterId"`
	DefaultPrinter   *Printer `json:"defaultPrinter,omitempty"`
}

type CashRegisterRequest struct {
	Name             string `json:"name"`
	Enabled          bool   `json:"enabled"`
	DefaultPrinterID string `json:"defaultPrinterId"`
}

type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	RoleID   string `json:"roleId"`
	Role     Role   `json:"role"`
}

type UserRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	RoleID   string `json:"roleId"`
}

type Role struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type AvailabilityPatch struct {
	Available bool `json:"available"`
}

type EnabledPatch struct {
	Enabled bool `json:"enabled"`
}

type PrinterStatusPatch struct {
	Status PrinterStatus `json:"status"`
}

type PositionPatch struct {
	Position int `json:"position"`
}
