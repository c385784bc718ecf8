package service

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rryowa/sagra_admin/internal/models"
)

type requestCall struct {
	Endpoint string
	Opts     RequestOptions
}

// fakeRequester answers every call with respond, decoding its JSON into out.
type fakeRequester struct {
	calls   []requestCall
	respond func(call requestCall) (string, error)
}

func (f *fakeRequester) Do(_ context.Context, endpoint string, opts RequestOptions, out interface{}) error {
	call := requestCall{Endpoint: endpoint, Opts: opts}
	f.calls = append(f.calls, call)
	if f.respond == nil {
		return nil
	}
	body, err := f.respond(call)
	if err != nil {
		return err
	}
	if out != nil && body != "" {
		return json.Unmarshal([]byte(body), out)
	}
	return nil
}

func bodyJSON(t *testing.T, body interface{}) string {
	t.Helper()
	raw, err := json.Marshal(body)
	require.NoError(t, err)
	return string(raw)
}

func TestCategoryUpdate_MergesWithStoredCategory(t *testing.T) {
	api := &fakeRequester{respond: func(call requestCall) (string, error) {
		if call.Opts.Method == "" {
			return `{"id":"c1","name":"Primi","available":true,"position":2,"printerId":"p1"}`, nil
		}
		return `{"id":"c1","name":"Primi piatti","available":true,"position":2,"printerId":"p1"}`, nil
	}}

	name := "Primi piatti"
	out, err := NewCategoryService(api).Update(context.Background(), "c1", models.CategoryUpdate{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Primi piatti", out.Name)

	require.Len(t, api.calls, 2)
	put := api.calls[1]
	assert.Equal(t, http.MethodPut, put.Opts.Method)
	assert.Equal(t, "/v1/categories/c1", put.Endpoint)
	assert.JSONEq(t, `{"name":"Primi piatti","available":true,"position":2,"printerId":"p1"}`, bodyJSON(t, put.Opts.Body))
}

func TestCategoryUpdate_ExplicitNullClearsPrinter(t *testing.T) {
	api := &fakeRequester{respond: func(call requestCall) (string, error) {
		return `{"id":"c1","name":"Primi","available":false,"position":1,"printerId":"p1"}`, nil
	}}

	var update models.CategoryUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"available":true,"printerId":null}`), &update))

	_, err := NewCategoryService(api).Update(context.Background(), "c1", update)
	require.NoError(t, err)

	require.Len(t, api.calls, 2)
	assert.JSONEq(t, `{"name":"Primi","available":true,"position":1,"printerId":null}`, bodyJSON(t, api.calls[1].Opts.Body))
}

func TestCategoryUpdate_GetFailureStops(t *testing.T) {
	api := &fakeRequester{respond: func(call requestCall) (string, error) {
		return "", &APIError{Status: http.StatusNotFound, Message: "Categoria non trovata"}
	}}

	_, err := NewCategoryService(api).Update(context.Background(), "missing", models.CategoryUpdate{})
	require.Error(t, err)
	assert.Equal(t, "Categoria non trovata", err.Error())
	assert.Len(t, api.calls, 1)
}

func TestCategoryReorder_StopsAtFirstFailure(t *testing.T) {
	api := &fakeRequester{respond: func(call requestCall) (string, error) {
		if call.Endpoint == "/v1/categories/c2" {
			return "", &APIError{Status: http.StatusBadRequest, Message: "Posizione non valida"}
		}
		return `{"id":"c1","position":1}`, nil
	}}

	out, err := NewCategoryService(api).Reorder(context.Background(), []models.CategoryPosition{
		{ID: "c1", Position: 1},
		{ID: "c2", Position: 2},
		{ID: "c3", Position: 3},
	})

	require.Error(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "c1", out[0].ID)
	require.Len(t, api.calls, 2)
	assert.Equal(t, http.MethodPatch, api.calls[0].Opts.Method)
	assert.JSONEq(t, `{"position":1}`, bodyJSON(t, api.calls[0].Opts.Body))
}

func TestCategoryCreate_RequiresName(t *testing.T) {
	api := &fakeRequester{}
	_, err := NewCategoryService(api).Create(context.Background(), models.CategoryRequest{})

	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, api.calls)
}

func TestCategoryUploadImage_ForwardsContentType(t *testing.T) {
	api := &fakeRequester{}
	err := NewCategoryService(api).UploadImage(context.Background(), "c1", nil, "multipart/form-data; boundary=x")
	require.NoError(t, err)

	require.Len(t, api.calls, 1)
	assert.Equal(t, "/v1/categories/c1/image", api.calls[0].Endpoint)
	assert.Equal(t, "multipart/form-data; boundary=x", api.calls[0].Opts.Headers.Get("Content-Type"))
}

func TestFoodList_Query(t *testing.T) {
	api := &fakeRequester{respond: func(requestCall) (string, error) { return `[]`, nil }}
	available := true

	_, err := NewFoodService(api).List(context.Background(), models.FoodQuery{
		Include:   "ingredients",
		Available: &available,
		Category:  []string{"c1", "c2"},
	})
	require.NoError(t, err)

	q := api.calls[0].Opts.Query
	assert.Equal(t, "ingredients", q.Get("include"))
	assert.Equal(t, "true", q.Get("available"))
	assert.Equal(t, []string{"c1", "c2"}, q["category"])
}

func TestOrderList(t *testing.T) {
	api := &fakeRequester{respond: func(requestCall) (string, error) {
		return `{"orders":[{"id":7,"displayCode":"A7"}],"pagination":{"currentPage":1,"totalOrdersPages":3,"totalOrdersItems":25}}`, nil
	}}

	page, err := NewOrderService(api).List(context.Background(), models.OrderQuery{
		Search: "rossi",
		Page:   1,
		Limit:  10,
		Status: []models.OrderStatus{models.OrderPending, models.OrderConfirmed},
	})
	require.NoError(t, err)

	require.Len(t, page.Data, 1)
	assert.Equal(t, models.FlexString("7"), page.Data[0].ID)
	assert.Equal(t, 3, page.Pagination.TotalPages)
	assert.True(t, page.Pagination.HasNextPage)

	q := api.calls[0].Opts.Query
	assert.Equal(t, "rossi", q.Get("search"))
	assert.Equal(t, "1", q.Get("page"))
	assert.Equal(t, "10", q.Get("limit"))
	assert.Equal(t, []string{"PENDING", "CONFIRMED"}, q["status"])
}

func TestOrderStatusValidation(t *testing.T) {
	api := &fakeRequester{}
	orders := NewOrderService(api)

	_, err := orders.List(context.Background(), models.OrderQuery{Status: []models.OrderStatus{"LOST"}})
	require.ErrorIs(t, err, ErrInvalidInput)

	err = orders.SetStatus(context.Background(), 7, "LOST")
	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, api.calls)

	require.NoError(t, orders.SetStatus(context.Background(), 7, models.OrderCompleted))
	require.Len(t, api.calls, 1)
	assert.Equal(t, "/v1/orders/7", api.calls[0].Endpoint)
	assert.Equal(t, http.MethodPatch, api.calls[0].Opts.Method)
}

func TestOrderConfirm(t *testing.T) {
	api := &fakeRequester{respond: func(requestCall) (string, error) {
		return `{"id":7,"status":"CONFIRMED"}`, nil
	}}

	out, err := NewOrderService(api).Confirm(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, models.OrderConfirmed, out.Status)
	assert.Equal(t, "/v1/orders/7/confirm", api.calls[0].Endpoint)
	assert.Equal(t, http.MethodPost, api.calls[0].Opts.Method)
}

func TestPrinterSetStatus_Validation(t *testing.T) {
	api := &fakeRequester{}
	_, err := NewPrinterService(api).SetStatus(context.Background(), "p1", "BROKEN")

	require.ErrorIs(t, err, ErrInvalidInput)
	assert.Empty(t, api.calls)
}
