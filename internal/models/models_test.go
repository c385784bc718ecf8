package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionState(t *testing.T) {
	now := time.Now()
	future := now.Add(time.Minute).UnixMilli()
	past := now.Add(-time.Minute).UnixMilli()

	tests := []struct {
		name    string
		session Session
		want    SessionState
	}{
		{"fresh", Session{AccessTokenExpiresAt: future, RefreshToken: "r"}, StateFresh},
		{"fresh without refresh token", Session{AccessTokenExpiresAt: future}, StateFresh},
		{"expired refreshable", Session{AccessTokenExpiresAt: past, RefreshToken: "r"}, StateExpiredRefreshable},
		{"expired unrefreshable", Session{AccessTokenExpiresAt: past}, StateExpiredUnrefreshable},
		{"expiry boundary", Session{AccessTokenExpiresAt: now.UnixMilli(), RefreshToken: "r"}, StateExpiredRefreshable},
		{"refresh failed", Session{AccessTokenExpiresAt: past, RefreshToken: "r", Error: SessionErrorRefreshAccessToken}, StateRefreshFailed},
		{"errored but not yet expired", Session{AccessTokenExpiresAt: future, RefreshToken: "r", Error: SessionErrorRefreshAccessToken}, StateRefreshFailed},
		{"errored without refresh token", Session{AccessTokenExpiresAt: past, Error: SessionErrorRefreshAccessToken}, StateExpiredUnrefreshable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.session.State(now), "got %s", tt.session.State(now))
		})
	}
}

func TestSessionTTL(t *testing.T) {
	now := time.Now()

	assert.Zero(t, (&Session{}).TTL(now))
	assert.Equal(t, time.Hour, (&Session{ExpiresAt: now.Add(time.Hour)}).TTL(now))
	assert.Equal(t, time.Millisecond, (&Session{ExpiresAt: now.Add(-time.Hour)}).TTL(now))
}

func TestSessionViewHidesTokens(t *testing.T) {
	s := Session{
		ID:                   "sid",
		UserID:               "1",
		DisplayName:          "mario",
		Role:                 "admin",
		AccessToken:          "secret-access",
		RefreshToken:         "secret-refresh",
		AccessTokenExpiresAt: 123,
		Error:                SessionErrorRefreshAccessToken,
	}

	raw, err := json.Marshal(s.View())
	require.NoError(t, err)

	assert.JSONEq(t, `{
		"user": {"id": "1", "name": "mario", "role": "admin"},
		"accessTokenExpiresAt": 123,
		"error": "RefreshAccessTokenError"
	}`, string(raw))
}

func TestFlexString(t *testing.T) {
	var u LoginUser
	require.NoError(t, json.Unmarshal([]byte(`{"id": 42}`), &u))
	assert.Equal(t, "42", u.ID.String())

	require.NoError(t, json.Unmarshal([]byte(`{"id": "abc"}`), &u))
	assert.Equal(t, "abc", u.ID.String())

	require.NoError(t, json.Unmarshal([]byte(`{"id": null}`), &u))
	assert.Empty(t, u.ID.String())

	assert.Error(t, json.Unmarshal([]byte(`{"id": {}}`), &u))
}

func TestOptionalString(t *testing.T) {
	var absent, null, value CategoryUpdate
	require.NoError(t, json.Unmarshal([]byte(`{"name": "Primi"}`), &absent))
	require.NoError(t, json.Unmarshal([]byte(`{"printerId": null}`), &null))
	require.NoError(t, json.Unmarshal([]byte(`{"printerId": "p1"}`), &value))

	assert.False(t, absent.PrinterID.Set)

	assert.True(t, null.PrinterID.Set)
	assert.Nil(t, null.PrinterID.Value)

	assert.True(t, value.PrinterID.Set)
	require.NotNil(t, value.PrinterID.Value)
	assert.Equal(t, "p1", *value.PrinterID.Value)
}

func TestOrderPage_BothShapes(t *testing.T) {
	t.Run("data and totalPages", func(t *testing.T) {
		var page OrderPage
		require.NoError(t, json.Unmarshal([]byte(`{
			"data": [{"id": 1, "displayCode": "A1", "status": "PENDING"}],
			"pagination": {"currentPage": 2, "totalPages": 2, "totalItems": 11, "itemsPerPage": 10}
		}`), &page))

		require.Len(t, page.Data, 1)
		assert.Equal(t, FlexString("1"), page.Data[0].ID)
		assert.Equal(t, OrderPending, page.Data[0].Status)
		assert.Equal(t, 2, page.Pagination.TotalPages)
		assert.Equal(t, 11, page.Pagination.TotalItems)
		assert.False(t, page.Pagination.HasNextPage)
		assert.True(t, page.Pagination.HasPrevPage)
	})

	t.Run("orders and totalOrdersPages", func(t *testing.T) {
		var page OrderPage
		require.NoError(t, json.Unmarshal([]byte(`{
			"orders": [{"id": "7"}, {"id": "8"}],
			"pagination": {"currentPage": 1, "totalOrdersPages": 4, "totalOrdersItems": 40, "hasNextPage": true, "nextPage": 2}
		}`), &page))

		assert.Len(t, page.Data, 2)
		assert.Equal(t, 4, page.Pagination.TotalPages)
		assert.Equal(t, 40, page.Pagination.TotalItems)
		assert.True(t, page.Pagination.HasNextPage)
		assert.False(t, page.Pagination.HasPrevPage)
		require.NotNil(t, page.Pagination.NextPage)
		assert.Equal(t, 2, *page.Pagination.NextPage)
	})

	t.Run("empty", func(t *testing.T) {
		var page OrderPage
		require.NoError(t, json.Unmarshal([]byte(`{}`), &page))
		assert.NotNil(t, page.Data)
		assert.Empty(t, page.Data)
	})
}

func TestOrderQueryValues(t *testing.T) {
	q := OrderQuery{
		DisplayCode: "A1",
		Status:      []OrderStatus{OrderCompleted, OrderPickedUp},
		DateFrom:    "2025-06-01",
		DateTo:      "2025-06-02",
	}

	assert.Equal(t, "dateFrom=2025-06-01&dateTo=2025-06-02&displayCode=A1&status=COMPLETED&status=PICKED_UP", q.Values().Encode())
	assert.Empty(t, OrderQuery{}.Values())
}
