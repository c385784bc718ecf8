package models

//nolint:gosec //file not handles sensitive data
const (
	EndpointLogin   = "/auth/login"
	EndpointLogout  = "/auth/logout"
	EndpointRefresh = "/auth/refresh"

	EndpointCategories    = "/v1/categories"
	EndpointFoods         = "/v1/foods"
	EndpointIngredients   = "/v1/ingredients"
	EndpointOrders        = "/v1/orders"
	EndpointPrinters      = "/v1/printers"
	EndpointCashRegisters = "/v1/cash-registers"
	EndpointUsers         = "/v1/users"
	EndpointRoles         = "/v1/roles"

	RefreshTokenCookie = "refreshToken"
	SessionCookie      = "sagra.session-token"

	DefaultExpiresInSeconds = 3600

	LoginPath = "/login"

	MwSessionIDKey = "sessionID"
	MwSessionKey   = "session"
)

type ErrorResponse struct {
	Message  string `json:"message"`
	Error    string `json:"error,omitempty"`
	Redirect string `json:"redirect,omitempty"`
}
