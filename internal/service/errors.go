package service

import (
	"errors"
	"fmt"
)

// FailureKind classifies why an authentication or business call failed.
type FailureKind int

const (
	FailureNone FailureKind = iota
	// FailureInvalidCredentials covers rejected logins and missing credentials.
	FailureInvalidCredentials
	// FailureAuthentication means the backend accepted the credentials but
	// the session could not be established locally.
	FailureAuthentication
	// FailureLogin is any other login failure, e.g. the backend is unreachable.
	FailureLogin
	FailureRefreshUnavailable
	FailureRefreshFailed
	FailureBusinessCall
)

const (
	MsgInvalidCredentials = "Credenziali non valide"
	MsgAuthentication     = "Errore di autenticazione"
	MsgLogin              = "Errore durante il login"
	MsgUnknownAPIError    = "Errore sconosciuto"
	MsgSessionExpired     = "Sessione scaduta, effettua di nuovo il login"
)

func (k FailureKind) String() string {
	switch k {
	case FailureNone:
		return "none"
	case FailureInvalidCredentials:
		return "invalid_credentials"
	case FailureAuthentication:
		return "authentication"
	case FailureLogin:
		return "login"
	case FailureRefreshUnavailable:
		return "refresh_unavailable"
	case FailureRefreshFailed:
		return "refresh_failed"
	case FailureBusinessCall:
		return "business_call_failed"
	default:
		return fmt.Sprintf("failure(%d)", int(k))
	}
}

// Message is the user-facing text for a failure.
func (k FailureKind) Message() string {
	switch k {
	case FailureNone:
		return ""
	case FailureInvalidCredentials:
		return MsgInvalidCredentials
	case FailureAuthentication:
		return MsgAuthentication
	case FailureRefreshUnavailable, FailureRefreshFailed:
		return MsgSessionExpired
	case FailureBusinessCall:
		return MsgUnknownAPIError
	default:
		return MsgLogin
	}
}

var (
	ErrTokenExpired         = errors.New("token expired")
	ErrTokenInvalid         = errors.New("token invalid")
	ErrInvalidSigningMethod = errors.New("invalid signing method")
	ErrInvalidInput         = errors.New("invalid input")
)

// APIError is a non-2xx answer from a business endpoint.
type APIError struct {
	Method   string
	Endpoint string
	Status   int
	Message  string
}

func (e *APIError) Error() string { return e.Message }

func (e *APIError) Kind() FailureKind { return FailureBusinessCall }
