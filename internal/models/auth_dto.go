package models

import (
	"bytes"
	"encoding/json"
)

type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type LoginResponse struct {
	AccessToken  string     `json:"accessToken"`
	RefreshToken string     `json:"refreshToken,omitempty"`
	ExpiresIn    int64      `json:"expiresIn,omitempty"`
	User         *LoginUser `json:"user,omitempty"`
}

type LoginUser struct {
	ID       FlexString `json:"id"`
	Username string     `json:"username"`
	Role     string     `json:"role"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type RefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresIn    int64  `json:"expiresIn,omitempty"`
}

// LoginResult is the BFF answer to a login attempt.
type LoginResult struct {
	Success bool         `json:"success"`
	Error   string       `json:"error,omitempty"`
	User    *SessionUser `json:"user,omitempty"`
}

type LogoutResult struct {
	Success bool `json:"success"`
}

// FlexString decodes both JSON strings and numbers; backend versions
// disagree on the type of identifiers.
type FlexString string

func (f *FlexString) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*f = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*f = FlexString(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*f = FlexString(n.String())
	return nil
}

func (f FlexString) String() string { return string(f) }
