package httpserver

import (
	"errors"
	"net/mail"
)

const minPasswordLength = 6

// RegisterRequest is the body of POST /auth/register.
type RegisterRequest struct {
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

func (r *RegisterRequest) validate() error {
	if r.FirstName == "" {
		return errors.New("firstname is required")
	}
	if r.LastName == "" {
		return errors.New("lastname is required")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return errors.New("email is not valid")
	}
	if len(r.Password) < minPasswordLength {
		return errors.New("password is too short")
	}
	return nil
}

// AuthenticateRequest is the body of POST /auth/authenticate.
type AuthenticateRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r *AuthenticateRequest) validate() error {
	if r.Email == "" {
		return errors.New("email is required")
	}
	if r.Password == "" {
		return errors.New("password is required")
	}
	return nil
}

// RefreshTokenRequest is the body of POST /auth/refreshToken.
type RefreshTokenRequest struct {
	Token string `json:"token"`
}

func (r *RefreshTokenRequest) validate() error {
	if r.Token == "" {
		return errors.New("token is required")
	}
	return nil
}

// AuthResponse is the success body for all three token-issuing endpoints.
type AuthResponse struct {
	Token        string `json:"token"`
	RefreshToken string `json:"refreshToken"`
}

// UserResponse is the body of GET /auth/me.
type UserResponse struct {
	ID        string `json:"id"`
	FirstName string `json:"firstname"`
	LastName  string `json:"lastname"`
	Email     string `json:"email"`
	Role      string `json:"role"`
}
