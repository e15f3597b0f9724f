package dto

import (
	"net/mail"
	"strings"

	"devconnect/internal/pkg/response"
)

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r RegisterRequest) Validate() []response.FieldError {
	var errs []response.FieldError
	if strings.TrimSpace(r.Name) == "" {
		errs = append(errs, response.FieldError{Field: "name", Message: "Name is required"})
	}
	if !validEmail(r.Email) {
		errs = append(errs, response.FieldError{Field: "email", Message: "Please include a valid email"})
	}
	if len(r.Password) < 6 {
		errs = append(errs, response.FieldError{Field: "password", Message: "Please enter a password with 6 or more characters"})
	}
	return errs
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (r LoginRequest) Validate() []response.FieldError {
	var errs []response.FieldError
	if !validEmail(r.Email) {
		errs = append(errs, response.FieldError{Field: "email", Message: "Please include a valid email"})
	}
	if r.Password == "" {
		errs = append(errs, response.FieldError{Field: "password", Message: "Password is required"})
	}
	return errs
}

type TokenResponse struct {
	Token string `json:"token"`
}

func validEmail(email string) bool {
	email = strings.TrimSpace(email)
	if email == "" {
		return false
	}
	_, err := mail.ParseAddress(email)
	return err == nil
}
