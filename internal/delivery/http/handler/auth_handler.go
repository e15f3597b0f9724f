package handler

import (
	"errors"

	"devconnect/internal/delivery/http/dto"
	"devconnect/internal/delivery/http/middleware"
	"devconnect/internal/domain/user"
	"devconnect/internal/pkg/response"
	authuc "devconnect/internal/usecase/auth"

	"github.com/gofiber/fiber/v3"
)

type AuthHandler struct {
	uc authuc.Usecase
}

func NewAuthHandler(uc authuc.Usecase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Me answers GET /api/auth: the caller's own account record, password
// stripped.
func (h *AuthHandler) Me(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	usr, err := h.uc.Me(c.Context(), userID)
	if err != nil {
		if errors.Is(err, user.ErrNotFound) {
			return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, usr)
}

// Login answers POST /api/auth with a fresh token.
func (h *AuthHandler) Login(c fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if errs := req.Validate(); len(errs) > 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, errs, nil)
	}

	token, err := h.uc.Login(c.Context(), authuc.LoginInput{Email: req.Email, Password: req.Password})
	if err != nil {
		if errors.Is(err, authuc.ErrInvalidCredentials) {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid Credentials", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.TokenResponse{Token: token})
}
