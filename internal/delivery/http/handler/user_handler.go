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

type UserHandler struct {
	uc authuc.Usecase
}

func NewUserHandler(uc authuc.Usecase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Register answers POST /api/users with a fresh token for the new account.
func (h *UserHandler) Register(c fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if errs := req.Validate(); len(errs) > 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, errs, nil)
	}

	token, err := h.uc.Register(c.Context(), authuc.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		if errors.Is(err, user.ErrEmailTaken) {
			return middleware.NewAppError(fiber.StatusConflict, "User already exists", nil, err)
		}
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}

	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.TokenResponse{Token: token})
}
