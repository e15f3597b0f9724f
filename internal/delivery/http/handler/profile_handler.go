package handler

import (
	"errors"

	"devconnect/internal/delivery/http/dto"
	"devconnect/internal/delivery/http/middleware"
	"devconnect/internal/domain/profile"
	"devconnect/internal/pkg/response"
	profileuc "devconnect/internal/usecase/profile"

	"github.com/gofiber/fiber/v3"
)

type ProfileHandler struct {
	uc profileuc.Usecase
}

func NewProfileHandler(uc profileuc.Usecase) *ProfileHandler {
	return &ProfileHandler{uc: uc}
}

// Me answers GET /api/profile/me: the caller's profile joined with the
// owner's name and avatar.
func (h *ProfileHandler) Me(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	p, err := h.uc.Get(c.Context(), userID)
	if err != nil {
		return profileError(err, "There is no profile for this user")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, p)
}

// Upsert answers POST /api/profile: create on first write, merge after.
func (h *ProfileHandler) Upsert(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	var req dto.UpsertProfileRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if errs := req.Validate(); len(errs) > 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, errs, nil)
	}

	p, err := h.uc.Upsert(c.Context(), userID, req.ToInput())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, p)
}

// List answers GET /api/profile: the public directory.
func (h *ProfileHandler) List(c fiber.Ctx) error {
	profiles, err := h.uc.List(c.Context())
	if err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, profiles)
}

// GetByUserID answers GET /api/profile/user/:user_id. Malformed and unknown
// ids produce the same not-found response.
func (h *ProfileHandler) GetByUserID(c fiber.Ctx) error {
	p, err := h.uc.GetByUserID(c.Context(), c.Params("user_id"))
	if err != nil {
		return profileError(err, "Profile not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, p)
}

// Delete answers DELETE /api/profile: removes the profile and the account.
func (h *ProfileHandler) Delete(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	if err := h.uc.Delete(c.Context(), userID); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, "User deleted", nil)
}

func (h *ProfileHandler) AddExperience(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	var req dto.ExperienceRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if errs := req.Validate(); len(errs) > 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, errs, nil)
	}

	p, err := h.uc.AddExperience(c.Context(), userID, req.ToInput())
	if err != nil {
		return profileError(err, "Profile not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, p)
}

func (h *ProfileHandler) RemoveExperience(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	p, err := h.uc.RemoveExperience(c.Context(), userID, c.Params("exp_id"))
	if err != nil {
		return profileError(err, "Profile not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, p)
}

func (h *ProfileHandler) AddEducation(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	var req dto.EducationRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, nil, err)
	}
	if errs := req.Validate(); len(errs) > 0 {
		return middleware.NewAppError(fiber.StatusBadRequest, response.MessageBadRequest, errs, nil)
	}

	p, err := h.uc.AddEducation(c.Context(), userID, req.ToInput())
	if err != nil {
		return profileError(err, "Profile not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, p)
}

func (h *ProfileHandler) RemoveEducation(c fiber.Ctx) error {
	userID, ok := middleware.UserIDFromCtx(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, response.MessageUnauthorized, nil, nil)
	}

	p, err := h.uc.RemoveEducation(c.Context(), userID, c.Params("edu_id"))
	if err != nil {
		return profileError(err, "Profile not found")
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, p)
}

func profileError(err error, notFoundMsg string) error {
	if errors.Is(err, profile.ErrNotFound) {
		return middleware.NewAppError(fiber.StatusNotFound, notFoundMsg, nil, err)
	}
	return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
}
