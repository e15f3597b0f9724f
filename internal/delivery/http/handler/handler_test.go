package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"devconnect/internal/delivery/http/handler"
	"devconnect/internal/delivery/http/middleware"
	"devconnect/internal/delivery/http/routes"
	"devconnect/internal/domain/profile"
	"devconnect/internal/domain/user"
	"devconnect/internal/pkg/jwt"
	authuc "devconnect/internal/usecase/auth"
	profileuc "devconnect/internal/usecase/profile"
)

type semanticResponse struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type mockAuthUsecase struct {
	registerToken string
	registerErr   error
	loginToken    string
	loginErr      error
	me            user.User
	meErr         error
}

func (m *mockAuthUsecase) Register(context.Context, authuc.RegisterInput) (string, error) {
	return m.registerToken, m.registerErr
}

func (m *mockAuthUsecase) Login(context.Context, authuc.LoginInput) (string, error) {
	return m.loginToken, m.loginErr
}

func (m *mockAuthUsecase) Me(context.Context, uuid.UUID) (user.User, error) {
	return m.me, m.meErr
}

type mockProfileUsecase struct {
	prof      profile.Profile
	withOwner profile.WithOwner
	list      []profile.WithOwner
	err       error

	deletedFor []uuid.UUID
}

func (m *mockProfileUsecase) Upsert(context.Context, uuid.UUID, profileuc.UpsertInput) (profile.Profile, error) {
	return m.prof, m.err
}

func (m *mockProfileUsecase) Get(context.Context, uuid.UUID) (profile.WithOwner, error) {
	return m.withOwner, m.err
}

func (m *mockProfileUsecase) GetByUserID(context.Context, string) (profile.WithOwner, error) {
	return m.withOwner, m.err
}

func (m *mockProfileUsecase) List(context.Context) ([]profile.WithOwner, error) {
	return m.list, m.err
}

func (m *mockProfileUsecase) Delete(_ context.Context, userID uuid.UUID) error {
	m.deletedFor = append(m.deletedFor, userID)
	return m.err
}

func (m *mockProfileUsecase) AddExperience(context.Context, uuid.UUID, profileuc.ExperienceInput) (profile.Profile, error) {
	return m.prof, m.err
}

func (m *mockProfileUsecase) RemoveExperience(context.Context, uuid.UUID, string) (profile.Profile, error) {
	return m.prof, m.err
}

func (m *mockProfileUsecase) AddEducation(context.Context, uuid.UUID, profileuc.EducationInput) (profile.Profile, error) {
	return m.prof, m.err
}

func (m *mockProfileUsecase) RemoveEducation(context.Context, uuid.UUID, string) (profile.Profile, error) {
	return m.prof, m.err
}

func newTestApp(t *testing.T, authMock authuc.Usecase, profileMock profileuc.Usecase, jwtSvc jwt.Service) *fiber.App {
	t.Helper()

	app := fiber.New(fiber.Config{})
	app.Use(middleware.NewErrorMiddleware().Middleware())

	routes.NewRegistry(
		handler.NewAuthHandler(authMock),
		handler.NewUserHandler(authMock),
		handler.NewProfileHandler(profileMock),
		middleware.NewAuthMiddleware(jwtSvc),
	).Register(app)

	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any, token string) semanticResponse {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var sr semanticResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&sr))
	require.Equal(t, resp.StatusCode, sr.Status)
	return sr
}

func TestRegister_ValidationList(t *testing.T) {
	app := newTestApp(t, &mockAuthUsecase{}, &mockProfileUsecase{}, jwt.NewHMACService("s", time.Hour))

	sr := doJSON(t, app, "POST", "/api/users", map[string]string{
		"name":     "",
		"email":    "not-an-email",
		"password": "abc",
	}, "")

	require.Equal(t, fiber.StatusBadRequest, sr.Status)

	var fieldErrs []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal(sr.Data, &fieldErrs))
	require.Len(t, fieldErrs, 3)

	fields := map[string]string{}
	for _, fe := range fieldErrs {
		fields[fe.Field] = fe.Message
	}
	require.Equal(t, "Name is required", fields["name"])
	require.Equal(t, "Please include a valid email", fields["email"])
	require.Equal(t, "Please enter a password with 6 or more characters", fields["password"])
}

func TestRegister_DuplicateEmailConflict(t *testing.T) {
	app := newTestApp(t, &mockAuthUsecase{registerErr: user.ErrEmailTaken}, &mockProfileUsecase{}, jwt.NewHMACService("s", time.Hour))

	sr := doJSON(t, app, "POST", "/api/users", map[string]string{
		"name":     "Dev",
		"email":    "dev@example.com",
		"password": "secret1",
	}, "")

	require.Equal(t, fiber.StatusConflict, sr.Status)
	require.Equal(t, "User already exists", sr.Message)
}

func TestRegister_ReturnsToken(t *testing.T) {
	app := newTestApp(t, &mockAuthUsecase{registerToken: "issued-token"}, &mockProfileUsecase{}, jwt.NewHMACService("s", time.Hour))

	sr := doJSON(t, app, "POST", "/api/users", map[string]string{
		"name":     "Dev",
		"email":    "dev@example.com",
		"password": "secret1",
	}, "")

	require.Equal(t, fiber.StatusOK, sr.Status)

	var data struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(sr.Data, &data))
	require.Equal(t, "issued-token", data.Token)
}

func TestLogin_InvalidCredentials(t *testing.T) {
	app := newTestApp(t, &mockAuthUsecase{loginErr: authuc.ErrInvalidCredentials}, &mockProfileUsecase{}, jwt.NewHMACService("s", time.Hour))

	sr := doJSON(t, app, "POST", "/api/auth", map[string]string{
		"email":    "dev@example.com",
		"password": "wrong1",
	}, "")

	require.Equal(t, fiber.StatusBadRequest, sr.Status)
	require.Equal(t, "Invalid Credentials", sr.Message)
}

func TestAuthGuard(t *testing.T) {
	jwtSvc := jwt.NewHMACService("guard-secret", time.Hour)
	userID := uuid.New()
	app := newTestApp(t, &mockAuthUsecase{me: user.User{ID: userID, Name: "Dev"}}, &mockProfileUsecase{}, jwtSvc)

	// No token.
	sr := doJSON(t, app, "GET", "/api/auth", nil, "")
	require.Equal(t, fiber.StatusUnauthorized, sr.Status)
	require.Equal(t, "No token, authorization denied", sr.Message)

	// Garbage token.
	sr = doJSON(t, app, "GET", "/api/auth", nil, "bogus")
	require.Equal(t, fiber.StatusUnauthorized, sr.Status)
	require.Equal(t, "Token is not valid", sr.Message)

	// Valid token.
	token, err := jwtSvc.Issue(userID)
	require.NoError(t, err)
	sr = doJSON(t, app, "GET", "/api/auth", nil, token)
	require.Equal(t, fiber.StatusOK, sr.Status)

	var u user.User
	require.NoError(t, json.Unmarshal(sr.Data, &u))
	require.Equal(t, userID, u.ID)
}

func TestUpsertProfile_ValidationList(t *testing.T) {
	jwtSvc := jwt.NewHMACService("guard-secret", time.Hour)
	app := newTestApp(t, &mockAuthUsecase{}, &mockProfileUsecase{}, jwtSvc)

	token, err := jwtSvc.Issue(uuid.New())
	require.NoError(t, err)

	sr := doJSON(t, app, "POST", "/api/profile", map[string]string{"company": "Acme"}, token)
	require.Equal(t, fiber.StatusBadRequest, sr.Status)

	var fieldErrs []struct {
		Field string `json:"field"`
	}
	require.NoError(t, json.Unmarshal(sr.Data, &fieldErrs))
	require.Len(t, fieldErrs, 2)
}

func TestGetProfileByUserID_NotFound(t *testing.T) {
	app := newTestApp(t, &mockAuthUsecase{}, &mockProfileUsecase{err: profile.ErrNotFound}, jwt.NewHMACService("s", time.Hour))

	sr := doJSON(t, app, "GET", "/api/profile/user/"+uuid.NewString(), nil, "")
	require.Equal(t, fiber.StatusNotFound, sr.Status)
	require.Equal(t, "Profile not found", sr.Message)
}

func TestListProfiles_Public(t *testing.T) {
	list := []profile.WithOwner{
		{Profile: profile.Profile{ID: uuid.New()}, Owner: profile.Owner{Name: "Alice"}},
		{Profile: profile.Profile{ID: uuid.New()}, Owner: profile.Owner{Name: "Bob"}},
	}
	app := newTestApp(t, &mockAuthUsecase{}, &mockProfileUsecase{list: list}, jwt.NewHMACService("s", time.Hour))

	sr := doJSON(t, app, "GET", "/api/profile", nil, "")
	require.Equal(t, fiber.StatusOK, sr.Status)

	var got []profile.WithOwner
	require.NoError(t, json.Unmarshal(sr.Data, &got))
	require.Len(t, got, 2)
}

func TestDeleteProfile_RequiresAuth(t *testing.T) {
	jwtSvc := jwt.NewHMACService("guard-secret", time.Hour)
	mock := &mockProfileUsecase{}
	app := newTestApp(t, &mockAuthUsecase{}, mock, jwtSvc)

	sr := doJSON(t, app, "DELETE", "/api/profile", nil, "")
	require.Equal(t, fiber.StatusUnauthorized, sr.Status)
	require.Empty(t, mock.deletedFor)

	userID := uuid.New()
	token, err := jwtSvc.Issue(userID)
	require.NoError(t, err)

	sr = doJSON(t, app, "DELETE", "/api/profile", nil, token)
	require.Equal(t, fiber.StatusOK, sr.Status)
	require.Equal(t, "User deleted", sr.Message)
	require.Equal(t, []uuid.UUID{userID}, mock.deletedFor)
}

func TestAddExperience_ValidationList(t *testing.T) {
	jwtSvc := jwt.NewHMACService("guard-secret", time.Hour)
	app := newTestApp(t, &mockAuthUsecase{}, &mockProfileUsecase{}, jwtSvc)

	token, err := jwtSvc.Issue(uuid.New())
	require.NoError(t, err)

	sr := doJSON(t, app, "PUT", "/api/profile/experience", map[string]string{"location": "Remote"}, token)
	require.Equal(t, fiber.StatusBadRequest, sr.Status)

	var fieldErrs []struct {
		Field string `json:"field"`
	}
	require.NoError(t, json.Unmarshal(sr.Data, &fieldErrs))
	require.Len(t, fieldErrs, 3)
}

func TestServerErrorsAreOpaque(t *testing.T) {
	app := newTestApp(t, &mockAuthUsecase{}, &mockProfileUsecase{err: context.DeadlineExceeded}, jwt.NewHMACService("s", time.Hour))

	sr := doJSON(t, app, "GET", "/api/profile", nil, "")
	require.Equal(t, fiber.StatusInternalServerError, sr.Status)
	require.Equal(t, "internal server error", sr.Message)
	require.Equal(t, "null", string(sr.Data))
}
