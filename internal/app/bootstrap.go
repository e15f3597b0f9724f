package app

import (
	"fmt"
	"log"
	"strings"
	"time"

	"devconnect/internal/config"
	"devconnect/internal/delivery/http/handler"
	"devconnect/internal/delivery/http/middleware"
	"devconnect/internal/delivery/http/routes"
	"devconnect/internal/pkg/jwt"
	"devconnect/internal/repository"
	authuc "devconnect/internal/usecase/auth"
	profileuc "devconnect/internal/usecase/profile"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber *fiber.App
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{
		AppName: c.Config.App.AppName,
	})

	registerGlobalMiddleware(f)
	registerRoutes(f, c)

	return &App{Fiber: f}
}

func Bootstrap(cfg config.Config) (*App, func() error, error) {
	container, err := NewContainer(cfg)
	if err != nil {
		return nil, nil, err
	}

	app := New(container)
	return app, container.Close, nil
}

func registerGlobalMiddleware(f *fiber.App) {
	f.Use(middleware.NewAccessLogMiddleware(log.Default()).Middleware())
	f.Use(middleware.NewErrorMiddleware().Middleware())
}

func registerRoutes(f *fiber.App, c *Container) {
	jwtSvc := jwt.NewHMACService(
		c.Config.JWT.Secret,
		time.Duration(c.Config.JWT.TTLMinutes)*time.Minute,
	)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo := repository.NewPostgresUserRepository(c.DB)
	profileRepo := repository.NewPostgresProfileRepository(c.DB)

	authSvc := authuc.NewService(userRepo, jwtSvc)
	profileSvc := profileuc.NewService(profileRepo, c.Cache)

	registry := routes.NewRegistry(
		handler.NewAuthHandler(authSvc),
		handler.NewUserHandler(authSvc),
		handler.NewProfileHandler(profileSvc),
		authMw,
	)
	registry.Register(f)
}

func ListenAddr(port string) (string, error) {
	p := strings.TrimSpace(port)
	if p == "" {
		return "", fmt.Errorf("empty HTTP port")
	}
	if strings.HasPrefix(p, ":") {
		return p, nil
	}
	return ":" + p, nil
}
