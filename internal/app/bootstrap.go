package app

import (
	"context"
	"fmt"
	"strings"

	"shortlist/internal/config"
	"shortlist/internal/delivery/http/handler"
	"shortlist/internal/delivery/http/middleware"
	"shortlist/internal/delivery/http/routes"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/cors"
	"go.uber.org/zap"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

func New(c *Container) *App {
	f := fiber.New(fiber.Config{AppName: c.Config.App.AppName})

	registerGlobalMiddleware(f, c.Config, c.Logger)
	registerRoutes(f, c)

	return &App{Fiber: f, Container: c}
}

func Bootstrap(ctx context.Context, cfg config.Config, logger *zap.Logger) (*App, func() error, error) {
	c, err := NewContainer(ctx, cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	app := New(c)
	return app, c.Close, nil
}

func registerGlobalMiddleware(app *fiber.App, cfg config.Config, logger *zap.Logger) {
	if app == nil {
		return
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	app.Use(middleware.NewAccessLogMiddleware(logger.Named("http")).Middleware())
	app.Use(middleware.NewErrorMiddleware(logger.Named("http")).Middleware())
	app.Use(cors.New())
	app.Use(middleware.NewRateLimitMiddleware(cfg.HTTP.RateLimitRPS, cfg.HTTP.RateLimitBurst).Middleware())
}

func registerRoutes(app *fiber.App, c *Container) {
	if app == nil {
		return
	}

	health := handler.NewHealthHandler(c.Candidates, c.Cache)
	candidates := handler.NewCandidatesHandler(c.Candidates, c.Config.HTTP.RequestTimeout)
	routes.NewRegistry(health, candidates).Register(app)
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
