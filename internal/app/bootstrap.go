package app

import (
	"fmt"
	"log"
	"strings"

	"skillsense/internal/config"
	"skillsense/internal/delivery/http/handler"
	"skillsense/internal/delivery/http/middleware"
	"skillsense/internal/delivery/http/routes"
	v1 "skillsense/internal/delivery/http/routes/v1"
	"skillsense/internal/ws"

	"github.com/gofiber/fiber/v3"
)

type App struct {
	Fiber     *fiber.App
	Container *Container
}

// Bootstrap builds the container, the websocket hub, and the fiber app with
// every route registered. The returned cleanup closes long-lived resources.
func Bootstrap(cfg config.Config, logger *log.Logger) (*App, func() error, error) {
	if logger == nil {
		logger = log.Default()
	}

	container, err := NewContainer(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	f := fiber.New(fiber.Config{
		AppName:   cfg.App.AppName,
		BodyLimit: int(cfg.Upload.MaxFileBytes) * cfg.Upload.BatchSize,
	})

	errMw := middleware.NewErrorMiddleware()
	accessMw := middleware.NewAccessLogMiddleware(logger)
	f.Use(errMw.Middleware())
	f.Use(accessMw.Middleware())

	hub := ws.NewHub(logger)
	ws.SetDefaultHub(hub)
	go hub.Run()

	deps := v1.Dependencies{
		Config:    cfg,
		DB:        container.DB,
		Store:     container.Store,
		Extractor: container.Extractor,
		GitHub:    container.GitHub,
		Collector: container.Collector,
		Logger:    logger,
	}
	health := handler.NewHealthHandler(container.DB, container.Cache)
	wsh := ws.NewHandler(hub, logger)

	routes.NewRegistry(deps, health, wsh).Register(f)

	cleanup := func() error {
		return container.Close()
	}
	return &App{Fiber: f, Container: container}, cleanup, nil
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
