package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"naver-go/internal/config"
	"naver-go/internal/handler"
	"naver-go/internal/service"
	"naver-go/pkg/logger"
)

type Application struct {
	configPath string
	envFile    string
	debug      bool
}

func main() {
	app := &Application{}

	flag.StringVar(&app.configPath, "config", os.Getenv("NAVER_CONFIG"), "Configuration file path (env: NAVER_CONFIG)")
	flag.StringVar(&app.envFile, "env-file", ".env", "Dotenv file loaded before configuration")
	flag.BoolVar(&app.debug, "debug", false, "Enable debug logging")
	flag.Parse()

	if err := app.Run(); err != nil {
		log.Fatalf("Application failed: %v", err)
	}
}

func (app *Application) Run() error {
	if err := godotenv.Load(app.envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("load %s: %w", app.envFile, err)
	}

	cfg, err := config.NewManager().Load(app.configPath)
	if err != nil {
		return err
	}
	if app.debug {
		cfg.Logger.Level = "debug"
	}
	logger.SetLogger(logger.New(cfg.Logger.ToLogger()))
	log := logger.Component("server")

	clients, err := service.NewClients(cfg, nil)
	if err != nil {
		return err
	}

	server := fiber.New(fiber.Config{
		AppName:               "naver-go gateway",
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		DisableStartupMessage: true,
	})
	server.Use(recover.New())
	server.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	handler.NewController(clients.ConsumerAPI(), clients.CloudAPI()).Register(server)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	errCh := make(chan error, 1)
	go func() {
		errCh <- server.Listen(addr)
	}()

	log.WithFields(map[string]interface{}{
		"addr":     addr,
		"consumer": cfg.Consumer.Configured(),
		"cloud":    cfg.Cloud.Configured(),
	}).Info("Gateway started")

	select {
	case err := <-errCh:
		return fmt.Errorf("listen %s: %w", addr, err)
	case <-ctx.Done():
	}

	log.Info("Shutdown signal received")
	if err := server.ShutdownWithTimeout(5 * time.Second); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	log.Info("Gateway stopped")
	return nil
}
