package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"crudgen/internal/api"
	"crudgen/internal/artifact"
	"crudgen/internal/config"
	"crudgen/internal/editor"
	"crudgen/internal/generator"
	"crudgen/internal/logging"
	"crudgen/internal/session"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

func main() {
	// 1. Конфиг: defaults -> crudgen.json -> .env -> CRUDGEN_* -> флаги
	cfg, err := config.LoadWithArgs("crudgen.json", os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка загрузки конфигурации: %v\n", err)
		os.Exit(2)
	}

	logger, err := logging.New(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Ошибка настройки логирования: %v\n", err)
		os.Exit(2)
	}
	if logger.Level > log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}

	// 2. Клиент сервиса генерации
	client := generator.New(generator.Options{
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout(),
		Logger:  logger,
	})

	// 3. Хранилище архивов (local | s3)
	archives, err := artifact.Open(cfg.Artifacts())
	if err != nil {
		logger.WithError(err).Fatal("artifact store")
	}

	// 4. Сессии редактора
	sessions, err := session.NewRegistry(cfg.MaxSessions, func(l log.Interface) *editor.Editor {
		return editor.New(client, editor.Options{
			Debounce: cfg.Debounce(),
			Timeout:  cfg.Timeout(),
			Logger:   l,
		})
	}, logger)
	if err != nil {
		logger.WithError(err).Fatal("session registry")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	addr := ":" + cfg.Port
	logger.WithFields(log.Fields{
		"addr":      addr,
		"generator": cfg.BaseURL,
		"artifacts": cfg.ArtifactDriver,
	}).Info("starting crudgen server")

	if err := api.RunServer(ctx, addr, api.Deps{Sessions: sessions, Archives: archives, Log: logger}); err != nil {
		logger.WithError(err).Fatal("server stopped")
	}
	logger.Info("server stopped")
}
