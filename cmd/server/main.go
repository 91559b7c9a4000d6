package main

import (
	"log"

	"github.com/blues/sps/internal/clock"
	"github.com/blues/sps/internal/config"
	"github.com/blues/sps/internal/database"
	"github.com/blues/sps/internal/logger"
	"github.com/blues/sps/internal/notify"
	"github.com/blues/sps/internal/router"
	"github.com/blues/sps/internal/task"
	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()

	// Logging per config
	level := logger.ParseLogLevel(cfg.Log.Level)
	if cfg.Log.Output == "file" {
		l, err := logger.NewWithRotation(level, logger.RotationConfig{Filename: cfg.Log.File})
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		logger.SetDefaultLogger(l)
	} else {
		l, err := logger.New(level)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		logger.SetDefaultLogger(l)
	}
	defer logger.Sync()

	db, err := database.Init(cfg.Database)
	if err != nil {
		logger.Fatal("Failed to initialize database: %v", err)
	}

	// Notifications: SMTP mailer behind an async dispatcher; failed
	// deliveries are alerted to the operator address.
	mailer := notify.NewMailer(cfg.SMTP)
	dispatcher, err := notify.NewDispatcher(mailer, notify.MailAlertSink{
		Notifier:   mailer,
		AdminEmail: cfg.SMTP.AdminEmail,
	}, cfg.SMTP.Workers)
	if err != nil {
		logger.Fatal("Failed to initialize notification dispatcher: %v", err)
	}
	defer dispatcher.Release()

	if cfg.Server.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	clk := clock.New()
	r := router.Setup(db, clk, dispatcher, cfg)

	manager := task.Start(db, clk, dispatcher, cfg)
	defer manager.Stop()

	logger.Info("Server starting on port %s", cfg.Server.Port)
	if err := r.Run(":" + cfg.Server.Port); err != nil {
		logger.Fatal("Failed to start server: %v", err)
	}
}
