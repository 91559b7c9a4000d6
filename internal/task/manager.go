package task

import (
	"github.com/blues/sps/internal/clock"
	"github.com/blues/sps/internal/config"
	"github.com/blues/sps/internal/logger"
	"github.com/blues/sps/internal/notify"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// Manager owns the background job scheduler.
type Manager struct {
	scheduler gocron.Scheduler
	db        *gorm.DB
	clock     clock.Clock
	notifier  notify.Notifier
	config    *config.Config
}

// NewManager creates a new task manager.
func NewManager(db *gorm.DB, clk clock.Clock, notifier notify.Notifier, cfg *config.Config) *Manager {
	s, err := gocron.NewScheduler()
	if err != nil {
		logger.Fatal("Failed to create scheduler: %v", err)
	}

	return &Manager{
		scheduler: s,
		db:        db,
		clock:     clk,
		notifier:  notifier,
		config:    cfg,
	}
}

// Start creates a manager, registers all jobs and starts the scheduler.
func Start(db *gorm.DB, clk clock.Clock, notifier notify.Notifier, cfg *config.Config) *Manager {
	manager := NewManager(db, clk, notifier, cfg)

	manager.RegisterJobs()
	manager.scheduler.Start()

	logger.Info("Task manager started successfully")
	return manager
}

// RegisterJobs registers all background jobs.
func (m *Manager) RegisterJobs() {
	m.RegisterPotClosingJob()
}

// RegisterPotClosingJob registers the pot closing summary job.
func (m *Manager) RegisterPotClosingJob() {
	job := NewPotClosingJob(m.db, m.config, m.clock, m.notifier)

	_, err := m.scheduler.NewJob(
		job.GetSchedule(),
		gocron.NewTask(job.Execute),
		gocron.WithName(job.GetName()),
		gocron.WithSingletonMode(gocron.LimitModeReschedule),
	)
	if err != nil {
		logger.Error("Failed to register job %s: %v", job.GetName(), err)
	}
}

// Stop shuts the scheduler down.
func (m *Manager) Stop() {
	if err := m.scheduler.Shutdown(); err != nil {
		logger.Error("Failed to shutdown scheduler: %v", err)
	}
	logger.Info("Task manager stopped")
}
