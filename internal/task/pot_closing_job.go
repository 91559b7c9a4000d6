package task

import (
	"time"

	"github.com/blues/sps/internal/clock"
	"github.com/blues/sps/internal/config"
	"github.com/blues/sps/internal/logger"
	"github.com/blues/sps/internal/logic"
	"github.com/blues/sps/internal/model"
	"github.com/blues/sps/internal/notify"
	"github.com/go-co-op/gocron/v2"
	"gorm.io/gorm"
)

// PotClosingJob mails a final summary to the responsible of each pot whose
// purchase deadline has passed, once per pot.
type PotClosingJob struct {
	db       *gorm.DB
	config   *config.Config
	clock    clock.Clock
	notifier notify.Notifier
	stats    *logic.StatsLogic
}

// NewPotClosingJob creates the pot closing job.
func NewPotClosingJob(db *gorm.DB, cfg *config.Config, clk clock.Clock, notifier notify.Notifier) *PotClosingJob {
	return &PotClosingJob{
		db:       db,
		config:   cfg,
		clock:    clk,
		notifier: notifier,
		stats:    logic.NewStatsLogic(db),
	}
}

// GetName returns the job name.
func (j *PotClosingJob) GetName() string {
	return "pot_closing_notifier"
}

// GetSchedule returns the job schedule.
func (j *PotClosingJob) GetSchedule() gocron.JobDefinition {
	return gocron.DurationJob(time.Duration(j.config.Task.Interval) * time.Second)
}

// Execute runs one scan.
func (j *PotClosingJob) Execute() {
	logger.Info("Starting pot closing task")

	// A pot closes the day after its purchase deadline; the deadline day
	// itself still accepts offers.
	today := j.clock.Today()

	var pots []model.Pot
	err := j.db.Where("purchase_deadline < ? AND closed_notified = ?", today, false).Find(&pots).Error
	if err != nil {
		logger.Error("Failed to fetch closed pots: %v", err)
		return
	}

	notifiedCount := 0

	for _, pot := range pots {
		sumValidated, err := j.stats.SumValidated(pot.Id)
		if err != nil {
			logger.Error("Failed to sum validated offers for pot %d: %v", pot.Id, err)
			continue
		}
		sumCollected, err := j.stats.SumCollected(pot.Id)
		if err != nil {
			logger.Error("Failed to sum collected offers for pot %d: %v", pot.Id, err)
			continue
		}

		if err := j.notifier.Notify(
			notify.Recipient{Name: pot.ResponsibleName, Email: pot.ResponsibleEmail},
			notify.TemplatePotClosed,
			notify.Context{
				"pot":           pot.Name,
				"sum_validated": sumValidated.String(),
				"sum_collected": sumCollected.String(),
			},
		); err != nil {
			logger.Error("Failed to notify closing of pot %d: %v", pot.Id, err)
			continue
		}

		if err := j.db.Model(&pot).Update("closed_notified", true).Error; err != nil {
			logger.Error("Failed to mark pot %d as notified: %v", pot.Id, err)
			continue
		}

		notifiedCount++
	}

	logger.Info("Pot closing task completed. Notified %d pots", notifiedCount)
}
