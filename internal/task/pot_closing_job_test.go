package task

import (
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/blues/sps/internal/clock"
	"github.com/blues/sps/internal/config"
	"github.com/blues/sps/internal/database"
	"github.com/blues/sps/internal/model"
	"github.com/blues/sps/internal/notify"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

var taskTestDBCounter int64

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:task_test_%d?mode=memory&cache=shared", atomic.AddInt64(&taskTestDBCounter, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
		NamingStrategy: &schema.NamingStrategy{
			SingularTable: true,
		},
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

type recorderNotifier struct {
	mu   sync.Mutex
	sent []notify.Recipient
}

func (r *recorderNotifier) Notify(recipient notify.Recipient, templateKey string, ctx notify.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = append(r.sent, recipient)
	return nil
}

func (r *recorderNotifier) recipients() []notify.Recipient {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]notify.Recipient(nil), r.sent...)
}

func seedPot(t *testing.T, db *gorm.DB, name string, purchaseDeadline time.Time, notified bool) *model.Pot {
	t.Helper()

	pot := &model.Pot{
		Name:             name,
		Slug:             name,
		ResponsibleID:    1,
		ResponsibleName:  "alice",
		ResponsibleEmail: name + "@example.org",
		TargetAmount:     decimal.RequireFromString("42"),
		DepositDeadline:  purchaseDeadline.AddDate(0, -1, 0),
		PurchaseDeadline: purchaseDeadline,
		ClosedNotified:   notified,
	}
	require.NoError(t, db.Create(pot).Error)
	return pot
}

func TestPotClosingJob(t *testing.T) {
	db := newTestDB(t)
	recorder := &recorderNotifier{}
	today := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

	closed := seedPot(t, db, "closed-pot", today.AddDate(0, 0, -1), false)
	seedPot(t, db, "open-pot", today.AddDate(0, 1, 0), false)
	seedPot(t, db, "done-pot", today.AddDate(0, -1, 0), true)
	// On its deadline day a pot still accepts offers, so it is not closed yet.
	seedPot(t, db, "deadline-day-pot", today, false)

	cfg := &config.Config{Task: config.TaskConfig{Interval: 60}}
	job := NewPotClosingJob(db, cfg, clock.Fixed(today), recorder)
	job.Execute()

	sent := recorder.recipients()
	require.Len(t, sent, 1, "only the pot past its deadline gets the summary")
	assert.Equal(t, closed.ResponsibleEmail, sent[0].Email)

	var stored model.Pot
	require.NoError(t, db.First(&stored, closed.Id).Error)
	assert.True(t, stored.ClosedNotified)

	// A second run finds nothing left to notify.
	job.Execute()
	assert.Len(t, recorder.recipients(), 1)
}
