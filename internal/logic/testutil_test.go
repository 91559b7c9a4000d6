package logic

import (
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/blues/sps/internal/clock"
	"github.com/blues/sps/internal/database"
	"github.com/blues/sps/internal/model"
	"github.com/blues/sps/internal/notify"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
	"gorm.io/gorm/schema"
)

// Test actors. Alice owns pots, Bob owns propositions, Carol and Dave
// submit offers, Sam is staff.
var (
	alice     = model.Actor{ID: 1, Name: "alice", Email: "alice@example.org"}
	bob       = model.Actor{ID: 2, Name: "bob", Email: "bob@example.org"}
	carol     = model.Actor{ID: 3, Name: "carol", Email: "carol@example.org"}
	dave      = model.Actor{ID: 4, Name: "dave", Email: "dave@example.org"}
	sam       = model.Actor{ID: 9, Name: "sam", Email: "sam@example.org", Staff: true}
	anonymous = model.Actor{}
)

// testToday is the fixed date the logic under test runs at.
var testToday = time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)

var testDBCounter int64

// newTestDB opens a fresh in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:logic_test_%d?mode=memory&cache=shared", atomic.AddInt64(&testDBCounter, 1))
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

// recorderNotifier records notifications; with fail set it refuses all of
// them.
type recorderNotifier struct {
	mu   sync.Mutex
	fail bool
	sent []recordedNotification
}

type recordedNotification struct {
	Recipient notify.Recipient
	Template  string
	Ctx       notify.Context
}

func (r *recorderNotifier) Notify(recipient notify.Recipient, templateKey string, ctx notify.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("smtp down")
	}
	r.sent = append(r.sent, recordedNotification{Recipient: recipient, Template: templateKey, Ctx: ctx})
	return nil
}

func (r *recorderNotifier) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.sent)
}

func (r *recorderNotifier) last() recordedNotification {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.sent[len(r.sent)-1]
}

// dec parses a decimal literal.
func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

// createPot creates a pot owned by actor, deadlines comfortably in the
// future of testToday.
func createPot(t *testing.T, db *gorm.DB, actor model.Actor, name, target string) *model.Pot {
	t.Helper()

	pot, err := NewPotLogic(db, clock.Fixed(testToday)).CreatePot(actor, CreatePotInput{
		Name:             name,
		Objective:        "nothing",
		TargetAmount:     dec(target),
		DepositDeadline:  testToday.AddDate(0, 1, 0),
		PurchaseDeadline: testToday.AddDate(0, 2, 0),
	})
	require.NoError(t, err)
	return pot
}

// createProposition creates a proposition by actor on the pot.
func createProposition(t *testing.T, db *gorm.DB, actor model.Actor, pot *model.Pot, name, price string, maxBeneficiaries int) *model.Proposition {
	t.Helper()

	prop, err := NewPropositionLogic(db).CreateProposition(actor, pot.Slug, CreatePropositionInput{
		Name:             name,
		Description:      "blah blah",
		Price:            dec(price),
		MaxBeneficiaries: maxBeneficiaries,
	})
	require.NoError(t, err)
	return prop
}

// newOfferLogic builds offer logic at testToday with a fresh recorder.
func newOfferLogic(db *gorm.DB) (*OfferLogic, *recorderNotifier) {
	recorder := &recorderNotifier{}
	return NewOfferLogic(db, clock.Fixed(testToday), recorder), recorder
}
