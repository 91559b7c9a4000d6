package policy

import (
	"testing"
	"time"

	"github.com/blues/sps/internal/model"
	"github.com/stretchr/testify/assert"
)

func TestIsOfferable(t *testing.T) {
	deadline := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	before := deadline.AddDate(0, 0, -7)
	after := deadline.AddDate(0, 0, 1)
	pot := &model.Pot{PurchaseDeadline: deadline}

	tests := []struct {
		name     string
		max      int
		accepted int64
		today    time.Time
		want     bool
	}{
		{"open, capacity free", 2, 1, before, true},
		{"open, capacity full", 2, 2, before, false},
		{"unlimited", 0, 1000, before, true},
		{"past deadline beats unlimited", 0, 0, after, false},
		{"past deadline beats free capacity", 5, 0, after, false},
		{"deadline day itself is open", 1, 0, deadline, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prop := &model.Proposition{MaxBeneficiaries: tt.max}
			assert.Equal(t, tt.want, IsOfferable(prop, pot, tt.accepted, tt.today))
		})
	}
}

func TestIsOfferableCountsOnlyAccepted(t *testing.T) {
	// Pending and rejected offers are not passed in at all: the caller
	// counts accepted rows only. A cap of one with zero accepted stays
	// open no matter how many pending offers exist.
	pot := &model.Pot{PurchaseDeadline: time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)}
	prop := &model.Proposition{MaxBeneficiaries: 1}
	today := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)

	assert.True(t, IsOfferable(prop, pot, 0, today))
	assert.False(t, IsOfferable(prop, pot, 1, today))
}
