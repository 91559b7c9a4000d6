package logic

import (
	"testing"

	"github.com/blues/sps/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSumsCountOnlyAcceptedOffers(t *testing.T) {
	db := newTestDB(t)
	offerLogic, _ := newOfferLogic(db)
	statsLogic := NewStatsLogic(db)
	pot := createPot(t, db, alice, "First Pot", "42")
	prop := createProposition(t, db, bob, pot, "Cake", "10", 0)

	sum, err := statsLogic.SumValidated(pot.Id)
	require.NoError(t, err)
	assert.True(t, sum.IsZero(), "no offers yields 0, not an error")

	pending, err := offerLogic.SubmitOffer(carol, prop.Slug, SubmitOfferInput{Price: dec("10")})
	require.NoError(t, err)
	toReject, err := offerLogic.SubmitOffer(dave, prop.Slug, SubmitOfferInput{Price: dec("15")})
	require.NoError(t, err)
	_, err = offerLogic.Reject(bob, toReject.Id)
	require.NoError(t, err)

	sum, err = statsLogic.SumValidated(pot.Id)
	require.NoError(t, err)
	assert.True(t, sum.IsZero(), "pending and rejected offers never count")

	_, err = offerLogic.Accept(bob, pending.Id)
	require.NoError(t, err)

	sum, err = statsLogic.SumValidated(pot.Id)
	require.NoError(t, err)
	assert.True(t, sum.Equal(dec("10")), "accepting adds exactly the offer's price, got %s", sum)

	collected, err := statsLogic.SumCollected(pot.Id)
	require.NoError(t, err)
	assert.True(t, collected.IsZero(), "accepted but unpaid is not collected")

	_, err = offerLogic.MarkPaid(alice, pending.Id)
	require.NoError(t, err)

	collected, err = statsLogic.SumCollected(pot.Id)
	require.NoError(t, err)
	assert.True(t, collected.Equal(dec("10")))
}

func TestSumsAreScopedToThePot(t *testing.T) {
	db := newTestDB(t)
	offerLogic, _ := newOfferLogic(db)
	statsLogic := NewStatsLogic(db)

	pot := createPot(t, db, alice, "First Pot", "42")
	prop := createProposition(t, db, bob, pot, "Cake", "10", 0)
	other := createPot(t, db, alice, "Second Pot", "42")
	otherProp := createProposition(t, db, bob, other, "Ride", "10", 0)

	offer, err := offerLogic.SubmitOffer(carol, prop.Slug, SubmitOfferInput{Price: dec("10")})
	require.NoError(t, err)
	_, err = offerLogic.Accept(bob, offer.Id)
	require.NoError(t, err)

	stranger, err := offerLogic.SubmitOffer(dave, otherProp.Slug, SubmitOfferInput{Price: dec("30")})
	require.NoError(t, err)
	_, err = offerLogic.Accept(bob, stranger.Id)
	require.NoError(t, err)

	sum, err := statsLogic.SumValidated(pot.Id)
	require.NoError(t, err)
	assert.True(t, sum.Equal(dec("10")), "another pot's offers never leak in, got %s", sum)
}

func TestProgress(t *testing.T) {
	db := newTestDB(t)
	offerLogic, _ := newOfferLogic(db)
	statsLogic := NewStatsLogic(db)
	pot := createPot(t, db, alice, "First Pot", "42")
	prop := createProposition(t, db, bob, pot, "Cake", "21", 0)

	// Two accepted offers each worth half the target.
	for _, actor := range []model.Actor{carol, dave} {
		offer, err := offerLogic.SubmitOffer(actor, prop.Slug, SubmitOfferInput{Price: dec("21")})
		require.NoError(t, err)
		_, err = offerLogic.Accept(bob, offer.Id)
		require.NoError(t, err)
	}

	progress, err := statsLogic.Progress(pot)
	require.NoError(t, err)
	assert.Equal(t, 100, progress)

	// Recomputed fresh on every call.
	again, err := statsLogic.Progress(pot)
	require.NoError(t, err)
	assert.Equal(t, progress, again)
}

func TestProgressZeroTarget(t *testing.T) {
	db := newTestDB(t)
	statsLogic := NewStatsLogic(db)
	pot := createPot(t, db, alice, "Zero Pot", "0")

	progress, err := statsLogic.Progress(pot)
	require.NoError(t, err)
	assert.Equal(t, 0, progress, "zero target reports 0%% instead of dividing")
}

func TestOfferCounts(t *testing.T) {
	db := newTestDB(t)
	offerLogic, _ := newOfferLogic(db)
	statsLogic := NewStatsLogic(db)
	pot := createPot(t, db, alice, "First Pot", "42")
	prop := createProposition(t, db, bob, pot, "Cake", "10", 0)

	a, err := offerLogic.SubmitOffer(carol, prop.Slug, SubmitOfferInput{Price: dec("10")})
	require.NoError(t, err)
	b, err := offerLogic.SubmitOffer(dave, prop.Slug, SubmitOfferInput{Price: dec("10")})
	require.NoError(t, err)
	_, err = offerLogic.SubmitOffer(sam, prop.Slug, SubmitOfferInput{Price: dec("10")})
	require.NoError(t, err)

	_, err = offerLogic.Accept(bob, a.Id)
	require.NoError(t, err)
	_, err = offerLogic.Accept(bob, b.Id)
	require.NoError(t, err)
	_, err = offerLogic.MarkPaid(alice, a.Id)
	require.NoError(t, err)

	total, accepted, paid, err := statsLogic.OfferCounts(prop.Id)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.EqualValues(t, 2, accepted)
	assert.EqualValues(t, 1, paid)
}

func TestPotStats(t *testing.T) {
	db := newTestDB(t)
	offerLogic, _ := newOfferLogic(db)
	statsLogic := NewStatsLogic(db)
	pot := createPot(t, db, alice, "First Pot", "42")
	prop := createProposition(t, db, bob, pot, "Cake", "10", 0)

	offer, err := offerLogic.SubmitOffer(carol, prop.Slug, SubmitOfferInput{Price: dec("21")})
	require.NoError(t, err)
	_, err = offerLogic.Accept(bob, offer.Id)
	require.NoError(t, err)

	stats, err := statsLogic.PotStats(pot)
	require.NoError(t, err)
	assert.Equal(t, pot.Id, stats["pot_id"])
	assert.Equal(t, 50, stats["progress"])
	assert.EqualValues(t, 1, stats["propositions"])
}
