// Package policy holds the pure authorization and availability rules of the
// pot domain. Functions here never touch the database; the logic layer loads
// the records and asks.
package policy

import "github.com/blues/sps/internal/model"

// Action is a permission-checked operation.
type Action string

const (
	ActionCreatePot         Action = "create_pot"
	ActionDeletePot         Action = "delete_pot"
	ActionCreateProposition Action = "create_proposition"
	ActionDeleteProposition Action = "delete_proposition"
	ActionSubmitOffer       Action = "submit_offer"
	ActionDecideOffer       Action = "decide_offer" // accept or reject
	ActionViewOffer         Action = "view_offer"
	ActionMarkOfferPaid     Action = "mark_offer_paid"
	ActionCreateRequest     Action = "create_request"
	ActionDeleteRequest     Action = "delete_request"
)

// Target carries the ownership facts an authorization decision needs. Only
// the fields relevant to the action have to be filled in.
type Target struct {
	PotResponsibleID         int64
	PropositionResponsibleID int64
	RequesterID              int64
	OfferAccepted            bool
}

// Can reports whether actor may perform action on target. Anonymous actors
// are denied everything.
func Can(actor model.Actor, action Action, target Target) bool {
	if actor.Anonymous() {
		return false
	}

	switch action {
	case ActionCreatePot, ActionCreateProposition, ActionSubmitOffer, ActionCreateRequest:
		// Any authenticated user.
		return true

	case ActionDecideOffer, ActionViewOffer:
		return actor.Staff || actor.ID == target.PropositionResponsibleID

	case ActionMarkOfferPaid:
		// Pot responsible only, and only once the offer is accepted.
		return actor.ID == target.PotResponsibleID && target.OfferAccepted

	case ActionDeleteRequest:
		return actor.Staff || actor.ID == target.RequesterID

	case ActionDeletePot:
		return actor.Staff || actor.ID == target.PotResponsibleID

	case ActionDeleteProposition:
		return actor.Staff || actor.ID == target.PropositionResponsibleID

	default:
		return false
	}
}
