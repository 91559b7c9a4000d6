package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Offer is a beneficiary's bid on a Proposition.
type Offer struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Owning proposition, immutable after creation.
	PropositionID int64 `json:"proposition_id" gorm:"not null;index"`

	// Beneficiary user, immutable after creation.
	BeneficiaryID    int64  `json:"beneficiary_id" gorm:"not null;index"`
	BeneficiaryName  string `json:"beneficiary_name"`
	BeneficiaryEmail string `json:"beneficiary_email"`

	// Validation status, decided once by the proposition's responsible.
	Status OfferStatus `json:"status" gorm:"default:'pending'"`

	// Paid goes false to true exactly once, set by the pot's responsible.
	Paid bool `json:"paid" gorm:"default:false"`

	Remarks string `json:"remarks" gorm:"type:text"`

	// Stored independently of the proposition price: the floor can move
	// after the offer exists.
	Price decimal.Decimal `json:"price" gorm:"type:decimal(8,2);not null"`
}

// OfferStatus is the tri-state validation status of an Offer.
type OfferStatus string

const (
	OfferPending  OfferStatus = "pending"  // not yet decided
	OfferAccepted OfferStatus = "accepted" // accepted by the proposition's responsible
	OfferRejected OfferStatus = "rejected" // rejected, final
)

// TableName overrides the table name.
func (Offer) TableName() string {
	return "offer"
}
