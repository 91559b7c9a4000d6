package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Pot is a solidarity crowdfunding campaign.
type Pot struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Identity
	Name string `json:"name" gorm:"uniqueIndex;not null" binding:"required"`
	Slug string `json:"slug" gorm:"uniqueIndex;not null"`

	// Responsible user
	ResponsibleID    int64  `json:"responsible_id" gorm:"not null;index"`
	ResponsibleName  string `json:"responsible_name"`
	ResponsibleEmail string `json:"responsible_email"`

	// Goal
	Objective    string          `json:"objective" gorm:"type:text"`
	TargetAmount decimal.Decimal `json:"target_amount" gorm:"type:decimal(8,2);not null"`

	// Deadlines, dates at midnight. PurchaseDeadline closes offer
	// submission; DepositDeadline is the advertised end of the proposition
	// deposit period, shown to users but not enforced.
	DepositDeadline  time.Time `json:"deposit_deadline" gorm:"not null"`
	PurchaseDeadline time.Time `json:"purchase_deadline" gorm:"not null"`

	ImageURL string `json:"image_url"`

	// Set once the closing job has mailed the final summary.
	ClosedNotified bool `json:"-" gorm:"default:false"`
}

// TableName overrides the table name.
func (Pot) TableName() string {
	return "pot"
}
