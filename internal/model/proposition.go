package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Proposition is a purchasable item or service published against a Pot.
type Proposition struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Identity
	Name string `json:"name" gorm:"uniqueIndex;not null" binding:"required"`
	Slug string `json:"slug" gorm:"uniqueIndex;not null"`

	// Owning pot, immutable after creation.
	PotID int64 `json:"pot_id" gorm:"not null;index"`

	// Responsible user
	ResponsibleID    int64  `json:"responsible_id" gorm:"not null;index"`
	ResponsibleName  string `json:"responsible_name"`
	ResponsibleEmail string `json:"responsible_email"`

	Description string          `json:"description" gorm:"type:text"`
	Price       decimal.Decimal `json:"price" gorm:"type:decimal(8,2);not null"`

	// 0 means unlimited. No column default: gorm would silently swap the
	// zero value for it on insert.
	MaxBeneficiaries int `json:"max_beneficiaries"`

	ImageURL string `json:"image_url"`
}

// TableName overrides the table name.
func (Proposition) TableName() string {
	return "proposition"
}

// Unlimited reports whether this proposition has no beneficiary cap.
func (p *Proposition) Unlimited() bool {
	return p.MaxBeneficiaries == 0
}
