package model

import "time"

// Request is a free-text wish expressed against a Pot, independent of the
// offer lifecycle.
type Request struct {
	Id        int64     `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time `json:"created_at"`

	PotID int64 `json:"pot_id" gorm:"not null;index"`

	RequesterID   int64  `json:"requester_id" gorm:"not null;index"`
	RequesterName string `json:"requester_name"`

	Description string `json:"description" gorm:"size:250;not null" binding:"required"`
}

// TableName overrides the table name.
func (Request) TableName() string {
	return "request"
}
