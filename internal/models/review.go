package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Review is a user's rating and comment for one product. HelpfulCount always
// equals the number of ids in HelpfulUsers; a user appears at most once.
type Review struct {
	ID           uuid.UUID                      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID                      `gorm:"type:uuid;not null;index" json:"userId"`
	ProductID    uuid.UUID                      `gorm:"type:uuid;not null;index" json:"productId"`
	Rating       int                            `gorm:"not null" json:"rating"`
	Title        string                         `gorm:"size:255" json:"title"`
	Comment      string                         `gorm:"type:text;not null" json:"comment"`
	Verified     bool                           `gorm:"default:false" json:"verified"`
	HelpfulCount int                            `gorm:"default:0" json:"helpfulCount"`
	HelpfulUsers datatypes.JSONSlice[uuid.UUID] `json:"-"`
	CreatedAt    time.Time                      `gorm:"index" json:"createdAt"`
	UpdatedAt    time.Time                      `json:"updatedAt"`
}

func (r *Review) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
