package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Address is the user's stored shipping/billing address.
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
	Country string `json:"country,omitempty"`
}

// Preferences holds opt-in communication flags.
type Preferences struct {
	Newsletter    bool `json:"newsletter"`
	Notifications bool `json:"notifications"`
}

// User is a storefront account. Password holds the bcrypt hash and is empty
// for accounts created through an external provider. Users are soft-deleted,
// never removed.
type User struct {
	ID          uuid.UUID                       `gorm:"type:uuid;primaryKey" json:"id"`
	Name        string                          `gorm:"size:255;not null" json:"name"`
	Email       string                          `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Password    string                          `gorm:"size:255" json:"-"`
	Image       *string                         `gorm:"size:500" json:"image,omitempty"`
	Role        string                          `gorm:"size:20;default:'user'" json:"role"`
	Provider    string                          `gorm:"size:50;default:'credentials'" json:"-"`
	Phone       string                          `gorm:"size:50" json:"phone,omitempty"`
	DateOfBirth *time.Time                      `json:"dateOfBirth,omitempty"`
	Address     datatypes.JSONType[Address]     `json:"address"`
	Preferences datatypes.JSONType[Preferences] `json:"preferences"`
	CreatedAt   time.Time                       `json:"createdAt"`
	UpdatedAt   time.Time                       `json:"updatedAt"`
	DeletedAt   gorm.DeletedAt                  `gorm:"index" json:"-"`
}

func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
