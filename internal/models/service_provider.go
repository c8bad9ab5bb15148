package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// ServiceProvider is the provider profile of exactly one User.
// Profiles are never hard-deleted; IsActive=false hides them.
type ServiceProvider struct {
	ID                uuid.UUID                   `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	UserID            uuid.UUID                   `gorm:"type:uuid;not null;uniqueIndex" json:"userId"`
	CategoryID        uint                        `gorm:"not null;index" json:"categoryId"`
	BusinessName      *string                     `gorm:"size:255" json:"businessName"`
	Description       string                      `gorm:"type:text;not null" json:"description"`
	Experience        *string                     `gorm:"size:255" json:"experience"`
	Certifications    *string                     `gorm:"type:text" json:"certifications"`
	WorkingHours      *string                     `gorm:"size:255" json:"workingHours"`
	ServiceAreas      datatypes.JSONSlice[string] `gorm:"type:jsonb;not null;default:'[]'" json:"serviceAreas"`
	PriceRange        *string                     `gorm:"size:120" json:"priceRange"`
	IsVerified        bool                        `gorm:"not null;default:false" json:"isVerified"`
	IsActive          bool                        `gorm:"not null;default:true;index" json:"isActive"`
	HasPendingPayment bool                        `gorm:"not null;default:false" json:"hasPendingPayment"`
	AvgRating         float64                     `gorm:"not null;default:0;index" json:"avgRating"`
	TotalReviews      int                         `gorm:"not null;default:0" json:"totalReviews"`
	CreatedAt         time.Time                   `json:"createdAt"`
	UpdatedAt         time.Time                   `json:"updatedAt"`
	User              *User                       `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Category          *ServiceCategory            `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
}

// Review is a rating left on a provider. Maintained outside this service;
// AvgRating and TotalReviews on ServiceProvider are its aggregates.
type Review struct {
	ID                uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ServiceProviderID uuid.UUID `gorm:"type:uuid;not null;index" json:"serviceProviderId"`
	UserID            uuid.UUID `gorm:"type:uuid;not null;index" json:"userId"`
	Rating            int       `gorm:"not null;check:rating >= 1 AND rating <= 5" json:"rating"`
	Comment           string    `gorm:"type:text" json:"comment"`
	CreatedAt         time.Time `json:"createdAt"`
	User              *User     `gorm:"foreignKey:UserID" json:"user,omitempty"`
}
