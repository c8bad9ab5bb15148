package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Role string

const (
	RoleClient          Role = "CLIENT"
	RoleServiceProvider Role = "SERVICE_PROVIDER"
	RoleAdmin           Role = "ADMIN"
)

// User is an account of any kind. A provider is a user that owns a ServiceProvider.
type User struct {
	ID        uuid.UUID      `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Email     string         `gorm:"not null;size:255;uniqueIndex" json:"email"`
	Password  string         `gorm:"not null" json:"-"`
	Name      string         `gorm:"size:255" json:"name"`
	Phone     string         `gorm:"size:50" json:"phone,omitempty"`
	City      string         `gorm:"size:120;index" json:"city,omitempty"`
	Role      Role           `gorm:"size:20;not null;default:'CLIENT'" json:"role"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}
