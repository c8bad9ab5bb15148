package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

func init() {
	// Money goes over the wire as a JSON number, like the dashboard totals.
	decimal.MarshalJSONWithoutQuotes = true
}

// ClientRecord is one serviced client of a provider. Rows are hard-deleted.
type ClientRecord struct {
	ID                uuid.UUID       `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	ServiceProviderID uuid.UUID       `gorm:"type:uuid;not null;index:idx_client_records_provider_date,priority:1" json:"serviceProviderId"`
	ClientName        string          `gorm:"size:255;not null" json:"clientName"`
	ClientEmail       *string         `gorm:"size:255" json:"clientEmail"`
	ClientPhone       *string         `gorm:"size:50" json:"clientPhone"`
	ServiceType       string          `gorm:"size:255;not null" json:"serviceType"`
	Value             decimal.Decimal `gorm:"type:numeric(12,2);not null" json:"value"`
	DatePerformed     time.Time       `gorm:"not null;index:idx_client_records_provider_date,priority:2,sort:desc" json:"datePerformed"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}

type ContactStatus string

const ContactStatusPending ContactStatus = "PENDING"

// ContactForm is an inquiry sent through the public contact page. Append-only.
type ContactForm struct {
	ID        uuid.UUID     `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Name      string        `gorm:"size:255;not null" json:"name"`
	Email     string        `gorm:"size:255;not null" json:"email"`
	Phone     *string       `gorm:"size:50" json:"phone"`
	Subject   string        `gorm:"size:255;not null" json:"subject"`
	Message   string        `gorm:"type:text;not null" json:"message"`
	Status    ContactStatus `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	CreatedAt time.Time     `json:"createdAt"`
}
