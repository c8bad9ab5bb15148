package models

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SiteSetting is one editable site text or contact value.
type SiteSetting struct {
	ID        uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	Key       string    `gorm:"size:100;not null;uniqueIndex" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	Type      string    `gorm:"size:20;default:'string'" json:"type"` // string, bool, int, json
	Version   int       `gorm:"not null;default:1" json:"version"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (s *SiteSetting) BeforeCreate(tx *gorm.DB) error {
	if s.ID == uuid.Nil {
		s.ID = uuid.New()
	}
	return nil
}

// Typed decodes Value according to Type. Malformed values decode to their zero value.
func (s *SiteSetting) Typed() interface{} {
	switch s.Type {
	case "bool":
		v, _ := strconv.ParseBool(s.Value)
		return v
	case "int":
		v, _ := strconv.Atoi(s.Value)
		return v
	case "json":
		var v interface{}
		_ = json.Unmarshal([]byte(s.Value), &v)
		return v
	default:
		return s.Value
	}
}
