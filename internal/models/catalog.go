package models

import "time"

// CatalogEntry is the shared header of admin-curated rows. Version increases
// by one on every update and is compared on write.
type CatalogEntry struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Version   int       `gorm:"not null;default:1" json:"version"`
	Active    bool      `gorm:"not null;index" json:"active"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (e *CatalogEntry) Entry() *CatalogEntry { return e }

// City controls visibility in location pickers.
type City struct {
	CatalogEntry
	Name  string `gorm:"size:120;not null;uniqueIndex:idx_cities_name_state,priority:1" json:"name"`
	State string `gorm:"size:2;not null;uniqueIndex:idx_cities_name_state,priority:2" json:"state"`
}

// ServiceCategory is an activity category ("ramo").
type ServiceCategory struct {
	CatalogEntry
	Name        string `gorm:"size:120;not null" json:"name"`
	Slug        string `gorm:"size:120;not null;uniqueIndex" json:"slug"`
	Description string `gorm:"type:text" json:"description"`
	Icon        string `gorm:"size:50" json:"icon"`
}

type Banner struct {
	CatalogEntry
	CityID uint    `gorm:"not null;index" json:"cityId"`
	Title  string  `gorm:"size:255;not null" json:"title"`
	Image  string  `gorm:"size:1024;not null" json:"image"`
	Link   *string `gorm:"size:1024" json:"link"`
}

type AdPosition string

const (
	AdPositionBanner  AdPosition = "BANNER"
	AdPositionSidebar AdPosition = "SIDEBAR"
)

// Advertisement ("propaganda") shown between StartDate and EndDate.
// A nil CityID means every city.
type Advertisement struct {
	CatalogEntry
	Title       string     `gorm:"size:255;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	Company     string     `gorm:"size:255" json:"company"`
	ImageURL    string     `gorm:"size:1024" json:"imageUrl"`
	LinkURL     string     `gorm:"size:1024" json:"linkUrl"`
	CityID      *uint      `gorm:"index" json:"cityId"`
	Position    AdPosition `gorm:"size:20;not null" json:"position"`
	StartDate   time.Time  `gorm:"not null" json:"startDate"`
	EndDate     time.Time  `gorm:"not null" json:"endDate"`
	Clicks      int        `gorm:"not null;default:0" json:"clicks"`
	Views       int        `gorm:"not null;default:0" json:"views"`
}

// Runs reports whether the ad is active and inside its window at t.
func (a *Advertisement) Runs(t time.Time) bool {
	return a.Active && !t.Before(a.StartDate) && t.Before(a.EndDate)
}
