package dto

import (
	"time"

	"github.com/buscaserv/buscaserv-api/internal/models"
)

// Catalog write requests. Version is required on update and ignored on create.

type CityRequest struct {
	Name    string `json:"name"`
	State   string `json:"state"`
	Active  *bool  `json:"active"`
	Version int    `json:"version"`
}

type CategoryRequest struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Active      *bool  `json:"active"`
	Version     int    `json:"version"`
}

type BannerRequest struct {
	CityID  uint    `json:"cityId"`
	Title   string  `json:"title"`
	Image   string  `json:"image"`
	Link    *string `json:"link"`
	Active  *bool   `json:"active"`
	Version int     `json:"version"`
}

type AdvertisementRequest struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Company     string            `json:"company"`
	ImageURL    string            `json:"imageUrl"`
	LinkURL     string            `json:"linkUrl"`
	CityID      *uint             `json:"cityId"`
	Position    models.AdPosition `json:"position"`
	StartDate   *Date             `json:"startDate"`
	EndDate     *Date             `json:"endDate"`
	Active      *bool             `json:"active"`
	Version     int               `json:"version"`
}

type SettingRequest struct {
	Value   string `json:"value"`
	Type    string `json:"type"`
	Version *int   `json:"version"`
}

type SettingResponse struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Type      string    `json:"type"`
	Version   int       `json:"version"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ContactRequest struct {
	Name    string  `json:"name"`
	Email   string  `json:"email"`
	Phone   *string `json:"phone"`
	Subject string  `json:"subject"`
	Message string  `json:"message"`
}

type ContactResponse struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}
