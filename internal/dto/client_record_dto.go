package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Date accepts RFC 3339 timestamps and plain YYYY-MM-DD dates (midnight UTC).
// null and blank strings leave it zero.
type Date struct {
	time.Time
}

func (d *Date) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02T15:04", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			d.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("invalid date %q", s)
}

type CreateClientRecordRequest struct {
	ClientName    string           `json:"clientName"`
	ClientEmail   *string          `json:"clientEmail"`
	ClientPhone   *string          `json:"clientPhone"`
	ServiceType   string           `json:"serviceType"`
	Value         *decimal.Decimal `json:"value"`
	DatePerformed *Date            `json:"datePerformed"`
}

// UpdateClientRecordRequest is a partial update; nil fields are left untouched.
type UpdateClientRecordRequest struct {
	ClientName    *string          `json:"clientName"`
	ClientEmail   *string          `json:"clientEmail"`
	ClientPhone   *string          `json:"clientPhone"`
	ServiceType   *string          `json:"serviceType"`
	Value         *decimal.Decimal `json:"value"`
	DatePerformed *Date            `json:"datePerformed"`
}

type DashboardStats struct {
	TotalClients        int                        `json:"totalClients"`
	TotalRevenue        decimal.Decimal            `json:"totalRevenue"`
	ServiceTypes        map[string]int             `json:"serviceTypes"`
	MonthlyRevenue      map[string]decimal.Decimal `json:"monthlyRevenue"`
	MonthlyClients      map[string]int             `json:"monthlyClients"`
	AverageServiceValue decimal.Decimal            `json:"averageServiceValue"`
}
