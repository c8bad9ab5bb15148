package services

import (
	"testing"
	"time"

	"github.com/buscaserv/buscaserv-api/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func record(serviceType, value string, performed time.Time) models.ClientRecord {
	return models.ClientRecord{
		ServiceType:   serviceType,
		Value:         decimal.RequireFromString(value),
		DatePerformed: performed,
	}
}

func TestAggregate_Empty(t *testing.T) {
	stats := Aggregate(nil, time.Now())

	assert.Equal(t, 0, stats.TotalClients)
	assert.True(t, stats.TotalRevenue.IsZero())
	assert.True(t, stats.AverageServiceValue.IsZero())
	assert.Empty(t, stats.ServiceTypes)
	assert.NotNil(t, stats.MonthlyRevenue)
	assert.NotNil(t, stats.MonthlyClients)
}

func TestAggregate_TotalsAndAverage(t *testing.T) {
	now := time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)
	records := []models.ClientRecord{
		record("Pintura", "100.00", now),
		record("Pintura", "0.10", now),
		record("Elétrica", "0.20", now),
	}

	stats := Aggregate(records, now)

	assert.Equal(t, 3, stats.TotalClients)
	assert.Equal(t, "100.3", stats.TotalRevenue.String())
	assert.Equal(t, "33.43", stats.AverageServiceValue.String())
	assert.Equal(t, map[string]int{"Pintura": 2, "Elétrica": 1}, stats.ServiceTypes)
}

func TestAggregate_LabelsNotNormalized(t *testing.T) {
	now := time.Now()
	stats := Aggregate([]models.ClientRecord{
		record("pintura", "1", now),
		record("Pintura", "1", now),
		record("Pintura ", "1", now),
	}, now)

	assert.Len(t, stats.ServiceTypes, 3)
}

func TestAggregate_SixMonthWindow(t *testing.T) {
	now := time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)
	records := []models.ClientRecord{
		record("A", "10", now),
		record("A", "20", time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)),
		record("A", "30", time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)),
		// exactly six calendar months back is inside the window
		record("A", "40", time.Date(2026, 1, 15, 12, 0, 0, 0, time.UTC)),
		// just before the window
		record("A", "50", time.Date(2026, 1, 15, 11, 59, 59, 0, time.UTC)),
		record("A", "60", time.Date(2025, 7, 15, 0, 0, 0, 0, time.UTC)),
	}

	stats := Aggregate(records, now)

	assert.Equal(t, 6, stats.TotalClients)
	assert.Equal(t, "210", stats.TotalRevenue.String())

	assert.Equal(t, map[string]int{"2026-07": 2, "2026-03": 1, "2026-01": 1}, stats.MonthlyClients)
	assert.Equal(t, "30", stats.MonthlyRevenue["2026-07"].String())
	assert.Equal(t, "30", stats.MonthlyRevenue["2026-03"].String())
	assert.Equal(t, "40", stats.MonthlyRevenue["2026-01"].String())
	_, old := stats.MonthlyRevenue["2025-07"]
	assert.False(t, old)
}

func TestAggregate_MonthKeysAreUTC(t *testing.T) {
	now := time.Date(2026, 7, 15, 12, 0, 0, 0, time.UTC)
	saoPaulo := time.FixedZone("BRT", -3*3600)
	// 22:00 on June 30 in BRT is July 1 in UTC
	performed := time.Date(2026, 6, 30, 22, 0, 0, 0, saoPaulo)

	stats := Aggregate([]models.ClientRecord{record("A", "5", performed)}, now)

	assert.Equal(t, map[string]int{"2026-07": 1}, stats.MonthlyClients)
}
