package services

import (
	"context"
	"fmt"
	"time"

	"github.com/buscaserv/buscaserv-api/internal/dto"
	"github.com/buscaserv/buscaserv-api/internal/models"
	"github.com/buscaserv/buscaserv-api/internal/repository"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// trendMonths is how far back the monthly maps reach.
const trendMonths = 6

type DashboardService struct {
	records repository.ClientRecordRepository
	now     func() time.Time
}

func NewDashboardService(records repository.ClientRecordRepository) *DashboardService {
	return &DashboardService{records: records, now: time.Now}
}

// Compute aggregates every record of the provider. Nothing is cached.
func (s *DashboardService) Compute(ctx context.Context, providerID uuid.UUID) (*dto.DashboardStats, error) {
	records, err := s.records.ListByProvider(ctx, providerID)
	if err != nil {
		return nil, fmt.Errorf("failed to load client records: %w", err)
	}
	stats := Aggregate(records, s.now())
	return &stats, nil
}

// Aggregate computes dashboard totals at instant now. Service type labels are
// counted as stored. Monthly buckets are keyed by UTC "YYYY-MM" and include
// records performed on or after now minus six calendar months.
// AverageServiceValue is TotalRevenue/TotalClients rounded half away from
// zero to 2 decimal places.
func Aggregate(records []models.ClientRecord, now time.Time) dto.DashboardStats {
	stats := dto.DashboardStats{
		TotalClients:   len(records),
		TotalRevenue:   decimal.Zero,
		ServiceTypes:   map[string]int{},
		MonthlyRevenue: map[string]decimal.Decimal{},
		MonthlyClients: map[string]int{},
	}

	since := now.AddDate(0, -trendMonths, 0)
	for _, r := range records {
		stats.TotalRevenue = stats.TotalRevenue.Add(r.Value)
		stats.ServiceTypes[r.ServiceType]++

		if r.DatePerformed.Before(since) {
			continue
		}
		month := r.DatePerformed.UTC().Format("2006-01")
		stats.MonthlyRevenue[month] = stats.MonthlyRevenue[month].Add(r.Value)
		stats.MonthlyClients[month]++
	}

	stats.AverageServiceValue = decimal.Zero
	if stats.TotalClients > 0 {
		stats.AverageServiceValue = stats.TotalRevenue.
			Div(decimal.NewFromInt(int64(stats.TotalClients))).
			Round(2)
	}
	return stats
}
