package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/buscaserv/buscaserv-api/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

func TestClientRecord_CreateRequiresFields(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pid := uuid.New()

	_, err := f.records.Create(ctx, pid, &dto.CreateClientRecordRequest{})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Message, "clientName")
	assert.Contains(t, verr.Message, "serviceType")
	assert.Contains(t, verr.Message, "value")

	_, err = f.records.Create(ctx, pid, &dto.CreateClientRecordRequest{ClientName: "A", ServiceType: "B", Value: dec("0")})
	require.ErrorAs(t, err, &verr)

	_, err = f.records.Create(ctx, pid, &dto.CreateClientRecordRequest{ClientName: "A", ServiceType: "B", Value: dec("-10")})
	require.ErrorAs(t, err, &verr)

	_, err = f.records.Create(ctx, pid, &dto.CreateClientRecordRequest{
		ClientName: "A", ServiceType: "B", Value: dec("10"), ClientEmail: strPtr("not-an-email"),
	})
	require.ErrorAs(t, err, &verr)
}

func TestClientRecord_AnaLimaScenario(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pid := uuid.New()

	rec, err := f.records.Create(ctx, pid, &dto.CreateClientRecordRequest{
		ClientName:  "Ana Lima",
		ServiceType: "Pintura",
		Value:       dec("450.00"),
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, rec.ID)
	assert.Equal(t, time.Now().UTC().Format("2006-01-02"), rec.DatePerformed.UTC().Format("2006-01-02"))
	assert.True(t, rec.Value.Equal(decimal.NewFromInt(450)))

	list, err := f.records.List(ctx, pid)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Ana Lima", list[0].ClientName)
	assert.Nil(t, list[0].ClientEmail)

	stats, err := f.dashboard.Compute(ctx, pid)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.TotalClients)
	assert.True(t, stats.TotalRevenue.Equal(decimal.NewFromInt(450)))
	assert.True(t, stats.AverageServiceValue.Equal(decimal.NewFromInt(450)))
	assert.Equal(t, map[string]int{"Pintura": 1}, stats.ServiceTypes)
}

func TestClientRecord_ExplicitDateKept(t *testing.T) {
	f := newFixture(t)
	when := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)

	rec, err := f.records.Create(context.Background(), uuid.New(), &dto.CreateClientRecordRequest{
		ClientName: "Bruno", ServiceType: "Elétrica", Value: dec("120.5"),
		DatePerformed: &dto.Date{Time: when},
	})
	require.NoError(t, err)
	assert.True(t, rec.DatePerformed.Equal(when))
}

func TestClientRecord_BlankDateMeansOmitted(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pid := uuid.New()

	var create dto.CreateClientRecordRequest
	require.NoError(t, json.Unmarshal([]byte(
		`{"clientName":"Ana Lima","serviceType":"Pintura","value":"450.00","datePerformed":""}`), &create))
	rec, err := f.records.Create(ctx, pid, &create)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now(), rec.DatePerformed, time.Minute)

	var update dto.UpdateClientRecordRequest
	require.NoError(t, json.Unmarshal([]byte(`{"value":"500","datePerformed":""}`), &update))
	updated, err := f.records.Update(ctx, pid, rec.ID, &update)
	require.NoError(t, err)
	assert.True(t, updated.DatePerformed.Equal(rec.DatePerformed))
	assert.True(t, updated.Value.Equal(decimal.NewFromInt(500)))
}

func TestClientRecord_ValueUpperBound(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pid := uuid.New()
	var verr *ValidationError

	rec, err := f.records.Create(ctx, pid, &dto.CreateClientRecordRequest{
		ClientName: "Ana", ServiceType: "Obra", Value: dec("9999999999.99"),
	})
	require.NoError(t, err)

	for _, v := range []string{"10000000000", "9999999999.999", "1e12"} {
		_, err = f.records.Create(ctx, pid, &dto.CreateClientRecordRequest{ClientName: "Ana", ServiceType: "Obra", Value: dec(v)})
		assert.ErrorAs(t, err, &verr, v)
	}
	_, err = f.records.Update(ctx, pid, rec.ID, &dto.UpdateClientRecordRequest{Value: dec("10000000000")})
	assert.ErrorAs(t, err, &verr)
}

func TestClientRecord_ListNewestFirst(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pid := uuid.New()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	for i, name := range []string{"old", "new", "mid"} {
		offsets := []int{0, 20, 10}
		_, err := f.records.Create(ctx, pid, &dto.CreateClientRecordRequest{
			ClientName: name, ServiceType: "X", Value: dec("1"),
			DatePerformed: &dto.Date{Time: base.AddDate(0, 0, offsets[i])},
		})
		require.NoError(t, err)
	}

	list, err := f.records.List(ctx, pid)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "new", list[0].ClientName)
	assert.Equal(t, "mid", list[1].ClientName)
	assert.Equal(t, "old", list[2].ClientName)
}

func TestClientRecord_ListEmptyIsNotNil(t *testing.T) {
	f := newFixture(t)
	list, err := f.records.List(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestClientRecord_PartialUpdate(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pid := uuid.New()

	rec, err := f.records.Create(ctx, pid, &dto.CreateClientRecordRequest{
		ClientName: "Carla", ServiceType: "Hidráulica", Value: dec("300"),
		ClientEmail: strPtr("carla@example.com"), ClientPhone: strPtr("11 98888-7777"),
	})
	require.NoError(t, err)

	updated, err := f.records.Update(ctx, pid, rec.ID, &dto.UpdateClientRecordRequest{Value: dec("500")})
	require.NoError(t, err)
	assert.True(t, updated.Value.Equal(decimal.NewFromInt(500)))
	assert.Equal(t, "Carla", updated.ClientName)
	assert.Equal(t, "Hidráulica", updated.ServiceType)
	assert.Equal(t, "carla@example.com", *updated.ClientEmail)
	assert.Equal(t, "11 98888-7777", *updated.ClientPhone)
	assert.True(t, updated.DatePerformed.Equal(rec.DatePerformed))

	// blank name is ignored, blank phone clears
	updated, err = f.records.Update(ctx, pid, rec.ID, &dto.UpdateClientRecordRequest{
		ClientName: strPtr(""), ClientPhone: strPtr(""),
	})
	require.NoError(t, err)
	assert.Equal(t, "Carla", updated.ClientName)
	assert.Nil(t, updated.ClientPhone)
	assert.NotNil(t, updated.ClientEmail)

	_, err = f.records.Update(ctx, pid, rec.ID, &dto.UpdateClientRecordRequest{Value: dec("0")})
	var verr *ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestClientRecord_OwnershipIsolation(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	p1, p2 := uuid.New(), uuid.New()

	rec, err := f.records.Create(ctx, p1, &dto.CreateClientRecordRequest{
		ClientName: "Daniel", ServiceType: "Alvenaria", Value: dec("1000"),
	})
	require.NoError(t, err)

	_, err = f.records.Update(ctx, p2, rec.ID, &dto.UpdateClientRecordRequest{ClientName: strPtr("hijacked")})
	assert.ErrorIs(t, err, ErrRecordNotFound)

	err = f.records.Delete(ctx, p2, rec.ID)
	assert.ErrorIs(t, err, ErrRecordNotFound)

	list, err := f.records.List(ctx, p1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "Daniel", list[0].ClientName)

	others, err := f.records.List(ctx, p2)
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestClientRecord_Delete(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	pid := uuid.New()

	rec, err := f.records.Create(ctx, pid, &dto.CreateClientRecordRequest{
		ClientName: "Eva", ServiceType: "Pintura", Value: dec("80"),
	})
	require.NoError(t, err)

	require.NoError(t, f.records.Delete(ctx, pid, rec.ID))
	assert.ErrorIs(t, f.records.Delete(ctx, pid, rec.ID), ErrRecordNotFound)

	list, _ := f.records.List(ctx, pid)
	assert.Empty(t, list)
}

func TestClientRecord_SanitizesText(t *testing.T) {
	f := newFixture(t)
	rec, err := f.records.Create(context.Background(), uuid.New(), &dto.CreateClientRecordRequest{
		ClientName: "<b>Fábio</b>", ServiceType: "<script>x</script>Pintura", Value: dec("10"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Fábio", rec.ClientName)
	assert.Equal(t, "Pintura", rec.ServiceType)
}
