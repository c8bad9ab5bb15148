package dto

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/buscaserv/buscaserv-api/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDate_UnmarshalJSON(t *testing.T) {
	cases := map[string]time.Time{
		`"2026-03-15"`:                time.Date(2026, 3, 15, 0, 0, 0, 0, time.UTC),
		`"2026-03-15T14:30"`:          time.Date(2026, 3, 15, 14, 30, 0, 0, time.UTC),
		`"2026-03-15T14:30:00-03:00"`: time.Date(2026, 3, 15, 17, 30, 0, 0, time.UTC),
	}
	for in, want := range cases {
		var d Date
		require.NoError(t, json.Unmarshal([]byte(in), &d), in)
		assert.True(t, want.Equal(d.Time), in)
		assert.Equal(t, time.UTC, d.Location(), in)
	}
}

func TestDate_Rejects(t *testing.T) {
	var d Date
	assert.Error(t, json.Unmarshal([]byte(`"15/03/2026"`), &d))
	assert.Error(t, json.Unmarshal([]byte(`20260315`), &d))
}

func TestCreateClientRecordRequest_NullDate(t *testing.T) {
	var req CreateClientRecordRequest
	require.NoError(t, json.Unmarshal([]byte(`{"clientName":"Ana","value":"120.00","datePerformed":null}`), &req))
	assert.Nil(t, req.DatePerformed)
	require.NotNil(t, req.Value)
	assert.Equal(t, "120", req.Value.String())
}

func TestCreateClientRecordRequest_BlankDate(t *testing.T) {
	for _, raw := range []string{`""`, `"   "`} {
		var req CreateClientRecordRequest
		body := `{"clientName":"Ana Lima","serviceType":"Pintura","value":"450.00","datePerformed":` + raw + `}`
		require.NoError(t, json.Unmarshal([]byte(body), &req), raw)
		require.NotNil(t, req.DatePerformed, raw)
		assert.True(t, req.DatePerformed.IsZero(), raw)
	}
}

func TestNewProviderListing_EmptyAreas(t *testing.T) {
	listing := NewProviderListing(&models.ServiceProvider{Description: "Pintura"})
	b, err := json.Marshal(listing)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"serviceAreas":[]`)
	assert.NotContains(t, string(b), `"user"`)
}
