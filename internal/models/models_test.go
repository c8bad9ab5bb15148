package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClientRecord_ValueMarshalsAsNumber(t *testing.T) {
	rec := ClientRecord{ClientName: "Ana Lima", Value: decimal.RequireFromString("450.00")}

	b, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Contains(t, string(b), `"value":450`)
	assert.NotContains(t, string(b), `"value":"450`)
}

func TestSiteSetting_Typed(t *testing.T) {
	cases := []struct {
		setting SiteSetting
		want    interface{}
	}{
		{SiteSetting{Type: "string", Value: "BuscaServ"}, "BuscaServ"},
		{SiteSetting{Type: "bool", Value: "true"}, true},
		{SiteSetting{Type: "int", Value: "42"}, 42},
		{SiteSetting{Type: "int", Value: "not-a-number"}, 0},
		{SiteSetting{Type: "json", Value: `["SP","RJ"]`}, []interface{}{"SP", "RJ"}},
		{SiteSetting{Value: "untyped"}, "untyped"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, tc.setting.Typed(), "type=%s value=%s", tc.setting.Type, tc.setting.Value)
	}
}

func TestAdvertisement_Runs(t *testing.T) {
	start := time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)
	ad := Advertisement{
		CatalogEntry: CatalogEntry{Active: true},
		StartDate:    start,
		EndDate:      start.AddDate(0, 0, 30),
	}

	assert.False(t, ad.Runs(start.Add(-time.Second)))
	assert.True(t, ad.Runs(start))
	assert.True(t, ad.Runs(start.AddDate(0, 0, 29)))
	assert.False(t, ad.Runs(start.AddDate(0, 0, 30)))

	ad.Active = false
	assert.False(t, ad.Runs(start.AddDate(0, 0, 1)))
}
