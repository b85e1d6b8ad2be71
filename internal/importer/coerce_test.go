package importer

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestParseMoney(t *testing.T) {
	tests := []struct {
		raw      string
		expected string
		ok       bool
	}{
		{"22.349,90", "22349.90", true},
		{"1.663,73", "1663.73", true},
		{"1.500,00", "1500.00", true},
		{"5000", "5000.00", true},
		{"", "0.00", true},
		{"abc", "0.00", false},
		{"-100,00", "0.00", false}, // valor negativo é tratado como malformado
	}

	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			value, ok := ParseMoney(tt.raw)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, value.StringFixed(2))
		})
	}
}

func TestParseMoneyKeepsTwoDecimalPrecision(t *testing.T) {
	a, _ := ParseMoney("0,10")
	b, _ := ParseMoney("0,20")
	assert.True(t, a.Add(b).Equal(decimal.RequireFromString("0.30")))
}

func TestParseDateWithTime(t *testing.T) {
	got, ok := ParseDate("08/12/2025 08:10")
	assert.True(t, ok)

	want := time.Date(2025, 12, 8, 8, 10, 0, 0, time.FixedZone("-03", -3*60*60)).UTC()
	assert.True(t, got.Equal(want), "esperava %s, veio %s", want, got)
	assert.Equal(t, time.UTC, got.Location())
}

// Dia e mês sem zero à esquerda também são aceitos.
func TestParseDateAcceptsNonPaddedDayAndMonth(t *testing.T) {
	want := time.Date(2025, 2, 8, 0, 0, 0, 0, time.FixedZone("-03", -3*60*60)).UTC()

	got, ok := ParseDate("8/2/2025")
	assert.True(t, ok)
	assert.True(t, got.Equal(want))

	got, ok = ParseDate("8/2/2025 8:10")
	assert.True(t, ok)
	assert.True(t, got.Equal(want.Add(8*time.Hour+10*time.Minute)))
}

func TestParseDateWithoutTimeDefaultsToMidnight(t *testing.T) {
	got, ok := ParseDate("08/12/2025")
	assert.True(t, ok)

	want := time.Date(2025, 12, 8, 0, 0, 0, 0, time.FixedZone("-03", -3*60*60)).UTC()
	assert.True(t, got.Equal(want))
}

// Data de calendário inválida degrada para agora em vez de abortar o lote.
func TestParseDateInvalidCalendarDateFallsBackToNow(t *testing.T) {
	got, ok := ParseDate("31/02/2025")
	assert.False(t, ok)
	assert.WithinDuration(t, time.Now().UTC(), got, 2*time.Second)
}

func TestParseDateGarbageFallsBackToNow(t *testing.T) {
	got, ok := ParseDate("não é data")
	assert.False(t, ok)
	assert.WithinDuration(t, time.Now().UTC(), got, 2*time.Second)
}

func TestParseDateEmptyIsNowWithoutCountingFailure(t *testing.T) {
	got, ok := ParseDate("")
	assert.True(t, ok)
	assert.WithinDuration(t, time.Now().UTC(), got, 2*time.Second)
}
