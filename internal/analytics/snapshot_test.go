package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gfconsig/propostas-api/internal/entity"
)

func money(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func day(d int) time.Time {
	return time.Date(2025, 12, d, 12, 0, 0, 0, time.UTC)
}

func TestComputeSnapshotCounts(t *testing.T) {
	proposals := []entity.Proposal{
		{ID: "1", Status: entity.StatusPago, Value: money("22349.90"), CSVStatus: "Desembolsado", Type: entity.TypeNovo, Date: day(8)},
		{ID: "2", Status: entity.StatusPago, Value: money("5000.00"), CSVStatus: "Desembolsado", Type: entity.TypeNovo, Date: day(8)},
		{ID: "3", Status: entity.StatusCancelada, Value: money("1663.73"), CSVStatus: "Cancelado Permanentemente", Type: entity.TypeNovo, Date: day(8)},
		{ID: "4", Status: entity.StatusAguardandoIN100, Value: money("3500.00"), CSVStatus: "Aguardando IN100", Type: entity.TypePortabilidade, Date: day(9)},
		{ID: "5", Status: entity.StatusEmAnalise, Value: money("900.00"), CSVStatus: "Em Análise", Type: entity.TypeCartao, Date: day(9)},
	}

	snap := ComputeSnapshot(proposals)

	assert.Equal(t, 2, snap.DisbursedCount)
	assert.True(t, snap.DisbursedValue.Equal(money("27349.90")), "veio %s", snap.DisbursedValue)
	assert.Equal(t, 1, snap.CancelledCount)
	assert.Equal(t, 2, snap.InProgressCount)
	assert.Equal(t, 5, snap.TotalCount)
	assert.Equal(t, 1, snap.In100Count)
	assert.True(t, snap.In100Value.Equal(money("3500.00")))
}

// O KPI de IN100 olha o rótulo cru, não o status normalizado: frases
// diferentes que normalizam para o mesmo balde não contam.
func TestComputeSnapshotIN100UsesRawLabelOnly(t *testing.T) {
	proposals := []entity.Proposal{
		{ID: "1", Status: entity.StatusAguardandoIN100, CSVStatus: "AGUARDANDO IN100 - reanálise", Value: money("100.00"), Type: entity.TypeNovo, Date: day(1)},
		{ID: "2", Status: entity.StatusAguardandoIN100, CSVStatus: "Aguardando IN100", Value: money("200.00"), Type: entity.TypeNovo, Date: day(1)},
	}

	snap := ComputeSnapshot(proposals)

	assert.Equal(t, 1, snap.In100Count)
	assert.True(t, snap.In100Value.Equal(money("200.00")))
	assert.Equal(t, 2, snap.InProgressCount)
}

func TestComputeSnapshotEffectiveness(t *testing.T) {
	proposals := []entity.Proposal{
		{ID: "1", Status: entity.StatusPago, Value: money("1.00"), Type: entity.TypeNovo, Date: day(1)},
		{ID: "2", Status: entity.StatusPago, Value: money("1.00"), Type: entity.TypeNovo, Date: day(1)},
		{ID: "3", Status: entity.StatusCancelada, Type: entity.TypeNovo, Date: day(1), Value: money("0")},
		{ID: "4", Status: entity.StatusCancelada, Type: entity.TypeNovo, Date: day(1), Value: money("0")},
	}

	snap := ComputeSnapshot(proposals)
	assert.InDelta(t, 0.5, snap.Effectiveness, 1e-9)
}

// Denominador zero rende 0, nunca NaN ou pânico.
func TestComputeSnapshotEffectivenessZeroDenominator(t *testing.T) {
	proposals := []entity.Proposal{
		{ID: "1", Status: entity.StatusPendente, Value: money("0"), Type: entity.TypeNovo, Date: day(1)},
	}

	snap := ComputeSnapshot(proposals)
	assert.Equal(t, 0.0, snap.Effectiveness)
}

func TestComputeSnapshotEmptySet(t *testing.T) {
	snap := ComputeSnapshot(nil)

	assert.Zero(t, snap.TotalCount)
	assert.Equal(t, 0.0, snap.Effectiveness)
	assert.True(t, snap.DisbursedValue.IsZero())
	assert.Empty(t, snap.DailyProduction)
}

func TestComputeSnapshotDailyProductionDenseGrid(t *testing.T) {
	proposals := []entity.Proposal{
		{ID: "1", Status: entity.StatusPago, Value: money("1.00"), Type: entity.TypeNovo, Date: day(8)},
		{ID: "2", Status: entity.StatusPago, Value: money("1.00"), Type: entity.TypeNovo, Date: day(8)},
		{ID: "3", Status: entity.StatusPendente, Value: money("1.00"), Type: entity.TypePortabilidade, Date: day(9)},
	}

	snap := ComputeSnapshot(proposals)

	require.Len(t, snap.DailyProduction, 2)
	assert.Equal(t, "08/12", snap.DailyProduction[0].Day)
	assert.Equal(t, "09/12", snap.DailyProduction[1].Day)

	dec8 := snap.DailyProduction[0].Counts
	assert.Equal(t, 2, dec8[entity.TypeNovo])
	// Célula sem produção existe e vale zero (grade densa).
	assert.Contains(t, dec8, entity.TypeCartao)
	assert.Equal(t, 0, dec8[entity.TypeCartao])

	dec9 := snap.DailyProduction[1].Counts
	assert.Equal(t, 1, dec9[entity.TypePortabilidade])
	assert.Equal(t, 0, dec9[entity.TypeNovo])
}

func TestComputeSnapshotDailyProductionWindowIsSevenDays(t *testing.T) {
	var proposals []entity.Proposal
	for d := 1; d <= 10; d++ {
		proposals = append(proposals, entity.Proposal{
			ID: string(rune('A' + d)), Status: entity.StatusPendente,
			Value: money("1.00"), Type: entity.TypeNovo, Date: day(d),
		})
	}

	snap := ComputeSnapshot(proposals)

	require.Len(t, snap.DailyProduction, 7)
	assert.Equal(t, "04/12", snap.DailyProduction[0].Day)
	assert.Equal(t, "10/12", snap.DailyProduction[6].Day)
}

// Função pura: duas chamadas com a mesma entrada dão o mesmo snapshot.
func TestComputeSnapshotIsIdempotent(t *testing.T) {
	proposals := []entity.Proposal{
		{ID: "1", Status: entity.StatusPago, Value: money("1500.00"), CSVStatus: "Desembolsado", Type: entity.TypeNovo, Date: day(8)},
		{ID: "2", Status: entity.StatusCancelada, Value: money("100.00"), Type: entity.TypeNovo, Date: day(9)},
	}

	first := ComputeSnapshot(proposals)
	second := ComputeSnapshot(proposals)

	assert.Equal(t, first, second)
}
