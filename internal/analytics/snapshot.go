// Package analytics calcula os indicadores gerenciais sobre o conjunto
// canônico de propostas.
package analytics

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/gfconsig/propostas-api/internal/entity"
)

// In100RawLabel é comparado contra o texto CRU da coluna de situação
// (CSVStatus), não contra o status normalizado: a normalização colapsa
// várias frases no mesmo balde e esse KPI quer exatamente esse rótulo.
const In100RawLabel = "Aguardando IN100"

// Janela do quadro de produção diária: últimos 7 dias distintos presentes
// nos dados, sem preenchimento de dias ausentes.
const dailyWindow = 7

// Dia local do ponto de vista da operação (Brasília, offset fixo).
var brasilia = time.FixedZone("-03", -3*60*60)

// DailyProduction é uma linha do quadro de produção: contagem por tipo de
// proposta em um dia. Células sem produção vêm zeradas para o consumidor
// renderizar uma grade densa.
type DailyProduction struct {
	Day    string                      `json:"day"` // DD/MM
	Counts map[entity.ProposalType]int `json:"counts"`
}

// Snapshot é o resumo gerencial de um conjunto deduplicado de propostas.
type Snapshot struct {
	DisbursedValue  decimal.Decimal   `json:"disbursed_value"`
	DisbursedCount  int               `json:"disbursed_count"`
	CancelledCount  int               `json:"cancelled_count"`
	InProgressCount int               `json:"in_progress_count"`
	In100Count      int               `json:"in100_count"`
	In100Value      decimal.Decimal   `json:"in100_value"`
	TotalCount      int               `json:"total_count"`
	Effectiveness   float64           `json:"effectiveness"`
	DailyProduction []DailyProduction `json:"daily_production"`
}

// ComputeSnapshot calcula os KPIs em uma passada sobre o conjunto JÁ
// deduplicado (ver importer.Reconcile). Agregar sobre as linhas cruas
// dobraria os totais financeiros de contratos repetidos.
// Função pura: duas chamadas com a mesma entrada dão o mesmo resultado.
func ComputeSnapshot(proposals []entity.Proposal) Snapshot {
	snap := Snapshot{
		DisbursedValue: decimal.Zero,
		In100Value:     decimal.Zero,
		TotalCount:     len(proposals),
	}

	type dayBucket struct {
		day    time.Time
		counts map[entity.ProposalType]int
	}
	buckets := make(map[string]*dayBucket)

	for _, p := range proposals {
		switch p.Status {
		case entity.StatusPago:
			snap.DisbursedCount++
			snap.DisbursedValue = snap.DisbursedValue.Add(p.Value)
		case entity.StatusCancelada:
			snap.CancelledCount++
		default:
			// Pendente, Em Análise, Aguardando IN100, Aprovada, Reprovada.
			snap.InProgressCount++
		}

		if p.CSVStatus == In100RawLabel {
			snap.In100Count++
			snap.In100Value = snap.In100Value.Add(p.Value)
		}

		local := p.Date.In(brasilia)
		key := local.Format("02/01")
		bucket, ok := buckets[key]
		if !ok {
			day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, brasilia)
			bucket = &dayBucket{day: day, counts: zeroCounts()}
			buckets[key] = bucket
		}
		bucket.counts[p.Type]++
	}

	days := make([]*dayBucket, 0, len(buckets))
	for _, b := range buckets {
		days = append(days, b)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].day.Before(days[j].day) })
	if len(days) > dailyWindow {
		days = days[len(days)-dailyWindow:]
	}
	snap.DailyProduction = make([]DailyProduction, 0, len(days))
	for _, b := range days {
		snap.DailyProduction = append(snap.DailyProduction, DailyProduction{
			Day:    b.day.Format("02/01"),
			Counts: b.counts,
		})
	}

	// Efetivadas vs canceladas; denominador zero rende 0, nunca NaN.
	if total := snap.DisbursedCount + snap.CancelledCount; total > 0 {
		snap.Effectiveness = float64(snap.DisbursedCount) / float64(total)
	}

	return snap
}

func zeroCounts() map[entity.ProposalType]int {
	counts := make(map[entity.ProposalType]int, 4)
	for _, t := range entity.AllTypes() {
		counts[t] = 0
	}
	return counts
}
