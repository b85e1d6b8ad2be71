package importer

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Fuso de referência do sistema de origem (Brasília, offset fixo).
var brasilia = time.FixedZone("-03", -3*60*60)

// ParseMoney converte valores no formato brasileiro ("22.349,90") para
// decimal. Entrada vazia vira zero sem contar como falha; entrada não
// numérica ou negativa vira zero e ok=false, para o chamador contabilizar a
// degradação. Nunca aborta o lote.
func ParseMoney(raw string) (decimal.Decimal, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return decimal.Zero, true
	}

	// "22.349,90" -> "22349.90"
	cleaned := strings.ReplaceAll(trimmed, ".", "")
	cleaned = strings.ReplaceAll(cleaned, ",", ".")

	value, err := decimal.NewFromString(cleaned)
	if err != nil || value.IsNegative() {
		return decimal.Zero, false
	}
	return value, true
}

// ParseDate converte "DD/MM/YYYY HH:MM" (hora opcional) do fuso de Brasília
// para um instante UTC. Qualquer falha, inclusive data de calendário
// inválida tipo 31/02, degrada para o instante atual com ok=false.
func ParseDate(raw string) (time.Time, bool) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return time.Now().UTC(), true
	}

	// Layouts sem zero à esquerda aceitam "8/12/2025" e "08/12/2025".
	layout := "2/1/2006"
	if strings.Contains(trimmed, " ") {
		layout = "2/1/2006 15:04"
	}

	t, err := time.ParseInLocation(layout, trimmed, brasilia)
	if err != nil {
		return time.Now().UTC(), false
	}
	return t.UTC(), true
}
