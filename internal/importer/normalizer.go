package importer

import (
	"time"

	"github.com/gfconsig/propostas-api/internal/entity"
)

// Placeholders para manter a listagem legível quando o export vem incompleto.
const (
	DefaultClient      = "Cliente Desconhecido"
	DefaultSalesperson = "Vendedor Desconhecido"
)

// Normalize converte uma RawRow em Proposal canônica. O histórico nasce
// vazio: snapshot importado não carrega log de transições. Devolve também
// quantos campos precisaram do fallback de parse (valor zerado ou data
// substituída por agora).
func Normalize(row RawRow, now time.Time) (entity.Proposal, int) {
	failures := 0

	value, ok := ParseMoney(row.Get(ColValue))
	if !ok {
		failures++
	}

	dateRaw := row.Get(ColDate)
	if dateRaw == "" {
		dateRaw = row.Get(ColDateAlt)
	}
	date, ok := ParseDate(dateRaw)
	if !ok {
		failures++
	}

	client := row.Get(ColClient)
	if client == "" {
		client = DefaultClient
	}
	salesperson := row.Get(ColSalesperson)
	if salesperson == "" {
		salesperson = DefaultSalesperson
	}

	rawStatus := row.Get(ColStatus)

	proposal := entity.Proposal{
		ID:             row.Get(ColID),
		Date:           date,
		Client:         client,
		Salesperson:    salesperson,
		Value:          value,
		Status:         entity.StatusFromRaw(rawStatus),
		CSVStatus:      rawStatus,
		Type:           entity.TypeFromRaw(row.Get(ColType)),
		Bank:           row.Get(ColBank),
		ContractNumber: row.Get(ColContract),
		Observation:    "",
		LastUpdated:    now,
		History:        []entity.HistoryEntry{},
	}

	return proposal, failures
}
