package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	// IMPORTANTE: NÃO adicione imports de usecase ou infra aqui!
)

// Status é o estado operacional normalizado, usado pela lógica do sistema
// (KPIs, filtros, dedup). O texto cru do arquivo fica em Proposal.CSVStatus.
type Status string

const (
	StatusPendente        Status = "Pendente"
	StatusEmAnalise       Status = "Em Análise"
	StatusAguardandoIN100 Status = "Aguardando IN100"
	StatusAprovada        Status = "Aprovada"
	StatusReprovada       Status = "Reprovada"
	StatusCancelada       Status = "Cancelada"
	StatusPago            Status = "Pago"
)

// ProposalType é o tipo da operação de crédito.
type ProposalType string

const (
	TypeNovo            ProposalType = "Novo"
	TypePortabilidade   ProposalType = "Portabilidade"
	TypeRefinanciamento ProposalType = "Refinanciamento"
	TypeCartao          ProposalType = "Cartão"
)

// HistoryEntry registra uma transição de status da proposta.
// Status aqui é texto livre: o histórico pode carregar rótulos que o sistema
// de origem usa e que não existem na enumeração normalizada.
type HistoryEntry struct {
	Status string    `json:"status"`
	Date   time.Time `json:"date"`
	Note   string    `json:"note,omitempty"`
}

// Entidade: Proposal
type Proposal struct {
	ID             string          `json:"id"`
	Date           time.Time       `json:"date"`
	Client         string          `json:"client"`
	Salesperson    string          `json:"salesperson"`
	Value          decimal.Decimal `json:"value"`
	Status         Status          `json:"status"`
	CSVStatus      string          `json:"csv_status"` // coluna dsc_situicao_emprestimo, sem normalizar
	Type           ProposalType    `json:"type"`
	Bank           string          `json:"bank,omitempty"`
	ContractNumber string          `json:"contract_number,omitempty"`
	Observation    string          `json:"observation"`
	LastUpdated    time.Time       `json:"last_updated"`
	History        []HistoryEntry  `json:"history"`
}

// DedupKey é a chave de reconciliação: número do contrato quando existe,
// senão o debt_key. Assumimos que o debt_key é único por contrato físico no
// sistema de origem; se a geração desse id mudar, essa premissa quebra.
func (p *Proposal) DedupKey() string {
	if p.ContractNumber != "" {
		return p.ContractNumber
	}
	return p.ID
}

// IsTerminal indica estado definitivo (pago ou cancelado).
func (p *Proposal) IsTerminal() bool {
	return p.Status == StatusPago || p.Status == StatusCancelada
}

// ApplyStatus muda o status manualmente e registra a transição no histórico.
func (p *Proposal) ApplyStatus(status Status, note string, now time.Time) {
	p.Status = status
	p.LastUpdated = now
	p.History = append(p.History, HistoryEntry{Status: string(status), Date: now, Note: note})
}

// ApplyObservation edita a nota do operador. Não mexe no histórico.
func (p *Proposal) ApplyObservation(text string, now time.Time) {
	p.Observation = text
	p.LastUpdated = now
}

// StatusFromRaw mapeia o texto da coluna de situação para o status normalizado.
// A ordem dos testes importa: CANCELADO vem antes de tudo porque o rótulo de
// cancelamento pode coexistir com outros termos na mesma frase.
// Função total: qualquer entrada cai em exatamente um status.
func StatusFromRaw(raw string) Status {
	upper := strings.ToUpper(raw)
	switch {
	case strings.Contains(upper, "CANCELADO"):
		return StatusCancelada
	case strings.Contains(upper, "DESEMBOLSADO"):
		return StatusPago
	case strings.Contains(upper, "AGUARDANDO IN100"):
		return StatusAguardandoIN100
	case strings.Contains(upper, "EM ANÁLISE"), strings.Contains(upper, "MESA"):
		return StatusEmAnalise
	case strings.Contains(upper, "APROVADA"):
		return StatusAprovada
	case strings.Contains(upper, "REPROVADA"), strings.Contains(upper, "RECUSADA"):
		return StatusReprovada
	default:
		return StatusPendente
	}
}

// TypeFromRaw mapeia o texto da coluna de tipo de proposta.
func TypeFromRaw(raw string) ProposalType {
	upper := strings.ToUpper(raw)
	switch {
	case strings.Contains(upper, "PORTABILIDADE"):
		return TypePortabilidade
	case strings.Contains(upper, "REFINANCIAMENTO"):
		return TypeRefinanciamento
	case strings.Contains(upper, "CARTÃO"):
		return TypeCartao
	default:
		// Cobre também o literal "NOVO".
		return TypeNovo
	}
}

// ParseStatus valida um status vindo de fora (edição manual via API).
func ParseStatus(s string) (Status, bool) {
	switch Status(s) {
	case StatusPendente, StatusEmAnalise, StatusAguardandoIN100,
		StatusAprovada, StatusReprovada, StatusCancelada, StatusPago:
		return Status(s), true
	}
	return "", false
}

// AllTypes lista os tipos na ordem de exibição do quadro de produção diária.
func AllTypes() []ProposalType {
	return []ProposalType{TypeNovo, TypePortabilidade, TypeRefinanciamento, TypeCartao}
}
