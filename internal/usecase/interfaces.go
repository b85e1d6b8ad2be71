package usecase

import (
	"context"
	"time"

	"github.com/gfconsig/propostas-api/internal/entity"
	"github.com/gfconsig/propostas-api/internal/infra/queue"
)

// ProposalRepositoryInterface é a fronteira de persistência do pipeline.
// O core nunca persiste por conta própria: recebe um snapshot e devolve o
// snapshot transformado para o repositório gravar.
type ProposalRepositoryInterface interface {
	LoadAll(ctx context.Context) ([]entity.Proposal, error)

	// ReplaceAll troca a base inteira de forma atômica (importação é
	// substituição total, nunca merge).
	ReplaceAll(ctx context.Context, proposals []entity.Proposal) error

	FindByID(ctx context.Context, id string) (*entity.Proposal, error)

	// UpdateStatusWithHistory grava o novo status e a entrada de histórico
	// na mesma transação: ou os dois entram, ou nenhum. O last_updated vem
	// de entry.Date.
	UpdateStatusWithHistory(ctx context.Context, id string, status entity.Status, entry entity.HistoryEntry) error

	UpdateObservation(ctx context.Context, id string, observation string, now time.Time) error
	Clear(ctx context.Context) error
}

type QueueProducerInterface interface {
	PublishImportCompleted(ctx context.Context, payload queue.ImportCompletedPayload) error
}
