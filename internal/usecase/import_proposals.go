package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/gfconsig/propostas-api/internal/analytics"
	"github.com/gfconsig/propostas-api/internal/entity"
	"github.com/gfconsig/propostas-api/internal/importer"
	"github.com/gfconsig/propostas-api/internal/infra/queue"
)

// ImportProposalsUseCase executa o pipeline completo sobre o texto cru do
// export: parse -> normalização -> reconciliação -> agregação, e então troca
// a base inteira pelo resultado. Falha de importação deixa a base anterior
// intacta.
type ImportProposalsUseCase struct {
	Repo  ProposalRepositoryInterface
	Queue QueueProducerInterface
}

func NewImportProposalsUseCase(repo ProposalRepositoryInterface, producer QueueProducerInterface) *ImportProposalsUseCase {
	return &ImportProposalsUseCase{
		Repo:  repo,
		Queue: producer,
	}
}

type ImportOutput struct {
	Proposals     []entity.Proposal  `json:"proposals"`
	KPIs          analytics.Snapshot `json:"kpis"`
	ImportedCount int                `json:"imported_count"`
	ParseFailures int                `json:"parse_failures"`
	Message       string             `json:"message"`
}

func (uc *ImportProposalsUseCase) Execute(ctx context.Context, rawText string) (*ImportOutput, error) {
	reader, err := importer.NewRowReader(rawText)
	if err != nil {
		var missing *importer.MissingColumnsError
		if errors.As(err, &missing) {
			return nil, &DomainError{
				Code:    "MISSING_COLUMNS",
				Message: "Colunas obrigatórias (debt_key, val_liquido) não encontradas.",
			}
		}
		return nil, &DomainError{
			Code:    "EMPTY_FILE",
			Message: "Arquivo CSV vazio ou inválido.",
		}
	}

	now := time.Now().UTC()
	var proposals []entity.Proposal
	parseFailures := 0

	for row, ok := reader.Next(); ok; row, ok = reader.Next() {
		proposal, failures := importer.Normalize(row, now)
		parseFailures += failures
		proposals = append(proposals, proposal)
	}
	if len(proposals) == 0 {
		return nil, &DomainError{
			Code:    "EMPTY_FILE",
			Message: "Arquivo CSV vazio ou inválido.",
		}
	}

	// Reconciliação antes de qualquer agregação ou persistência: agregar
	// sobre linhas cruas dobraria os totais de contratos duplicados.
	unique := importer.Reconcile(proposals)
	kpis := analytics.ComputeSnapshot(unique)

	if err := uc.Repo.ReplaceAll(ctx, unique); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "falha ao substituir a base de propostas: " + err.Error(),
		}
	}

	if uc.Queue != nil {
		payload := queue.ImportCompletedPayload{
			BatchID:        uuid.New().String(),
			ImportedCount:  len(unique),
			RawRowCount:    len(proposals),
			ParseFailures:  parseFailures,
			DisbursedCount: kpis.DisbursedCount,
			DisbursedValue: kpis.DisbursedValue.StringFixed(2),
			CompletedAt:    now,
		}
		// Evento é melhor-esforço: a base já foi trocada com sucesso.
		if err := uc.Queue.PublishImportCompleted(ctx, payload); err != nil {
			log.Printf("⚠️ falha ao publicar evento de importação: %v", err)
		}
	}

	return &ImportOutput{
		Proposals:     unique,
		KPIs:          kpis,
		ImportedCount: len(unique),
		ParseFailures: parseFailures,
		Message:       "Importação concluída com sucesso!",
	}, nil
}
