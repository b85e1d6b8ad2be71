package usecase

import (
	"context"

	"github.com/gfconsig/propostas-api/internal/analytics"
	"github.com/gfconsig/propostas-api/internal/importer"
)

// GetDashboardUseCase recalcula o snapshot de KPIs sobre a base atual.
// Chamável a qualquer momento, independente de importação (ex: depois de
// uma edição manual de status).
type GetDashboardUseCase struct {
	Repo ProposalRepositoryInterface
}

func NewGetDashboardUseCase(repo ProposalRepositoryInterface) *GetDashboardUseCase {
	return &GetDashboardUseCase{Repo: repo}
}

func (uc *GetDashboardUseCase) Execute(ctx context.Context) (*analytics.Snapshot, error) {
	proposals, err := uc.Repo.LoadAll(ctx)
	if err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "falha ao carregar propostas: " + err.Error(),
		}
	}

	// A base persistida já é única por contrato, mas reconciliar de novo é
	// idempotente e mantém a garantia de não dobrar totais.
	snapshot := analytics.ComputeSnapshot(importer.Reconcile(proposals))
	return &snapshot, nil
}
