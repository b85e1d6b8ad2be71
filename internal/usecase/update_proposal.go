package usecase

import (
	"context"
	"time"

	"github.com/gfconsig/propostas-api/internal/entity"
)

// UpdateStatusUseCase aplica uma mudança manual de status e registra a
// transição no histórico da proposta.
type UpdateStatusUseCase struct {
	Repo ProposalRepositoryInterface
}

func NewUpdateStatusUseCase(repo ProposalRepositoryInterface) *UpdateStatusUseCase {
	return &UpdateStatusUseCase{Repo: repo}
}

type UpdateStatusInput struct {
	ID     string `json:"id"`
	Status string `json:"status"`
	Note   string `json:"note"`
}

func (uc *UpdateStatusUseCase) Execute(ctx context.Context, input UpdateStatusInput) (*entity.Proposal, error) {
	status, ok := entity.ParseStatus(input.Status)
	if !ok {
		return nil, &DomainError{
			Code:    "INVALID_STATUS",
			Message: "status inválido: " + input.Status,
		}
	}

	proposal, err := uc.Repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, &DomainError{
			Code:    "PROPOSAL_NOT_FOUND",
			Message: "proposta não encontrada: " + input.ID,
		}
	}

	now := time.Now().UTC()
	proposal.ApplyStatus(status, input.Note, now)

	// Status e histórico entram juntos (uma transação no repositório):
	// falha em qualquer um deixa a proposta como estava.
	entry := proposal.History[len(proposal.History)-1]
	if err := uc.Repo.UpdateStatusWithHistory(ctx, proposal.ID, status, entry); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "falha ao atualizar status: " + err.Error(),
		}
	}

	return proposal, nil
}

// UpdateObservationUseCase edita a nota do operador. Observação não gera
// entrada de histórico.
type UpdateObservationUseCase struct {
	Repo ProposalRepositoryInterface
}

func NewUpdateObservationUseCase(repo ProposalRepositoryInterface) *UpdateObservationUseCase {
	return &UpdateObservationUseCase{Repo: repo}
}

type UpdateObservationInput struct {
	ID          string `json:"id"`
	Observation string `json:"observation"`
}

func (uc *UpdateObservationUseCase) Execute(ctx context.Context, input UpdateObservationInput) (*entity.Proposal, error) {
	proposal, err := uc.Repo.FindByID(ctx, input.ID)
	if err != nil {
		return nil, &DomainError{
			Code:    "PROPOSAL_NOT_FOUND",
			Message: "proposta não encontrada: " + input.ID,
		}
	}

	now := time.Now().UTC()
	proposal.ApplyObservation(input.Observation, now)

	if err := uc.Repo.UpdateObservation(ctx, proposal.ID, input.Observation, now); err != nil {
		return nil, &TechnicalError{
			Code:    "DATABASE_ERROR",
			Message: "falha ao atualizar observação: " + err.Error(),
		}
	}

	return proposal, nil
}
