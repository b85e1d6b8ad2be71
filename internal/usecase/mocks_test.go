package usecase

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/gfconsig/propostas-api/internal/entity"
	"github.com/gfconsig/propostas-api/internal/infra/queue"
)

// MockProposalRepository
type MockProposalRepository struct {
	mock.Mock
}

func (m *MockProposalRepository) LoadAll(ctx context.Context) ([]entity.Proposal, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Proposal), args.Error(1)
}

func (m *MockProposalRepository) ReplaceAll(ctx context.Context, proposals []entity.Proposal) error {
	args := m.Called(ctx, proposals)
	return args.Error(0)
}

func (m *MockProposalRepository) FindByID(ctx context.Context, id string) (*entity.Proposal, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Proposal), args.Error(1)
}

func (m *MockProposalRepository) UpdateStatusWithHistory(ctx context.Context, id string, status entity.Status, entry entity.HistoryEntry) error {
	args := m.Called(ctx, id, status, entry)
	return args.Error(0)
}

func (m *MockProposalRepository) UpdateObservation(ctx context.Context, id string, observation string, now time.Time) error {
	args := m.Called(ctx, id, observation, now)
	return args.Error(0)
}

func (m *MockProposalRepository) Clear(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockQueueProducer
type MockQueueProducer struct {
	mock.Mock
}

func (m *MockQueueProducer) PublishImportCompleted(ctx context.Context, payload queue.ImportCompletedPayload) error {
	args := m.Called(ctx, payload)
	return args.Error(0)
}
