package usecase

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/gfconsig/propostas-api/internal/entity"
)

// Cenário ponta a ponta: duas linhas do mesmo debt_key, uma desembolsada e
// uma em análise, viram um único registro Pago na base.
func TestImportDeduplicatesAndAggregates(t *testing.T) {
	repo := new(MockProposalRepository)
	producer := new(MockQueueProducer)

	repo.On("ReplaceAll", mock.Anything, mock.Anything).Return(nil)
	producer.On("PublishImportCompleted", mock.Anything, mock.Anything).Return(nil)

	uc := NewImportProposalsUseCase(repo, producer)

	raw := "debt_key;val_liquido;dsc_situicao_emprestimo\n" +
		"A1;1.500,00;Desembolsado\n" +
		"A1;1.500,00;Em Análise\n"

	output, err := uc.Execute(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, 1, output.ImportedCount)
	require.Len(t, output.Proposals, 1)
	assert.Equal(t, entity.StatusPago, output.Proposals[0].Status)
	assert.Equal(t, "1500.00", output.Proposals[0].Value.StringFixed(2))

	assert.Equal(t, 1, output.KPIs.DisbursedCount)
	assert.Equal(t, "1500.00", output.KPIs.DisbursedValue.StringFixed(2))
	assert.Equal(t, 0, output.KPIs.InProgressCount)
	assert.Equal(t, "Importação concluída com sucesso!", output.Message)

	repo.AssertExpectations(t)
	producer.AssertExpectations(t)
}

func TestImportMissingRequiredColumnLeavesDatasetUntouched(t *testing.T) {
	repo := new(MockProposalRepository)
	uc := NewImportProposalsUseCase(repo, nil)

	raw := "debt_key;nom_cliente\nA1;Maria\n"

	output, err := uc.Execute(context.Background(), raw)
	require.Nil(t, output)
	require.Error(t, err)
	assert.True(t, IsDomainError(err))
	assert.Equal(t, "MISSING_COLUMNS", err.(*DomainError).Code)

	// Nada foi persistido: a base anterior fica intacta.
	repo.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything)
}

func TestImportEmptyFile(t *testing.T) {
	repo := new(MockProposalRepository)
	uc := NewImportProposalsUseCase(repo, nil)

	for _, raw := range []string{"", "\n\n", "debt_key;val_liquido\n"} {
		output, err := uc.Execute(context.Background(), raw)
		require.Nil(t, output, "entrada %q", raw)
		require.Error(t, err)
		assert.True(t, IsDomainError(err))
		assert.Equal(t, "EMPTY_FILE", err.(*DomainError).Code)
	}

	repo.AssertNotCalled(t, "ReplaceAll", mock.Anything, mock.Anything)
}

func TestImportRowLevelFailuresNeverAbortTheBatch(t *testing.T) {
	repo := new(MockProposalRepository)
	repo.On("ReplaceAll", mock.Anything, mock.Anything).Return(nil)

	uc := NewImportProposalsUseCase(repo, nil)

	raw := "debt_key;val_liquido;created_at\n" +
		"A1;abc;31/02/2025\n" +
		"A2;2.000,00;08/12/2025 08:10\n"

	output, err := uc.Execute(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, 2, output.ImportedCount)
	assert.Equal(t, 2, output.ParseFailures) // valor e data da primeira linha
}

func TestImportDatabaseFailureIsTechnical(t *testing.T) {
	repo := new(MockProposalRepository)
	repo.On("ReplaceAll", mock.Anything, mock.Anything).Return(assert.AnError)

	uc := NewImportProposalsUseCase(repo, nil)

	raw := "debt_key;val_liquido\nA1;1,00\n"

	output, err := uc.Execute(context.Background(), raw)
	require.Nil(t, output)
	assert.True(t, IsTechnicalError(err))
}

// Falha na publicação do evento não derruba uma importação já persistida.
func TestImportQueueFailureIsBestEffort(t *testing.T) {
	repo := new(MockProposalRepository)
	producer := new(MockQueueProducer)

	repo.On("ReplaceAll", mock.Anything, mock.Anything).Return(nil)
	producer.On("PublishImportCompleted", mock.Anything, mock.Anything).Return(assert.AnError)

	uc := NewImportProposalsUseCase(repo, producer)

	raw := "debt_key;val_liquido\nA1;1,00\n"

	output, err := uc.Execute(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, 1, output.ImportedCount)
}
