package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/gfconsig/propostas-api/internal/entity"
)

type ProposalRepository struct {
	DB *sql.DB
}

func NewProposalRepository(db *sql.DB) *ProposalRepository {
	return &ProposalRepository{DB: db}
}

const proposalColumns = `
	id, date, client, salesperson, value, status, csv_status, type,
	bank, contract_number, observation, last_updated
`

func (r *ProposalRepository) LoadAll(ctx context.Context) ([]entity.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals ORDER BY date DESC`

	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("falha ao consultar propostas: %w", err)
	}
	defer rows.Close()

	var proposals []entity.Proposal
	byID := make(map[string]int)

	for rows.Next() {
		p, err := scanProposal(rows)
		if err != nil {
			return nil, err
		}
		byID[p.ID] = len(proposals)
		proposals = append(proposals, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := r.attachHistory(ctx, proposals, byID); err != nil {
		return nil, err
	}

	return proposals, nil
}

func (r *ProposalRepository) attachHistory(ctx context.Context, proposals []entity.Proposal, byID map[string]int) error {
	if len(proposals) == 0 {
		return nil
	}

	query := `
		SELECT proposal_id, status, date, COALESCE(note, '')
		FROM proposal_history
		ORDER BY date ASC
	`
	rows, err := r.DB.QueryContext(ctx, query)
	if err != nil {
		return fmt.Errorf("falha ao consultar histórico: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var proposalID string
		var entry entity.HistoryEntry
		if err := rows.Scan(&proposalID, &entry.Status, &entry.Date, &entry.Note); err != nil {
			return err
		}
		if at, ok := byID[proposalID]; ok {
			proposals[at].History = append(proposals[at].History, entry)
		}
	}
	return rows.Err()
}

func (r *ProposalRepository) FindByID(ctx context.Context, id string) (*entity.Proposal, error) {
	query := `SELECT ` + proposalColumns + ` FROM proposals WHERE id = $1`

	row := r.DB.QueryRowContext(ctx, query, id)
	p, err := scanProposal(row)
	if err != nil {
		return nil, fmt.Errorf("proposta não encontrada: %w", err)
	}

	histQuery := `
		SELECT status, date, COALESCE(note, '')
		FROM proposal_history
		WHERE proposal_id = $1
		ORDER BY date ASC
	`
	rows, err := r.DB.QueryContext(ctx, histQuery, id)
	if err != nil {
		return nil, fmt.Errorf("falha ao consultar histórico: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var entry entity.HistoryEntry
		if err := rows.Scan(&entry.Status, &entry.Date, &entry.Note); err != nil {
			return nil, err
		}
		p.History = append(p.History, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return &p, nil
}

// ReplaceAll troca a base inteira dentro de uma única transação: ou a nova
// base entra completa, ou a anterior fica intacta. Leitores nunca enxergam
// um meio-termo.
func (r *ProposalRepository) ReplaceAll(ctx context.Context, proposals []entity.Proposal) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("falha ao abrir transação: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM proposal_history`); err != nil {
		return fmt.Errorf("falha ao limpar histórico: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM proposals`); err != nil {
		return fmt.Errorf("falha ao limpar propostas: %w", err)
	}

	insert := `
		INSERT INTO proposals (` + proposalColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`
	stmt, err := tx.PrepareContext(ctx, insert)
	if err != nil {
		return fmt.Errorf("falha ao preparar insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range proposals {
		_, err := stmt.ExecContext(ctx,
			p.ID,
			p.Date,
			p.Client,
			p.Salesperson,
			p.Value.StringFixed(2),
			string(p.Status),
			p.CSVStatus,
			string(p.Type),
			p.Bank,
			p.ContractNumber,
			p.Observation,
			p.LastUpdated,
		)
		if err != nil {
			return fmt.Errorf("falha ao inserir proposta %s: %w", p.ID, err)
		}

		for _, entry := range p.History {
			if err := insertHistoryTx(ctx, tx, p.ID, entry); err != nil {
				return err
			}
		}
	}

	return tx.Commit()
}

func insertHistoryTx(ctx context.Context, tx *sql.Tx, proposalID string, entry entity.HistoryEntry) error {
	query := `
		INSERT INTO proposal_history (id, proposal_id, status, date, note)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''))
	`
	_, err := tx.ExecContext(ctx, query,
		uuid.New().String(),
		proposalID,
		entry.Status,
		entry.Date,
		entry.Note,
	)
	if err != nil {
		return fmt.Errorf("falha ao inserir histórico da proposta %s: %w", proposalID, err)
	}
	return nil
}

// UpdateStatusWithHistory aplica a mudança de status e a entrada de
// histórico na mesma transação. Sem isso, uma falha no insert do histórico
// deixaria um status sem transição registrada.
func (r *ProposalRepository) UpdateStatusWithHistory(ctx context.Context, id string, status entity.Status, entry entity.HistoryEntry) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("falha ao abrir transação: %w", err)
	}
	defer tx.Rollback()

	query := `UPDATE proposals SET status = $1, last_updated = $2 WHERE id = $3`
	result, err := tx.ExecContext(ctx, query, string(status), entry.Date, id)
	if err != nil {
		return fmt.Errorf("falha ao atualizar status: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}

	if err := insertHistoryTx(ctx, tx, id, entry); err != nil {
		return err
	}

	return tx.Commit()
}

func (r *ProposalRepository) UpdateObservation(ctx context.Context, id string, observation string, now time.Time) error {
	query := `UPDATE proposals SET observation = $1, last_updated = $2 WHERE id = $3`

	result, err := r.DB.ExecContext(ctx, query, observation, now, id)
	if err != nil {
		return fmt.Errorf("falha ao atualizar observação: %w", err)
	}
	if affected, _ := result.RowsAffected(); affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}

func (r *ProposalRepository) Clear(ctx context.Context) error {
	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("falha ao abrir transação: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM proposal_history`); err != nil {
		return err
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM proposals`); err != nil {
		return err
	}
	return tx.Commit()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProposal(row rowScanner) (entity.Proposal, error) {
	var p entity.Proposal
	var status, proposalType string

	err := row.Scan(
		&p.ID,
		&p.Date,
		&p.Client,
		&p.Salesperson,
		&p.Value,
		&status,
		&p.CSVStatus,
		&proposalType,
		&p.Bank,
		&p.ContractNumber,
		&p.Observation,
		&p.LastUpdated,
	)
	if err != nil {
		return entity.Proposal{}, err
	}

	p.Status = entity.Status(status)
	p.Type = entity.ProposalType(proposalType)
	p.History = []entity.HistoryEntry{}
	return p, nil
}
