package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/agentfolio/agentfolio-backend/internal/domain"
)

// ledgerRepository implements domain.LedgerRepository over the trade,
// balance, and agent tables owned by the external trading subsystem.
// Strictly read-only: this core never writes to the ledger.
type ledgerRepository struct {
	db *DB
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(db *DB) domain.LedgerRepository {
	return &ledgerRepository{db: db}
}

// ListTrades retrieves all trades of a user executed at or after since,
// ascending by execution time. Returns domain.ErrLedgerNotFound when the
// user has no wallet, and an empty slice when the user exists but has no
// trades in range.
func (r *ledgerRepository) ListTrades(ctx context.Context, userID uuid.UUID, since time.Time) ([]domain.LedgerRecord, error) {
	exists, err := r.hasLedger(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrLedgerNotFound
	}

	query := `
		SELECT id, user_id, agent_id, kind, from_asset, to_asset, amount, usd_value, executed_at, status
		FROM trades
		WHERE user_id = $1 AND executed_at >= $2
		ORDER BY executed_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, since)
	if err != nil {
		return nil, fmt.Errorf("failed to query trades: %w", err)
	}
	defer rows.Close()

	records := make([]domain.LedgerRecord, 0)
	for rows.Next() {
		var record domain.LedgerRecord
		var agentID sql.NullString

		err := rows.Scan(
			&record.ID,
			&record.UserID,
			&agentID,
			&record.Kind,
			&record.FromAsset,
			&record.ToAsset,
			&record.Amount,
			&record.USDValue,
			&record.ExecutedAt,
			&record.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan trade row: %w", err)
		}

		if agentID.Valid {
			parsed, err := uuid.Parse(agentID.String)
			if err != nil {
				return nil, fmt.Errorf("invalid agent id on trade %s: %w", record.ID, err)
			}
			record.AgentID = &parsed
		}

		// Reject malformed rows at the boundary so the pipelines can
		// rely on a closed, validated record type.
		if err := record.Validate(); err != nil {
			return nil, fmt.Errorf("invalid trade row %s: %w", record.ID, err)
		}

		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trade rows: %w", err)
	}

	return records, nil
}

// ListBalances retrieves the current per-asset holdings of a user.
func (r *ledgerRepository) ListBalances(ctx context.Context, userID uuid.UUID) ([]domain.BalanceSnapshot, error) {
	query := `
		SELECT asset, balance, balance_usd
		FROM balances
		WHERE user_id = $1
		ORDER BY asset ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query balances: %w", err)
	}
	defer rows.Close()

	snapshots := make([]domain.BalanceSnapshot, 0)
	for rows.Next() {
		var snapshot domain.BalanceSnapshot
		if err := rows.Scan(&snapshot.Asset, &snapshot.Balance, &snapshot.BalanceUSD); err != nil {
			return nil, fmt.Errorf("failed to scan balance row: %w", err)
		}
		snapshots = append(snapshots, snapshot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate balance rows: %w", err)
	}

	return snapshots, nil
}

// ListAgents retrieves all trading agents of a user.
func (r *ledgerRepository) ListAgents(ctx context.Context, userID uuid.UUID) ([]domain.Agent, error) {
	query := `
		SELECT id, user_id, name, strategy, risk, status
		FROM agents
		WHERE user_id = $1
		ORDER BY created_at ASC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query agents: %w", err)
	}
	defer rows.Close()

	agents := make([]domain.Agent, 0)
	for rows.Next() {
		var agent domain.Agent
		err := rows.Scan(
			&agent.ID,
			&agent.UserID,
			&agent.Name,
			&agent.Strategy,
			&agent.Risk,
			&agent.Status,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan agent row: %w", err)
		}
		agents = append(agents, agent)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate agent rows: %w", err)
	}

	return agents, nil
}

// hasLedger reports whether the user has a wallet, i.e. a ledger at all.
func (r *ledgerRepository) hasLedger(ctx context.Context, userID uuid.UUID) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS(SELECT 1 FROM wallets WHERE user_id = $1)`, userID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check ledger existence: %w", err)
	}
	return exists, nil
}
