package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/bizrecords/ledger_backend/internal/apperrors"
	"github.com/bizrecords/ledger_backend/internal/core/domain"
	portsrepo "github.com/bizrecords/ledger_backend/internal/core/ports/repositories"
	"github.com/bizrecords/ledger_backend/internal/models"
	"github.com/bizrecords/ledger_backend/internal/utils/mapping"
	"github.com/bizrecords/ledger_backend/internal/utils/pagination"
)

type PgxLedgerRepository struct {
	BaseRepository
	receivableRepo portsrepo.ReceivableRepositoryFacade
}

// newPgxLedgerRepository creates a new repository for ledger transaction and
// detail data.
func newPgxLedgerRepository(pool *pgxpool.Pool, receivableRepo portsrepo.ReceivableRepositoryFacade) portsrepo.LedgerRepositoryWithTx {
	return &PgxLedgerRepository{
		BaseRepository: BaseRepository{Pool: pool},
		receivableRepo: receivableRepo,
	}
}

// Ensure PgxLedgerRepository implements portsrepo.LedgerRepositoryWithTx
var _ portsrepo.LedgerRepositoryWithTx = (*PgxLedgerRepository)(nil)

const insertLedgerQuery = `
	INSERT INTO ledgers (
		transaction_id, operation, account_id, to_id, amount, description,
		reference, date, currency_code, conciliation, status, is_money,
		approver_id, creator_id,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18);
`

const insertDetailQuery = `
	INSERT INTO ledger_details (
		detail_id, transaction_id, account_id, amount, currency_code, state,
		created_at, created_by, last_updated_at, last_updated_by
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
`

// insertTransactionInTx writes the header row and queues all detail rows as a
// batch on the given database transaction.
func (r *PgxLedgerRepository) insertTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.LedgerTransaction, details []domain.LedgerDetail) error {
	modelTxn := mapping.ToModelLedgerTransaction(txn)
	_, err := tx.Exec(ctx, insertLedgerQuery,
		modelTxn.TransactionID,
		modelTxn.Operation,
		modelTxn.AccountID,
		modelTxn.ToID,
		modelTxn.Amount,
		modelTxn.Description,
		modelTxn.Reference,
		modelTxn.Date,
		modelTxn.CurrencyCode,
		modelTxn.Conciliation,
		modelTxn.Status,
		modelTxn.IsMoney,
		modelTxn.ApproverID,
		modelTxn.CreatorID,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert ledger transaction "+modelTxn.TransactionID, err)
	}

	batch := &pgx.Batch{}
	for _, d := range details {
		modelDetail := mapping.ToModelLedgerDetail(d)
		batch.Queue(insertDetailQuery,
			modelDetail.DetailID,
			modelDetail.TransactionID,
			modelDetail.AccountID,
			modelDetail.Amount,
			modelDetail.CurrencyCode,
			modelDetail.State,
			modelDetail.CreatedAt,
			modelDetail.CreatedBy,
			modelDetail.LastUpdatedAt,
			modelDetail.LastUpdatedBy,
		)
	}
	br := tx.SendBatch(ctx, batch)
	if err := br.Close(); err != nil {
		return apperrors.NewAppError(500, "failed to execute detail batch for transaction "+modelTxn.TransactionID, err)
	}
	return nil
}

// SaveTransaction persists a transaction and its detail rows within one DB
// transaction: either the header and every posting commit, or nothing does.
func (r *PgxLedgerRepository) SaveTransaction(ctx context.Context, txn domain.LedgerTransaction, details []domain.LedgerDetail) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Ignored once the transaction is committed

	if err := r.insertTransactionInTx(ctx, tx, txn, details); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}

// SaveTransactionWithSettlement persists a transaction with its details and
// zeroes the named receivable's balance, all in one DB transaction. Batch
// settlement relies on this so a receivable is never marked paid without its
// ledger rows, and vice versa.
func (r *PgxLedgerRepository) SaveTransactionWithSettlement(ctx context.Context, txn domain.LedgerTransaction, details []domain.LedgerDetail, receivableID string) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	if err := r.insertTransactionInTx(ctx, tx, txn, details); err != nil {
		return err
	}

	if err := r.receivableRepo.SettleInTx(ctx, tx, receivableID, txn.CreatorID, txn.CreatedAt); err != nil {
		return apperrors.NewAppError(500, "failed to settle receivable "+receivableID, err)
	}

	return r.Commit(ctx, tx)
}

// ConciliateTransaction persists a conciliated transaction: the header update
// and every detail-state flip commit atomically.
func (r *PgxLedgerRepository) ConciliateTransaction(ctx context.Context, txn domain.LedgerTransaction) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx)

	modelTxn := mapping.ToModelLedgerTransaction(txn)
	headerQuery := `
		UPDATE ledgers
		SET conciliation = TRUE,
		    approver_id = $2,
		    last_updated_at = $3,
		    last_updated_by = $4
		WHERE transaction_id = $1 AND conciliation = FALSE AND status = 'act';
	`
	cmdTag, err := tx.Exec(ctx, headerQuery,
		modelTxn.TransactionID,
		modelTxn.ApproverID,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to conciliate transaction "+modelTxn.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		// Either missing, nulled, or already conciliated; the guard in the
		// WHERE clause keeps the operation idempotence-safe under races.
		return apperrors.NewAppError(409, "transaction "+modelTxn.TransactionID+" not eligible for conciliation", apperrors.ErrConflict)
	}

	detailQuery := `
		UPDATE ledger_details
		SET state = 'con',
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE transaction_id = $1;
	`
	if _, err := tx.Exec(ctx, detailQuery,
		modelTxn.TransactionID,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	); err != nil {
		return apperrors.NewAppError(500, "failed to conciliate details for transaction "+modelTxn.TransactionID, err)
	}

	return r.Commit(ctx, tx)
}

const selectLedgerColumns = `
	transaction_id, operation, account_id, to_id, amount, description,
	reference, date, currency_code, conciliation, status, is_money,
	approver_id, creator_id,
	created_at, created_by, last_updated_at, last_updated_by
`

func scanLedgerTransaction(row pgx.Row) (models.LedgerTransaction, error) {
	var m models.LedgerTransaction
	err := row.Scan(
		&m.TransactionID,
		&m.Operation,
		&m.AccountID,
		&m.ToID,
		&m.Amount,
		&m.Description,
		&m.Reference,
		&m.Date,
		&m.CurrencyCode,
		&m.Conciliation,
		&m.Status,
		&m.IsMoney,
		&m.ApproverID,
		&m.CreatorID,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// FindTransactionByID retrieves a ledger transaction (without details).
func (r *PgxLedgerRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.LedgerTransaction, error) {
	query := `SELECT ` + selectLedgerColumns + ` FROM ledgers WHERE transaction_id = $1;`

	m, err := scanLedgerTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}

	domainTxn := mapping.ToDomainLedgerTransaction(m)
	return &domainTxn, nil
}

// FindDetailsByTransactionID retrieves the postings of a transaction.
func (r *PgxLedgerRepository) FindDetailsByTransactionID(ctx context.Context, transactionID string) ([]domain.LedgerDetail, error) {
	query := `
		SELECT detail_id, transaction_id, account_id, amount, currency_code, state,
		       created_at, created_by, last_updated_at, last_updated_by
		FROM ledger_details
		WHERE transaction_id = $1
		ORDER BY detail_id;
	`
	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to query details for transaction "+transactionID, err)
	}
	defer rows.Close()

	details := []models.LedgerDetail{}
	for rows.Next() {
		var d models.LedgerDetail
		err := rows.Scan(
			&d.DetailID,
			&d.TransactionID,
			&d.AccountID,
			&d.Amount,
			&d.CurrencyCode,
			&d.State,
			&d.CreatedAt,
			&d.CreatedBy,
			&d.LastUpdatedAt,
			&d.LastUpdatedBy,
		)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan detail row for transaction "+transactionID, err)
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating detail rows for transaction "+transactionID, err)
	}

	return mapping.ToDomainLedgerDetailSlice(details), nil
}

// ListTransactions retrieves a paginated list of ledger transactions using
// token-based pagination. Ordering is (date DESC, created_at DESC), stable
// under the cursor's tuple comparison.
func (r *PgxLedgerRepository) ListTransactions(ctx context.Context, limit int, nextToken *string) ([]domain.LedgerTransaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra row to detect whether a next page exists.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + selectLedgerColumns + ` FROM ledgers`
	orderByClause := `ORDER BY date DESC, created_at DESC`

	var rows pgx.Rows
	var err error
	args := []interface{}{}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}

		cursorClause := `WHERE (date, created_at) < ($1, $2)`
		args = append(args, lastDate, lastCreatedAt)

		query := baseQuery + " " + cursorClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
		args = append(args, fetchLimit)
		rows, err = r.Pool.Query(ctx, query, args...)
	} else {
		query := baseQuery + " " + orderByClause + " LIMIT $1;"
		rows, err = r.Pool.Query(ctx, query, fetchLimit)
	}

	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query ledger transactions", err)
	}
	defer rows.Close()

	modelTxns := make([]models.LedgerTransaction, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanLedgerTransaction(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan ledger transaction row", scanErr)
		}
		modelTxns = append(modelTxns, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating ledger transaction rows", err)
	}

	var nextTokenVal *string
	results := modelTxns
	if len(modelTxns) > limit {
		// The token points to the last item included in this page; the next
		// query starts after it.
		lastTxn := modelTxns[limit-1]
		token := pagination.EncodeToken(lastTxn.Date, lastTxn.CreatedAt)
		nextTokenVal = &token
		results = modelTxns[:limit]
	}

	domainTxns := make([]domain.LedgerTransaction, len(results))
	for i, m := range results {
		domainTxns[i] = mapping.ToDomainLedgerTransaction(m)
	}
	return domainTxns, nextTokenVal, nil
}

// AccountBalance sums the posting amounts of an account. Postings are the
// source of truth for balances; no balance column is maintained.
func (r *PgxLedgerRepository) AccountBalance(ctx context.Context, accountID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(d.amount), 0)
		FROM ledger_details d
		JOIN ledgers l ON d.transaction_id = l.transaction_id
		WHERE d.account_id = $1 AND l.status = 'act';
	`
	var balance decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, accountID).Scan(&balance); err != nil {
		return decimal.Zero, apperrors.NewAppError(500, "failed to compute balance for account "+accountID, err)
	}
	return balance, nil
}
