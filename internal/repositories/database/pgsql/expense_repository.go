package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/angemarius939/datarw-finance/internal/apperrors"
	"github.com/angemarius939/datarw-finance/internal/core/domain"
	portsrepo "github.com/angemarius939/datarw-finance/internal/core/ports/repositories"
	"github.com/angemarius939/datarw-finance/internal/models"
	"github.com/angemarius939/datarw-finance/internal/utils/mapping"
	"github.com/angemarius939/datarw-finance/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const expenseColumns = `expense_id, organization_id, project_id, activity_id, funding_source, cost_center,
		amount, currency, vendor, invoice_number, expense_date, notes,
		approval_status, requires_director_approval, submitted_by, submitted_at,
		approved_by, approved_at, rejection_reason,
		created_at, created_by, last_updated_at, last_updated_by`

type PgxExpenseRepository struct {
	BaseRepository
}

// newPgxExpenseRepository creates a new repository for expense data.
func newPgxExpenseRepository(pool *pgxpool.Pool) portsrepo.ExpenseRepositoryFacade {
	return &PgxExpenseRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure implementation matches interface
var _ portsrepo.ExpenseRepositoryFacade = (*PgxExpenseRepository)(nil)

func scanExpense(row pgx.Row) (models.Expense, error) {
	var m models.Expense
	err := row.Scan(
		&m.ExpenseID,
		&m.OrganizationID,
		&m.ProjectID,
		&m.ActivityID,
		&m.FundingSource,
		&m.CostCenter,
		&m.Amount,
		&m.Currency,
		&m.Vendor,
		&m.InvoiceNumber,
		&m.ExpenseDate,
		&m.Notes,
		&m.ApprovalStatus,
		&m.RequiresDirectorApproval,
		&m.SubmittedBy,
		&m.SubmittedAt,
		&m.ApprovedBy,
		&m.ApprovedAt,
		&m.RejectionReason,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	return m, err
}

// SaveExpense inserts a new expense row.
func (r *PgxExpenseRepository) SaveExpense(ctx context.Context, expense domain.Expense) error {
	m := mapping.ToModelExpense(expense)

	query := `
		INSERT INTO expenses (` + expenseColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22, $23);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.ExpenseID,
		m.OrganizationID,
		m.ProjectID,
		m.ActivityID,
		m.FundingSource,
		m.CostCenter,
		m.Amount,
		m.Currency,
		m.Vendor,
		m.InvoiceNumber,
		m.ExpenseDate,
		m.Notes,
		m.ApprovalStatus,
		m.RequiresDirectorApproval,
		m.SubmittedBy,
		m.SubmittedAt,
		m.ApprovedBy,
		m.ApprovedAt,
		m.RejectionReason,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // unique_violation
			return fmt.Errorf("%w: expense with ID %s already exists", apperrors.ErrDuplicate, m.ExpenseID)
		}
		return fmt.Errorf("failed to save expense %s: %w", m.ExpenseID, err)
	}
	return nil
}

// FindExpenseByID retrieves a specific expense scoped to an organization.
func (r *PgxExpenseRepository) FindExpenseByID(ctx context.Context, organizationID, expenseID string) (*domain.Expense, error) {
	query := `
		SELECT ` + expenseColumns + `
		FROM expenses
		WHERE organization_id = $1 AND expense_id = $2;
	`
	m, err := scanExpense(r.Pool.QueryRow(ctx, query, organizationID, expenseID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError(fmt.Sprintf("expense %s not found", expenseID))
		}
		return nil, fmt.Errorf("failed to find expense by ID %s: %w", expenseID, err)
	}

	d := mapping.ToDomainExpense(m)
	return &d, nil
}

// buildExpenseFilter assembles the WHERE clause shared by the list and count
// queries. The organization predicate is always first.
func buildExpenseFilter(organizationID string, filter portsrepo.ExpenseFilter) (string, []interface{}) {
	clauses := []string{"organization_id = $1"}
	args := []interface{}{organizationID}

	add := func(clause string, value interface{}) {
		args = append(args, value)
		clauses = append(clauses, fmt.Sprintf(clause, len(args)))
	}

	if filter.ProjectID != nil {
		add("project_id = $%d", *filter.ProjectID)
	}
	if filter.ActivityID != nil {
		add("activity_id = $%d", *filter.ActivityID)
	}
	if filter.FundingSource != nil {
		add("funding_source = $%d", *filter.FundingSource)
	}
	if filter.VendorContains != nil {
		add("vendor ILIKE $%d", "%"+*filter.VendorContains+"%")
	}
	if filter.DateFrom != nil {
		add("expense_date >= $%d", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		add("expense_date <= $%d", *filter.DateTo)
	}

	return strings.Join(clauses, " AND "), args
}

// ListExpenses retrieves a filtered, offset-paginated expense list plus the
// total row count for the filter.
func (r *PgxExpenseRepository) ListExpenses(ctx context.Context, organizationID string, filter portsrepo.ExpenseFilter) ([]domain.Expense, int64, error) {
	where, args := buildExpenseFilter(organizationID, filter)

	var total int64
	countQuery := "SELECT COUNT(*) FROM expenses WHERE " + where
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count expenses: %w", err)
	}

	offset := (filter.Page - 1) * filter.PageSize
	listQuery := fmt.Sprintf(`
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE %s
		ORDER BY expense_date DESC, expense_id
		LIMIT $%d OFFSET $%d;
	`, where, len(args)+1, len(args)+2)
	args = append(args, filter.PageSize, offset)

	rows, err := r.Pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query expenses: %w", err)
	}
	defer rows.Close()

	modelExpenses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Expense, error) {
		return scanExpense(row)
	})
	if err != nil {
		return nil, 0, fmt.Errorf("failed to scan expenses: %w", err)
	}

	return mapping.ToDomainExpenseSlice(modelExpenses), total, nil
}

// ListPendingExpenses retrieves the pending queue ordered by submission time,
// cursor-paginated on (submitted_at, expense_id).
func (r *PgxExpenseRepository) ListPendingExpenses(ctx context.Context, organizationID string, includeDirectorLevel bool, limit int, nextToken *string) ([]domain.Expense, *string, error) {
	if limit <= 0 {
		limit = 25
	}

	clauses := []string{"organization_id = $1", "approval_status = $2"}
	args := []interface{}{organizationID, models.Pending}

	if !includeDirectorLevel {
		clauses = append(clauses, "requires_director_approval = FALSE")
	}

	if nextToken != nil && *nextToken != "" {
		submittedAt, expenseID, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
		args = append(args, submittedAt, expenseID)
		clauses = append(clauses, fmt.Sprintf("(submitted_at, expense_id) > ($%d, $%d)", len(args)-1, len(args)))
	}

	query := fmt.Sprintf(`
		SELECT `+expenseColumns+`
		FROM expenses
		WHERE %s
		ORDER BY submitted_at, expense_id
		LIMIT $%d;
	`, strings.Join(clauses, " AND "), len(args)+1)
	args = append(args, limit+1) // Fetch one extra to detect a next page

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query pending expenses: %w", err)
	}
	defer rows.Close()

	modelExpenses, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Expense, error) {
		return scanExpense(row)
	})
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan pending expenses: %w", err)
	}

	var token *string
	if len(modelExpenses) > limit {
		modelExpenses = modelExpenses[:limit]
		last := modelExpenses[limit-1]
		if last.SubmittedAt != nil {
			t := pagination.EncodeToken(*last.SubmittedAt, last.ExpenseID)
			token = &t
		}
	}

	return mapping.ToDomainExpenseSlice(modelExpenses), token, nil
}

// UpdateExpense rewrites the mutable columns of an expense row. The WHERE
// clause pins the status the caller validated against, so an edit cannot land
// on an expense a concurrent transition already moved.
func (r *PgxExpenseRepository) UpdateExpense(ctx context.Context, expense domain.Expense, expectedStatus domain.ApprovalStatus) error {
	m := mapping.ToModelExpense(expense)

	query := `
		UPDATE expenses SET
			project_id = $3,
			activity_id = $4,
			funding_source = $5,
			cost_center = $6,
			amount = $7,
			currency = $8,
			vendor = $9,
			invoice_number = $10,
			expense_date = $11,
			notes = $12,
			last_updated_at = $13,
			last_updated_by = $14
		WHERE organization_id = $1 AND expense_id = $2 AND approval_status = $15;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		m.OrganizationID,
		m.ExpenseID,
		m.ProjectID,
		m.ActivityID,
		m.FundingSource,
		m.CostCenter,
		m.Amount,
		m.Currency,
		m.Vendor,
		m.InvoiceNumber,
		m.ExpenseDate,
		m.Notes,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
		models.ApprovalStatus(expectedStatus),
	)
	if err != nil {
		return fmt.Errorf("failed to update expense %s: %w", m.ExpenseID, err)
	}
	if cmdTag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	err = r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM expenses WHERE organization_id = $1 AND expense_id = $2);`,
		m.OrganizationID, m.ExpenseID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check expense %s after update: %w", m.ExpenseID, err)
	}
	if !exists {
		return apperrors.NewNotFoundError(fmt.Sprintf("expense %s not found", m.ExpenseID))
	}
	return fmt.Errorf("%w: expense %s is no longer %s", apperrors.ErrInvalidState, m.ExpenseID, expectedStatus)
}

// ApplyTransition performs the conditional status update. The WHERE clause
// pins the expected status so only one of two concurrent adjudicators can win.
func (r *PgxExpenseRepository) ApplyTransition(ctx context.Context, organizationID, expenseID string, transition portsrepo.ExpenseTransition) error {
	sets := []string{"approval_status = $3", "last_updated_at = $4", "last_updated_by = $5"}
	args := []interface{}{
		organizationID,
		expenseID,
		models.ApprovalStatus(transition.ToStatus),
		transition.UpdatedAt,
		transition.UpdatedBy,
	}

	set := func(column string, value interface{}) {
		args = append(args, value)
		sets = append(sets, fmt.Sprintf("%s = $%d", column, len(args)))
	}

	if transition.RequiresDirectorApproval != nil {
		set("requires_director_approval", *transition.RequiresDirectorApproval)
	}
	if transition.SubmittedBy != nil {
		set("submitted_by", *transition.SubmittedBy)
	}
	if transition.SubmittedAt != nil {
		set("submitted_at", *transition.SubmittedAt)
	}
	if transition.ApprovedBy != nil {
		set("approved_by", *transition.ApprovedBy)
	}
	if transition.ApprovedAt != nil {
		set("approved_at", *transition.ApprovedAt)
	}
	if transition.RejectionReason != nil {
		set("rejection_reason", *transition.RejectionReason)
	}

	args = append(args, models.ApprovalStatus(transition.FromStatus))
	query := fmt.Sprintf(`
		UPDATE expenses SET %s
		WHERE organization_id = $1 AND expense_id = $2 AND approval_status = $%d;
	`, strings.Join(sets, ", "), len(args))

	cmdTag, err := r.Pool.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to transition expense %s to %s: %w", expenseID, transition.ToStatus, err)
	}
	if cmdTag.RowsAffected() > 0 {
		return nil
	}

	// Zero rows means either the expense is gone or a concurrent transition
	// changed its status first. Distinguish the two for the caller.
	var exists bool
	err = r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM expenses WHERE organization_id = $1 AND expense_id = $2);`,
		organizationID, expenseID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check expense %s after transition: %w", expenseID, err)
	}
	if !exists {
		return apperrors.NewNotFoundError(fmt.Sprintf("expense %s not found", expenseID))
	}
	return fmt.Errorf("%w: expense %s is no longer %s", apperrors.ErrInvalidState, expenseID, transition.FromStatus)
}

// DeleteExpense removes a draft or pending expense. Adjudicated rows are
// immutable history.
func (r *PgxExpenseRepository) DeleteExpense(ctx context.Context, organizationID, expenseID string) error {
	query := `
		DELETE FROM expenses
		WHERE organization_id = $1 AND expense_id = $2 AND approval_status IN ($3, $4);
	`
	cmdTag, err := r.Pool.Exec(ctx, query, organizationID, expenseID, models.Draft, models.Pending)
	if err != nil {
		return fmt.Errorf("failed to delete expense %s: %w", expenseID, err)
	}
	if cmdTag.RowsAffected() > 0 {
		return nil
	}

	var exists bool
	err = r.Pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM expenses WHERE organization_id = $1 AND expense_id = $2);`,
		organizationID, expenseID,
	).Scan(&exists)
	if err != nil {
		return fmt.Errorf("failed to check expense %s after delete: %w", expenseID, err)
	}
	if !exists {
		return apperrors.NewNotFoundError(fmt.Sprintf("expense %s not found", expenseID))
	}
	return fmt.Errorf("%w: adjudicated expenses cannot be deleted", apperrors.ErrInvalidState)
}
