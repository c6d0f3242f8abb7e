package pgsql

import (
	portsrepo "github.com/angemarius939/datarw-finance/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		ExpenseRepo:   newPgxExpenseRepository(dbPool),
		ConfigRepo:    newPgxFinanceConfigRepository(dbPool),
		ProjectRepo:   newPgxProjectRepository(dbPool),
		AnalyticsRepo: newPgxAnalyticsRepository(dbPool),
	}
}
