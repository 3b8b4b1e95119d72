package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/tribopay/pix_admin_backend/internal/core/ports/repositories"
)

// NewRepositoryProvider creates all PostgreSQL-backed repositories sharing a
// single connection pool.
func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		AccountRepo: newPgxBankAccountRepository(dbPool),
		BalanceRepo: newPgxBalanceRepository(dbPool),
		PixRepo:     newPgxPixRepository(dbPool),
		AuditRepo:   newPgxAuditRepository(dbPool),
		UserRepo:    newPgxUserRepository(dbPool),
	}
}
