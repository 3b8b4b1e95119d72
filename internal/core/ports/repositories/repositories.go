package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	AccountRepo BankAccountRepositoryFacade
	BalanceRepo BalanceRepository
	PixRepo     PixRepository
	AuditRepo   AuditRepository
	UserRepo    UserRepository
}
