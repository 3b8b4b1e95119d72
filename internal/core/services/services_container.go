package services

import (
	portsrepo "github.com/tribopay/pix_admin_backend/internal/core/ports/repositories"
	portssvc "github.com/tribopay/pix_admin_backend/internal/core/ports/services"
	"github.com/tribopay/pix_admin_backend/internal/platform/config"
)

// NewServiceContainer wires repositories and the banking gateway into the
// service layer.
func NewServiceContainer(repos portsrepo.RepositoryProvider, gateway portssvc.BankingGateway, cfg *config.Config) *portssvc.ServiceContainer {
	audit := NewAuditService(repos.AuditRepo)

	return &portssvc.ServiceContainer{
		Account: NewBankAccountService(repos.AccountRepo, audit),
		Balance: NewBalanceService(repos.AccountRepo, repos.BalanceRepo, gateway, audit, cfg.BalanceSyncPause),
		Pix:     NewPixService(repos.AccountRepo, repos.PixRepo, gateway, audit),
		Audit:   audit,
		User:    NewUserService(repos.UserRepo),
	}
}
