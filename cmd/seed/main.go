package main

import (
	"context"
	"errors"
	"flag"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/tribopay/pix_admin_backend/internal/apperrors"
	"github.com/tribopay/pix_admin_backend/internal/core/domain"
	portsrepo "github.com/tribopay/pix_admin_backend/internal/core/ports/repositories"
	"github.com/tribopay/pix_admin_backend/internal/platform/config"
	"github.com/tribopay/pix_admin_backend/internal/repositories/database/pgsql"
	"github.com/tribopay/pix_admin_backend/internal/utils"
	"github.com/tribopay/pix_admin_backend/pkg/database"
)

// seed bootstraps a fresh installation: one admin user plus the built-in
// transactional and fee accounts from configuration. Running it twice is
// safe; existing rows are left untouched.
func main() {
	adminEmail := flag.String("email", "admin@tribopay.com.br", "email of the initial admin user")
	adminPassword := flag.String("password", "", "password of the initial admin user (required)")
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	if *adminPassword == "" {
		logger.Error("Missing required -password flag")
		os.Exit(1)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		logger.Error("Failed to load config", slog.String("error", err.Error()))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	dbPool, err := database.NewPgxPool(ctx, cfg.DatabaseURL, true)
	if err != nil {
		logger.Error("Failed to initialize database pool", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer dbPool.Close()

	repos := pgsql.NewRepositoryProvider(dbPool)

	if err := seedAdminUser(ctx, logger, repos, *adminEmail, *adminPassword); err != nil {
		os.Exit(1)
	}
	if err := seedDefaultAccounts(ctx, logger, repos, cfg); err != nil {
		os.Exit(1)
	}

	logger.Info("Seed completed.")
}

func seedAdminUser(ctx context.Context, logger *slog.Logger, repos portsrepo.RepositoryProvider, email, password string) error {
	hash, err := utils.HashPassword(password)
	if err != nil {
		logger.Error("Failed to hash admin password", slog.String("error", err.Error()))
		return err
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Email:        email,
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		IsActive:     true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "seed",
			LastUpdatedAt: now,
			LastUpdatedBy: "seed",
		},
	}

	if err := repos.UserRepo.SaveUser(ctx, user); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			logger.Info("Admin user already exists, skipping", slog.String("email", email))
			return nil
		}
		logger.Error("Failed to create admin user", slog.String("error", err.Error()))
		return err
	}

	logger.Info("Admin user created", slog.String("email", email), slog.String("userID", user.UserID))
	return nil
}

func seedDefaultAccounts(ctx context.Context, logger *slog.Logger, repos portsrepo.RepositoryProvider, cfg *config.Config) error {
	existing, err := repos.AccountRepo.ListAccounts(ctx)
	if err != nil {
		logger.Error("Failed to list accounts", slog.String("error", err.Error()))
		return err
	}

	defaults := []domain.BankAccount{
		accountFromDefaults("Conta Transacional", domain.Transactional, cfg.TransactionalAccount, cfg.FitBankTaxNumber),
		accountFromDefaults("Conta de Taxas", domain.Fee, cfg.FeeAccount, cfg.FeeAccount.TaxNumber),
	}

	for _, account := range defaults {
		if hasAccountRouting(existing, account) {
			logger.Info("Account already registered, skipping", slog.String("label", account.Label))
			continue
		}
		if err := repos.AccountRepo.SaveAccount(ctx, account); err != nil {
			logger.Error("Failed to create account",
				slog.String("label", account.Label),
				slog.String("error", err.Error()))
			return err
		}
		logger.Info("Account created",
			slog.String("label", account.Label),
			slog.String("accountID", account.AccountID))
	}
	return nil
}

func accountFromDefaults(label string, accountType domain.AccountType, d config.AccountDefaults, taxNumber string) domain.BankAccount {
	now := time.Now()
	return domain.BankAccount{
		AccountID:   uuid.NewString(),
		Label:       label,
		Type:        accountType,
		Bank:        d.Bank,
		Branch:      d.Branch,
		Account:     d.Account,
		Digit:       d.Digit,
		AccountKind: "0",
		HolderName:  d.Name,
		TaxNumber:   taxNumber,
		IsActive:    true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "seed",
			LastUpdatedAt: now,
			LastUpdatedBy: "seed",
		},
	}
}

func hasAccountRouting(accounts []domain.BankAccount, candidate domain.BankAccount) bool {
	for _, a := range accounts {
		if a.Bank == candidate.Bank && a.Branch == candidate.Branch && a.Account == candidate.Account && a.Digit == candidate.Digit {
			return true
		}
	}
	return false
}
