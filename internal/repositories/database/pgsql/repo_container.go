package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"

	portsrepo "github.com/tallybook/tallybook/internal/core/ports/repositories"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CompanyRepo:  newPgxCompanyRepository(dbPool),
		AccountRepo:  newPgxAccountRepository(dbPool),
		EntryRepo:    newPgxEntryRepository(dbPool),
		SettingsRepo: newPgxSettingsRepository(dbPool),
	}
}
