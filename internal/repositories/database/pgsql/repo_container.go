package pgsql

import (
	portsrepo "github.com/corefin/gl_ledger_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	entryRepo := newPgxEntryRepository(dbPool)
	accountRepo := newPgxAccountRepository(dbPool)
	sequenceRepo := newPgxSequenceRepository(dbPool)

	return portsrepo.RepositoryProvider{
		EntryRepo:    entryRepo,
		AccountRepo:  accountRepo,
		SequenceRepo: sequenceRepo,
	}
}
