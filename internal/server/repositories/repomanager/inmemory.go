package repomanager

import (
	"context"
	"database/sql"

	"github.com/dmitrijs2005/walletkeeper/internal/dbx"
	"github.com/dmitrijs2005/walletkeeper/internal/server/repositories/credentials"
)

// InMemoryRepositoryManager hands out one shared in-memory repository and
// ignores the database handle.
type InMemoryRepositoryManager struct {
	credentials *credentials.InMemoryRepository
}

func NewInMemoryRepositoryManager() RepositoryManager {
	return &InMemoryRepositoryManager{credentials: credentials.NewInMemoryRepository()}
}

func (m *InMemoryRepositoryManager) RunMigrations(context.Context, *sql.DB) error {
	return nil
}

func (m *InMemoryRepositoryManager) Credentials(dbx.DBTX) credentials.Repository {
	return m.credentials
}
