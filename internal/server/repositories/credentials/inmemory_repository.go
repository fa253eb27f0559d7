package credentials

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/walletkeeper/internal/common"
	"github.com/dmitrijs2005/walletkeeper/internal/server/models"
	"github.com/google/uuid"
)

// InMemoryRepository keeps credentials in process memory. It backs the
// server when no database DSN is configured and is used by tests.
type InMemoryRepository struct {
	mu      sync.RWMutex
	records []models.Credential
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{}
}

func (r *InMemoryRepository) Create(ctx context.Context, c *models.Credential) (*models.Credential, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for _, rec := range r.records {
		if rec.Email == c.Email || rec.Username == c.Username {
			return nil, common.ErrAlreadyExists
		}
	}

	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	c.CreatedAt = time.Now().UTC()
	r.records = append(r.records, *c)

	return c, nil
}

func (r *InMemoryRepository) FindByEmailOrUsername(ctx context.Context, identifier string) (*models.Credential, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	var byUsername *models.Credential
	for i := range r.records {
		rec := r.records[i]
		if rec.Email == identifier {
			return &rec, nil
		}
		if byUsername == nil && rec.Username == identifier {
			byUsername = &rec
		}
	}
	if byUsername != nil {
		return byUsername, nil
	}

	return nil, common.ErrorNotFound
}
