// Package credentials is the boundary to the store holding login records.
package credentials

import (
	"context"

	"github.com/dmitrijs2005/walletkeeper/internal/server/models"
)

// Repository reads and writes credential records.
//
// FindByEmailOrUsername returns common.ErrorNotFound when no record matches.
// Create assigns ID and CreatedAt and returns common.ErrAlreadyExists when the
// email or username is taken.
type Repository interface {
	FindByEmailOrUsername(ctx context.Context, identifier string) (*models.Credential, error)
	Create(ctx context.Context, c *models.Credential) (*models.Credential, error)
}
