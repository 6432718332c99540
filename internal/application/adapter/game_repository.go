// Package adapter defines interfaces that will be implemented in the integration layer.
package adapter

import (
	"context"

	"github.com/google/uuid"

	"github.com/gamevault/backoffice/internal/domain/entity"
)

// GameRepository defines the interface for catalog read operations.
type GameRepository interface {
	// FindByID returns the game, or nil when it does not exist.
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Game, error)

	// FindByIDs returns the games that exist among ids.
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Game, error)

	// FindAll returns the whole catalog ordered by title.
	FindAll(ctx context.Context) ([]*entity.Game, error)
}
