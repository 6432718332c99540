// Package persistence implements repository interfaces for database operations.
package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/gamevault/backoffice/internal/application/adapter"
	"github.com/gamevault/backoffice/internal/domain/entity"
	"github.com/gamevault/backoffice/internal/integration/persistence/model"
)

// gameRepository implements the adapter.GameRepository interface.
type gameRepository struct {
	db *gorm.DB
}

// NewGameRepository creates a new game repository instance.
func NewGameRepository(db *gorm.DB) adapter.GameRepository {
	return &gameRepository{
		db: db,
	}
}

// FindByID retrieves a game by its ID. Returns nil when the game does not exist.
func (r *gameRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Game, error) {
	var gameModel model.GameModel
	result := r.db.WithContext(ctx).Where("id = ?", id).First(&gameModel)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, result.Error
	}
	return gameModel.ToEntity(), nil
}

// FindByIDs retrieves the games matching ids. Unknown ids are skipped.
func (r *gameRepository) FindByIDs(ctx context.Context, ids []uuid.UUID) ([]*entity.Game, error) {
	if len(ids) == 0 {
		return []*entity.Game{}, nil
	}

	var gameModels []model.GameModel
	result := r.db.WithContext(ctx).Where("id IN ?", ids).Order("title ASC").Find(&gameModels)
	if result.Error != nil {
		return nil, result.Error
	}

	games := make([]*entity.Game, len(gameModels))
	for i := range gameModels {
		games[i] = gameModels[i].ToEntity()
	}
	return games, nil
}

// FindAll retrieves the whole catalog ordered by title.
func (r *gameRepository) FindAll(ctx context.Context) ([]*entity.Game, error) {
	var gameModels []model.GameModel
	result := r.db.WithContext(ctx).Order("title ASC").Order("id ASC").Find(&gameModels)
	if result.Error != nil {
		return nil, result.Error
	}

	games := make([]*entity.Game, len(gameModels))
	for i := range gameModels {
		games[i] = gameModels[i].ToEntity()
	}
	return games, nil
}
