// Package pricing contains the price quote use cases.
package pricing

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/gamevault/backoffice/internal/application/adapter"
	"github.com/gamevault/backoffice/internal/domain/entity"
	domainerror "github.com/gamevault/backoffice/internal/domain/error"
)

// loadGames fetches the referenced games in one read and fails when any is missing.
func loadGames(ctx context.Context, gameRepo adapter.GameRepository, ids []uuid.UUID) (map[uuid.UUID]*entity.Game, error) {
	games := make(map[uuid.UUID]*entity.Game, len(ids))
	if len(ids) == 0 {
		return games, nil
	}

	found, err := gameRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("failed to load games: %w", err)
	}
	for _, game := range found {
		if game != nil {
			games[game.ID] = game
		}
	}

	for _, id := range ids {
		if _, ok := games[id]; !ok {
			return nil, domainerror.NewPricingError(
				domainerror.ErrCodeGameNotFound,
				fmt.Sprintf("game %s not found", id),
				domainerror.ErrGameNotFound,
			)
		}
	}

	return games, nil
}

// uniqueIDs collects the distinct non-nil ids in first-seen order.
func uniqueIDs(ids ...*uuid.UUID) []uuid.UUID {
	seen := make(map[uuid.UUID]struct{}, len(ids))
	var out []uuid.UUID
	for _, id := range ids {
		if id == nil {
			continue
		}
		if _, ok := seen[*id]; ok {
			continue
		}
		seen[*id] = struct{}{}
		out = append(out, *id)
	}
	return out
}
