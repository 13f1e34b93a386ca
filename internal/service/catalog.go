package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"microquest/dispenser/internal/config"
	"microquest/dispenser/internal/model"
	"microquest/dispenser/internal/repository"
)

// ChallengesFromConfig converts the configured catalog entries,
// assigning ids to entries that omit one. Order follows the config.
func ChallengesFromConfig(entries []config.ChallengeEntry) []model.Challenge {
	challenges := make([]model.Challenge, 0, len(entries))
	for i, e := range entries {
		id := e.ID
		if id == "" {
			id = uuid.NewString()
		}
		challenges = append(challenges, model.Challenge{
			ID:       id,
			Text:     e.Text,
			Position: i,
		})
	}
	return challenges
}

// LoadCatalog reads the catalog from repo, seeding it from the
// configured list when the table is empty.
func LoadCatalog(ctx context.Context, repo repository.ChallengeRepository, fallback []config.ChallengeEntry) ([]model.Challenge, error) {
	existing, err := repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list challenges: %w", err)
	}
	if len(existing) > 0 {
		return existing, nil
	}

	seed := ChallengesFromConfig(fallback)
	if len(seed) == 0 {
		return nil, ErrEmptyCatalog
	}
	if err := repo.Seed(ctx, seed); err != nil {
		return nil, fmt.Errorf("seed challenges: %w", err)
	}
	return seed, nil
}
