package repository

import (
	"context"

	"microquest/dispenser/internal/model"
)

// ChallengeRepository reads the challenge catalog. Seed is only used
// at startup to populate an empty table from the configured list.
type ChallengeRepository interface {
	List(ctx context.Context) ([]model.Challenge, error)
	Seed(ctx context.Context, challenges []model.Challenge) error
}
