package repository

import (
	"context"

	"gorm.io/gorm"

	"microquest/dispenser/internal/model"
)

type pgChallengeRepository struct {
	db *gorm.DB
}

func NewPGChallengeRepository(db *gorm.DB) ChallengeRepository {
	return &pgChallengeRepository{db: db}
}

func (r *pgChallengeRepository) List(ctx context.Context) ([]model.Challenge, error) {
	var challenges []model.Challenge
	if err := r.db.WithContext(ctx).Order("position ASC").Find(&challenges).Error; err != nil {
		return nil, err
	}
	return challenges, nil
}

func (r *pgChallengeRepository) Seed(ctx context.Context, challenges []model.Challenge) error {
	if len(challenges) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).Create(&challenges).Error
}
