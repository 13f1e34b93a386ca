package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"microquest/dispenser/internal/model"
)

const (
	hourStatePrefix = "dispenser:hour:"

	// Hour records are dead one hour after their bucket closes; 26h
	// leaves slack for clock adjustments.
	hourStateTTL = 26 * time.Hour
)

// HourStateRepository persists one HourState record per bucket key.
type HourStateRepository interface {
	// Load returns the record for bucket, or the default empty record
	// when the key is missing or its payload does not parse.
	Load(ctx context.Context, bucket string) (*model.HourState, error)
	// Save replaces the full record for bucket.
	Save(ctx context.Context, bucket string, state *model.HourState) error
}

type kvHourStateRepository struct {
	store StateStore
}

func NewKVHourStateRepository(store StateStore) HourStateRepository {
	return &kvHourStateRepository{store: store}
}

func (r *kvHourStateRepository) Load(ctx context.Context, bucket string) (*model.HourState, error) {
	raw, err := r.store.Get(ctx, hourStatePrefix+bucket)
	if err != nil {
		return nil, fmt.Errorf("load hour state: %w", err)
	}
	if len(raw) == 0 {
		return model.NewHourState(), nil
	}

	state := model.NewHourState()
	if err := json.Unmarshal(raw, state); err != nil {
		// Corrupt payload: start the bucket fresh rather than fail.
		return model.NewHourState(), nil
	}
	return state, nil
}

func (r *kvHourStateRepository) Save(ctx context.Context, bucket string, state *model.HourState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("encode hour state: %w", err)
	}
	if err := r.store.Set(ctx, hourStatePrefix+bucket, raw, hourStateTTL); err != nil {
		return fmt.Errorf("save hour state: %w", err)
	}
	return nil
}
