package service

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"microquest/dispenser/internal/model"
	"microquest/dispenser/internal/repository"
)

// DispenseResult is returned by RequestChallenge and ConfirmOverride.
// Exactly one of Challenge / OverrideRequired is meaningful: when the
// hourly quota is already spent, no challenge is dispensed and
// OverrideRequired asks the caller to confirm explicitly.
type DispenseResult struct {
	Challenge        *model.Challenge `json:"challenge,omitempty"`
	OverrideRequired bool             `json:"override_required"`
}

// DispenserView is the read-only status snapshot.
type DispenserView struct {
	CurrentChallenge  *model.Challenge `json:"current_challenge,omitempty"`
	Served            int              `json:"served"`
	Quota             int              `json:"quota"`
	Bucket            string           `json:"bucket"`
	CooldownRemaining int              `json:"cooldown_remaining"`
	OverridePending   bool             `json:"override_pending"`
	PoolRemaining     int              `json:"pool_remaining"`
}

type DispenserService interface {
	// RequestChallenge dispenses the next challenge. While a challenge
	// is outstanding it returns that same challenge without mutating
	// anything. At quota it returns OverrideRequired instead of
	// dispensing.
	RequestChallenge(ctx context.Context) (*DispenseResult, error)
	// ConfirmOverride dispenses past quota. Valid only directly after
	// RequestChallenge signalled OverrideRequired.
	ConfirmOverride(ctx context.Context) (*DispenseResult, error)
	// Resolve closes the outstanding challenge as done or skip and
	// starts the cooldown.
	Resolve(ctx context.Context, action model.ResolveAction) error
	View(ctx context.Context) (*DispenserView, error)
	// Tick advances the cooldown and picks up bucket rollover. Driven
	// once per second by the host process.
	Tick(ctx context.Context)
}

type dispenserService struct {
	mu       sync.Mutex
	pool     *ChallengePool
	hourRepo repository.HourStateRepository
	clock    Clock
	logger   *zap.Logger

	quota       int
	cooldownDur time.Duration

	// Session state. bucket/state mirror the persisted record and are
	// replaced only after a successful write-through.
	bucket          string
	state           *model.HourState
	cooldown        CooldownTimer
	overridePending bool
}

func NewDispenserService(
	pool *ChallengePool,
	hourRepo repository.HourStateRepository,
	clock Clock,
	quota int,
	cooldown time.Duration,
	logger *zap.Logger,
) DispenserService {
	if quota <= 0 {
		quota = 3
	}
	return &dispenserService{
		pool:        pool,
		hourRepo:    hourRepo,
		clock:       clock,
		logger:      logger,
		quota:       quota,
		cooldownDur: cooldown,
	}
}

// syncBucket loads the record for the current hour if we have none yet
// or the hour rolled over. Rollover abandons the previous bucket and
// any pending override; the cooldown keeps counting.
func (d *dispenserService) syncBucket(ctx context.Context) error {
	bucket := BucketKey(d.clock.Now())
	if bucket == d.bucket && d.state != nil {
		return nil
	}

	state, err := d.hourRepo.Load(ctx, bucket)
	if err != nil {
		return err
	}
	if d.bucket != "" && d.bucket != bucket {
		d.logger.Info("hour bucket rolled over",
			zap.String("from", d.bucket),
			zap.String("to", bucket),
		)
	}
	d.bucket = bucket
	d.state = state
	d.overridePending = false
	return nil
}

func (d *dispenserService) RequestChallenge(ctx context.Context) (*DispenseResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.syncBucket(ctx); err != nil {
		return nil, err
	}
	if d.cooldown.Active() {
		return nil, ErrInvalidTransition
	}

	// Idempotent while a challenge is outstanding.
	if d.state.CurrentID != "" {
		return &DispenseResult{Challenge: d.currentChallenge()}, nil
	}

	if d.state.Served >= d.quota {
		d.overridePending = true
		return &DispenseResult{OverrideRequired: true}, nil
	}
	return d.dispense(ctx)
}

func (d *dispenserService) ConfirmOverride(ctx context.Context) (*DispenseResult, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.syncBucket(ctx); err != nil {
		return nil, err
	}
	if d.cooldown.Active() || !d.overridePending || d.state.CurrentID != "" {
		return nil, ErrInvalidTransition
	}
	return d.dispense(ctx)
}

// dispense picks an unused challenge and persists it as outstanding.
// Caller holds the lock and has synced the bucket.
func (d *dispenserService) dispense(ctx context.Context) (*DispenseResult, error) {
	challenge := d.pool.PickNext(d.state.UsedSet())
	if challenge == nil {
		return nil, ErrPoolExhausted
	}

	next := d.state.Clone()
	next.CurrentID = challenge.ID
	if err := d.hourRepo.Save(ctx, d.bucket, next); err != nil {
		return nil, err
	}
	d.state = next
	d.overridePending = false

	d.logger.Info("challenge dispensed",
		zap.String("bucket", d.bucket),
		zap.String("challenge_id", challenge.ID),
		zap.Int("served", d.state.Served),
	)
	return &DispenseResult{Challenge: challenge}, nil
}

func (d *dispenserService) Resolve(ctx context.Context, action model.ResolveAction) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !action.Valid() {
		return ErrInvalidAction
	}
	if err := d.syncBucket(ctx); err != nil {
		return err
	}
	if d.cooldown.Active() || d.state.CurrentID == "" {
		return ErrInvalidTransition
	}

	next := d.state.Clone()
	next.MarkUsed(next.CurrentID)
	if action == model.ActionDone {
		next.Served++
	}
	next.CurrentID = ""
	if err := d.hourRepo.Save(ctx, d.bucket, next); err != nil {
		return err
	}
	d.state = next
	d.cooldown.Start(d.cooldownDur)

	d.logger.Info("challenge resolved",
		zap.String("bucket", d.bucket),
		zap.String("action", string(action)),
		zap.Int("served", d.state.Served),
	)
	return nil
}

func (d *dispenserService) View(ctx context.Context) (*DispenserView, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if err := d.syncBucket(ctx); err != nil {
		return nil, err
	}

	used := d.state.UsedSet()
	if d.state.CurrentID != "" {
		used[d.state.CurrentID] = struct{}{}
	}
	return &DispenserView{
		CurrentChallenge:  d.currentChallenge(),
		Served:            d.state.Served,
		Quota:             d.quota,
		Bucket:            d.bucket,
		CooldownRemaining: d.cooldown.Remaining(),
		OverridePending:   d.overridePending,
		PoolRemaining:     d.pool.Remaining(used),
	}, nil
}

func (d *dispenserService) Tick(ctx context.Context) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cooldown.Tick()

	// Refresh eagerly on rollover so the next operation starts from
	// the new bucket even if the load below fails; syncBucket retries.
	bucket := BucketKey(d.clock.Now())
	if d.bucket == "" || bucket == d.bucket {
		return
	}
	state, err := d.hourRepo.Load(ctx, bucket)
	if err != nil {
		d.logger.Warn("rollover load failed", zap.String("bucket", bucket), zap.Error(err))
		d.state = nil
		d.bucket = ""
		d.overridePending = false
		return
	}
	d.logger.Info("hour bucket rolled over",
		zap.String("from", d.bucket),
		zap.String("to", bucket),
	)
	d.bucket = bucket
	d.state = state
	d.overridePending = false
}

// currentChallenge resolves the outstanding id against the catalog.
// A persisted id missing from the catalog (edited between restarts)
// still shows up with its id so it can be resolved away.
func (d *dispenserService) currentChallenge() *model.Challenge {
	if d.state.CurrentID == "" {
		return nil
	}
	if c := d.pool.ByID(d.state.CurrentID); c != nil {
		return c
	}
	return &model.Challenge{ID: d.state.CurrentID}
}

// ensure dispenserService implements DispenserService
var _ DispenserService = (*dispenserService)(nil)
