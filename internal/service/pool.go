package service

import (
	"math/rand"
	"time"

	"microquest/dispenser/internal/model"
)

// ChallengePool is the immutable catalog loaded at startup. Selection
// is uniform over the items not yet used in the current bucket.
type ChallengePool struct {
	items []model.Challenge
	byID  map[string]int
	rng   *rand.Rand
}

func NewChallengePool(items []model.Challenge) *ChallengePool {
	return NewChallengePoolWithRand(items, rand.New(rand.NewSource(time.Now().UnixNano())))
}

// NewChallengePoolWithRand accepts the RNG, for deterministic tests.
func NewChallengePoolWithRand(items []model.Challenge, rng *rand.Rand) *ChallengePool {
	p := &ChallengePool{
		items: append([]model.Challenge(nil), items...),
		byID:  make(map[string]int, len(items)),
		rng:   rng,
	}
	for i, c := range p.items {
		p.byID[c.ID] = i
	}
	return p
}

// PickNext returns a uniformly random challenge whose id is not in
// used, or nil when every item has been used.
func (p *ChallengePool) PickNext(used map[string]struct{}) *model.Challenge {
	candidates := make([]int, 0, len(p.items))
	for i, c := range p.items {
		if _, ok := used[c.ID]; !ok {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) == 0 {
		return nil
	}
	c := p.items[candidates[p.rng.Intn(len(candidates))]]
	return &c
}

// ByID returns the catalog entry for id, or nil if unknown.
func (p *ChallengePool) ByID(id string) *model.Challenge {
	i, ok := p.byID[id]
	if !ok {
		return nil
	}
	c := p.items[i]
	return &c
}

func (p *ChallengePool) Size() int { return len(p.items) }

// Remaining counts items not in used.
func (p *ChallengePool) Remaining(used map[string]struct{}) int {
	n := 0
	for _, c := range p.items {
		if _, ok := used[c.ID]; !ok {
			n++
		}
	}
	return n
}
