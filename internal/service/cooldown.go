package service

import "time"

// CooldownTimer gates dispensing for a few seconds after each resolve.
// Session-local only: a restart during cooldown resets it to inactive.
// Not safe for concurrent use; the owning dispenser serializes access.
type CooldownTimer struct {
	remaining int
}

// Start resets the countdown. Sub-second durations round up so a
// configured cooldown under one second still gates at least one tick.
func (t *CooldownTimer) Start(d time.Duration) {
	if d <= 0 {
		t.remaining = 0
		return
	}
	secs := int(d / time.Second)
	if d%time.Second != 0 {
		secs++
	}
	t.remaining = secs
}

// Tick advances the countdown by one second, flooring at zero.
func (t *CooldownTimer) Tick() {
	if t.remaining > 0 {
		t.remaining--
	}
}

func (t *CooldownTimer) Active() bool { return t.remaining > 0 }

// Remaining reports whole seconds left.
func (t *CooldownTimer) Remaining() int { return t.remaining }
