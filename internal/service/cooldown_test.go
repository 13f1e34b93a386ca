package service

import (
	"testing"
	"time"
)

func TestCooldownTimer(t *testing.T) {
	var timer CooldownTimer

	if timer.Active() {
		t.Fatalf("zero timer should be inactive")
	}

	timer.Start(3 * time.Second)
	if !timer.Active() || timer.Remaining() != 3 {
		t.Fatalf("after Start(3s): active=%v remaining=%d", timer.Active(), timer.Remaining())
	}

	timer.Tick()
	timer.Tick()
	if timer.Remaining() != 1 {
		t.Errorf("remaining = %d after two ticks, want 1", timer.Remaining())
	}

	timer.Tick()
	timer.Tick() // floored at zero
	if timer.Active() || timer.Remaining() != 0 {
		t.Errorf("after expiry: active=%v remaining=%d", timer.Active(), timer.Remaining())
	}
}

func TestCooldownTimerRoundsUp(t *testing.T) {
	var timer CooldownTimer
	timer.Start(1500 * time.Millisecond)
	if timer.Remaining() != 2 {
		t.Errorf("Start(1.5s) remaining = %d, want 2", timer.Remaining())
	}

	timer.Start(0)
	if timer.Active() {
		t.Errorf("Start(0) should leave the timer inactive")
	}
}
