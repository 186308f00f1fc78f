package services

import (
	"sync/atomic"
	"testing"
	"time"
)

func TestTimerTicksWithElapsedTime(t *testing.T) {
	t.Parallel()

	timer := NewTimer()
	defer timer.Stop()

	ticks := make(chan time.Duration, 16)
	timer.Start(5*time.Millisecond, time.Now(), func(elapsed time.Duration) {
		select {
		case ticks <- elapsed:
		default:
		}
	})

	select {
	case elapsed := <-ticks:
		if elapsed <= 0 {
			t.Fatalf("expected positive elapsed time, got %v", elapsed)
		}
	case <-time.After(time.Second):
		t.Fatal("timer never ticked")
	}

	if !timer.Running() {
		t.Fatal("timer should report running while started")
	}
}

func TestTimerStopHaltsTicksAndIsIdempotent(t *testing.T) {
	t.Parallel()

	timer := NewTimer()

	var count atomic.Int64
	timer.Start(5*time.Millisecond, time.Now(), func(time.Duration) {
		count.Add(1)
	})

	deadline := time.Now().Add(time.Second)
	for count.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("timer never ticked")
		}
		time.Sleep(time.Millisecond)
	}

	timer.Stop()
	timer.Stop()

	if timer.Running() {
		t.Fatal("timer should report stopped")
	}

	settled := count.Load()
	time.Sleep(30 * time.Millisecond)
	if count.Load() != settled {
		t.Fatalf("ticks continued after stop: %d -> %d", settled, count.Load())
	}
}

func TestTimerStartReplacesRunningLoop(t *testing.T) {
	t.Parallel()

	timer := NewTimer()
	defer timer.Stop()

	var first, second atomic.Int64
	timer.Start(5*time.Millisecond, time.Now(), func(time.Duration) {
		first.Add(1)
	})
	timer.Start(5*time.Millisecond, time.Now(), func(time.Duration) {
		second.Add(1)
	})

	deadline := time.Now().Add(time.Second)
	for second.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("replacement loop never ticked")
		}
		time.Sleep(time.Millisecond)
	}

	settled := first.Load()
	time.Sleep(30 * time.Millisecond)
	if first.Load() != settled {
		t.Fatalf("replaced loop kept ticking: %d -> %d", settled, first.Load())
	}
}
