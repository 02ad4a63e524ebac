package schedule_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/aretw0/espalier/internal/schedule"
)

func TestManualQueuesUntilFire(t *testing.T) {
	m := schedule.NewManual()
	var calls []string

	m.RunAfter(time.Second, func() { calls = append(calls, "first") })
	m.RunAfter(time.Second, func() { calls = append(calls, "second") })
	assert.Equal(t, 2, m.Pending())
	assert.Empty(t, calls)

	m.Fire()
	assert.Equal(t, []string{"first", "second"}, calls)
	assert.Equal(t, 0, m.Pending())
}

func TestManualCancelRemovesWork(t *testing.T) {
	m := schedule.NewManual()
	fired := false

	cancel := m.RunAfter(time.Second, func() { fired = true })
	cancel()
	assert.Equal(t, 0, m.Pending())

	m.Fire()
	assert.False(t, fired)
}

func TestManualRunSoonIsSynchronous(t *testing.T) {
	m := schedule.NewManual()
	ran := false
	m.RunSoon(func() { ran = true })
	assert.True(t, ran)
}

func TestTimerRunAfterFires(t *testing.T) {
	tm := schedule.NewTimer()
	done := make(chan struct{})

	tm.RunAfter(time.Millisecond, func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("timer did not fire")
	}
}

func TestTimerCancelStopsWork(t *testing.T) {
	tm := schedule.NewTimer()
	fired := make(chan struct{}, 1)

	cancel := tm.RunAfter(50*time.Millisecond, func() { fired <- struct{}{} })
	cancel()

	select {
	case <-fired:
		t.Fatal("cancelled work still fired")
	case <-time.After(150 * time.Millisecond):
	}
}

func TestTimerRunSoonExecutes(t *testing.T) {
	tm := schedule.NewTimer()
	done := make(chan struct{})

	tm.RunSoon(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("work never ran")
	}
}
