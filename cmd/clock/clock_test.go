package clock

import (
	"errors"
	"testing"
	"time"
)

type fakeTime struct {
	now time.Time
}

func (f *fakeTime) Now() time.Time {
	return f.now
}

func (f *fakeTime) Advance(d time.Duration) {
	f.now = f.now.Add(d)
}

func TestClock_NotStarted(t *testing.T) {
	c := New()
	if c.Started() {
		t.Errorf("new clock reports Started() = true")
	}
	if _, err := c.Elapsed(); !errors.Is(err, ErrClockNotStarted) {
		t.Errorf("Elapsed() before Start() error = %v, want ErrClockNotStarted", err)
	}
	if _, err := c.ElapsedAt(time.Now()); !errors.Is(err, ErrClockNotStarted) {
		t.Errorf("ElapsedAt() before Start() error = %v, want ErrClockNotStarted", err)
	}
}

func TestClock_Elapsed(t *testing.T) {
	ft := &fakeTime{now: time.Unix(1000, 0)}
	c := NewWithSource(ft.Now)
	c.Start()

	ft.Advance(1500 * time.Millisecond)
	elapsed, err := c.Elapsed()
	if err != nil {
		t.Fatalf("Elapsed() returned error: %v", err)
	}
	if elapsed != 1500*time.Millisecond {
		t.Errorf("Elapsed() = %v, want 1.5s", elapsed)
	}

	at, err := c.ElapsedAt(time.Unix(1003, 0))
	if err != nil {
		t.Fatalf("ElapsedAt() returned error: %v", err)
	}
	if at != 3*time.Second {
		t.Errorf("ElapsedAt() = %v, want 3s", at)
	}
}

func TestClock_RestartDiscardsElapsed(t *testing.T) {
	ft := &fakeTime{now: time.Unix(1000, 0)}
	c := NewWithSource(ft.Now)
	c.Start()
	ft.Advance(10 * time.Second)

	c.Start()
	ft.Advance(2 * time.Second)

	elapsed, err := c.Elapsed()
	if err != nil {
		t.Fatalf("Elapsed() returned error: %v", err)
	}
	if elapsed != 2*time.Second {
		t.Errorf("Elapsed() after restart = %v, want 2s", elapsed)
	}
}
