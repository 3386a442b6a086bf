package app

import (
	"testing"
	"time"
)

type fakeTime struct{ t time.Time }

func (f *fakeTime) now() time.Time { return f.t }

func (f *fakeTime) advance(d time.Duration) { f.t = f.t.Add(d) }

func TestClockDue(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	c := NewClock(10)
	c.now = ft.now

	if n := c.Due(); n != 1 {
		t.Fatalf("first call should report one tick, got %d", n)
	}
	ft.advance(250 * time.Millisecond)
	if n := c.Due(); n != 2 {
		t.Fatalf("expected 2 ticks after 250ms, got %d", n)
	}
	ft.advance(60 * time.Millisecond)
	if n := c.Due(); n != 1 {
		t.Fatalf("remainder should carry over, got %d", n)
	}
	ft.advance(10 * time.Millisecond)
	if n := c.Due(); n != 0 {
		t.Fatalf("expected no tick, got %d", n)
	}
}

func TestClockBurstCap(t *testing.T) {
	ft := &fakeTime{t: time.Unix(1000, 0)}
	c := NewClock(10)
	c.now = ft.now
	c.Due()

	ft.advance(time.Second)
	if n := c.Due(); n != 4 {
		t.Fatalf("expected burst cap of 4, got %d", n)
	}
	ft.advance(50 * time.Millisecond)
	if n := c.Due(); n != 0 {
		t.Fatalf("backlog should be dropped, got %d", n)
	}
}

func TestClockTPS(t *testing.T) {
	c := NewClock(0)
	if c.TPS() != 60 {
		t.Fatalf("expected default 60 TPS, got %d", c.TPS())
	}
	c.SetTPS(25)
	if c.TPS() != 25 {
		t.Fatalf("expected 25 TPS, got %d", c.TPS())
	}
}
