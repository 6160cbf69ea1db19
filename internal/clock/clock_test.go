package clock

import (
	"testing"
	"time"
)

func TestSystemNow(t *testing.T) {
	before := time.Now().Unix()
	got := System{}.Now()
	after := time.Now().Unix()
	if got < before || got > after {
		t.Errorf("System.Now() = %d, want within [%d, %d]", got, before, after)
	}
}

func TestManual(t *testing.T) {
	c := NewManual(1000)
	if c.Now() != 1000 {
		t.Fatalf("Expected 1000, got %d", c.Now())
	}

	c.Advance(time.Hour)
	if c.Now() != 4600 {
		t.Errorf("Expected 4600 after advancing an hour, got %d", c.Now())
	}

	c.Advance(1500 * time.Millisecond)
	if c.Now() != 4601 {
		t.Errorf("Expected sub-second part to be truncated, got %d", c.Now())
	}

	c.Set(42)
	if c.Now() != 42 {
		t.Errorf("Expected 42 after Set, got %d", c.Now())
	}
}
