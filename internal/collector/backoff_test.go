package collector

import (
	"testing"
	"time"
)

func TestDelay(t *testing.T) {
	tests := []struct {
		attempt int
		max     time.Duration
		want    time.Duration
	}{
		{0, 10 * time.Second, time.Second},
		{1, 10 * time.Second, 2 * time.Second},
		{2, 10 * time.Second, 4 * time.Second},
		{3, 10 * time.Second, 8 * time.Second},
		{4, 10 * time.Second, 10 * time.Second},
		{10, 10 * time.Second, 10 * time.Second},
		{64, 10 * time.Second, 10 * time.Second},
		{0, time.Minute, time.Second},
		{5, time.Minute, 32 * time.Second},
		{-1, 10 * time.Second, time.Second},
	}
	for _, tt := range tests {
		if got := Delay(tt.attempt, tt.max); got != tt.want {
			t.Errorf("Delay(%d, %v) = %v, want %v", tt.attempt, tt.max, got, tt.want)
		}
	}
}

func TestDelay_Monotonic(t *testing.T) {
	prev := time.Duration(0)
	for a := 0; a < 40; a++ {
		d := Delay(a, 10*time.Second)
		if d < prev {
			t.Fatalf("Delay(%d) = %v is below Delay(%d) = %v", a, d, a-1, prev)
		}
		if d > 10*time.Second {
			t.Fatalf("Delay(%d) = %v exceeds ceiling", a, d)
		}
		prev = d
	}
}

func TestPolicy_ResetStartsOver(t *testing.T) {
	p := NewPolicy(10 * time.Second)
	want := []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}
	for i, w := range want {
		if got := p.NextBackOff(); got != w {
			t.Fatalf("step %d: got %v, want %v", i, got, w)
		}
	}
	p.Reset()
	if got := p.NextBackOff(); got != time.Second {
		t.Errorf("after Reset got %v, want 1s", got)
	}
}
