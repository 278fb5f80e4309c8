package utils

import (
	"math"
	"testing"
)

// TestTimerCatchUp 测试低帧率下一帧内多次完成的追赶行为
func TestTimerCatchUp(t *testing.T) {
	timer := NewTimer(1.0)
	timer.Advance(2.5)

	results := []bool{timer.TryConsume(), timer.TryConsume(), timer.TryConsume()}
	want := []bool{true, true, false}
	for i := range want {
		if results[i] != want[i] {
			t.Errorf("TryConsume #%d = %v, want %v", i+1, results[i], want[i])
		}
	}

	if math.Abs(timer.Elapsed-0.5) > 1e-9 {
		t.Errorf("residual Elapsed = %v, want 0.5", timer.Elapsed)
	}
}

func TestTimerIsDueDoesNotMutate(t *testing.T) {
	timer := NewTimer(1.0)
	timer.Advance(1.2)

	if !timer.IsDue() {
		t.Fatal("timer should be due")
	}
	if !timer.IsDue() {
		t.Error("IsDue must not consume the completion")
	}
	if timer.Elapsed != 1.2 {
		t.Errorf("Elapsed changed by IsDue: %v", timer.Elapsed)
	}
}

func TestTimerReset(t *testing.T) {
	timer := NewTimer(2.0)
	timer.Advance(1.5)
	timer.Reset()

	if timer.Elapsed != 0 {
		t.Errorf("Elapsed after Reset = %v, want 0", timer.Elapsed)
	}
	if timer.TimeLeft() != 2.0 {
		t.Errorf("TimeLeft after Reset = %v, want 2.0", timer.TimeLeft())
	}
}

func TestTimerPercentElapsed(t *testing.T) {
	tests := []struct {
		name    string
		delay   float64
		advance float64
		want    float64
	}{
		{"一半", 2.0, 1.0, 0.5},
		{"未开始", 2.0, 0, 0},
		{"零延迟不除零", 0, 1.0, 1},
		{"负延迟不除零", -1, 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			timer := NewTimer(tt.delay)
			timer.Advance(tt.advance)
			got := timer.PercentElapsed()
			if math.IsNaN(got) || math.IsInf(got, 0) {
				t.Fatalf("PercentElapsed returned %v", got)
			}
			if got != tt.want {
				t.Errorf("PercentElapsed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestTimerZeroDelayAlwaysDue(t *testing.T) {
	timer := NewTimer(0)
	if !timer.IsDue() {
		t.Error("zero-delay timer should be due")
	}
	if !timer.TryConsume() {
		t.Error("zero-delay timer should always consume")
	}
}
