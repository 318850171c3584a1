package tools

import (
	"context"
	"testing"
	"time"
)

func TestRateLimiterBurst(t *testing.T) {
	rl := NewRateLimiter(1, 2)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		if err := rl.Wait(ctx, "encode_polyline"); err != nil {
			t.Fatalf("call %d within burst: %v", i, err)
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	if err := rl.Wait(ctx, "encode_polyline"); err == nil {
		t.Error("expected wait past the burst to fail before the deadline")
	}

	// other tools have their own bucket
	if err := rl.Wait(context.Background(), "decode_polyline"); err != nil {
		t.Errorf("independent tool was limited: %v", err)
	}
}

func TestRateLimiterCanceledContext(t *testing.T) {
	rl := NewRateLimiter(0.001, 1)
	_ = rl.Wait(context.Background(), "clip_path")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := rl.Wait(ctx, "clip_path"); err == nil {
		t.Error("expected error for canceled context")
	}
}
