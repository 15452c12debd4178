package braveclient

import "testing"

func TestComputeRetryDelayMSRespectsRetryAfterSeconds(t *testing.T) {
	delay := ComputeRetryDelayMS(0, "2", 100, 60_000)
	if delay < 1600 || delay > 2400 {
		t.Fatalf("delay = %d, want within jitter of 2000ms", delay)
	}
}

func TestComputeRetryDelayMSIgnoresZeroRetryAfter(t *testing.T) {
	withHeader := ComputeRetryDelayMS(0, "0", 100, 60_000)
	withoutHeader := ComputeRetryDelayMS(0, "", 100, 60_000)
	if withHeader < 80 || withHeader > 120 {
		t.Fatalf("delay = %d, want exponential backoff near base (80..120ms)", withHeader)
	}
	_ = withoutHeader
}

func TestComputeRetryDelayMSExponentialGrowth(t *testing.T) {
	d0 := ComputeRetryDelayMS(0, "", 100, 60_000)
	d3 := ComputeRetryDelayMS(3, "", 100, 60_000)
	if d3 <= d0 {
		t.Fatalf("attempt 3 delay (%d) should exceed attempt 0 delay (%d)", d3, d0)
	}
}

func TestComputeRetryDelayMSClampsToMax(t *testing.T) {
	delay := ComputeRetryDelayMS(20, "", 100, 5_000)
	if delay > 5_000 {
		t.Fatalf("delay = %d, want clamped to max 5000", delay)
	}
}

func TestParseRetryAfterDelayMSMalformedHeader(t *testing.T) {
	if _, ok := parseRetryAfterDelayMS("not-a-valid-header"); ok {
		t.Fatal("expected malformed header to be rejected")
	}
	if _, ok := parseRetryAfterDelayMS(""); ok {
		t.Fatal("expected empty header to be rejected")
	}
}

func TestSaturatingMulOverflow(t *testing.T) {
	if got := saturatingMul(0, 100); got != 0 {
		t.Fatalf("saturatingMul(0, 100) = %d, want 0", got)
	}
	max := ^uint64(0)
	if got := saturatingMul(max, 2); got != max {
		t.Fatalf("saturatingMul(max, 2) = %d, want %d (saturated)", got, max)
	}
}
