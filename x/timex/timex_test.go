package timex

import (
	"testing"
	"time"
)

func TestMs(t *testing.T) {
	if got := Ms(0, time.Second); got != time.Second {
		t.Fatalf("Ms(0) = %v, want default", got)
	}
	if got := Ms(250, time.Second); got != 250*time.Millisecond {
		t.Fatalf("Ms(250) = %v", got)
	}
}

func TestNowMs(t *testing.T) {
	before := time.Now().UnixMilli()
	if got := NowMs(); got < before {
		t.Fatalf("NowMs() = %d, before %d", got, before)
	}
}
