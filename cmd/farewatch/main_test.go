package main

import (
	"testing"
	"time"
)

func TestResolveInterval(t *testing.T) {
	if got := resolveInterval(30*time.Minute, 6*time.Hour); got != 30*time.Minute {
		t.Fatalf("flag override must win, got %v", got)
	}
	if got := resolveInterval(0, 2*time.Hour); got != 2*time.Hour {
		t.Fatalf("configured interval must apply, got %v", got)
	}
	if got := resolveInterval(0, 0); got != 6*time.Hour {
		t.Fatalf("expected 6h fallback, got %v", got)
	}
}
