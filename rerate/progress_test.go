package rerate

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressTrackerReportsAtInterval(t *testing.T) {
	var out bytes.Buffer
	tracker := NewProgressTracker(&out, 10, 5)
	tracker.Start()

	tracker.Increment(3)
	if out.Len() != 0 {
		t.Fatalf("Expected no report before interval, got %q", out.String())
	}

	tracker.Increment(2)
	if !strings.Contains(out.String(), "5/10") {
		t.Fatalf("Expected report at interval, got %q", out.String())
	}

	tracker.Finish()
	if !strings.Contains(out.String(), "10/10 (100.0%)") {
		t.Fatalf("Expected final report, got %q", out.String())
	}
}

func TestProgressTrackerBeforeStart(t *testing.T) {
	var out bytes.Buffer
	tracker := NewProgressTracker(&out, 10, 1)

	// Updates before Start are ignored.
	tracker.Increment(5)
	tracker.Finish()
	if out.Len() != 0 {
		t.Fatalf("Expected no output before Start, got %q", out.String())
	}
	if tracker.Elapsed() != 0 {
		t.Fatal("Expected zero elapsed before Start")
	}
}
