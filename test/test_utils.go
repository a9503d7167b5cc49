package test

import (
	"fmt"
	"testing"
	"time"
)

// TestTimer is a utility for measuring test execution time
type TestTimer struct {
	start time.Time
	name  string
}

// NewTestTimer creates a new test timer
func NewTestTimer(name string) *TestTimer {
	return &TestTimer{start: time.Now(), name: name}
}

// Stop stops the timer and prints the duration
func (t *TestTimer) Stop() time.Duration {
	duration := time.Since(t.start)
	fmt.Printf("⏱️  %s took %v\n", t.name, duration)
	return duration
}

// TestResult represents the result of a test with timing information
type TestResult struct {
	Name     string
	Duration time.Duration
	Passed   bool
}

// Suite collects timed subtests and prints a summary at the end.
type Suite struct {
	Name    string
	Results []TestResult
}

// NewSuite creates a suite; call PrintSummary with defer.
func NewSuite(name string) *Suite {
	return &Suite{Name: name}
}

// Run runs fn as a subtest, records its duration and flags it when it exceeds
// budget. A zero budget disables the check.
func (s *Suite) Run(t *testing.T, name string, budget time.Duration, fn func(t *testing.T)) {
	t.Helper()
	var d time.Duration
	passed := t.Run(name, func(t *testing.T) {
		timer := NewTestTimer(name)
		fn(t)
		d = timer.Stop()
		if budget > 0 && d > budget {
			t.Errorf("❌ %s performance test failed: took %v, expected less than %v", name, d, budget)
		}
	})
	s.Results = append(s.Results, TestResult{Name: name, Duration: d, Passed: passed})
}

// PrintSummary prints a summary of the test suite results
func (s *Suite) PrintSummary() {
	var total time.Duration
	passed := 0
	for _, r := range s.Results {
		total += r.Duration
		if r.Passed {
			passed++
		}
	}

	fmt.Printf("\n📊 Test Suite Summary: %s\n", s.Name)
	fmt.Printf("   Total Tests: %d\n", len(s.Results))
	fmt.Printf("   Passed: %d ✅\n", passed)
	fmt.Printf("   Failed: %d ❌\n", len(s.Results)-passed)
	fmt.Printf("   Total Time: %v\n", total)
	for _, r := range s.Results {
		status := "✅"
		if !r.Passed {
			status = "❌"
		}
		fmt.Printf("   %s %s: %v\n", status, r.Name, r.Duration)
	}
	fmt.Println()
}
