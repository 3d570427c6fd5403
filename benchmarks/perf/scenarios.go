// ABOUTME: Benchmark scenario definitions and corpus generation
// ABOUTME: Declares the performance checks and their pass thresholds
package perf

import (
	"fmt"
	"time"
)

// Scenario describes a single performance check
type Scenario struct {
	ID          string
	Name        string
	Description string

	// Corpus size for scenarios that pre-populate the store
	EntryCount int

	// Search scenarios
	Queries          []string
	MaxSearchLatency time.Duration

	// Concurrency scenarios
	Writers         int
	WritesPerWriter int
}

// SearchLatencyScenario checks that search stays under 100ms with a
// corpus of just under 500 entries
func SearchLatencyScenario() Scenario {
	return Scenario{
		ID:          "search-latency",
		Name:        "Search latency under load",
		Description: "Keyword search must complete in under 100ms with ~500 entries stored",
		EntryCount:  499,
		Queries: []string{
			"deploy pipeline",
			"database migration",
			"meeting notes",
			"api rate limit",
			"vacation schedule",
		},
		MaxSearchLatency: 100 * time.Millisecond,
	}
}

// ConcurrentWritersScenario checks that 10 goroutines writing at once
// complete without lock errors
func ConcurrentWritersScenario() Scenario {
	return Scenario{
		ID:              "concurrent-writers",
		Name:            "Concurrent writer safety",
		Description:     "10 concurrent writers must all succeed with zero database lock errors",
		Writers:         10,
		WritesPerWriter: 20,
	}
}

// WriteThroughputScenario measures sequential write throughput
func WriteThroughputScenario() Scenario {
	return Scenario{
		ID:          "write-throughput",
		Name:        "Sequential write throughput",
		Description: "Measures entries written per second on a single writer",
		EntryCount:  200,
	}
}

// AllScenarios returns every benchmark scenario
func AllScenarios() []Scenario {
	return []Scenario{
		SearchLatencyScenario(),
		ConcurrentWritersScenario(),
		WriteThroughputScenario(),
	}
}

// corpusEntry produces deterministic but varied content for entry i
func corpusEntry(i int) string {
	topics := []string{
		"deploy pipeline failed on stage %d, rollback completed",
		"database migration %d applied to the orders table",
		"meeting notes from sprint %d planning with the platform team",
		"api rate limit raised to %d requests per minute",
		"vacation schedule for week %d approved",
		"incident %d resolved after cache invalidation",
		"code review feedback on pull request %d",
		"customer ticket %d escalated to engineering",
	}
	return fmt.Sprintf(topics[i%len(topics)], i)
}
