// ABOUTME: Benchmark runner - executes performance scenarios against a real DB
// ABOUTME: Populates file-backed stores, times operations, and exports JSON
package perf

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/superlocal/memory/internal/models"
	"github.com/superlocal/memory/internal/storage"
)

// Result holds the outcome of a single scenario
type Result struct {
	ScenarioID   string        `json:"scenario_id"`
	ScenarioName string        `json:"scenario_name"`
	Status       string        `json:"status"`
	Detail       string        `json:"detail,omitempty"`
	Duration     time.Duration `json:"duration_ns"`

	// Search scenarios
	MaxQueryLatency  time.Duration `json:"max_query_latency_ns,omitempty"`
	MeanQueryLatency time.Duration `json:"mean_query_latency_ns,omitempty"`

	// Write scenarios
	WriteErrors     int     `json:"write_errors"`
	WritesPerSecond float64 `json:"writes_per_second,omitempty"`

	DBSizeBytes int64 `json:"db_size_bytes"`
}

// Runner executes benchmark scenarios
type Runner struct {
	verbose bool
}

// NewRunner creates a benchmark runner
func NewRunner(verbose bool) *Runner {
	return &Runner{verbose: verbose}
}

// RunAll executes every scenario and collects results
func (r *Runner) RunAll() ([]Result, error) {
	scenarios := AllScenarios()
	results := make([]Result, 0, len(scenarios))

	for _, scenario := range scenarios {
		result, err := r.Run(scenario)
		if err != nil {
			return nil, fmt.Errorf("scenario %s failed: %w", scenario.ID, err)
		}
		results = append(results, result)
	}

	return results, nil
}

// Run executes a single scenario against a fresh file-backed store
func (r *Runner) Run(scenario Scenario) (Result, error) {
	if r.verbose {
		fmt.Printf("\n========================================\n")
		fmt.Printf("RUNNING: %s\n", scenario.Name)
		fmt.Printf("========================================\n")
		fmt.Printf("%s\n\n", scenario.Description)
	}

	tmpDir, err := os.MkdirTemp("", "slm_bench_"+scenario.ID)
	if err != nil {
		return Result{}, fmt.Errorf("creating temp dir: %w", err)
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	store, err := storage.Open(filepath.Join(tmpDir, "bench.db"))
	if err != nil {
		return Result{}, fmt.Errorf("opening store: %w", err)
	}
	defer func() { _ = store.Close() }()

	start := time.Now()
	var result Result

	switch scenario.ID {
	case "search-latency":
		result, err = r.runSearchLatency(store, scenario)
	case "concurrent-writers":
		result, err = r.runConcurrentWriters(store, scenario)
	case "write-throughput":
		result, err = r.runWriteThroughput(store, scenario)
	default:
		return Result{}, fmt.Errorf("unknown scenario: %s", scenario.ID)
	}
	if err != nil {
		return Result{}, err
	}

	result.ScenarioID = scenario.ID
	result.ScenarioName = scenario.Name
	result.Duration = time.Since(start)

	if stats, err := store.Stats(); err == nil {
		result.DBSizeBytes = stats.DBSizeBytes
	}

	if r.verbose {
		fmt.Printf("Status: %s", result.Status)
		if result.Detail != "" {
			fmt.Printf(" (%s)", result.Detail)
		}
		fmt.Println()
	}

	return result, nil
}

func (r *Runner) runSearchLatency(store *storage.Store, scenario Scenario) (Result, error) {
	if err := populate(store, scenario.EntryCount); err != nil {
		return Result{}, err
	}

	var max, total time.Duration
	for _, query := range scenario.Queries {
		start := time.Now()
		if _, err := store.Recall(query, 10); err != nil {
			return Result{}, fmt.Errorf("recall %q: %w", query, err)
		}
		elapsed := time.Since(start)
		total += elapsed
		if elapsed > max {
			max = elapsed
		}
		if r.verbose {
			fmt.Printf("  %-25s %v\n", query, elapsed)
		}
	}

	result := Result{
		MaxQueryLatency:  max,
		MeanQueryLatency: total / time.Duration(len(scenario.Queries)),
		Status:           "PASS",
	}
	if max > scenario.MaxSearchLatency {
		result.Status = "FAIL"
		result.Detail = fmt.Sprintf("slowest query took %v, limit %v", max, scenario.MaxSearchLatency)
	}
	return result, nil
}

func (r *Runner) runConcurrentWriters(store *storage.Store, scenario Scenario) (Result, error) {
	errCh := make(chan error, scenario.Writers*scenario.WritesPerWriter)
	var wg sync.WaitGroup

	for w := 0; w < scenario.Writers; w++ {
		wg.Add(1)
		go func(writer int) {
			defer wg.Done()
			for i := 0; i < scenario.WritesPerWriter; i++ {
				entry, err := models.NewEntry(
					fmt.Sprintf("writer %d entry %d", writer, i),
					models.DefaultCategory, nil, models.DefaultImportance)
				if err != nil {
					errCh <- err
					continue
				}
				if err := store.Remember(entry); err != nil {
					errCh <- err
				}
			}
		}(w)
	}
	wg.Wait()
	close(errCh)

	writeErrors := 0
	var firstErr error
	for err := range errCh {
		writeErrors++
		if firstErr == nil {
			firstErr = err
		}
	}

	result := Result{
		WriteErrors: writeErrors,
		Status:      "PASS",
	}
	if writeErrors > 0 {
		result.Status = "FAIL"
		result.Detail = fmt.Sprintf("%d write errors, first: %v", writeErrors, firstErr)
	}

	stats, err := store.Stats()
	if err != nil {
		return Result{}, fmt.Errorf("reading stats: %w", err)
	}
	expected := scenario.Writers * scenario.WritesPerWriter
	if stats.TotalEntries != expected-writeErrors {
		result.Status = "FAIL"
		result.Detail = fmt.Sprintf("expected %d entries, found %d", expected, stats.TotalEntries)
	}

	return result, nil
}

func (r *Runner) runWriteThroughput(store *storage.Store, scenario Scenario) (Result, error) {
	start := time.Now()
	if err := populate(store, scenario.EntryCount); err != nil {
		return Result{}, err
	}
	elapsed := time.Since(start)

	return Result{
		Status:          "PASS",
		WritesPerSecond: float64(scenario.EntryCount) / elapsed.Seconds(),
	}, nil
}

// populate fills the store with n deterministic corpus entries
func populate(store *storage.Store, n int) error {
	for i := 0; i < n; i++ {
		entry, err := models.NewEntry(corpusEntry(i), models.DefaultCategory, nil, models.DefaultImportance)
		if err != nil {
			return err
		}
		if err := store.Remember(entry); err != nil {
			return fmt.Errorf("populating entry %d: %w", i, err)
		}
	}
	return nil
}

// ExportResults writes a JSON summary of benchmark results
func ExportResults(results []Result, outputPath string) error {
	summary := map[string]interface{}{
		"timestamp":       time.Now().Format(time.RFC3339),
		"total_scenarios": len(results),
		"passed":          0,
		"failed":          0,
		"results":         results,
	}

	for _, result := range results {
		if result.Status == "PASS" {
			summary["passed"] = summary["passed"].(int) + 1
		} else {
			summary["failed"] = summary["failed"].(int) + 1
		}
	}

	jsonData, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}

	if err := os.WriteFile(outputPath, jsonData, 0644); err != nil {
		return fmt.Errorf("failed to write results file: %w", err)
	}

	fmt.Printf("✓ Results exported to: %s\n", outputPath)
	return nil
}
