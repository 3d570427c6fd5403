// ABOUTME: Tests for the benchmark runner
// ABOUTME: Runs scaled-down scenarios to verify measurement and pass logic
package perf

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestRun_SearchLatencySmallCorpus(t *testing.T) {
	runner := NewRunner(false)

	scenario := SearchLatencyScenario()
	scenario.EntryCount = 50
	scenario.MaxSearchLatency = 5 * time.Second

	result, err := runner.Run(scenario)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Status != "PASS" {
		t.Errorf("Status = %s (%s), want PASS", result.Status, result.Detail)
	}
	if result.MaxQueryLatency == 0 {
		t.Error("MaxQueryLatency not recorded")
	}
	if result.DBSizeBytes == 0 {
		t.Error("DBSizeBytes not recorded")
	}
}

func TestRun_ConcurrentWriters(t *testing.T) {
	runner := NewRunner(false)

	scenario := ConcurrentWritersScenario()
	scenario.WritesPerWriter = 5

	result, err := runner.Run(scenario)
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if result.Status != "PASS" {
		t.Errorf("Status = %s (%s), want PASS", result.Status, result.Detail)
	}
	if result.WriteErrors != 0 {
		t.Errorf("WriteErrors = %d, want 0", result.WriteErrors)
	}
}

func TestRun_UnknownScenario(t *testing.T) {
	runner := NewRunner(false)

	_, err := runner.Run(Scenario{ID: "bogus"})
	if err == nil {
		t.Error("expected error for unknown scenario")
	}
}

func TestExportResults(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "results.json")

	results := []Result{
		{ScenarioID: "a", Status: "PASS"},
		{ScenarioID: "b", Status: "FAIL", Detail: "too slow"},
	}

	if err := ExportResults(results, outputPath); err != nil {
		t.Fatalf("ExportResults() error = %v", err)
	}

	data, err := os.ReadFile(outputPath)
	if err != nil {
		t.Fatal(err)
	}

	var summary struct {
		TotalScenarios int `json:"total_scenarios"`
		Passed         int `json:"passed"`
		Failed         int `json:"failed"`
	}
	if err := json.Unmarshal(data, &summary); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if summary.TotalScenarios != 2 || summary.Passed != 1 || summary.Failed != 1 {
		t.Errorf("summary = %+v, want 2 total, 1 passed, 1 failed", summary)
	}
}
