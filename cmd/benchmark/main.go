// ABOUTME: Command-line benchmark runner for performance scenarios
// ABOUTME: Executes latency and concurrency checks and outputs JSON results

package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/superlocal/memory/benchmarks/perf"
)

func main() {
	scenarioID := flag.String("scenario", "", "Run a specific scenario (search-latency, concurrent-writers, write-throughput). If empty, runs all.")
	outputPath := flag.String("output", "benchmark_results.json", "Output path for JSON results")
	verbose := flag.Bool("verbose", false, "Enable verbose output")
	flag.Parse()

	fmt.Println("========================================")
	fmt.Println("SuperLocalMemory Performance Benchmarks")
	fmt.Println("========================================")
	fmt.Println()

	runner := perf.NewRunner(*verbose)

	var results []perf.Result
	var err error

	if *scenarioID == "" {
		fmt.Println("Running all benchmark scenarios...")
		results, err = runner.RunAll()
		if err != nil {
			log.Fatalf("Benchmark failed: %v", err)
		}
	} else {
		var scenario perf.Scenario
		found := false
		for _, s := range perf.AllScenarios() {
			if s.ID == *scenarioID {
				scenario = s
				found = true
				break
			}
		}
		if !found {
			log.Fatalf("Unknown scenario: %s", *scenarioID)
		}

		fmt.Printf("Running scenario: %s\n\n", scenario.Name)

		result, err := runner.Run(scenario)
		if err != nil {
			log.Fatalf("Scenario failed: %v", err)
		}
		results = []perf.Result{result}
	}

	fmt.Println("\n========================================")
	fmt.Println("BENCHMARK SUMMARY")
	fmt.Println("========================================")

	passed := 0
	failed := 0

	for _, result := range results {
		fmt.Printf("\n%s: %s\n", result.ScenarioID, result.ScenarioName)
		if result.MaxQueryLatency > 0 {
			fmt.Printf("  Max query latency:  %v\n", result.MaxQueryLatency)
			fmt.Printf("  Mean query latency: %v\n", result.MeanQueryLatency)
		}
		if result.WritesPerSecond > 0 {
			fmt.Printf("  Writes/sec: %.0f\n", result.WritesPerSecond)
		}
		fmt.Printf("  Write errors: %d\n", result.WriteErrors)
		fmt.Printf("  DB size: %.1f KB\n", float64(result.DBSizeBytes)/1024)
		fmt.Printf("  Status: %s\n", result.Status)
		if result.Detail != "" {
			fmt.Printf("  Detail: %s\n", result.Detail)
		}

		if result.Status == "PASS" {
			passed++
		} else {
			failed++
		}
	}

	fmt.Println("\n========================================")
	fmt.Printf("Total Scenarios: %d\n", len(results))
	fmt.Printf("Passed: %d\n", passed)
	fmt.Printf("Failed: %d\n", failed)
	fmt.Println("========================================")

	if err := perf.ExportResults(results, *outputPath); err != nil {
		log.Fatalf("Failed to export results: %v", err)
	}

	if failed > 0 {
		os.Exit(1)
	}
}
