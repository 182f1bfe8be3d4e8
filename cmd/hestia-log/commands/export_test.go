package commands

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/hestia-automation/hestia-go/pkg/log"
)

// readFile reads the whole file, failing the test on error.
func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// createTestLogFile writes events to a temporary log file and returns its path.
func createTestLogFile(t *testing.T, events []log.Event) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "test.hlog")

	logger, err := log.NewFileLogger(path)
	if err != nil {
		t.Fatalf("failed to create logger: %v", err)
	}

	for _, e := range events {
		logger.Log(e)
	}
	logger.Close()

	return path
}

func TestExportToJSONL(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 123456000, time.UTC)
	events := []log.Event{
		{
			Timestamp:  ts,
			InstanceID: "inst-1",
			Category:   log.CategoryState,
			StateChange: &log.StateChangeEvent{
				Name:  "light.kitchen",
				Value: "on",
			},
		},
		{
			Timestamp:  ts.Add(time.Second),
			InstanceID: "inst-1",
			Category:   log.CategoryDelivery,
			Delivery: &log.DeliveryEvent{
				Names:    []string{"light.kitchen"},
				QueueLen: 1,
			},
		},
	}

	path := createTestLogFile(t, events)
	outPath := filepath.Join(t.TempDir(), "out.jsonl")

	if err := RunExport(path, "jsonl", outPath); err != nil {
		t.Fatalf("RunExport failed: %v", err)
	}

	data := readFile(t, outPath)
	lines := strings.Split(strings.TrimSpace(data), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 JSONL lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "light.kitchen") {
		t.Errorf("expected variable name in first line, got: %s", lines[0])
	}
}

func TestExportToCSV(t *testing.T) {
	ts := time.Date(2026, 1, 28, 10, 15, 32, 0, time.UTC)
	events := []log.Event{
		{
			Timestamp:  ts,
			InstanceID: "inst-1",
			Category:   log.CategoryState,
			StateChange: &log.StateChangeEvent{
				Name:  "sensor.temp",
				Value: 21.5,
			},
		},
		{
			Timestamp:  ts.Add(time.Second),
			InstanceID: "inst-1",
			Category:   log.CategoryDelivery,
			Delivery: &log.DeliveryEvent{
				Names:   []string{"sensor.temp", "sensor.humidity"},
				Dropped: true,
			},
		},
	}

	path := createTestLogFile(t, events)

	var buf bytes.Buffer
	reader, err := log.NewReader(path)
	if err != nil {
		t.Fatalf("failed to open log file: %v", err)
	}
	defer reader.Close()

	if err := exportCSV(reader, &buf); err != nil {
		t.Fatalf("exportCSV failed: %v", err)
	}

	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse CSV: %v", err)
	}

	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d records", len(records))
	}
	if records[0][0] != "timestamp" || records[0][2] != "category" {
		t.Errorf("unexpected header: %v", records[0])
	}
	if records[1][2] != "STATE" || records[1][3] != "sensor.temp" {
		t.Errorf("unexpected state row: %v", records[1])
	}
	if records[2][2] != "DELIVERY" || records[2][3] != "sensor.temp;sensor.humidity" {
		t.Errorf("unexpected delivery row: %v", records[2])
	}
	if !strings.Contains(records[2][4], "dropped=true") {
		t.Errorf("expected dropped flag in detail, got: %s", records[2][4])
	}
}

func TestExportUnknownFormat(t *testing.T) {
	path := createTestLogFile(t, nil)
	if err := RunExport(path, "xml", ""); err == nil {
		t.Error("expected error for unknown format")
	}
}
