package commands

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/hestia-automation/hestia-go/pkg/log"
)

// Stats holds aggregate statistics about a log file.
type Stats struct {
	TotalEvents      int
	EventsByCategory map[log.Category]int
	Instances        map[string]*InstanceStats
	Deliveries       int
	Dropped          int
	Errors           int
	TimeRange        struct {
		Start time.Time
		End   time.Time
	}

	// changesByName counts state change events per variable name.
	changesByName map[string]int
}

// InstanceStats holds statistics for a single dispatcher instance.
type InstanceStats struct {
	FirstSeen time.Time
	LastSeen  time.Time
	Events    int
}

// RunStats analyzes the log file and prints statistics.
func RunStats(path string, w io.Writer) error {
	reader, err := log.NewReader(path)
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	stats := &Stats{
		EventsByCategory: make(map[log.Category]int),
		Instances:        make(map[string]*InstanceStats),
		changesByName:    make(map[string]int),
	}

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		stats.TotalEvents++
		stats.EventsByCategory[event.Category]++

		// Track time range
		if stats.TimeRange.Start.IsZero() || event.Timestamp.Before(stats.TimeRange.Start) {
			stats.TimeRange.Start = event.Timestamp
		}
		if event.Timestamp.After(stats.TimeRange.End) {
			stats.TimeRange.End = event.Timestamp
		}

		// Track per-instance stats
		inst, ok := stats.Instances[event.InstanceID]
		if !ok {
			inst = &InstanceStats{
				FirstSeen: event.Timestamp,
				LastSeen:  event.Timestamp,
			}
			stats.Instances[event.InstanceID] = inst
		}
		inst.Events++
		if event.Timestamp.After(inst.LastSeen) {
			inst.LastSeen = event.Timestamp
		}

		if event.StateChange != nil {
			stats.changesByName[event.StateChange.Name]++
		}
		if event.Delivery != nil {
			stats.Deliveries++
			if event.Delivery.Dropped {
				stats.Dropped++
			}
		}
		if event.Error != nil {
			stats.Errors++
		}
	}

	printStats(w, stats)
	return nil
}

func printStats(w io.Writer, stats *Stats) {
	fmt.Fprintln(w, "=== Hestia State Log Statistics ===")
	fmt.Fprintln(w)

	// Time range
	if stats.TotalEvents > 0 {
		fmt.Fprintf(w, "Time Range: %s to %s\n",
			stats.TimeRange.Start.Format(time.RFC3339),
			stats.TimeRange.End.Format(time.RFC3339))
		fmt.Fprintf(w, "Duration:   %s\n", stats.TimeRange.End.Sub(stats.TimeRange.Start).Round(time.Second))
		fmt.Fprintln(w)
	}

	// Total events
	fmt.Fprintf(w, "Total Events: %d\n", stats.TotalEvents)
	fmt.Fprintln(w)

	// Events by category
	fmt.Fprintln(w, "Events by Category:")
	for _, cat := range []log.Category{log.CategoryState, log.CategoryDelivery, log.CategorySubscription, log.CategoryError} {
		if count := stats.EventsByCategory[cat]; count > 0 {
			fmt.Fprintf(w, "  %-14s %d\n", cat.String()+":", count)
		}
	}
	fmt.Fprintln(w)

	// Most-changed variables
	if len(stats.changesByName) > 0 {
		type nameCount struct {
			name  string
			count int
		}
		names := make([]nameCount, 0, len(stats.changesByName))
		for name, count := range stats.changesByName {
			names = append(names, nameCount{name, count})
		}
		sort.Slice(names, func(i, j int) bool {
			if names[i].count != names[j].count {
				return names[i].count > names[j].count
			}
			return names[i].name < names[j].name
		})

		fmt.Fprintln(w, "State Changes by Variable:")
		for _, nc := range names {
			fmt.Fprintf(w, "  %-30s %d\n", nc.name, nc.count)
		}
		fmt.Fprintln(w)
	}

	// Deliveries
	if stats.Deliveries > 0 {
		fmt.Fprintf(w, "Deliveries: %d", stats.Deliveries)
		if stats.Dropped > 0 {
			fmt.Fprintf(w, " (%d dropped)", stats.Dropped)
		}
		fmt.Fprintln(w)
		fmt.Fprintln(w)
	}

	// Instances
	fmt.Fprintf(w, "Instances: %d\n", len(stats.Instances))
	if len(stats.Instances) > 0 {
		type instInfo struct {
			id    string
			stats *InstanceStats
		}
		insts := make([]instInfo, 0, len(stats.Instances))
		for id, is := range stats.Instances {
			insts = append(insts, instInfo{id, is})
		}
		sort.Slice(insts, func(i, j int) bool {
			return insts[i].stats.FirstSeen.Before(insts[j].stats.FirstSeen)
		})

		fmt.Fprintln(w, "")
		for _, in := range insts {
			duration := in.stats.LastSeen.Sub(in.stats.FirstSeen).Round(time.Millisecond)
			shortID := in.id
			if len(shortID) > 8 {
				shortID = shortID[:8]
			}
			fmt.Fprintf(w, "  [%s] %d events, duration %s\n", shortID, in.stats.Events, duration)
		}
	}

	// Errors
	if stats.Errors > 0 {
		fmt.Fprintln(w)
		fmt.Fprintf(w, "Errors: %d\n", stats.Errors)
	}
}
