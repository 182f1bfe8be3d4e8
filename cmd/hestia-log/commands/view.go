// Package commands implements the hestia-log CLI commands.
package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/hestia-automation/hestia-go/pkg/log"
)

// ViewFilter specifies criteria for filtering events in the view command.
type ViewFilter struct {
	Category   *log.Category
	InstanceID string
	Name       string
}

// formatEvent writes a human-readable representation of the event to w.
func formatEvent(w io.Writer, event log.Event) {
	// Header line: timestamp [inst:id] CATEGORY
	ts := event.Timestamp.UTC().Format("2006-01-02T15:04:05.000000Z")
	instID := shortenInstanceID(event.InstanceID)

	fmt.Fprintf(w, "%s [inst:%s] %s\n", ts, instID, event.Category.String())

	// Type-specific details
	switch {
	case event.StateChange != nil:
		formatStateChangeDetails(w, event.StateChange)
	case event.Delivery != nil:
		formatDeliveryDetails(w, event.Delivery)
	case event.Subscription != nil:
		formatSubscriptionDetails(w, event.Subscription)
	case event.Error != nil:
		formatErrorDetails(w, event.Error)
	}

	fmt.Fprintln(w) // Blank line between events
}

// shortenInstanceID returns the first 8 characters of the instance ID.
func shortenInstanceID(id string) string {
	if len(id) >= 8 {
		return id[:8]
	}
	return id
}

// formatStateChangeDetails writes state change details.
func formatStateChangeDetails(w io.Writer, sc *log.StateChangeEvent) {
	fmt.Fprintf(w, "  %s -> %v\n", sc.Name, sc.Value)
}

// formatDeliveryDetails writes delivery details.
func formatDeliveryDetails(w io.Writer, d *log.DeliveryEvent) {
	fmt.Fprintf(w, "  Names: %s\n", strings.Join(d.Names, ", "))
	if d.Dropped {
		fmt.Fprintln(w, "  Dropped: queue full")
	}
	fmt.Fprintf(w, "  QueueLen: %d\n", d.QueueLen)
}

// formatSubscriptionDetails writes subscription details.
func formatSubscriptionDetails(w io.Writer, s *log.SubscriptionEvent) {
	action := "Unsubscribe"
	if s.Added {
		action = "Subscribe"
	}
	fmt.Fprintf(w, "  %s: %s\n", action, strings.Join(s.Names, ", "))
}

// formatErrorDetails writes error details.
func formatErrorDetails(w io.Writer, err *log.ErrorEventData) {
	fmt.Fprintf(w, "  Message: %s\n", err.Message)
	if err.Context != "" {
		fmt.Fprintf(w, "  Context: %s\n", err.Context)
	}
}

// ParseCategoryFlag parses a category string from command-line flag (case-insensitive).
func ParseCategoryFlag(s string) (log.Category, error) {
	return parseCategory(s)
}

// parseCategory parses a category string (case-insensitive).
func parseCategory(s string) (log.Category, error) {
	switch strings.ToLower(s) {
	case "state":
		return log.CategoryState, nil
	case "delivery":
		return log.CategoryDelivery, nil
	case "subscription":
		return log.CategorySubscription, nil
	case "error":
		return log.CategoryError, nil
	default:
		return 0, fmt.Errorf("invalid category: %s (must be state, delivery, subscription, or error)", s)
	}
}

// RunView executes the view command.
func RunView(path string, filter ViewFilter, output io.Writer) error {
	reader, err := log.NewFilteredReader(path, log.Filter{
		InstanceID: filter.InstanceID,
		Category:   filter.Category,
		Name:       filter.Name,
	})
	if err != nil {
		return fmt.Errorf("failed to open log file: %w", err)
	}
	defer reader.Close()

	for {
		event, err := reader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("failed to read event: %w", err)
		}

		formatEvent(output, event)
	}

	return nil
}
