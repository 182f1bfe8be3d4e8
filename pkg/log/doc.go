// Package log provides structured event logging for the state dispatcher.
//
// This package defines the Logger interface and Event types for capturing
// dispatcher-level events: state variable changes, notification deliveries,
// subscription changes, and errors. It is separate from operational logging
// (slog) - event capture provides a complete machine-readable trace of what
// the dispatcher did and when, for debugging trigger behavior after the fact.
//
// # Basic Usage
//
// Applications configure logging by providing a Logger implementation:
//
//	// For development: log to console via slog
//	dispatcher.SetLogger(log.NewSlogAdapter(slog.Default()))
//
//	// For production: write to binary file
//	logger, _ := log.NewFileLogger("/var/log/hestia/state.hlog")
//	dispatcher.SetLogger(logger)
//
//	// Both: use MultiLogger
//	dispatcher.SetLogger(log.NewMultiLogger(
//	    log.NewSlogAdapter(slog.Default()),
//	    logger,
//	))
//
// # Event Types
//
// Each event carries exactly one payload:
//   - StateChange: a state variable changed value
//   - Delivery: a notification message was pushed (or dropped)
//   - Subscription: a consumer subscribed or unsubscribed
//   - Error: a validation or delivery error
//
// # File Format
//
// Log files use CBOR encoding with .hlog extension. Reader provides
// streaming, filtered access for analysis tooling.
package log
