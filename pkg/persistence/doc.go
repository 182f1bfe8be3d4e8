// Package persistence provides entity state persistence for the
// hestia-state daemon.
//
// This package handles the JSON serialization of the in-memory store's
// entity states (values, attributes, change timestamps) so they survive
// daemon restarts. Subscriptions and the last-value cache are deliberately
// not persisted: they are bounded by consumer lifetimes, which end with
// the process.
package persistence
