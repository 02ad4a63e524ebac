/*
Package observability exposes engine activity as Prometheus metrics.

A Metrics value implements the engine's lifecycle hooks: register it with
engine options and scrape its registry (or the default one) to see flows
started, results by type, committed entries and save outcomes.
*/
package observability
