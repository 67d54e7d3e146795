// Package integration provides integration tests that verify database state
// after HTTP requests. These tests use a real MongoDB via testcontainers.
//
// Run with: go test -tags=integration ./tests/integration/...
package integration
