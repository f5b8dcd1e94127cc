// Package database manages the marketplace store: configuration loading,
// connections for mysql, postgres and sqlite through Bun, versioned
// migrations, optional foreign keys, SQL seed files, query hooks for slow
// statements and Prometheus metrics, and driver error classification.
package database
