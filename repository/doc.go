// Package repository provides the per-entity storage contract: a generic
// repository with bun (SQL) and in-memory implementations, and entity
// repositories that add the filtered scans each entity supports.
package repository
