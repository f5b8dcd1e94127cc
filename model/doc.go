// Package model defines the marketplace records, their field schemas used by
// the query engine, and their registration with the database migrator.
package model
