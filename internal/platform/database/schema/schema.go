// Package schema centralizes table and column names for the story hierarchy.
//
// Repositories build their SQL from these definitions so that a rename stays
// a one-file change and typos fail review, not production.
package schema
