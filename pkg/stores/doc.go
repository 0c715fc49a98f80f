// Package stores persists the runner's execution ledger: one record per
// configure or run invocation, with the rendered command, status, and
// timing. Storage is SQLite in WAL mode with embedded migrations.
package stores
