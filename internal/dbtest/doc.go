/*
Package dbtest spins up database containers for tests that persist
thermodynamic states, using testcontainers-go.

Container-based tests are skipped with the -short flag. When developing locally
with Docker, keep the container of a failed test running for manual inspection
with:

	go test ./neo4jstore -dbtest.inspect

This package is intended to be used in tests only.
*/
package dbtest
