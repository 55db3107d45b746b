// Package testutil contains small agents used across tests to observe
// pipeline sequencing: counting agents, forced failures and fact writers.
// They are not intended for production usage.
package testutil
