// Package aggregates holds data-layer helpers shared by services: mapping
// driver errors onto domain error codes and a transaction boundary for
// multi-row writes.
package aggregates
