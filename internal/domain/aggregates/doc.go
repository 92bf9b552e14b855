// Package aggregates defines the error vocabulary services use to report
// user-facing failures. Transport layers map codes onto status codes.
package aggregates
