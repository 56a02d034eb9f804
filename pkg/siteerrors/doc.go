// Package siteerrors provides error definitions for sitetools operations.
//
// This package defines the sentinel errors that callers match with
// [errors.Is], so that failures are reported and wrapped consistently
// throughout the codebase.
package siteerrors
