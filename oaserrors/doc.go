// Package oaserrors provides structured error types for oasconsolidate.
//
// Import path: github.com/erraggy/oasconsolidate/oaserrors
//
// The consolidation pipeline has exactly two fatal fault classes: an input
// document that cannot be loaded, and an output file that cannot be written.
// Both are surfaced as typed errors so callers can tell them apart with
// [errors.Is] and [errors.As]. Configuration mistakes are caught before any
// document is read and reported as a [ConfigError].
//
// # Error Types
//
//   - [ParseError]: a source document is missing, unreadable, or malformed
//   - [OutputError]: the consolidated document could not be written
//   - [ConfigError]: invalid configuration or input options
//
// # Sentinel Errors
//
//   - [ErrParse]: Matches any [ParseError]
//   - [ErrOutput]: Matches any [OutputError]
//   - [ErrConfig]: Matches any [ConfigError]
//
// # Usage Examples
//
//	result, err := consolidator.New(cfg).Run()
//	if errors.Is(err, oaserrors.ErrParse) {
//	    // One of the seven source documents could not be loaded
//	}
//
//	var parseErr *oaserrors.ParseError
//	if errors.As(err, &parseErr) && errors.Is(parseErr.Cause, os.ErrNotExist) {
//	    fmt.Printf("missing source document: %s\n", parseErr.Path)
//	}
//
// Lookup misses during operation-id reconciliation and schema name
// collisions are not errors; they are recorded on the result instead.
package oaserrors
