// Package severity defines the ordered log-level enumeration shared by the
// logkit packages and its coercion rules.
//
// The six ranks form a total order:
//
//	Debug < Info < Warn < Error < Fatal < Unknown
//
// # Usage
//
//	lvl, err := severity.Coerce("warn")
//	if err != nil {
//	    // errors.Is(err, severity.ErrInvalidSeverity)
//	}
//	if severity.Compare(lvl, severity.Error) < 0 {
//	    // below error
//	}
//
// Severity implements encoding.TextMarshaler/TextUnmarshaler so values
// parse directly from environment variables and YAML configuration, and it
// converts to and from slog.Level for emission through standard handlers.
//
// # Error Handling
//
// Coercion of unrecognized input fails with ErrInvalidSeverity. A nil
// value is deliberately not treated as "no override" here - callers that
// support unset levels must special-case absence before coercing.
package severity
