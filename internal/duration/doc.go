// Package duration parses the timer's duration tokens.
//
// A token is one to three colon-separated decimal fields read right-to-left as
// seconds, minutes and hours: "90", "1:30" and "0:01:30" all denote ninety
// seconds. Every field below the leftmost one must lie in [0, 59]; the leftmost
// field is bounded only by MaxSeconds. Fields may carry any number of leading
// zeros. Signs, whitespace inside a field and empty fields are rejected.
//
// Parse failures are *ParseError values that unwrap to apperr.ErrInvalidFormat
// or apperr.ErrOutOfRange.
package duration
