// Package apperr defines the error markers shared by the timer packages.
//
// Errors are tagged with one of the exported sentinels so callers can classify
// failures with errors.Is without parsing messages. The CLI maps the markers to
// process exit codes through ExitCode.
package apperr
